// Package router đăng ký các route thuộc domain CRM: customers, notes, doings, reconcile, settings.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	crmhdl "github.com/juliantrillken/webcrm/internal/api/crm/handler"
	apirouter "github.com/juliantrillken/webcrm/internal/api/router"
)

// Register đăng ký tất cả route CRM lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	customerHandler, err := crmhdl.NewCrmCustomerHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmCustomerHandler: %w", err)
	}
	importHandler, err := crmhdl.NewCrmImportHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmImportHandler: %w", err)
	}
	noteHandler, err := crmhdl.NewCrmNoteHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmNoteHandler: %w", err)
	}
	doingHandler, err := crmhdl.NewCrmDoingHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmDoingHandler: %w", err)
	}
	reconcileHandler, err := crmhdl.NewCrmReconcileHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmReconcileHandler: %w", err)
	}
	settingsHandler, err := crmhdl.NewCrmSettingsHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmSettingsHandler: %w", err)
	}

	// Ứng dụng phục vụ một người dùng cục bộ, chưa gắn middleware auth.
	var middlewares []fiber.Handler

	// POST /customers — tạo khách hàng mới
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "", middlewares, customerHandler.HandleCreateCustomer)

	// GET /customers — danh sách khách hàng. Query: includeInactive, page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "GET", "", middlewares, customerHandler.HandleListCustomers)

	// POST /customers/import — nhập khách hàng từ file CSV/xlsx (multipart field "file")
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/import", middlewares, importHandler.HandleImport)

	// GET /customers/:customerId — chi tiết khách hàng kèm notes
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "GET", "/:customerId", middlewares, customerHandler.HandleGetCustomer)

	// PUT /customers/:customerId — cập nhật toàn bộ form hồ sơ
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "PUT", "/:customerId", middlewares, customerHandler.HandleUpdateCustomer)

	// DELETE /customers/:customerId — xóa cứng khách hàng
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "DELETE", "/:customerId", middlewares, customerHandler.HandleDeleteCustomer)

	// POST /customers/:customerId/notes — thêm ghi chú thủ công
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/:customerId/notes", middlewares, noteHandler.HandleAddNote)

	// GET /customers/:customerId/history — lịch sử ghi chú trộn dòng việc sắp tới
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "GET", "/:customerId/history", middlewares, noteHandler.HandleHistory)

	// PUT /customers/:customerId/notes/:noteId/date — sửa ngày ghi chú
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "PUT", "/:customerId/notes/:noteId/date", middlewares, noteHandler.HandleCorrectNoteDate)

	// PUT /customers/:customerId/notes/:noteId — thay nội dung ghi chú
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "PUT", "/:customerId/notes/:noteId", middlewares, noteHandler.HandleReplaceNoteContent)

	// DELETE /customers/:customerId/notes/:noteId — xóa ghi chú
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "DELETE", "/:customerId/notes/:noteId", middlewares, noteHandler.HandleDeleteNote)

	// POST /customers/:customerId/reminder — đặt nhắc việc (offsetDays hoặc date)
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/:customerId/reminder", middlewares, doingHandler.HandleSetReminder)

	// DELETE /customers/:customerId/reminder — gỡ nhắc việc
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "DELETE", "/:customerId/reminder", middlewares, doingHandler.HandleClearReminder)

	// POST /customers/:customerId/reminder/complete — chốt việc thành ghi chú lịch sử
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/:customerId/reminder/complete", middlewares, doingHandler.HandleCompleteDoing)

	// POST /customers/:customerId/reminder/reschedule — dời hạn việc đang mở
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/:customerId/reminder/reschedule", middlewares, doingHandler.HandleRescheduleDoing)

	// GET /doings — mọi việc đang mở, sắp theo hạn tăng dần
	apirouter.RegisterRouteWithMiddleware(v1, "/doings", "GET", "", middlewares, doingHandler.HandleListDoings)

	// POST /reconcile/sessions — mở phiên đối soát
	apirouter.RegisterRouteWithMiddleware(v1, "/reconcile", "POST", "/sessions", middlewares, reconcileHandler.HandleOpenSession)

	// POST /reconcile/sessions/:sessionId/preview — trích xuất văn bản và dựng bộ thay đổi
	apirouter.RegisterRouteWithMiddleware(v1, "/reconcile", "POST", "/sessions/:sessionId/preview", middlewares, reconcileHandler.HandlePreview)

	// POST /reconcile/sessions/:sessionId/apply — ghi thay đổi trường kèm ghi chú tóm tắt
	apirouter.RegisterRouteWithMiddleware(v1, "/reconcile", "POST", "/sessions/:sessionId/apply", middlewares, reconcileHandler.HandleApply)

	// POST /reconcile/sessions/:sessionId/note — chỉ ghi ghi chú tóm tắt
	apirouter.RegisterRouteWithMiddleware(v1, "/reconcile", "POST", "/sessions/:sessionId/note", middlewares, reconcileHandler.HandleNoteOnly)

	// DELETE /reconcile/sessions/:sessionId — bỏ phiên, xóa bộ thay đổi đang chờ
	apirouter.RegisterRouteWithMiddleware(v1, "/reconcile", "DELETE", "/sessions/:sessionId", middlewares, reconcileHandler.HandleCloseSession)

	// GET /settings — đọc cấu hình hiển thị
	apirouter.RegisterRouteWithMiddleware(v1, "/settings", "GET", "", middlewares, settingsHandler.HandleGetSettings)

	// PUT /settings — cập nhật cấu hình (logo null sẽ xóa logo)
	apirouter.RegisterRouteWithMiddleware(v1, "/settings", "PUT", "", middlewares, settingsHandler.HandleUpdateSettings)

	// DELETE /settings — khôi phục cấu hình mặc định
	apirouter.RegisterRouteWithMiddleware(v1, "/settings", "DELETE", "", middlewares, settingsHandler.HandleResetSettings)

	return nil
}
