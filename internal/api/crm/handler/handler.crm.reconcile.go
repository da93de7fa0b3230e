package crmhdl

import (
	"fmt"

	basehdl "github.com/juliantrillken/webcrm/internal/api/base/handler"
	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmvc "github.com/juliantrillken/webcrm/internal/api/crm/service"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/global"

	"github.com/gofiber/fiber/v3"
)

// CrmReconcileHandler xử lý phiên đối soát ghi chú với dịch vụ trích xuất.
type CrmReconcileHandler struct {
	ReconcileService *crmvc.CrmReconcileService
}

// NewCrmReconcileHandler tạo CrmReconcileHandler mới.
func NewCrmReconcileHandler() (*CrmReconcileHandler, error) {
	svc, err := crmvc.NewCrmReconcileService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmReconcileService: %w", err)
	}
	return &CrmReconcileHandler{ReconcileService: svc}, nil
}

// HandleOpenSession xử lý POST /reconcile/sessions.
func (h *CrmReconcileHandler) HandleOpenSession(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		session, err := h.ReconcileService.OpenSession(c.Context())
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusCreated).JSON(fiber.Map{
			"code": common.StatusCreated, "message": "Mở phiên đối soát thành công", "data": session, "status": "success",
		})
		return nil
	})
}

// HandlePreview xử lý POST /reconcile/sessions/:sessionId/preview.
// Gửi văn bản thô đi trích xuất và trả về bộ thay đổi chờ xác nhận.
func (h *CrmReconcileHandler) HandlePreview(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		sessionID, ok := sessionIDParam(c)
		if !ok {
			return nil
		}
		var input crmdto.CrmReconcilePreviewInput
		if err := c.Bind().Body(&input); err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationFormat.Code, "message": "Dữ liệu gửi lên không đúng định dạng JSON", "status": "error",
			})
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Dữ liệu không hợp lệ: " + err.Error(), "status": "error",
			})
			return nil
		}
		preview, err := h.ReconcileService.Preview(c.Context(), sessionID, &input)
		basehdl.HandleResponse(c, preview, err)
		return nil
	})
}

// HandleApply xử lý POST /reconcile/sessions/:sessionId/apply.
// Ghi các thay đổi trường đã duyệt cùng ghi chú tóm tắt vào hồ sơ.
func (h *CrmReconcileHandler) HandleApply(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		sessionID, ok := sessionIDParam(c)
		if !ok {
			return nil
		}
		customer, err := h.ReconcileService.Apply(c.Context(), sessionID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Áp dụng kết quả đối soát thành công", "data": toCustomerResponse(&customer, true), "status": "success",
		})
		return nil
	})
}

// HandleNoteOnly xử lý POST /reconcile/sessions/:sessionId/note.
// Chỉ ghi ghi chú tóm tắt, bỏ qua mọi thay đổi trường.
func (h *CrmReconcileHandler) HandleNoteOnly(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		sessionID, ok := sessionIDParam(c)
		if !ok {
			return nil
		}
		customer, err := h.ReconcileService.ApplyNoteOnly(c.Context(), sessionID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Đã lưu ghi chú, giữ nguyên các trường hồ sơ", "data": toCustomerResponse(&customer, true), "status": "success",
		})
		return nil
	})
}

// HandleCloseSession xử lý DELETE /reconcile/sessions/:sessionId.
func (h *CrmReconcileHandler) HandleCloseSession(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		sessionID, ok := sessionIDParam(c)
		if !ok {
			return nil
		}
		if err := h.ReconcileService.CloseSession(c.Context(), sessionID); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Đóng phiên đối soát thành công", "data": nil, "status": "success",
		})
		return nil
	})
}

// sessionIDParam đọc :sessionId từ path, tự trả lỗi khi thiếu.
func sessionIDParam(c fiber.Ctx) (string, bool) {
	sessionID := c.Params("sessionId")
	if sessionID == "" {
		c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code": common.ErrCodeValidationInput.Code, "message": "Thiếu sessionId", "status": "error",
		})
		return "", false
	}
	return sessionID, true
}
