package crmhdl

import (
	"fmt"

	basehdl "github.com/juliantrillken/webcrm/internal/api/base/handler"
	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmvc "github.com/juliantrillken/webcrm/internal/api/crm/service"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/global"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmNoteHandler xử lý ghi chú và dòng lịch sử của khách hàng.
type CrmNoteHandler struct {
	CustomerService *crmvc.CrmCustomerService
}

// NewCrmNoteHandler tạo CrmNoteHandler mới.
func NewCrmNoteHandler() (*CrmNoteHandler, error) {
	svc, err := crmvc.NewCrmCustomerService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmCustomerService: %w", err)
	}
	return &CrmNoteHandler{CustomerService: svc}, nil
}

// HandleAddNote xử lý POST /customers/:customerId/notes.
func (h *CrmNoteHandler) HandleAddNote(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		var input crmdto.CrmNoteCreateInput
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
		customer, err := h.CustomerService.AddNote(c.Context(), id, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusCreated).JSON(fiber.Map{
			"code": common.StatusCreated, "message": "Thêm ghi chú thành công", "data": toCustomerResponse(&customer, true), "status": "success",
		})
		return nil
	})
}

// HandleHistory xử lý GET /customers/:customerId/history.
// Trả về ghi chú đã lưu trộn với dòng việc sắp tới, mới nhất trước.
func (h *CrmNoteHandler) HandleHistory(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		history, err := h.CustomerService.HistoryForCustomer(c.Context(), id)
		basehdl.HandleResponse(c, history, err)
		return nil
	})
}

// HandleCorrectNoteDate xử lý PUT /customers/:customerId/notes/:noteId/date.
func (h *CrmNoteHandler) HandleCorrectNoteDate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		noteID, ok := noteIDParam(c)
		if !ok {
			return nil
		}
		var input crmdto.CrmNoteDateInput
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
		customer, err := h.CustomerService.CorrectNoteDate(c.Context(), id, noteID, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Sửa ngày ghi chú thành công", "data": toCustomerResponse(&customer, true), "status": "success",
		})
		return nil
	})
}

// HandleReplaceNoteContent xử lý PUT /customers/:customerId/notes/:noteId.
func (h *CrmNoteHandler) HandleReplaceNoteContent(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		noteID, ok := noteIDParam(c)
		if !ok {
			return nil
		}
		var input crmdto.CrmNoteContentInput
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
		customer, err := h.CustomerService.ReplaceNoteContent(c.Context(), id, noteID, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Sửa nội dung ghi chú thành công", "data": toCustomerResponse(&customer, true), "status": "success",
		})
		return nil
	})
}

// HandleDeleteNote xử lý DELETE /customers/:customerId/notes/:noteId.
func (h *CrmNoteHandler) HandleDeleteNote(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		noteID, ok := noteIDParam(c)
		if !ok {
			return nil
		}
		customer, err := h.CustomerService.DeleteNote(c.Context(), id, noteID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Xóa ghi chú thành công", "data": toCustomerResponse(&customer, true), "status": "success",
		})
		return nil
	})
}

// noteIDParam đọc và kiểm tra :noteId từ path, tự trả lỗi khi thiếu/sai.
func noteIDParam(c fiber.Ctx) (primitive.ObjectID, bool) {
	idStr := c.Params("noteId")
	if idStr == "" {
		c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code": common.ErrCodeValidationInput.Code, "message": "Thiếu noteId", "status": "error",
		})
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code": common.ErrCodeValidationFormat.Code, "message": "noteId không hợp lệ", "status": "error",
		})
		return primitive.NilObjectID, false
	}
	return id, true
}
