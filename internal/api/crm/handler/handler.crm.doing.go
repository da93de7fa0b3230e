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

// CrmDoingHandler xử lý danh sách việc cần làm và nhắc hẹn của khách hàng.
type CrmDoingHandler struct {
	CustomerService *crmvc.CrmCustomerService
}

// NewCrmDoingHandler tạo CrmDoingHandler mới.
func NewCrmDoingHandler() (*CrmDoingHandler, error) {
	svc, err := crmvc.NewCrmCustomerService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmCustomerService: %w", err)
	}
	return &CrmDoingHandler{CustomerService: svc}, nil
}

// HandleListDoings xử lý GET /doings. Trả về mọi việc đang mở,
// sắp theo hạn tăng dần, việc quá hạn được đánh dấu overdue.
func (h *CrmDoingHandler) HandleListDoings(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		doings, err := h.CustomerService.ListDoings(c.Context())
		basehdl.HandleResponse(c, doings, err)
		return nil
	})
}

// HandleSetReminder xử lý POST /customers/:customerId/reminder.
// Body cần offsetDays hoặc date (date được ưu tiên khi có cả hai).
func (h *CrmDoingHandler) HandleSetReminder(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		var input crmdto.CrmReminderInput
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
		customer, err := h.CustomerService.SetReminder(c.Context(), id, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Đặt nhắc việc thành công", "data": toCustomerResponse(&customer, false), "status": "success",
		})
		return nil
	})
}

// HandleClearReminder xử lý DELETE /customers/:customerId/reminder.
func (h *CrmDoingHandler) HandleClearReminder(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		customer, err := h.CustomerService.ClearReminder(c.Context(), id)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Gỡ nhắc việc thành công", "data": toCustomerResponse(&customer, false), "status": "success",
		})
		return nil
	})
}

// HandleCompleteDoing xử lý POST /customers/:customerId/reminder/complete.
// Chốt việc đang mở thành ghi chú lịch sử và gỡ nhắc hẹn.
func (h *CrmDoingHandler) HandleCompleteDoing(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		customer, err := h.CustomerService.CompleteDoing(c.Context(), id)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Hoàn thành việc thành công", "data": toCustomerResponse(&customer, true), "status": "success",
		})
		return nil
	})
}

// HandleRescheduleDoing xử lý POST /customers/:customerId/reminder/reschedule.
// Body rỗng được phép, khi đó dùng mặc định 7 ngày kể từ hôm nay.
func (h *CrmDoingHandler) HandleRescheduleDoing(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		var input crmdto.CrmRescheduleInput
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&input); err != nil {
				c.Status(common.StatusBadRequest).JSON(fiber.Map{
					"code": common.ErrCodeValidationFormat.Code, "message": "Dữ liệu gửi lên không đúng định dạng JSON", "status": "error",
				})
				return nil
			}
		}
		customer, err := h.CustomerService.RescheduleDoing(c.Context(), id, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Dời hạn việc thành công", "data": toCustomerResponse(&customer, false), "status": "success",
		})
		return nil
	})
}
