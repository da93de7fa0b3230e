package crmhdl

import (
	"fmt"

	basehdl "github.com/juliantrillken/webcrm/internal/api/base/handler"
	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	crmvc "github.com/juliantrillken/webcrm/internal/api/crm/service"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/global"

	"github.com/gofiber/fiber/v3"
)

// CrmSettingsHandler xử lý bản ghi cấu hình hiển thị duy nhất.
type CrmSettingsHandler struct {
	SettingsService *crmvc.CrmSettingsService
}

// NewCrmSettingsHandler tạo CrmSettingsHandler mới.
func NewCrmSettingsHandler() (*CrmSettingsHandler, error) {
	svc, err := crmvc.NewCrmSettingsService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmSettingsService: %w", err)
	}
	return &CrmSettingsHandler{SettingsService: svc}, nil
}

// HandleGetSettings xử lý GET /settings.
func (h *CrmSettingsHandler) HandleGetSettings(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		settings, err := h.SettingsService.GetSettings(c.Context())
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, toSettingsResponse(&settings), nil)
		return nil
	})
}

// HandleUpdateSettings xử lý PUT /settings (upsert, logo null sẽ xóa logo).
func (h *CrmSettingsHandler) HandleUpdateSettings(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input crmdto.CrmSettingsUpdateInput
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
		settings, err := h.SettingsService.UpdateSettings(c.Context(), &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Cập nhật cấu hình thành công", "data": toSettingsResponse(&settings), "status": "success",
		})
		return nil
	})
}

// HandleResetSettings xử lý DELETE /settings.
// Xóa bản ghi hiện tại rồi gieo lại giá trị mặc định.
func (h *CrmSettingsHandler) HandleResetSettings(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := h.SettingsService.ResetSettings(c.Context()); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		settings, err := h.SettingsService.EnsureDefault(c.Context())
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Đã khôi phục cấu hình mặc định", "data": toSettingsResponse(&settings), "status": "success",
		})
		return nil
	})
}

func toSettingsResponse(m *crmmodels.CrmSettings) *crmdto.CrmSettingsResponse {
	if m == nil {
		return nil
	}
	return &crmdto.CrmSettingsResponse{
		CompanyName: m.CompanyName,
		Logo:        m.Logo,
		UpdatedAt:   m.UpdatedAt,
	}
}
