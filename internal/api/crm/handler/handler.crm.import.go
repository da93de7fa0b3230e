package crmhdl

import (
	"fmt"

	basehdl "github.com/juliantrillken/webcrm/internal/api/base/handler"
	crmvc "github.com/juliantrillken/webcrm/internal/api/crm/service"
	"github.com/juliantrillken/webcrm/internal/common"

	"github.com/gofiber/fiber/v3"
)

// CrmImportHandler xử lý nhập khách hàng từ file.
type CrmImportHandler struct {
	CustomerService *crmvc.CrmCustomerService
}

// NewCrmImportHandler tạo CrmImportHandler mới.
func NewCrmImportHandler() (*CrmImportHandler, error) {
	svc, err := crmvc.NewCrmCustomerService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmCustomerService: %w", err)
	}
	return &CrmImportHandler{CustomerService: svc}, nil
}

// HandleImport xử lý POST /customers/import. Nhận file CSV hoặc xlsx
// trong multipart field "file", trả về số dòng được chấp nhận.
func (h *CrmImportHandler) HandleImport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Thiếu file upload (field \"file\")", "status": "error",
			})
			return nil
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationFormat.Code, "message": "Không đọc được file upload: " + err.Error(), "status": "error",
			})
			return nil
		}
		defer file.Close()

		result, err := h.CustomerService.ImportFromFile(c.Context(), fileHeader.Filename, file)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": fmt.Sprintf("Nhập thành công %d khách hàng", result.Accepted), "data": result, "status": "success",
		})
		return nil
	})
}
