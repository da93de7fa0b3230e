// Package crmhdl - Handler hồ sơ khách hàng CRM.
package crmhdl

import (
	"fmt"
	"sort"
	"strconv"

	basehdl "github.com/juliantrillken/webcrm/internal/api/base/handler"
	basemodels "github.com/juliantrillken/webcrm/internal/api/base/models"
	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	crmvc "github.com/juliantrillken/webcrm/internal/api/crm/service"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/global"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmCustomerHandler xử lý CRUD hồ sơ khách hàng.
type CrmCustomerHandler struct {
	CustomerService *crmvc.CrmCustomerService
}

// NewCrmCustomerHandler tạo CrmCustomerHandler mới.
func NewCrmCustomerHandler() (*CrmCustomerHandler, error) {
	svc, err := crmvc.NewCrmCustomerService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmCustomerService: %w", err)
	}
	return &CrmCustomerHandler{CustomerService: svc}, nil
}

// HandleCreateCustomer xử lý POST /customers.
func (h *CrmCustomerHandler) HandleCreateCustomer(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input crmdto.CrmCustomerCreateInput
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
		customer, err := h.CustomerService.CreateCustomer(c.Context(), &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusCreated).JSON(fiber.Map{
			"code": common.StatusCreated, "message": "Tạo khách hàng thành công", "data": toCustomerResponse(&customer, true), "status": "success",
		})
		return nil
	})
}

// HandleListCustomers xử lý GET /customers. Query: includeInactive, page, limit.
func (h *CrmCustomerHandler) HandleListCustomers(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		includeInactive := c.Query("includeInactive") == "true"

		page := int64(1)
		limit := int64(50)
		if s := c.Query("page"); s != "" {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
				page = n
			}
		}
		if s := c.Query("limit"); s != "" {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}

		result, err := h.CustomerService.ListCustomers(c.Context(), includeInactive, page, limit)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		items := make([]crmdto.CrmCustomerResponse, 0, len(result.Items))
		for i := range result.Items {
			items = append(items, *toCustomerResponse(&result.Items[i], false))
		}
		data := basemodels.PaginateResult[crmdto.CrmCustomerResponse]{
			Items:     items,
			Page:      result.Page,
			Limit:     result.Limit,
			ItemCount: result.ItemCount,
			Total:     result.Total,
			TotalPage: result.TotalPage,
		}
		basehdl.HandleResponse(c, data, nil)
		return nil
	})
}

// HandleGetCustomer xử lý GET /customers/:customerId (kèm notes).
func (h *CrmCustomerHandler) HandleGetCustomer(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		customer, err := h.CustomerService.FindOneById(c.Context(), id)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, toCustomerResponse(&customer, true), nil)
		return nil
	})
}

// HandleUpdateCustomer xử lý PUT /customers/:customerId.
func (h *CrmCustomerHandler) HandleUpdateCustomer(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		var input crmdto.CrmCustomerUpdateInput
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
		customer, err := h.CustomerService.UpdateCustomer(c.Context(), id, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Cập nhật khách hàng thành công", "data": toCustomerResponse(&customer, true), "status": "success",
		})
		return nil
	})
}

// HandleDeleteCustomer xử lý DELETE /customers/:customerId (xóa cứng, không tombstone).
func (h *CrmCustomerHandler) HandleDeleteCustomer(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, ok := customerIDParam(c)
		if !ok {
			return nil
		}
		if err := h.CustomerService.DeleteById(c.Context(), id); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Xóa khách hàng thành công", "data": nil, "status": "success",
		})
		return nil
	})
}

// customerIDParam đọc và kiểm tra :customerId từ path, tự trả lỗi khi thiếu/sai.
func customerIDParam(c fiber.Ctx) (primitive.ObjectID, bool) {
	idStr := c.Params("customerId")
	if idStr == "" {
		c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code": common.ErrCodeValidationInput.Code, "message": "Thiếu customerId", "status": "error",
		})
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code": common.ErrCodeValidationFormat.Code, "message": "customerId không hợp lệ", "status": "error",
		})
		return primitive.NilObjectID, false
	}
	return id, true
}

func toCustomerResponse(m *crmmodels.CrmCustomer, withNotes bool) *crmdto.CrmCustomerResponse {
	if m == nil {
		return nil
	}
	resp := &crmdto.CrmCustomerResponse{
		ID:            m.ID,
		CompanyName:   m.CompanyName,
		ContactPerson: m.ContactPerson,
		Address:       m.Address,
		Email:         m.Email,
		Phone:         m.Phone,
		Industry:      m.Industry,
		Info:          m.Info,
		Source:        m.Source,
		NextSteps:     m.NextSteps,
		ReminderDate:  m.ReminderDate,
		FirstContact:  m.FirstContact,
		LastContact:   m.LastContact,
		SjSeen:        m.SjSeen,
		Inactive:      m.Inactive,
		NoteCount:     len(m.Notes),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if withNotes {
		resp.Notes = toNoteEntries(m.Notes)
	}
	return resp
}

// toNoteEntries map notes đã lưu sang entry hiển thị, luôn sắp lại theo ngày giảm dần
// (thứ tự mảng trong document không đáng tin sau các lần chỉnh ngày).
func toNoteEntries(notes []crmmodels.CrmNote) []crmdto.CrmNoteEntry {
	entries := make([]crmdto.CrmNoteEntry, 0, len(notes))
	for _, n := range notes {
		entries = append(entries, crmdto.CrmNoteEntry{
			ID:      n.ID.Hex(),
			Date:    n.Date,
			Content: n.Content,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries
}
