// Package dto - DTO cho domain CRM (settings workspace).
package dto

// CrmSettingsUpdateInput dữ liệu cập nhật settings.
// CompanyName được render ở header mọi trang nên chặn XSS ngay tại input.
// Logo nhận data URI; truyền null để xóa logo hiện tại.
type CrmSettingsUpdateInput struct {
	CompanyName string  `json:"companyName" validate:"required,no_xss"`
	Logo        *string `json:"logo,omitempty"`
}

// CrmSettingsResponse trả về settings hiện tại.
type CrmSettingsResponse struct {
	CompanyName string  `json:"companyName"`
	Logo        *string `json:"logo,omitempty"`
	UpdatedAt   int64   `json:"updatedAt"`
}
