// Package dto - DTO cho domain CRM (customer).
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmCustomerCreateInput dữ liệu tạo khách hàng mới.
// Các field ngày nhận chuỗi (ISO yyyy-mm-dd hoặc d.m.yyyy), để trống thì lấy hôm nay.
type CrmCustomerCreateInput struct {
	CompanyName   string `json:"companyName" validate:"required"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Address       string `json:"address,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Industry      string `json:"industry,omitempty"`
	Info          string `json:"info,omitempty"`
	NextSteps     string `json:"nextSteps,omitempty"`
	Source        string `json:"source,omitempty"`
	FirstContact  string `json:"firstContact,omitempty" validate:"omitempty,calendar_date"`
	SjSeen        bool   `json:"sjSeen,omitempty"`
}

// CrmCustomerUpdateInput dữ liệu sửa khách hàng (full form, ghi đè các field sửa được).
// Không đụng vào notes và reminderDate (các thao tác riêng bên scheduler/history).
type CrmCustomerUpdateInput struct {
	CompanyName   string `json:"companyName" validate:"required"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Address       string `json:"address,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Industry      string `json:"industry,omitempty"`
	Info          string `json:"info,omitempty"`
	NextSteps     string `json:"nextSteps,omitempty"`
	Source        string `json:"source,omitempty"`
	FirstContact  string `json:"firstContact,omitempty" validate:"omitempty,calendar_date"`
	SjSeen        bool   `json:"sjSeen,omitempty"`
	Inactive      bool   `json:"inactive,omitempty"`
}

// CrmCustomerResponse trả về hồ sơ khách hàng.
// Notes chỉ có trong response chi tiết (GET theo id), danh sách bỏ qua cho nhẹ.
type CrmCustomerResponse struct {
	ID            primitive.ObjectID `json:"id"`
	CompanyName   string             `json:"companyName"`
	ContactPerson string             `json:"contactPerson,omitempty"`
	Address       string             `json:"address,omitempty"`
	Email         string             `json:"email,omitempty"`
	Phone         string             `json:"phone,omitempty"`
	Industry      string             `json:"industry,omitempty"`
	Info          string             `json:"info,omitempty"`
	Source        string             `json:"source"`
	NextSteps     string             `json:"nextSteps,omitempty"`
	ReminderDate  *int64             `json:"reminderDate,omitempty"`
	FirstContact  int64              `json:"firstContact"`
	LastContact   int64              `json:"lastContact"`
	SjSeen        bool               `json:"sjSeen"`
	Inactive      bool               `json:"inactive"`
	NoteCount     int                `json:"noteCount"`
	Notes         []CrmNoteEntry     `json:"notes,omitempty"`
	CreatedAt     int64              `json:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt"`
}
