// Package models - CrmCustomer thuộc domain CRM (crm_customers).
// Hồ sơ khách hàng canonical: thông tin liên hệ, nguồn, nhắc việc và ghi chú nhúng.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmCustomer lưu hồ sơ khách hàng (crm_customers).
// Notes nhúng trực tiếp trong document để mọi thao tác ghi chú / nhắc việc
// là một lần UpdateOne nguyên tử trên đúng 1 document.
type CrmCustomer struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Identity
	CompanyName   string `json:"companyName" bson:"companyName" validate:"required" index:"single"` // Bắt buộc, không rỗng; sort mặc định của danh sách
	ContactPerson string `json:"contactPerson,omitempty" bson:"contactPerson,omitempty"`
	Address       string `json:"address,omitempty" bson:"address,omitempty"`
	Email         string `json:"email,omitempty" bson:"email,omitempty"`
	Phone         string `json:"phone,omitempty" bson:"phone,omitempty"`
	Industry      string `json:"industry,omitempty" bson:"industry,omitempty"`
	Info          string `json:"info,omitempty" bson:"info,omitempty"`

	// Nguồn khách (enum trong constants.source.go), token lạ quy về "other".
	Source string `json:"source" bson:"source" default:"other"`

	// Nhắc việc: NextSteps mô tả việc đang mở, ReminderDate là hạn (Unix ms, 00:00 UTC).
	// ReminderDate nil <=> không có việc đang mở.
	NextSteps    string `json:"nextSteps,omitempty" bson:"nextSteps,omitempty"`
	ReminderDate *int64 `json:"reminderDate,omitempty" bson:"reminderDate,omitempty"`

	// Mốc liên hệ (Unix ms, 00:00 UTC). FirstContact đặt lúc tạo và không tự thay đổi.
	// LastContact chỉ tiến về phía trước: thêm ghi chú / hoàn thành việc đẩy nó lên hôm nay.
	FirstContact int64 `json:"firstContact" bson:"firstContact"`
	LastContact  int64 `json:"lastContact" bson:"lastContact" index:"single,order:-1"`

	// Flags
	SjSeen   bool `json:"sjSeen" bson:"sjSeen"`
	Inactive bool `json:"inactive" bson:"inactive"` // Ẩn khỏi danh sách active, hàng đợi việc và roster oracle

	// Ghi chú nhúng. Thứ tự hiển thị luôn được tính lại theo Date, không dựa vào thứ tự mảng.
	Notes []CrmNote `json:"notes" bson:"notes"`

	// Metadata
	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}
