// Package dto - DTO cho domain CRM (hàng đợi việc cần làm).
package dto

// CrmReminderInput đặt nhắc việc: truyền offsetDays (tính từ hôm nay)
// hoặc date cụ thể. Date có ưu tiên cao hơn khi truyền cả hai.
// Mô tả việc (nextSteps) sửa qua form khách hàng, không qua đây.
type CrmReminderInput struct {
	OffsetDays *int   `json:"offsetDays,omitempty"`
	Date       string `json:"date,omitempty" validate:"omitempty,calendar_date"`
}

// CrmRescheduleInput dời hạn một việc đang mở. OffsetDays mặc định 7.
type CrmRescheduleInput struct {
	OffsetDays *int `json:"offsetDays,omitempty"`
}

// CrmDoingItem một dòng trong hàng đợi việc cần làm, sắp xếp theo hạn tăng dần.
// Overdue luôn được tính lại theo thời điểm request, không lưu trong store.
type CrmDoingItem struct {
	CustomerID    string `json:"customerId"`
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson,omitempty"`
	NextSteps     string `json:"nextSteps,omitempty"`
	ReminderDate  int64  `json:"reminderDate"`
	Overdue       bool   `json:"overdue"`
}
