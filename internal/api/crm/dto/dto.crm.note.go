// Package dto - DTO cho domain CRM (note / lịch sử liên hệ).
package dto

// CrmNoteCreateInput dữ liệu thêm ghi chú mới (ngày lấy thời điểm hiện tại).
type CrmNoteCreateInput struct {
	Content string `json:"content" validate:"required"`
}

// CrmNoteDateInput dữ liệu chỉnh ngày một ghi chú đã có.
type CrmNoteDateInput struct {
	Date string `json:"date" validate:"required,calendar_date"`
}

// CrmNoteContentInput dữ liệu thay toàn bộ nội dung một ghi chú.
type CrmNoteContentInput struct {
	Content string `json:"content" validate:"required"`
}

// CrmNoteEntry một dòng trong lịch sử liên hệ.
// Entry "việc sắp tới" là dòng tổng hợp: IsFuture true và không có ID (không sửa/xóa được).
type CrmNoteEntry struct {
	ID       string `json:"id,omitempty"`
	Date     int64  `json:"date"`
	Content  string `json:"content"`
	IsFuture bool   `json:"isFuture,omitempty"`
}
