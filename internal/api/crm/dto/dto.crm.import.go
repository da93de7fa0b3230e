// Package dto - DTO cho domain CRM (import file khách hàng).
package dto

// ImportRow một dòng dữ liệu từ file bảng tính, key là header cột.
// Giá trị giữ nguyên kiểu gốc của cell (string, time.Time, số...).
type ImportRow map[string]interface{}

// CrmImportResult kết quả một lần import.
// Chỉ đếm số dòng được nhận; dòng thiếu companyName bị bỏ qua trong im lặng.
type CrmImportResult struct {
	Accepted int `json:"accepted"`
}
