// Package models - CrmNote thuộc domain CRM.
// Ghi chú nhúng trong CrmCustomer, không có collection riêng.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmNote là một ghi chú trong lịch sử liên hệ của khách.
// ID duy nhất trong phạm vi customer chứa nó (mỗi lần thêm sinh ObjectID mới).
// Entry "việc sắp tới" trong lịch sử hiển thị không phải CrmNote, nó được
// tổng hợp lúc đọc và không bao giờ lưu.
type CrmNote struct {
	ID      primitive.ObjectID `json:"id" bson:"id"`
	Date    int64              `json:"date" bson:"date"` // Unix ms, có thể sửa qua thao tác chỉnh ngày
	Content string             `json:"content" bson:"content"`
}
