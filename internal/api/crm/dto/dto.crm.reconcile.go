// Package dto - DTO cho domain CRM (đối soát thư từ với dịch vụ trích xuất).
package dto

// Outcome của một lần preview đối soát.
const (
	ReconcileOutcomeReview  = "review"   // Match được khách, có review set chờ xác nhận
	ReconcileOutcomeNoMatch = "no_match" // Dịch vụ không map được khách nào (không phải lỗi)
)

// CrmReconcileSessionResponse trả về khi mở phiên đối soát mới.
type CrmReconcileSessionResponse struct {
	SessionID string `json:"sessionId"`
	CreatedAt int64  `json:"createdAt"`
}

// CrmReconcilePreviewInput văn bản thư cần đối soát.
type CrmReconcilePreviewInput struct {
	Text string `json:"text" validate:"required"`
}

// CrmFieldChange một thay đổi được đề xuất cho 1 field liên hệ.
// Chỉ sinh ra khi giá trị trích xuất không rỗng VÀ khác giá trị đang lưu.
type CrmFieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue,omitempty"`
	NewValue string `json:"newValue"`
}

// CrmReviewSet tập thay đổi chờ người dùng duyệt cho một khách đã match.
// Preview thuần túy, chưa có gì được ghi vào store.
type CrmReviewSet struct {
	CustomerID  string           `json:"customerId"`
	CompanyName string           `json:"companyName"`
	Summary     string           `json:"summary"`
	Changes     []CrmFieldChange `json:"changes"`
}

// CrmReconcilePreviewResponse kết quả một lần preview.
// Outcome no_match vẫn mang summary của dịch vụ trích xuất để hiển thị.
type CrmReconcilePreviewResponse struct {
	Outcome string        `json:"outcome"`
	Review  *CrmReviewSet `json:"review,omitempty"`
	Summary string        `json:"summary,omitempty"`
}
