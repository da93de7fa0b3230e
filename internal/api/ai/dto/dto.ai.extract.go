// Package aidto - DTO cho dịch vụ trích xuất thư từ.
package aidto

// AIExtractCustomerRef là một dòng roster gửi kèm cho dịch vụ trích xuất
// để nó đối chiếu thư với khách hàng hiện có.
type AIExtractCustomerRef struct {
	ID            string `json:"id"`
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Email         string `json:"email,omitempty"`
}

// AIExtractRequest payload gửi đến dịch vụ trích xuất.
type AIExtractRequest struct {
	Text      string                 `json:"text"`
	Customers []AIExtractCustomerRef `json:"customers"`
}

// AIExtractResponse kết quả trích xuất trả về.
// CustomerID nil nghĩa là dịch vụ không match được khách nào (không phải lỗi).
// Toàn bộ field còn lại là dữ liệu chưa tin cậy, engine đối soát sẽ diff từng field.
type AIExtractResponse struct {
	CustomerID    *string `json:"customerId"`
	ContactPerson string  `json:"contactPerson,omitempty"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Address       string  `json:"address,omitempty"`
	Summary       string  `json:"summary"`
}
