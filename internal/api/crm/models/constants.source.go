// Package models - Constants cho nguồn khách hàng và mapping token.
package models

import "strings"

// Các nguồn khách hàng được hỗ trợ.
const (
	CustomerSourceGoogle    = "google"
	CustomerSourceReferral  = "referral"
	CustomerSourceTradeShow = "trade_show"
	CustomerSourceOther     = "other"
)

// SourceTokenMap mapping token (lowercase) -> source chuẩn.
// File import hay viết "tradeshow" / "trade show" tùy export, chấp nhận cả 3 biến thể.
var SourceTokenMap = map[string]string{
	"google":     CustomerSourceGoogle,
	"referral":   CustomerSourceReferral,
	"trade_show": CustomerSourceTradeShow,
	"tradeshow":  CustomerSourceTradeShow,
	"trade show": CustomerSourceTradeShow,
	"other":      CustomerSourceOther,
}

// NormalizeSource chuẩn hóa token nguồn về enum. Token không nhận dạng được trả về CustomerSourceOther.
func NormalizeSource(token string) string {
	if source, ok := SourceTokenMap[strings.ToLower(strings.TrimSpace(token))]; ok {
		return source
	}
	return CustomerSourceOther
}
