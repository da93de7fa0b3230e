package utility

import (
	"fmt"
	"strings"
	"time"

	"github.com/juliantrillken/webcrm/internal/common"
)

// dateLayouts là danh sách các định dạng ngày được chấp nhận khi parse.
// Thứ tự ưu tiên: ISO, định dạng Đức (chấm), RFC3339.
var dateLayouts = []string{
	"2006-01-02",
	"2.1.2006",
	time.RFC3339,
}

// ParseDate parse chuỗi ngày theo danh sách layout được hỗ trợ và
// chuẩn hóa về nửa đêm UTC (mili giây).
// Các ngày lịch trong hệ thống luôn được lưu dưới dạng nửa đêm UTC
// để so sánh và sắp xếp nhất quán.
//
// Returns:
//   - int64: timestamp nửa đêm UTC (mili giây)
//   - error: common.ErrInvalidFormat (wrapped) nếu không parse được
func ParseDate(value string) (int64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("empty date string: %w", common.ErrInvalidFormat)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayStart(UnixMilli(t)), nil
		}
	}
	return 0, fmt.Errorf("unrecognized date format: %s: %w", s, common.ErrInvalidFormat)
}

// DayStart chuẩn hóa một timestamp (mili giây) về nửa đêm UTC của ngày đó
func DayStart(ts int64) int64 {
	t := time.UnixMilli(ts).UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.UnixMilli()
}

// Today trả về nửa đêm UTC của ngày hiện tại (mili giây)
func Today() int64 {
	return DayStart(CurrentTimeInMilli())
}

// AddDays cộng thêm n ngày vào một timestamp nửa đêm UTC
// @params - timestamp gốc (mili giây), số ngày cần cộng (có thể âm)
// @returns - timestamp mới (mili giây)
func AddDays(ts int64, n int) int64 {
	t := time.UnixMilli(ts).UTC()
	return t.AddDate(0, 0, n).UnixMilli()
}

// IsFuture kiểm tra một timestamp có nằm sau thời điểm hiện tại hay không
func IsFuture(ts int64) bool {
	return ts > CurrentTimeInMilli()
}

// FormatDate định dạng một timestamp (mili giây) thành chuỗi ngày ISO "2006-01-02" theo UTC.
// Dùng cho hiển thị trong email và xuất dữ liệu.
func FormatDate(ts int64) string {
	return time.UnixMilli(ts).UTC().Format("2006-01-02")
}
