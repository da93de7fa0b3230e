package utility

import (
	"errors"
	"testing"
	"time"

	"github.com/juliantrillken/webcrm/internal/common"
)

func dayMilli(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func TestParseDate_ISOLayout(t *testing.T) {
	got, err := ParseDate("2024-03-07")
	if err != nil {
		t.Fatalf("ParseDate trả về lỗi với ngày ISO hợp lệ: %v", err)
	}
	want := dayMilli(2024, time.March, 7)
	if got != want {
		t.Errorf("ParseDate(\"2024-03-07\") = %d, muốn %d", got, want)
	}
}

func TestParseDate_DotLayout(t *testing.T) {
	cases := []string{"7.3.2024", "07.03.2024"}
	want := dayMilli(2024, time.March, 7)
	for _, c := range cases {
		got, err := ParseDate(c)
		if err != nil {
			t.Fatalf("ParseDate(%q) trả về lỗi: %v", c, err)
		}
		if got != want {
			t.Errorf("ParseDate(%q) = %d, muốn %d", c, got, want)
		}
	}
}

func TestParseDate_RFC3339NormalizesToMidnight(t *testing.T) {
	got, err := ParseDate("2024-03-07T15:30:45Z")
	if err != nil {
		t.Fatalf("ParseDate trả về lỗi với RFC3339 hợp lệ: %v", err)
	}
	want := dayMilli(2024, time.March, 7)
	if got != want {
		t.Errorf("ParseDate RFC3339 phải chuẩn hóa về nửa đêm UTC: got %d, muốn %d", got, want)
	}
}

func TestParseDate_InvalidInput(t *testing.T) {
	for _, c := range []string{"", "   ", "not-a-date", "2024/03/07", "32.13.2024"} {
		_, err := ParseDate(c)
		if err == nil {
			t.Errorf("ParseDate(%q) phải trả về lỗi", c)
			continue
		}
		if !errors.Is(err, common.ErrInvalidFormat) {
			t.Errorf("ParseDate(%q) lỗi phải wrap ErrInvalidFormat, got: %v", c, err)
		}
	}
}

func TestDayStart_StripsTimeOfDay(t *testing.T) {
	ts := time.Date(2025, time.January, 15, 23, 59, 59, 0, time.UTC).UnixMilli()
	want := dayMilli(2025, time.January, 15)
	if got := DayStart(ts); got != want {
		t.Errorf("DayStart = %d, muốn %d", got, want)
	}

	// Nửa đêm giữ nguyên
	if got := DayStart(want); got != want {
		t.Errorf("DayStart với timestamp nửa đêm phải giữ nguyên: got %d, muốn %d", got, want)
	}
}

func TestAddDays_CrossesMonthBoundary(t *testing.T) {
	start := dayMilli(2024, time.January, 31)
	if got, want := AddDays(start, 1), dayMilli(2024, time.February, 1); got != want {
		t.Errorf("AddDays(+1) qua ranh giới tháng: got %d, muốn %d", got, want)
	}
	if got, want := AddDays(start, 7), dayMilli(2024, time.February, 7); got != want {
		t.Errorf("AddDays(+7): got %d, muốn %d", got, want)
	}
	if got, want := AddDays(start, -31), dayMilli(2023, time.December, 31); got != want {
		t.Errorf("AddDays(-31): got %d, muốn %d", got, want)
	}
}

func TestToday_IsMidnight(t *testing.T) {
	today := Today()
	if today != DayStart(today) {
		t.Errorf("Today() phải là nửa đêm UTC, got %d", today)
	}
}

func TestIsFuture(t *testing.T) {
	now := CurrentTimeInMilli()
	if !IsFuture(now + 60_000) {
		t.Error("Timestamp sau hiện tại phải là future")
	}
	if IsFuture(now - 60_000) {
		t.Error("Timestamp trước hiện tại không phải future")
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(dayMilli(2024, time.March, 7)); got != "2024-03-07" {
		t.Errorf("FormatDate = %q, muốn %q", got, "2024-03-07")
	}
}
