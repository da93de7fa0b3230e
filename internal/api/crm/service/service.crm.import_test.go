// Package crmvc - Test normalizer import: mapping cột, dòng bị bỏ, giá trị mặc định.
package crmvc

import (
	"testing"
	"time"

	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/utility"
)

func TestNormalizeDelimited_MapsColumnsByPosition(t *testing.T) {
	rows := [][]string{
		{"companyName", "contactPerson", "address", "email", "phone", "source", "industry", "nextSteps", "firstContact", "lastContact", "sjSeen", "info"},
		{"Acme GmbH", "Max Muster", "Weg 1", "max@acme.de", "+49 30 1234", "Trade Show", "Handel", "Angebot senden", "2024-01-05", "5.3.2024", "JA", "Notiz"},
	}

	accepted, count := NormalizeDelimited(rows)
	if count != 1 || len(accepted) != 1 {
		t.Fatalf("NormalizeDelimited phải nhận đúng 1 dòng, got count=%d len=%d", count, len(accepted))
	}

	doc := accepted[0]
	if doc.CompanyName != "Acme GmbH" {
		t.Errorf("companyName = %q", doc.CompanyName)
	}
	if doc.ContactPerson != "Max Muster" || doc.Email != "max@acme.de" || doc.Phone != "+49 30 1234" {
		t.Errorf("thông tin liên hệ map sai: %+v", doc)
	}
	if doc.Source != crmmodels.CustomerSourceTradeShow {
		t.Errorf("source = %q, muốn %q", doc.Source, crmmodels.CustomerSourceTradeShow)
	}
	if !doc.SjSeen {
		t.Error("sjSeen \"JA\" phải thành true")
	}
	wantFirst := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantLast := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	if doc.FirstContact != wantFirst {
		t.Errorf("firstContact = %d, muốn %d", doc.FirstContact, wantFirst)
	}
	if doc.LastContact != wantLast {
		t.Errorf("lastContact = %d, muốn %d", doc.LastContact, wantLast)
	}
	if doc.ReminderDate != nil {
		t.Error("dòng import không được có reminderDate")
	}
	if doc.Inactive {
		t.Error("dòng import phải active")
	}
	if len(doc.Notes) != 0 {
		t.Errorf("dòng import phải bắt đầu không có note, got %d", len(doc.Notes))
	}
}

func TestNormalizeDelimited_SkipsHeaderBlankAndNoCompany(t *testing.T) {
	rows := [][]string{
		{"companyName", "contactPerson"},
		{"", "Dòng thiếu tên công ty"},
		{"   ", "  "},
		{"Beta AG", "Erika"},
	}

	accepted, count := NormalizeDelimited(rows)
	if count != 1 {
		t.Fatalf("chỉ dòng Beta AG được nhận, got %d", count)
	}
	if accepted[0].CompanyName != "Beta AG" {
		t.Errorf("dòng được nhận sai: %+v", accepted[0])
	}
}

func TestNormalizeDelimited_DefaultsWhenColumnsMissing(t *testing.T) {
	rows := [][]string{
		{"companyName"},
		{"Gamma KG"},
	}

	accepted, count := NormalizeDelimited(rows)
	if count != 1 {
		t.Fatalf("dòng chỉ có tên công ty vẫn phải được nhận, got %d", count)
	}

	doc := accepted[0]
	today := utility.Today()
	if doc.FirstContact != today || doc.LastContact != today {
		t.Errorf("ngày thiếu phải mặc định hôm nay: first=%d last=%d today=%d", doc.FirstContact, doc.LastContact, today)
	}
	if doc.Source != crmmodels.CustomerSourceOther {
		t.Errorf("source thiếu phải mặc định %q, got %q", crmmodels.CustomerSourceOther, doc.Source)
	}
	if doc.SjSeen {
		t.Error("sjSeen thiếu phải mặc định false")
	}
}

func TestNormalizeDelimited_OnlyHeaderReturnsEmpty(t *testing.T) {
	accepted, count := NormalizeDelimited([][]string{{"companyName", "contactPerson"}})
	if count != 0 || len(accepted) != 0 {
		t.Errorf("file chỉ có header phải trả về 0 dòng, got %d", count)
	}
}

func TestNormalizeSheet_HeaderVariants(t *testing.T) {
	rows := []crmdto.ImportRow{
		{"CompanyName": "Delta SE", "EMAIL": "info@delta.de", "sjseen": "yes", "Source": "referral"},
	}

	accepted, count := NormalizeSheet(rows)
	if count != 1 {
		t.Fatalf("header viết hoa/thường vẫn phải map được, got %d dòng", count)
	}

	doc := accepted[0]
	if doc.CompanyName != "Delta SE" {
		t.Errorf("companyName qua header \"CompanyName\" map sai: %q", doc.CompanyName)
	}
	if doc.Email != "info@delta.de" {
		t.Errorf("email qua header \"EMAIL\" map sai: %q", doc.Email)
	}
	if !doc.SjSeen {
		t.Error("sjSeen \"yes\" phải thành true")
	}
	if doc.Source != crmmodels.CustomerSourceReferral {
		t.Errorf("source = %q, muốn referral", doc.Source)
	}
}

func TestNormalizeSheet_TimeCellBecomesDayStart(t *testing.T) {
	cell := time.Date(2024, time.May, 10, 14, 30, 0, 0, time.UTC)
	rows := []crmdto.ImportRow{
		{"companyName": "Epsilon", "firstContact": cell, "lastContact": cell},
	}

	accepted, count := NormalizeSheet(rows)
	if count != 1 {
		t.Fatalf("dòng hợp lệ phải được nhận, got %d", count)
	}

	want := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC).UnixMilli()
	if accepted[0].FirstContact != want {
		t.Errorf("cell kiểu time.Time phải về nửa đêm UTC: got %d, muốn %d", accepted[0].FirstContact, want)
	}
	if accepted[0].LastContact != want {
		t.Errorf("lastContact từ cell time.Time sai: got %d, muốn %d", accepted[0].LastContact, want)
	}
}

func TestNormalizeSheet_SkipsRowWithoutCompany(t *testing.T) {
	rows := []crmdto.ImportRow{
		{"contactPerson": "Không có công ty"},
		{"companyName": "   "},
	}
	if _, count := NormalizeSheet(rows); count != 0 {
		t.Errorf("dòng thiếu companyName phải bị bỏ qua, got %d", count)
	}
}
