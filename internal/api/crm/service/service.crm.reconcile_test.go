// Package crmvc - Test dựng review set từ kết quả trích xuất.
package crmvc

import (
	"context"
	"errors"
	"testing"

	aidto "github.com/juliantrillken/webcrm/internal/api/ai/dto"
	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildReviewSet_ProposesOnlyChangedNonEmptyFields(t *testing.T) {
	customer := &crmmodels.CrmCustomer{
		ID:            primitive.NewObjectID(),
		CompanyName:   "Acme GmbH",
		ContactPerson: "Alt Kontakt",
		Email:         "old@acme.de",
		Phone:         "030 1234",
		Address:       "Weg 1",
	}
	extraction := &aidto.AIExtractResponse{
		ContactPerson: "  Neu Kontakt  ", // khác sau khi trim -> đề xuất
		Email:         "",                // rỗng -> không bao giờ đề xuất
		Phone:         "030 1234",        // trùng giá trị đang lưu -> bỏ
		Address:       "Weg 2",
		Summary:       "Đã gọi điện, gửi báo giá",
	}

	review := BuildReviewSet(customer, extraction)
	if review.CustomerID != customer.ID.Hex() {
		t.Errorf("customerId = %q, muốn %q", review.CustomerID, customer.ID.Hex())
	}
	if review.CompanyName != "Acme GmbH" {
		t.Errorf("companyName = %q", review.CompanyName)
	}
	if review.Summary != extraction.Summary {
		t.Errorf("summary = %q", review.Summary)
	}

	if len(review.Changes) != 2 {
		t.Fatalf("phải có đúng 2 thay đổi (contactPerson, address), got %d: %+v", len(review.Changes), review.Changes)
	}
	if review.Changes[0].Field != "contactPerson" || review.Changes[0].NewValue != "Neu Kontakt" || review.Changes[0].OldValue != "Alt Kontakt" {
		t.Errorf("thay đổi contactPerson sai: %+v", review.Changes[0])
	}
	if review.Changes[1].Field != "address" || review.Changes[1].NewValue != "Weg 2" || review.Changes[1].OldValue != "Weg 1" {
		t.Errorf("thay đổi address sai: %+v", review.Changes[1])
	}
}

func TestBuildReviewSet_EmptyExtractionNeverFlags(t *testing.T) {
	customer := &crmmodels.CrmCustomer{
		ID:            primitive.NewObjectID(),
		CompanyName:   "Beta AG",
		ContactPerson: "Erika",
		Email:         "erika@beta.de",
	}
	extraction := &aidto.AIExtractResponse{Summary: "Chỉ có tóm tắt"}

	review := BuildReviewSet(customer, extraction)
	if len(review.Changes) != 0 {
		t.Errorf("trích xuất toàn field rỗng không được đề xuất gì, got %+v", review.Changes)
	}
}

func TestBuildReviewSet_WhitespaceTreatedAsEmpty(t *testing.T) {
	customer := &crmmodels.CrmCustomer{ID: primitive.NewObjectID(), Phone: "123"}
	extraction := &aidto.AIExtractResponse{Phone: "   "}

	review := BuildReviewSet(customer, extraction)
	if len(review.Changes) != 0 {
		t.Errorf("giá trị chỉ có khoảng trắng phải coi như rỗng, got %+v", review.Changes)
	}
}

func TestBuildReviewSet_FillsFieldEmptyInStore(t *testing.T) {
	// Field đang trống trong hồ sơ nhưng trích xuất có giá trị -> đề xuất với oldValue rỗng
	customer := &crmmodels.CrmCustomer{ID: primitive.NewObjectID(), CompanyName: "Gamma KG"}
	extraction := &aidto.AIExtractResponse{Email: "kontakt@gamma.de"}

	review := BuildReviewSet(customer, extraction)
	if len(review.Changes) != 1 {
		t.Fatalf("phải đề xuất đúng 1 thay đổi, got %d", len(review.Changes))
	}
	if review.Changes[0].Field != "email" || review.Changes[0].OldValue != "" || review.Changes[0].NewValue != "kontakt@gamma.de" {
		t.Errorf("thay đổi email sai: %+v", review.Changes[0])
	}
}

// Các test phiên dưới đây không chạm MongoDB: store phiên nằm trong memory
// và các guard (busy, chưa có review, không tồn tại) chặn trước khi truy vấn.

func TestSession_OpenAndClose(t *testing.T) {
	svc := &CrmReconcileService{}

	opened, err := svc.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession báo lỗi: %v", err)
	}
	if opened.SessionID == "" || opened.CreatedAt <= 0 {
		t.Errorf("phiên mở ra phải có id và createdAt: %+v", opened)
	}

	if _, err := svc.getSession(opened.SessionID); err != nil {
		t.Errorf("phiên vừa mở phải tra cứu được: %v", err)
	}

	if err := svc.CloseSession(context.Background(), opened.SessionID); err != nil {
		t.Fatalf("CloseSession báo lỗi: %v", err)
	}
	if _, err := svc.getSession(opened.SessionID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("phiên đã đóng phải trả về ErrNotFound, got %v", err)
	}
}

func TestSession_CloseUnknownOrTwice(t *testing.T) {
	svc := &CrmReconcileService{}

	if err := svc.CloseSession(context.Background(), "khong-ton-tai"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("đóng phiên không tồn tại phải trả về ErrNotFound, got %v", err)
	}

	opened, err := svc.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession báo lỗi: %v", err)
	}
	if err := svc.CloseSession(context.Background(), opened.SessionID); err != nil {
		t.Fatalf("đóng lần đầu phải thành công: %v", err)
	}
	if err := svc.CloseSession(context.Background(), opened.SessionID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("đóng lần hai phải trả về ErrNotFound, got %v", err)
	}
}

func TestSession_SingleFlight(t *testing.T) {
	session := &ReconcileSession{ID: "s1"}

	if !session.tryAcquire() {
		t.Fatal("phiên rảnh phải acquire được")
	}
	if session.tryAcquire() {
		t.Error("phiên đang bận không được acquire lần hai")
	}

	session.release()
	if !session.tryAcquire() {
		t.Error("sau release phải acquire lại được")
	}
}

func TestApply_WithoutReviewIsRejected(t *testing.T) {
	svc := &CrmReconcileService{}

	opened, err := svc.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession báo lỗi: %v", err)
	}
	defer svc.CloseSession(context.Background(), opened.SessionID)

	if _, err := svc.Apply(context.Background(), opened.SessionID); !errors.Is(err, common.ErrReconcileNoReview) {
		t.Errorf("apply khi chưa preview phải trả về ErrReconcileNoReview, got %v", err)
	}
	if _, err := svc.ApplyNoteOnly(context.Background(), opened.SessionID); !errors.Is(err, common.ErrReconcileNoReview) {
		t.Errorf("note-only khi chưa preview phải trả về ErrReconcileNoReview, got %v", err)
	}
}

func TestApply_UnknownSession(t *testing.T) {
	svc := &CrmReconcileService{}

	if _, err := svc.Apply(context.Background(), "khong-ton-tai"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("apply trên phiên không tồn tại phải trả về ErrNotFound, got %v", err)
	}
}

func TestBuildApplyUpdate_WithFields(t *testing.T) {
	review := &crmdto.CrmReviewSet{
		CustomerID:  primitive.NewObjectID().Hex(),
		CompanyName: "Acme GmbH",
		Summary:     "Kunde bittet um Rückruf",
		Changes: []crmdto.CrmFieldChange{
			{Field: "contactPerson", OldValue: "Alt", NewValue: "Neu Kontakt"},
			{Field: "phone", OldValue: "", NewValue: "030 1234"},
		},
	}

	update := buildApplyUpdate(review, true)

	if len(update.Set) != 2 || update.Set["contactPerson"] != "Neu Kontakt" || update.Set["phone"] != "030 1234" {
		t.Errorf("apply phải ghi đúng các field đã duyệt: %+v", update.Set)
	}

	note, ok := update.Push["notes"].(crmmodels.CrmNote)
	if !ok {
		t.Fatalf("update phải push đúng một note, got %#v", update.Push["notes"])
	}
	if note.Content != "Kunde bittet um Rückruf" {
		t.Errorf("note phải mang summary, got %q", note.Content)
	}
	if note.ID.IsZero() || note.Date <= 0 {
		t.Error("note đối soát phải có id và timestamp")
	}

	if update.Max["lastContact"] != utility.Today() {
		t.Errorf("lastContact phải được đẩy lên hôm nay qua $max, got %v", update.Max["lastContact"])
	}
}

func TestBuildApplyUpdate_NoteOnlySkipsFields(t *testing.T) {
	review := &crmdto.CrmReviewSet{
		CustomerID: primitive.NewObjectID().Hex(),
		Summary:    "Nur Notiz",
		Changes: []crmdto.CrmFieldChange{
			{Field: "email", OldValue: "alt@acme.de", NewValue: "neu@acme.de"},
		},
	}

	update := buildApplyUpdate(review, false)

	if len(update.Set) != 0 {
		t.Errorf("note-only không được ghi field hồ sơ nào, got %+v", update.Set)
	}
	note := update.Push["notes"].(crmmodels.CrmNote)
	if note.Content != "Nur Notiz" {
		t.Errorf("note = %q", note.Content)
	}
	if update.Max["lastContact"] != utility.Today() {
		t.Error("note-only vẫn phải đẩy lastContact lên hôm nay")
	}
}

func TestBuildApplyUpdate_TwoCallsTwoNotes(t *testing.T) {
	review := &crmdto.CrmReviewSet{Summary: "Doppelt"}

	first := buildApplyUpdate(review, true).Push["notes"].(crmmodels.CrmNote)
	second := buildApplyUpdate(review, true).Push["notes"].(crmmodels.CrmNote)
	if first.ID == second.ID {
		t.Error("mỗi lần áp dụng phải sinh note id mới, hai lần là hai note")
	}
}
