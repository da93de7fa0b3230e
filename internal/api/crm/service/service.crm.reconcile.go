// Package crmvc - Engine đối soát thư từ với dịch vụ trích xuất.
// Phiên đối soát giữ in-memory, diff field-level là hàm thuần,
// áp dụng kết quả là một UpdateOne nguyên tử trên document khách.
package crmvc

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	aidto "github.com/juliantrillken/webcrm/internal/api/ai/dto"
	aisvc "github.com/juliantrillken/webcrm/internal/api/ai/service"
	basesvc "github.com/juliantrillken/webcrm/internal/api/base/service"
	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/logger"
	"github.com/juliantrillken/webcrm/internal/registry"
	"github.com/juliantrillken/webcrm/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reconcileSessions giữ các phiên đối soát đang mở. Phiên sống trong memory,
// restart server là mất (người dùng mở phiên mới, không có gì cần khôi phục).
var reconcileSessions = registry.NewRegistry[*ReconcileSession]()

// ReconcileSession trạng thái một phiên đối soát.
// Mỗi phiên chỉ cho 1 yêu cầu trích xuất chạy tại một thời điểm (single-flight).
type ReconcileSession struct {
	ID        string
	CreatedAt int64

	mu     sync.Mutex
	busy   bool
	review *crmdto.CrmReviewSet
}

// tryAcquire giành quyền chạy trích xuất. Trả về false nếu phiên đang bận.
func (s *ReconcileSession) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// release trả quyền chạy trích xuất.
func (s *ReconcileSession) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *ReconcileSession) setReview(review *crmdto.CrmReviewSet) {
	s.mu.Lock()
	s.review = review
	s.mu.Unlock()
}

func (s *ReconcileSession) peekReview() *crmdto.CrmReviewSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.review
}

// CrmReconcileService điều phối phiên đối soát: gọi dịch vụ trích xuất,
// dựng review set và áp dụng thay đổi sau khi người dùng duyệt.
type CrmReconcileService struct {
	customerService *CrmCustomerService
	extractService  *aisvc.AIExtractService
}

// NewCrmReconcileService tạo CrmReconcileService mới.
func NewCrmReconcileService() (*CrmReconcileService, error) {
	customerService, err := NewCrmCustomerService()
	if err != nil {
		return nil, err
	}
	extractService, err := aisvc.NewAIExtractService()
	if err != nil {
		return nil, err
	}
	return &CrmReconcileService{
		customerService: customerService,
		extractService:  extractService,
	}, nil
}

// OpenSession mở phiên đối soát mới.
func (s *CrmReconcileService) OpenSession(ctx context.Context) (*crmdto.CrmReconcileSessionResponse, error) {
	session := &ReconcileSession{
		ID:        uuid.New().String(),
		CreatedAt: utility.CurrentTimeInMilli(),
	}
	if _, err := reconcileSessions.Register(session.ID, session); err != nil {
		return nil, err
	}

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"sessionId": session.ID,
	}).Info("🤝 [RECONCILE] Mở phiên đối soát mới")

	return &crmdto.CrmReconcileSessionResponse{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
	}, nil
}

// CloseSession hủy phiên đối soát (bỏ dở không cần giao thức hủy với dịch vụ trích xuất).
func (s *CrmReconcileService) CloseSession(ctx context.Context, sessionID string) error {
	deleted, err := reconcileSessions.Clear(sessionID, nil)
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrNotFound
	}
	return nil
}

func (s *CrmReconcileService) getSession(sessionID string) (*ReconcileSession, error) {
	session, exists := reconcileSessions.Get(sessionID)
	if !exists {
		return nil, common.ErrNotFound
	}
	return session, nil
}

// Preview gửi văn bản thư cho dịch vụ trích xuất và dựng review set (chưa ghi gì vào store).
// Phiên đang có yêu cầu chạy dở trả về ErrReconcileBusy ngay, không xếp hàng.
// Lỗi trích xuất trả phiên về đúng trạng thái trước request.
func (s *CrmReconcileService) Preview(ctx context.Context, sessionID string, input *crmdto.CrmReconcilePreviewInput) (*crmdto.CrmReconcilePreviewResponse, error) {
	log := logger.GetAppLogger()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if !session.tryAcquire() {
		return nil, common.ErrReconcileBusy
	}
	defer session.release()

	roster, err := s.customerService.Roster(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.extractService.Extract(ctx, input.Text, roster)
	if err != nil {
		return nil, err
	}

	// Không match được khách là kết quả hợp lệ, không phải lỗi.
	// Review cũ (nếu có) bị thay bằng kết quả mới.
	if result.CustomerID == nil {
		session.setReview(nil)
		log.WithFields(map[string]interface{}{
			"sessionId": sessionID,
		}).Info("🤝 [RECONCILE] Dịch vụ trích xuất không map được khách nào")
		return &crmdto.CrmReconcilePreviewResponse{
			Outcome: crmdto.ReconcileOutcomeNoMatch,
			Summary: result.Summary,
		}, nil
	}

	// Id trả về phải nằm trong roster đã gửi đi, lệch là vi phạm hợp đồng
	inRoster := false
	for _, ref := range roster {
		if ref.ID == *result.CustomerID {
			inRoster = true
			break
		}
	}
	if !inRoster {
		log.WithFields(map[string]interface{}{
			"sessionId":  sessionID,
			"customerId": *result.CustomerID,
		}).Error("🤝 [RECONCILE] Dịch vụ trích xuất trả về id ngoài roster")
		return nil, common.ErrExtractIntegrity
	}

	customer, err := s.customerService.FindOneById(ctx, utility.String2ObjectID(*result.CustomerID))
	if err != nil {
		return nil, err
	}

	review := BuildReviewSet(&customer, result)
	session.setReview(review)

	log.WithFields(map[string]interface{}{
		"sessionId":   sessionID,
		"customerId":  review.CustomerID,
		"changeCount": len(review.Changes),
	}).Info("🤝 [RECONCILE] Review set sẵn sàng chờ duyệt")

	return &crmdto.CrmReconcilePreviewResponse{
		Outcome: crmdto.ReconcileOutcomeReview,
		Review:  review,
	}, nil
}

// BuildReviewSet dựng review set từ hồ sơ đang lưu và kết quả trích xuất (hàm thuần).
// Một field chỉ được đề xuất khi giá trị trích xuất khác rỗng VÀ khác giá trị đang lưu.
// Giá trị trích xuất rỗng không bao giờ đề nghị ghi đè.
func BuildReviewSet(customer *crmmodels.CrmCustomer, extraction *aidto.AIExtractResponse) *crmdto.CrmReviewSet {
	changes := []crmdto.CrmFieldChange{}
	appendChange := func(field, oldValue, newValue string) {
		newValue = strings.TrimSpace(newValue)
		if newValue == "" || newValue == oldValue {
			return
		}
		changes = append(changes, crmdto.CrmFieldChange{
			Field:    field,
			OldValue: oldValue,
			NewValue: newValue,
		})
	}

	appendChange("contactPerson", customer.ContactPerson, extraction.ContactPerson)
	appendChange("email", customer.Email, extraction.Email)
	appendChange("phone", customer.Phone, extraction.Phone)
	appendChange("address", customer.Address, extraction.Address)

	return &crmdto.CrmReviewSet{
		CustomerID:  customer.ID.Hex(),
		CompanyName: customer.CompanyName,
		Summary:     extraction.Summary,
		Changes:     changes,
	}
}

// buildApplyUpdate dựng update document cho một lần áp dụng review (hàm thuần).
// Luôn thêm đúng một note nội dung summary và đẩy lastContact lên hôm nay;
// các field thay đổi chỉ ghi khi withFields. Mỗi lần gọi sinh note id mới,
// áp dụng hai lần là hai note.
func buildApplyUpdate(review *crmdto.CrmReviewSet, withFields bool) *basesvc.UpdateData {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{},
		Max: map[string]interface{}{
			// lastContact chỉ tiến về phía trước, không bao giờ lùi
			"lastContact": utility.Today(),
		},
		Push: map[string]interface{}{
			"notes": crmmodels.CrmNote{
				ID:      primitive.NewObjectID(),
				Date:    utility.CurrentTimeInMilli(),
				Content: review.Summary,
			},
		},
	}
	if withFields {
		for _, change := range review.Changes {
			update.Set[change.Field] = change.NewValue
		}
	}
	return update
}

// Apply áp dụng review set đang chờ: ghi mọi field thay đổi, đẩy lastContact
// lên hôm nay và thêm note nội dung summary. Tất cả trong một UpdateOne.
// Thành công thì review set bị tiêu thụ, áp dụng lại cần preview mới.
func (s *CrmReconcileService) Apply(ctx context.Context, sessionID string) (crmmodels.CrmCustomer, error) {
	return s.applyReview(ctx, sessionID, true)
}

// ApplyNoteOnly như Apply nhưng bỏ qua các field thay đổi, chỉ thêm note và đẩy lastContact.
func (s *CrmReconcileService) ApplyNoteOnly(ctx context.Context, sessionID string) (crmmodels.CrmCustomer, error) {
	return s.applyReview(ctx, sessionID, false)
}

func (s *CrmReconcileService) applyReview(ctx context.Context, sessionID string, withFields bool) (crmmodels.CrmCustomer, error) {
	var zero crmmodels.CrmCustomer

	session, err := s.getSession(sessionID)
	if err != nil {
		return zero, err
	}

	review := session.peekReview()
	if review == nil {
		return zero, common.ErrReconcileNoReview
	}

	customerID := utility.String2ObjectID(review.CustomerID)
	if customerID.IsZero() {
		return zero, common.ErrNotFound
	}

	update := buildApplyUpdate(review, withFields)
	updated, err := s.customerService.UpdateOne(ctx, bson.M{"_id": customerID}, update, nil)
	if err != nil {
		return zero, err
	}

	// Chỉ tiêu thụ review sau khi ghi thành công
	session.setReview(nil)

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"sessionId":  sessionID,
		"customerId": review.CustomerID,
		"withFields": withFields,
	}).Info("🤝 [RECONCILE] Đã áp dụng kết quả đối soát")

	return updated, nil
}
