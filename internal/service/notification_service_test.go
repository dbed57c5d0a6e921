package service_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/campusops/admissions-backend/internal/event"
	"github.com/campusops/admissions-backend/internal/model"
	"github.com/campusops/admissions-backend/internal/service"
)

// mockMailer fails the first failUntil sends, then succeeds.
type mockMailer struct {
	failUntil int
	calls     int
	sent      []string
	trace     *[]string
}

func (m *mockMailer) Send(to, subject, htmlBody string) error {
	m.calls++
	if m.trace != nil {
		*m.trace = append(*m.trace, "send")
	}
	if m.calls <= m.failUntil {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

// fakeNotificationRepo is an in-memory NotificationRepositoryInterface that
// honors the same status guards as the SQL implementation.
type fakeNotificationRepo struct {
	rows map[string]*model.Notification
	seq  int

	failCreate   bool
	failMarkSent bool
	failUpdate   map[string]bool

	trace *[]string
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		rows:       map[string]*model.Notification{},
		failUpdate: map[string]bool{},
	}
}

func (r *fakeNotificationRepo) Create(n *model.Notification) error {
	if r.trace != nil {
		*r.trace = append(*r.trace, "create")
	}
	if r.failCreate {
		return fmt.Errorf("db unavailable")
	}
	r.seq++
	n.CreatedAt = time.Unix(int64(r.seq), 0)
	if n.Status == "" {
		n.Status = model.NotificationPending
	}
	copied := *n
	r.rows[n.ID] = &copied
	return nil
}

func (r *fakeNotificationRepo) GetByID(id string) (*model.Notification, error) {
	n, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNotificationRepo) ListPending(limit, maxRetries int) ([]*model.Notification, error) {
	pending := []*model.Notification{}
	for _, n := range r.rows {
		if n.Status == model.NotificationPending && n.RetryCount < maxRetries {
			copied := *n
			pending = append(pending, &copied)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *fakeNotificationRepo) MarkSent(id string) error {
	if r.trace != nil {
		*r.trace = append(*r.trace, "mark_sent")
	}
	if r.failMarkSent {
		return fmt.Errorf("db unavailable")
	}
	n, ok := r.rows[id]
	if !ok || n.Status != model.NotificationPending {
		return nil
	}
	now := time.Now()
	n.Status = model.NotificationSent
	n.SentAt = &now
	return nil
}

func (r *fakeNotificationRepo) UpdateAttempt(id, status string, retryCount int, lastError string) error {
	if r.trace != nil {
		*r.trace = append(*r.trace, "update_attempt")
	}
	if r.failUpdate[id] {
		return fmt.Errorf("db unavailable")
	}
	n, ok := r.rows[id]
	if !ok || n.Status != model.NotificationPending {
		return nil
	}
	n.Status = status
	n.RetryCount = retryCount
	n.LastError = lastError
	return nil
}

func (r *fakeNotificationRepo) ListByApplicant(applicantID string) ([]*model.Notification, error) {
	out := []*model.Notification{}
	for _, n := range r.rows {
		if n.ApplicantID != nil && *n.ApplicantID == applicantID {
			copied := *n
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeNotificationRepo) List(offset, limit int) ([]*model.Notification, int, error) {
	all := []*model.Notification{}
	for _, n := range r.rows {
		copied := *n
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := len(all)
	if offset >= total {
		return []*model.Notification{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *fakeNotificationRepo) single(t *testing.T) *model.Notification {
	t.Helper()
	if len(r.rows) != 1 {
		t.Fatalf("expected exactly 1 notification row, got %d", len(r.rows))
	}
	for _, n := range r.rows {
		return n
	}
	return nil
}

func testEvent() event.StatusChangedEvent {
	return event.StatusChangedEvent{
		AdmissionID:    "adm-1",
		ApplicantID:    "app-1",
		ApplicantEmail: "a@x.edu",
		ApplicantName:  "Alice Wanjiru",
		OldStatus:      "under_review",
		NewStatus:      "confirmed",
		OccurredAt:     time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestHandleStatusChangedPersistsBeforeSending(t *testing.T) {
	trace := []string{}
	repo := newFakeNotificationRepo()
	repo.trace = &trace
	m := &mockMailer{trace: &trace}

	svc := &service.NotificationService{NotificationRepo: repo, Mailer: m}

	if err := svc.HandleStatusChanged(testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"create", "send", "mark_sent"}
	if len(trace) != len(want) {
		t.Fatalf("expected trace %v, got %v", want, trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("expected trace %v, got %v", want, trace)
		}
	}

	n := repo.single(t)
	if n.Status != model.NotificationSent {
		t.Errorf("expected status sent, got %s", n.Status)
	}
	if n.SentAt == nil {
		t.Errorf("expected sent_at to be set")
	}
	if n.Recipient != "a@x.edu" {
		t.Errorf("expected recipient a@x.edu, got %s", n.Recipient)
	}
	if n.ApplicantID == nil || *n.ApplicantID != "app-1" {
		t.Errorf("expected applicant correlation app-1, got %v", n.ApplicantID)
	}
}

func TestHandleStatusChangedSendFailureLeavesPending(t *testing.T) {
	repo := newFakeNotificationRepo()
	m := &mockMailer{failUntil: 1}

	svc := &service.NotificationService{NotificationRepo: repo, Mailer: m}

	// A failed send is recorded state, not an error for the broker
	if err := svc.HandleStatusChanged(testEvent()); err != nil {
		t.Fatalf("expected nil error on send failure, got %v", err)
	}

	n := repo.single(t)
	if n.Status != model.NotificationPending {
		t.Errorf("expected status pending, got %s", n.Status)
	}
	if n.RetryCount != 1 {
		t.Errorf("expected retry_count 1 after immediate failure, got %d", n.RetryCount)
	}
	if n.LastError == "" {
		t.Errorf("expected last_error to be recorded")
	}
	if n.SentAt != nil {
		t.Errorf("expected sent_at unset, got %v", n.SentAt)
	}
}

func TestHandleStatusChangedCreateFailurePropagates(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.failCreate = true
	m := &mockMailer{}

	svc := &service.NotificationService{NotificationRepo: repo, Mailer: m}

	if err := svc.HandleStatusChanged(testEvent()); err == nil {
		t.Fatal("expected error when the notification row cannot be persisted")
	}
	if m.calls != 0 {
		t.Errorf("expected no send attempt without a persisted row, got %d", m.calls)
	}
}

func TestHandleStatusChangedOutcomePersistenceFailurePropagates(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.failMarkSent = true
	m := &mockMailer{}

	svc := &service.NotificationService{NotificationRepo: repo, Mailer: m}

	if err := svc.HandleStatusChanged(testEvent()); err == nil {
		t.Fatal("expected error when the outcome cannot be recorded")
	}
}

func TestHandleStatusChangedDuplicateDeliveryCreatesSecondRow(t *testing.T) {
	repo := newFakeNotificationRepo()
	m := &mockMailer{}

	svc := &service.NotificationService{NotificationRepo: repo, Mailer: m}

	evt := testEvent()
	if err := svc.HandleStatusChanged(evt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.HandleStatusChanged(evt); err != nil {
		t.Fatalf("unexpected error on redelivery: %v", err)
	}

	if len(repo.rows) != 2 {
		t.Errorf("expected 2 rows after redelivery, got %d", len(repo.rows))
	}
	if m.calls != 2 {
		t.Errorf("expected 2 send attempts, got %d", m.calls)
	}
}

func TestSendDirectWithoutApplicant(t *testing.T) {
	repo := newFakeNotificationRepo()
	m := &mockMailer{}

	svc := &service.NotificationService{NotificationRepo: repo, Mailer: m}

	n, err := svc.Send("b@x.edu", "S", "B", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ApplicantID != nil {
		t.Errorf("expected nil applicant correlation, got %v", *n.ApplicantID)
	}
	if n.Status != model.NotificationSent {
		t.Errorf("expected status sent, got %s", n.Status)
	}

	stored := repo.single(t)
	if stored.ApplicantID != nil {
		t.Errorf("expected nil applicant correlation in store, got %v", *stored.ApplicantID)
	}
}

func TestSendDirectFailureRecordsPending(t *testing.T) {
	repo := newFakeNotificationRepo()
	m := &mockMailer{failUntil: 1}

	svc := &service.NotificationService{NotificationRepo: repo, Mailer: m}

	n, err := svc.Send("b@x.edu", "S", "B", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Status != model.NotificationPending {
		t.Errorf("expected status pending, got %s", n.Status)
	}
	if n.RetryCount != 1 {
		t.Errorf("expected retry_count 1, got %d", n.RetryCount)
	}
}

func TestListPaginationClamping(t *testing.T) {
	repo := newFakeNotificationRepo()
	m := &mockMailer{}
	svc := &service.NotificationService{NotificationRepo: repo, Mailer: m}

	for i := 0; i < 5; i++ {
		if _, err := svc.Send(fmt.Sprintf("u%d@x.edu", i), "S", "B", nil); err != nil {
			t.Fatalf("seed send failed: %v", err)
		}
	}

	page1, pagination, err := svc.List(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pagination["total_count"] != 5 {
		t.Errorf("expected total_count 5, got %d", pagination["total_count"])
	}
	if pagination["total_pages"] != 3 {
		t.Errorf("expected total_pages 3, got %d", pagination["total_pages"])
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 rows on page 1, got %d", len(page1))
	}
	// Newest first
	if !page1[0].CreatedAt.After(page1[1].CreatedAt) {
		t.Errorf("expected newest-first ordering")
	}

	// Out-of-range inputs clamp to defaults
	_, pagination, err = svc.List(0, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pagination["page"] != 1 || pagination["page_size"] != 20 {
		t.Errorf("expected clamped page=1 page_size=20, got %v", pagination)
	}
}

func TestHandleStatusChangedRendersEventContent(t *testing.T) {
	repo := newFakeNotificationRepo()
	m := &mockMailer{}
	svc := &service.NotificationService{NotificationRepo: repo, Mailer: m}

	if err := svc.HandleStatusChanged(testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := repo.single(t)
	if n.Subject == "" {
		t.Errorf("expected a rendered subject")
	}
	for _, want := range []string{"Alice Wanjiru", "under_review", "confirmed"} {
		if !strings.Contains(n.Body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}
