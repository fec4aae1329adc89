package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/models"

	"github.com/google/uuid"
)

// MemoryStorage is a mutex-guarded map store. It mirrors the Postgres
// implementation's semantics, including the balance guard and the status
// machine, so handler tests exercise the same contract.
type MemoryStorage struct {
	mu            sync.Mutex
	consultations map[string]models.Consultation
	users         map[string]models.User
	usersByEmail  map[string]string
	sessions      map[string]models.UserSession
	inquiries     map[string]models.ContactInquiry

	// insertion order, for stable listings
	inquiryOrder []string
	sessionOrder []string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		consultations: make(map[string]models.Consultation),
		users:         make(map[string]models.User),
		usersByEmail:  make(map[string]string),
		sessions:      make(map[string]models.UserSession),
		inquiries:     make(map[string]models.ContactInquiry),
	}
}

func (m *MemoryStorage) CreateConsultation(ctx context.Context, c *models.Consultation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.NewString()
	c.Status = models.ConsultationPending
	c.StripePaymentIntentID = ""
	c.CreatedAt = time.Now().UTC()
	m.consultations[c.ID] = *c
	return nil
}

func (m *MemoryStorage) GetConsultation(ctx context.Context, id string) (models.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.consultations[id]
	if !ok {
		return models.Consultation{}, ErrNotFound
	}
	return c, nil
}

func (m *MemoryStorage) AttachPaymentIntent(ctx context.Context, id, intentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.consultations[id]
	if !ok {
		// Unknown id is deliberately not an error here; the caller logs it.
		return nil
	}
	c.StripePaymentIntentID = intentID
	m.consultations[id] = c
	return nil
}

func (m *MemoryStorage) SetConsultationStatus(ctx context.Context, id string, status models.ConsultationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.consultations[id]
	if !ok {
		return ErrNotFound
	}
	if !models.CanTransition(c.Status, status) {
		return transitionError{From: c.Status, To: status}
	}
	c.Status = status
	m.consultations[id] = c
	return nil
}

func (m *MemoryStorage) MarkPaid(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.consultations[id]
	if !ok {
		return false, ErrNotFound
	}
	switch c.Status {
	case models.ConsultationPaid:
		return false, nil
	case models.ConsultationPending:
	default:
		return false, transitionError{From: c.Status, To: models.ConsultationPaid}
	}

	if c.UserID != "" {
		if err := m.addHoursLocked(c.UserID, c.PackageHours); err != nil {
			return false, err
		}
	}
	c.Status = models.ConsultationPaid
	m.consultations[id] = c
	return true, nil
}

func (m *MemoryStorage) UpsertUserByEmail(ctx context.Context, email, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(email))
	if id, ok := m.usersByEmail[key]; ok {
		return m.users[id], nil
	}

	u := models.User{
		ID:        uuid.NewString(),
		Email:     key,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	m.users[u.ID] = u
	m.usersByEmail[key] = u.ID
	return u, nil
}

func (m *MemoryStorage) GetUser(ctx context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStorage) AddHours(ctx context.Context, userID string, hours float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addHoursLocked(userID, hours)
}

func (m *MemoryStorage) addHoursLocked(userID string, hours float64) error {
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.TotalHoursBalance += hours
	m.users[userID] = u
	return nil
}

func (m *MemoryStorage) DeductHours(ctx context.Context, userID string, hours float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deductHoursLocked(userID, hours)
}

func (m *MemoryStorage) deductHoursLocked(userID string, hours float64) error {
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	if u.UsedHours+hours > u.TotalHoursBalance {
		return ErrInsufficientHours
	}
	u.UsedHours += hours
	m.users[userID] = u
	return nil
}

func (m *MemoryStorage) RecordSession(ctx context.Context, s *models.UserSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.consultations[s.ConsultationID]
	if !ok {
		return ErrNotFound
	}
	if c.Status != models.ConsultationPaid {
		return ErrConsultationNotPaid
	}
	if err := m.deductHoursLocked(s.UserID, s.HoursUsed); err != nil {
		return err
	}

	s.ID = uuid.NewString()
	s.Status = models.SessionScheduled
	s.CreatedAt = time.Now().UTC()
	m.sessions[s.ID] = *s
	m.sessionOrder = append(m.sessionOrder, s.ID)
	return nil
}

func (m *MemoryStorage) SetSessionStatus(ctx context.Context, id string, status models.SessionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.Status = status
	m.sessions[id] = s
	return nil
}

func (m *MemoryStorage) ListSessions(ctx context.Context, userID string) ([]models.UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.UserSession{}
	for _, id := range m.sessionOrder {
		if s := m.sessions[id]; s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryStorage) CreateInquiry(ctx context.Context, in *models.ContactInquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	in.ID = uuid.NewString()
	in.Status = models.InquiryNew
	in.CreatedAt = time.Now().UTC()
	m.inquiries[in.ID] = *in
	m.inquiryOrder = append(m.inquiryOrder, in.ID)
	return nil
}

func (m *MemoryStorage) ListInquiries(ctx context.Context) ([]models.ContactInquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.ContactInquiry, 0, len(m.inquiryOrder))
	for i := len(m.inquiryOrder) - 1; i >= 0; i-- { // newest first
		out = append(out, m.inquiries[m.inquiryOrder[i]])
	}
	return out, nil
}

func (m *MemoryStorage) SetInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	in, ok := m.inquiries[id]
	if !ok {
		return ErrNotFound
	}
	in.Status = status
	m.inquiries[id] = in
	return nil
}
