// Package app implements the consultation ledger, hour-balance tracking and
// the HTTP surface in front of them.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/models"
)

var (
	// ErrNotFound signals an unknown record id. Handlers map it to 404.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientHours rejects a deduction that would push used hours
	// past the purchased balance.
	ErrInsufficientHours = errors.New("insufficient hours balance")
	// ErrConsultationNotPaid rejects bookings against a consultation that
	// has not been paid for.
	ErrConsultationNotPaid = errors.New("consultation is not paid")
)

// transitionError reports a status write the state machine forbids.
type transitionError struct {
	From models.ConsultationStatus
	To   models.ConsultationStatus
}

func (e transitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// IsTransitionError reports whether err is a rejected status transition.
func IsTransitionError(err error) bool {
	var te transitionError
	return errors.As(err, &te)
}

// Storage is the persistence boundary for the ledger. The Postgres
// implementation backs production; the in-memory one backs tests and local
// runs without a database.
type Storage interface {
	CreateConsultation(ctx context.Context, c *models.Consultation) error
	GetConsultation(ctx context.Context, id string) (models.Consultation, error)
	// AttachPaymentIntent sets the payment-intent id. It is idempotent and
	// does not error on an unknown consultation id.
	AttachPaymentIntent(ctx context.Context, id, intentID string) error
	// SetConsultationStatus validates the transition before writing.
	// Re-setting the current status is a no-op, which keeps webhook
	// redelivery safe.
	SetConsultationStatus(ctx context.Context, id string, status models.ConsultationStatus) error
	// MarkPaid transitions pending -> paid and credits the package hours
	// to the owner in the same transaction. It reports whether this call
	// performed the transition: an already-paid consultation credits
	// nothing, so concurrent webhook deliveries apply exactly once.
	MarkPaid(ctx context.Context, id string) (bool, error)

	UpsertUserByEmail(ctx context.Context, email, username string) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	// AddHours applies a relative delta to the purchased balance.
	AddHours(ctx context.Context, userID string, hours float64) error
	// DeductHours applies a relative delta to used hours, rejecting any
	// deduction that would exceed the purchased balance.
	DeductHours(ctx context.Context, userID string, hours float64) error

	// RecordSession books hours against a paid consultation and deducts
	// them from the owner's balance in the same transaction.
	RecordSession(ctx context.Context, s *models.UserSession) error
	SetSessionStatus(ctx context.Context, id string, status models.SessionStatus) error
	ListSessions(ctx context.Context, userID string) ([]models.UserSession, error)

	CreateInquiry(ctx context.Context, in *models.ContactInquiry) error
	ListInquiries(ctx context.Context) ([]models.ContactInquiry, error)
	SetInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error
}

var store Storage

// UseStorage swaps the active storage backend. Tests inject the in-memory
// implementation here.
func UseStorage(s Storage) {
	store = s
}
