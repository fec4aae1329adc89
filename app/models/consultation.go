package models

import "time"

type ConsultationStatus string

const (
	ConsultationPending   ConsultationStatus = "pending"
	ConsultationPaid      ConsultationStatus = "paid"
	ConsultationCompleted ConsultationStatus = "completed"
	ConsultationCancelled ConsultationStatus = "cancelled"
)

// consultationTransitions is the forward-only status machine:
// pending -> paid -> completed, with cancellation allowed from the two
// non-terminal states. Terminal states have no exits.
var consultationTransitions = map[ConsultationStatus][]ConsultationStatus{
	ConsultationPending: {ConsultationPaid, ConsultationCancelled},
	ConsultationPaid:    {ConsultationCompleted, ConsultationCancelled},
}

// CanTransition reports whether a consultation may move from one status to
// another. Setting the same status twice is allowed so that webhook
// redelivery stays a no-op.
func CanTransition(from, to ConsultationStatus) bool {
	if from == to {
		return true
	}
	for _, next := range consultationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidConsultationStatus reports whether s is one of the known statuses.
func ValidConsultationStatus(s ConsultationStatus) bool {
	switch s {
	case ConsultationPending, ConsultationPaid, ConsultationCompleted, ConsultationCancelled:
		return true
	}
	return false
}

// Consultation is one purchase of an advisory package. It is created in
// pending state when checkout starts and moves to paid only through a
// verified payment webhook.
type Consultation struct {
	ID                    string             `json:"id" db:"id"`
	UserID                string             `json:"userId,omitempty" db:"user_id"`
	Name                  string             `json:"name" db:"name"`
	Email                 string             `json:"email" db:"email"`
	Company               string             `json:"company,omitempty" db:"company"`
	SessionType           string             `json:"sessionType" db:"session_type"`
	PackageHours          float64            `json:"packageHours" db:"package_hours"`
	PackageType           string             `json:"packageType" db:"package_type"`
	Amount                int64              `json:"amount" db:"amount"` // cents
	StripePaymentIntentID string             `json:"stripePaymentIntentId,omitempty" db:"stripe_payment_intent_id"`
	Status                ConsultationStatus `json:"status" db:"status"`
	Notes                 string             `json:"notes,omitempty" db:"notes"`
	CreatedAt             time.Time          `json:"createdAt" db:"created_at"`
}

// Terminal reports whether the consultation can no longer change status.
func (c Consultation) Terminal() bool {
	return c.Status == ConsultationCompleted || c.Status == ConsultationCancelled
}
