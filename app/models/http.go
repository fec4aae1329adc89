package models

import "time"

// ContactRequest is the contact-form payload.
type ContactRequest struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Company         string `json:"company"`
	ServiceInterest string `json:"serviceInterest" binding:"required"`
	Message         string `json:"message" binding:"required"`
}

// CreatePaymentIntentRequest starts a consultation purchase. Amount is in
// dollars on the wire and stored as cents.
type CreatePaymentIntentRequest struct {
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	SessionType  string  `json:"sessionType" binding:"required"`
	PackageHours float64 `json:"packageHours" binding:"required,gt=0"`
	PackageType  string  `json:"packageType" binding:"required"`
	FirstName    string  `json:"firstName" binding:"required"`
	LastName     string  `json:"lastName" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Company      string  `json:"company"`
	Notes        string  `json:"notes"`
}

// RecordSessionRequest books hours against a paid consultation.
type RecordSessionRequest struct {
	ConsultationID  string    `json:"consultationId" binding:"required"`
	UserID          string    `json:"userId" binding:"required"`
	Hours           float64   `json:"hours" binding:"required,gt=0"`
	SessionDate     time.Time `json:"sessionDate" binding:"required"`
	CalendarEventID string    `json:"calendarEventId"`
}

// StatusUpdateRequest carries an operator-driven status overwrite.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// BalanceReport is what the client dashboard renders: hour counters plus
// session history.
type BalanceReport struct {
	UserID         string        `json:"userId"`
	Email          string        `json:"email"`
	PurchasedHours float64       `json:"purchasedHours"`
	UsedHours      float64       `json:"usedHours"`
	AvailableHours float64       `json:"availableHours"`
	Sessions       []UserSession `json:"sessions"`
}
