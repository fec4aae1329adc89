package models

import "time"

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryContacted InquiryStatus = "contacted"
	InquiryClosed    InquiryStatus = "closed"
)

// ValidInquiryStatus reports whether s is one of the known inquiry statuses.
func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryNew, InquiryContacted, InquiryClosed:
		return true
	}
	return false
}

// ContactInquiry is a lead captured from the contact form. Repeated
// submissions create independent rows; inquiries are never deleted.
type ContactInquiry struct {
	ID              string        `json:"id" db:"id"`
	FirstName       string        `json:"firstName" db:"first_name"`
	LastName        string        `json:"lastName" db:"last_name"`
	Email           string        `json:"email" db:"email"`
	Company         string        `json:"company,omitempty" db:"company"`
	ServiceInterest string        `json:"serviceInterest" db:"service_interest"`
	Message         string        `json:"message" db:"message"`
	Status          InquiryStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
}
