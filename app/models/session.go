package models

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
	SessionNoShow    SessionStatus = "no-show"
)

// ValidSessionStatus reports whether s is one of the known session statuses.
func ValidSessionStatus(s SessionStatus) bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled, SessionNoShow:
		return true
	}
	return false
}

// UserSession is a usage event: hours booked against the consultation that
// funds them. Status changes are operator-driven.
type UserSession struct {
	ID              string        `json:"id" db:"id"`
	UserID          string        `json:"userId" db:"user_id"`
	ConsultationID  string        `json:"consultationId" db:"consultation_id"`
	HoursUsed       float64       `json:"hoursUsed" db:"hours_used"`
	SessionDate     time.Time     `json:"sessionDate" db:"session_date"`
	CalendarEventID string        `json:"calendarEventId,omitempty" db:"calendar_event_id"`
	Status          SessionStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
}
