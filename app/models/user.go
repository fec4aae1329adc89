// Package models defines the ledger's persisted records and wire types.
package models

import "time"

// User accumulates purchased and consumed advisory hours. Rows are created on
// first purchase (or explicit signup) and never deleted.
type User struct {
	ID                string    `json:"id" db:"id"`
	Email             string    `json:"email" db:"email"`
	Username          string    `json:"username,omitempty" db:"username"`
	TotalHoursBalance float64   `json:"totalHoursBalance" db:"total_hours_balance"`
	UsedHours         float64   `json:"usedHours" db:"used_hours"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

// AvailableHours is purchased minus consumed, floored at zero.
func (u User) AvailableHours() float64 {
	remaining := u.TotalHoursBalance - u.UsedHours
	if remaining < 0 {
		return 0
	}
	return remaining
}
