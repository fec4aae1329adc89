package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// UpdateConsultationStatus is the operator path to completed/cancelled.
// Transitions out of terminal states are rejected.
func UpdateConsultationStatus(c *gin.Context) {
	id := c.Param("id")
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrors(err)})
		return
	}

	status := models.ConsultationStatus(req.Status)
	if !models.ValidConsultationStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid consultation status"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := store.SetConsultationStatus(ctx, id, status); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "consultation not found"})
		case IsTransitionError(err):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("consultation status update failed id=%s err=%v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update consultation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RecordSession books advisory hours against a paid consultation. The hours
// deduction and the session row are one transaction: a booking that exceeds
// the remaining balance is rejected whole.
func RecordSession(c *gin.Context) {
	var req models.RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrors(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	session := models.UserSession{
		UserID:          req.UserID,
		ConsultationID:  req.ConsultationID,
		HoursUsed:       req.Hours,
		SessionDate:     req.SessionDate,
		CalendarEventID: req.CalendarEventID,
	}
	if err := store.RecordSession(ctx, &session); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "consultation or user not found"})
		case errors.Is(err, ErrConsultationNotPaid):
			c.JSON(http.StatusConflict, gin.H{"error": "consultation is not paid"})
		case errors.Is(err, ErrInsufficientHours):
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient hours balance"})
		default:
			log.Printf("session record failed consultation=%s err=%v", req.ConsultationID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// UpdateSessionStatus is the operator path for completed/cancelled/no-show.
func UpdateSessionStatus(c *gin.Context) {
	id := c.Param("id")
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrors(err)})
		return
	}

	status := models.SessionStatus(req.Status)
	if !models.ValidSessionStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session status"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := store.SetSessionStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		log.Printf("session status update failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetUserBalance returns the dashboard view: purchased/used/available hours
// plus session history.
func GetUserBalance(c *gin.Context) {
	userID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("user load failed id=%s err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	sessions, err := store.ListSessions(ctx, userID)
	if err != nil {
		log.Printf("session list failed user=%s err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}

	c.JSON(http.StatusOK, models.BalanceReport{
		UserID:         user.ID,
		Email:          user.Email,
		PurchasedHours: user.TotalHoursBalance,
		UsedHours:      user.UsedHours,
		AvailableHours: user.AvailableHours(),
		Sessions:       sessions,
	})
}
