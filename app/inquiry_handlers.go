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

// CreateContactInquiry captures a contact-form submission. Repeated
// submissions create independent rows; there is no de-duplication.
func CreateContactInquiry(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrors(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	inquiry := models.ContactInquiry{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           normalizeEmail(req.Email),
		Company:         req.Company,
		ServiceInterest: req.ServiceInterest,
		Message:         req.Message,
	}
	if err := store.CreateInquiry(ctx, &inquiry); err != nil {
		log.Printf("inquiry insert failed email=%s err=%v", inquiry.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save inquiry"})
		return
	}

	go sendInquiryNotification(inquiry)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"inquiry": inquiry,
	})
}

// ListInquiries returns all leads, newest first.
func ListInquiries(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	inquiries, err := store.ListInquiries(ctx)
	if err != nil {
		log.Printf("inquiry list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inquiries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(inquiries),
		"inquiries": inquiries,
	})
}

// UpdateInquiryStatus overwrites a lead's follow-up status.
func UpdateInquiryStatus(c *gin.Context) {
	id := c.Param("id")
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrors(err)})
		return
	}

	status := models.InquiryStatus(req.Status)
	if !models.ValidInquiryStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inquiry status"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := store.SetInquiryStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
			return
		}
		log.Printf("inquiry status update failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update inquiry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
