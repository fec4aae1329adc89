package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"
	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// CreatePaymentIntent starts a consultation purchase: it records a pending
// consultation, reserves the charge with Stripe, and hands the client secret
// back so the client can complete payment with Stripe directly.
func CreatePaymentIntent(c *gin.Context) {
	var req models.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrors(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	email := normalizeEmail(req.Email)
	user, err := store.UpsertUserByEmail(ctx, email, "")
	if err != nil {
		log.Printf("user upsert failed email=%s err=%v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create purchase"})
		return
	}

	consultation := models.Consultation{
		UserID:       user.ID,
		Name:         req.FirstName + " " + req.LastName,
		Email:        email,
		Company:      req.Company,
		SessionType:  req.SessionType,
		PackageHours: req.PackageHours,
		PackageType:  req.PackageType,
		Amount:       dollarsToCents(req.Amount),
		Notes:        req.Notes,
	}
	if err := store.CreateConsultation(ctx, &consultation); err != nil {
		log.Printf("consultation insert failed email=%s err=%v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create purchase"})
		return
	}

	clientSecret, intentID, err := createIntent(consultation.Amount, "usd", map[string]string{
		"consultation_id": consultation.ID,
		"session_type":    consultation.SessionType,
	})
	if err != nil {
		log.Printf("stripe payment intent failed consultation=%s err=%v", consultation.ID, err)
		status := http.StatusBadRequest
		if IsGatewayError(err) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "failed to create payment intent"})
		return
	}

	if err := store.AttachPaymentIntent(ctx, consultation.ID, intentID); err != nil {
		log.Printf("attach payment intent failed consultation=%s err=%v", consultation.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret":   clientSecret,
		"consultationId": consultation.ID,
	})
}

// GetConsultation returns a single consultation, 404 on unknown id.
func GetConsultation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing consultation id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	consultation, err := store.GetConsultation(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "consultation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load consultation"})
		return
	}

	c.JSON(http.StatusOK, consultation)
}

// StripeWebhook applies verified payment events to the ledger. Unsigned
// payloads are never trusted: a missing webhook secret rejects the request.
func StripeWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		log.Printf("stripe webhook read failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("stripe webhook config load failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook not configured"})
		return
	}

	endpointSecret := cfg.Stripe.WebhookSecret
	if endpointSecret == "" {
		log.Printf("stripe webhook secret missing; rejecting event")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook not configured"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		body,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		log.Printf("stripe webhook signature failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			log.Printf("stripe payment intent unmarshal failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment intent payload"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := applyPaymentSucceeded(ctx, event.ID, pi); err != nil {
			log.Printf("stripe payment apply failed intent=%s err=%v", pi.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update consultation"})
			return
		}
	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err == nil {
			log.Printf("stripe payment failed intent=%s consultation=%s", pi.ID, pi.Metadata["consultation_id"])
		}
	default:
		// Intentionally ignore unhandled events.
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// applyPaymentSucceeded transitions the consultation to paid and credits the
// purchased hours in one storage transaction. Redelivered events find the row
// already paid and credit nothing, so hours are applied exactly once.
func applyPaymentSucceeded(ctx context.Context, eventID string, pi stripe.PaymentIntent) error {
	consultationID := pi.Metadata["consultation_id"]
	if consultationID == "" {
		reconcileAlert(ctx, models.ReconcileAlert{
			EventID:       eventID,
			EventType:     "payment_intent.succeeded",
			PaymentIntent: pi.ID,
			Reason:        "event missing consultation_id metadata",
		})
		return nil
	}

	consultation, err := store.GetConsultation(ctx, consultationID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			reconcileAlert(ctx, models.ReconcileAlert{
				EventID:        eventID,
				EventType:      "payment_intent.succeeded",
				ConsultationID: consultationID,
				PaymentIntent:  pi.ID,
				Reason:         "unknown consultation id",
			})
			return nil
		}
		return err
	}

	credited, err := store.MarkPaid(ctx, consultationID)
	if err != nil {
		var te transitionError
		if errors.As(err, &te) {
			reconcileAlert(ctx, models.ReconcileAlert{
				EventID:        eventID,
				EventType:      "payment_intent.succeeded",
				ConsultationID: consultationID,
				PaymentIntent:  pi.ID,
				Reason:         "payment succeeded for " + string(te.From) + " consultation",
			})
			return nil
		}
		// Transition and credit roll back together; a 500 here makes
		// Stripe redeliver the event.
		return err
	}
	if !credited {
		// At-least-once delivery; already applied.
		return nil
	}

	go sendPaymentConfirmation(consultation)
	return nil
}
