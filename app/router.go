package app

import (
	"time"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"
	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// NewRouter builds the shared HTTP router for both local and Lambda execution.
func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Stripe-Signature"},
		MaxAge:       12 * time.Hour,
	}))
	router.Use(PrerenderMiddleware(cfg.SEO.SnapshotDir))

	router.GET("/health", Health)
	router.GET("/sitemap.xml", Sitemap)
	router.GET("/robots.txt", Robots)
	router.GET("/api/seo/health", SEOHealth)

	router.POST("/api/contact", CreateContactInquiry)
	router.POST("/api/create-payment-intent", CreatePaymentIntent)
	router.GET("/api/consultation/:id", GetConsultation)
	router.POST("/api/webhook/stripe", StripeWebhook)

	verifier, err := auth.NewVerifierFromEnv()
	if err != nil && !auth.AuthDisabled() {
		return nil, err
	}

	admin := router.Group("/api/admin")
	admin.Use(auth.Middleware(verifier, auth.MiddlewareConfig{
		RequireScopes: []string{"manage:ledger"},
		OnAuthenticated: func(c *gin.Context, claims *auth.Claims) error {
			// Ledger writes are operator actions; keep an audit trail.
			log.Printf("admin request subject=%s method=%s path=%s",
				claims.Subject, c.Request.Method, c.Request.URL.Path)
			return nil
		},
	}))
	admin.GET("/me", Me)
	admin.GET("/inquiries", ListInquiries)
	admin.POST("/inquiries/:id/status", UpdateInquiryStatus)
	admin.POST("/consultations/:id/status", UpdateConsultationStatus)
	admin.POST("/sessions", RecordSession)
	admin.POST("/sessions/:id/status", UpdateSessionStatus)
	admin.GET("/users/:id/balance", GetUserBalance)

	return router, nil
}
