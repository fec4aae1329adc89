package app

import (
	"net/http"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/auth"

	"github.com/gin-gonic/gin"
)

// Health is a public health check endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Me returns the authenticated operator's identity.
func Me(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject": claims.Subject,
		"scope":   claims.Scope,
	})
}
