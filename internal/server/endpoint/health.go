// Package endpoint holds the standard service endpoints.
package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/meetscribe/internal/provider"
)

// Health returns a handler that reports service health, including
// reachability of the registered external backends.
func Health(serviceName string, providers ...provider.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		components := make([]gin.H, 0, len(providers))

		for _, p := range providers {
			componentStatus := "up"
			if !p.IsAvailable(c.Request.Context()) {
				componentStatus = "down"
				status = "degraded"
			}
			components = append(components, gin.H{
				"name":   p.Name(),
				"status": componentStatus,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}
