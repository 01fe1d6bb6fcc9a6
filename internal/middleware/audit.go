package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
)

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Audit records successful mutating requests against resource. Reads are not audited.
func Audit(repo AuditRecorder, resource string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	if repo == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		action, mutating := auditActions[c.Request.Method]
		start := time.Now().UTC()
		c.Next()

		status := c.Writer.Status()
		if !mutating || status >= http.StatusBadRequest {
			return
		}

		entry := &models.AuditLog{
			Action:    action,
			Resource:  resource,
			Status:    status,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if claims, ok := CurrentUser(c); ok {
			entry.UserID = &claims.UserID
		}
		if id := c.Param("id"); id != "" {
			entry.ResourceID = &id
		}
		entry.NewValues, _ = json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"latency": time.Since(start).Milliseconds(),
		})

		if err := repo.CreateAuditLog(c.Request.Context(), entry); err != nil {
			logger.Warn("failed to record audit log", zap.String("resource", resource), zap.Error(err))
		}
	}
}

var auditActions = map[string]string{
	http.MethodPost:   models.AuditActionCreate,
	http.MethodPut:    models.AuditActionUpdate,
	http.MethodPatch:  models.AuditActionUpdate,
	http.MethodDelete: models.AuditActionDelete,
}
