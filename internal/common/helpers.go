package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stratastor/logger"
	"github.com/stratastor/mmacl/config"
	"github.com/stratastor/mmacl/pkg/errors"
)

// Global logger
var Log logger.Logger

func init() {
	var err error
	Log, err = logger.NewTag(config.NewLoggerConfig(config.GetConfig()), "global")
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
}

// Helper to add errors to context
func APIError(c *gin.Context, err error) {
	if aclErr, ok := err.(*errors.MmaclError); ok {
		c.JSON(aclErr.HTTPStatus, gin.H{
			"error": gin.H{
				"code":      aclErr.Code,
				"domain":    aclErr.Domain,
				"message":   aclErr.Message,
				"details":   aclErr.Details,
				"metadata":  aclErr.Metadata,
				"timestamp": time.Now().Format(time.RFC3339),
			},
		})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"message":   err.Error(),
				"timestamp": time.Now().Format(time.RFC3339),
			},
		})
	}
	c.Abort()
}
