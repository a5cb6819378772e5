package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"timelock-node/api/handlers"
	"timelock-node/internal/config"
	"timelock-node/internal/logger"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// requestID tags every request with an ID, reusing the caller's when given.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(handlers.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()

		logger.Log.WithFields(logrus.Fields{
			handlers.RequestIDKey: id,
			"method":              c.Request.Method,
			"path":                c.FullPath(),
			"status":              c.Writer.Status(),
		}).Debug("Request served")
	}
}

func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	messages := handlers.NewMessageHandler(cfg.Decoder)
	router.POST("/messages/decode", messages.Decode)
	router.POST("/messages/decode/batch", messages.DecodeBatch)

	return router
}
