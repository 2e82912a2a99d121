package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ikigai-engine/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas del motor.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	assessmentH *AssessmentHandler,
	accessH *AccessHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	assessments := r.Group("/assessments")
	assessments.Use(JWTAuthMiddleware(jwtSvc))
	assessments.POST("", assessmentH.StartSession)
	assessments.GET("/:id/questions", assessmentH.ListQuestions)
	assessments.PUT("/:id/answers", assessmentH.SubmitAnswer)
	assessments.POST("/:id/complete", assessmentH.Complete)
	assessments.GET("/:id/score", assessmentH.GetScore)
	assessments.GET("/:id/result", assessmentH.GetResult)
	assessments.GET("/:id/similar", assessmentH.SimilarProfiles)

	assessments.GET("/:id/sections/:key/access", accessH.CheckSection)
	assessments.GET("/:id/offers", accessH.ListOffers)
	assessments.GET("/:id/offers/:to", accessH.Quote)
	assessments.POST("/:id/purchase", accessH.Purchase)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
