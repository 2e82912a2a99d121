package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ikigai-engine/internal/domain"
	"ikigai-engine/internal/service"
)

// AssessmentHandler expone el ciclo de vida de una sesion de assessment.
type AssessmentHandler struct {
	logger *zap.Logger
	svc    *service.AssessmentService
	access *service.TierAccess
}

func NewAssessmentHandler(logger *zap.Logger, svc *service.AssessmentService, access *service.TierAccess) *AssessmentHandler {
	return &AssessmentHandler{logger: logger, svc: svc, access: access}
}

// ownedSession resuelve la sesion y verifica que pertenezca al usuario
// autenticado. Devuelve false si ya respondio al cliente.
func (h *AssessmentHandler) ownedSession(c *gin.Context) (domain.AssessmentSession, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return domain.AssessmentSession{}, false
	}
	session, err := h.svc.Session(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return domain.AssessmentSession{}, false
	}
	if err != nil {
		h.logger.Error("get session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return domain.AssessmentSession{}, false
	}
	if session.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your session"})
		return domain.AssessmentSession{}, false
	}
	return session, true
}

// StartSession maneja POST /assessments.
func (h *AssessmentHandler) StartSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Kind string `json:"kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.svc.StartSession(c.Request.Context(), claims.UserID, domain.AssessmentKind(req.Kind))
	if errors.Is(err, service.ErrUnknownKind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown assessment kind"})
		return
	}
	if err != nil {
		h.logger.Error("start session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListQuestions maneja GET /assessments/:id/questions.
func (h *AssessmentHandler) ListQuestions(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	questions, err := h.svc.Questions(session.Kind)
	if err != nil {
		h.logger.Error("list questions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load questions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// SubmitAnswer maneja PUT /assessments/:id/answers.
func (h *AssessmentHandler) SubmitAnswer(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		QuestionID  string `json:"question_id" binding:"required"`
		OptionIndex *int   `json:"option_index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	vector, err := h.svc.SubmitAnswer(c.Request.Context(), session.ID, req.QuestionID, *req.OptionIndex)
	switch {
	case errors.Is(err, service.ErrInvalidAnswer):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrSessionCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "session already completed"})
		return
	case err != nil:
		h.logger.Error("submit answer failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record answer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": vector})
}

// Complete maneja POST /assessments/:id/complete.
func (h *AssessmentHandler) Complete(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	result, err := h.svc.Complete(c.Request.Context(), session.ID)
	switch {
	case errors.Is(err, service.ErrSessionCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "session already completed"})
		return
	case err != nil:
		h.logger.Error("complete session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete session"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetScore maneja GET /assessments/:id/score.
func (h *AssessmentHandler) GetScore(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	vector, err := h.svc.Score(c.Request.Context(), session.ID)
	if err != nil {
		h.logger.Error("score session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not score session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": vector})
}

// GetResult maneja GET /assessments/:id/result. Devuelve el resultado mas
// las secciones visibles para el tier actual de la sesion.
func (h *AssessmentHandler) GetResult(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	result, err := h.svc.Result(c.Request.Context(), session.ID)
	if err != nil {
		h.logger.Error("get result failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load result"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":   result,
		"tier":     session.Tier,
		"sections": h.access.Filter(session.Tier),
	})
}

// SimilarProfiles maneja GET /assessments/:id/similar. La seccion esta
// declarada en el catalogo y se gatea por pertenencia, como todo contenido.
func (h *AssessmentHandler) SimilarProfiles(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	accessible, err := h.access.IsAccessibleKey("similar_profiles", session.Tier)
	if err != nil {
		h.logger.Error("section lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check access"})
		return
	}
	if !accessible {
		c.JSON(http.StatusForbidden, gin.H{"error": "section locked for current tier"})
		return
	}

	profiles, err := h.svc.SimilarProfiles(c.Request.Context(), session.ID, 5)
	if err != nil {
		h.logger.Error("similar profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load similar profiles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}
