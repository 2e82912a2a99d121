package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ikigai-engine/internal/domain"
	"ikigai-engine/internal/service"
)

// AccessHandler expone chequeos de acceso por seccion y el flujo de quotes
// y compras de upgrade de tier.
type AccessHandler struct {
	logger    *zap.Logger
	purchases *service.PurchaseService
	access    *service.TierAccess
	sessions  *service.AssessmentService
}

func NewAccessHandler(
	logger *zap.Logger,
	purchases *service.PurchaseService,
	access *service.TierAccess,
	sessions *service.AssessmentService,
) *AccessHandler {
	return &AccessHandler{logger: logger, purchases: purchases, access: access, sessions: sessions}
}

func (h *AccessHandler) ownedSession(c *gin.Context) (domain.AssessmentSession, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return domain.AssessmentSession{}, false
	}
	session, err := h.sessions.Session(c.Request.Context(), c.Param("id"))
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

// CheckSection maneja GET /assessments/:id/sections/:key/access.
func (h *AccessHandler) CheckSection(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	accessible, err := h.access.IsAccessibleKey(c.Param("key"), session.Tier)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"section":    c.Param("key"),
		"tier":       session.Tier,
		"accessible": accessible,
	})
}

// ListOffers maneja GET /assessments/:id/offers.
func (h *AccessHandler) ListOffers(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	offers, err := h.purchases.Offers(c.Request.Context(), session.ID)
	if err != nil {
		h.logger.Error("list offers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list offers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tier": session.Tier, "offers": offers})
}

// Quote maneja GET /assessments/:id/offers/:to. Un par sin oferta devuelve
// offer=null, no un error: "sin ruta" es una respuesta valida del dominio.
func (h *AccessHandler) Quote(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	to := domain.PremiumTier(c.Param("to"))
	if !to.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tier"})
		return
	}

	offer, err := h.purchases.Quote(c.Request.Context(), session.ID, to)
	if err != nil {
		h.logger.Error("quote failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not quote upgrade"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

// Purchase maneja POST /assessments/:id/purchase.
func (h *AccessHandler) Purchase(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		To    string `json:"to" binding:"required"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	offer, err := h.purchases.Purchase(c.Request.Context(), session.ID, domain.PremiumTier(req.To), req.Email)
	switch {
	case errors.Is(err, service.ErrAlreadyOwned):
		c.JSON(http.StatusConflict, gin.H{"error": "tier already owned"})
		return
	case errors.Is(err, service.ErrNoUpgradePath):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no upgrade path to requested tier"})
		return
	case errors.Is(err, service.ErrUnknownTier):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tier"})
		return
	case err != nil:
		h.logger.Error("purchase failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not apply purchase"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer, "tier": offer.To})
}
