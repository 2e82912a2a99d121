package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ikigai-engine/internal/domain"
	"ikigai-engine/internal/email"
	"ikigai-engine/internal/event"
	"ikigai-engine/internal/repository"
)

// PurchaseService aplica el evento de compra exitosa que reporta el flujo de
// checkout externo: valida la transicion de tier, la persiste y notifica.
// La captura del pago en si es un colaborador fuera de alcance.
type PurchaseService struct {
	sessions repository.SessionRepository
	access   *TierAccess
	events   event.Publisher
	receipts email.Sender
	logger   *zap.Logger
}

func NewPurchaseService(
	sessions repository.SessionRepository,
	access *TierAccess,
	events event.Publisher,
	receipts email.Sender,
	logger *zap.Logger,
) *PurchaseService {
	if events == nil {
		events = event.NopPublisher{}
	}
	return &PurchaseService{
		sessions: sessions,
		access:   access,
		events:   events,
		receipts: receipts,
		logger:   logger,
	}
}

// Quote devuelve la oferta vigente para subir la sesion al tier pedido, o
// nil cuando no hay ruta de upgrade.
func (s *PurchaseService) Quote(ctx context.Context, sessionID string, to domain.PremiumTier) (*domain.UpgradeOffer, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.access.ComputeUpgrade(session.Tier, to), nil
}

// Offers lista todas las rutas de upgrade disponibles para la sesion.
func (s *PurchaseService) Offers(ctx context.Context, sessionID string) ([]domain.UpgradeOffer, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.access.Offers(session.Tier), nil
}

// Purchase registra una compra exitosa. La transicion es monotona: destinos
// ya implicados fallan con ErrAlreadyOwned y jamas se baja de tier.
func (s *PurchaseService) Purchase(ctx context.Context, sessionID string, to domain.PremiumTier, buyerEmail string) (domain.UpgradeOffer, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return domain.UpgradeOffer{}, err
	}

	offer := s.access.ComputeUpgrade(session.Tier, to)
	newTier, err := s.access.ApplyUpgrade(session.Tier, to)
	if err != nil {
		return domain.UpgradeOffer{}, err
	}
	if offer == nil {
		// ApplyUpgrade valido la transicion pero la tabla no lista precio
		// para el par: error de configuracion, no del comprador.
		return domain.UpgradeOffer{}, fmt.Errorf("no listed price for %s -> %s", session.Tier, to)
	}

	if err := s.sessions.UpdateTier(ctx, sessionID, newTier); err != nil {
		return domain.UpgradeOffer{}, fmt.Errorf("update tier: %w", err)
	}

	if err := s.events.Publish(event.TypeTierUpgraded, map[string]interface{}{
		"session_id":  sessionID,
		"user_id":     session.UserID,
		"from":        offer.From,
		"to":          offer.To,
		"price_cents": offer.PriceCents,
	}); err != nil && s.logger != nil {
		s.logger.Warn("publish tier upgraded failed", zap.Error(err), zap.String("session_id", sessionID))
	}

	if s.receipts != nil && buyerEmail != "" {
		if err := s.receipts.SendUpgradeReceipt(ctx, buyerEmail, *offer); err != nil && s.logger != nil {
			s.logger.Warn("send upgrade receipt failed", zap.Error(err), zap.String("session_id", sessionID))
		}
	}

	if s.logger != nil {
		s.logger.Info("tier upgraded",
			zap.String("session_id", sessionID),
			zap.String("from", string(offer.From)),
			zap.String("to", string(offer.To)),
			zap.Int("price_cents", offer.PriceCents),
		)
	}
	return *offer, nil
}

func (s *PurchaseService) getSession(ctx context.Context, sessionID string) (domain.AssessmentSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.AssessmentSession{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.AssessmentSession{}, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}
