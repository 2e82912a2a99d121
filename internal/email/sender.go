package email

import (
	"context"
	"errors"

	"ikigai-engine/internal/domain"
)

// Sender define la interfaz para envio de recibos de compra de tier.
type Sender interface {
	SendUpgradeReceipt(ctx context.Context, toEmail string, offer domain.UpgradeOffer) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendUpgradeReceipt(_ context.Context, _ string, _ domain.UpgradeOffer) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
