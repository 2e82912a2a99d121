package service

import (
	"errors"
	"fmt"

	"ikigai-engine/internal/catalog"
	"ikigai-engine/internal/domain"
)

var (
	// ErrAlreadyOwned marca un upgrade hacia un tier ya implicado por el
	// actual. Se reporta, no se permite una recompra inutil en silencio.
	ErrAlreadyOwned = errors.New("tier already owned")
	// ErrNoUpgradePath marca un destino que no domina estrictamente al tier
	// actual (ej. roadmap -> personality, hermanos incomparables).
	ErrNoUpgradePath = errors.New("no upgrade path")
	// ErrUnknownTier marca un tier fuera del conjunto cerrado.
	ErrUnknownTier = errors.New("unknown tier")
)

// TierAccess decide que partes de un resultado puede ver un comprador y que
// cuesta subir de tier. Todas sus reglas salen del catalogo cargado al
// inicio; no tiene estado mutable propio.
type TierAccess struct {
	cat *catalog.Catalog
}

func NewTierAccess(cat *catalog.Catalog) *TierAccess {
	return &TierAccess{cat: cat}
}

// ComputeUpgrade devuelve la oferta listada para (from, to), o nil cuando no
// existe oferta: tiers iguales, destino no estrictamente superior, o par sin
// precio en la tabla. El precio es del par exacto; roadmap->blueprint y
// personality->blueprint se cotizan por separado.
func (t *TierAccess) ComputeUpgrade(from, to domain.PremiumTier) *domain.UpgradeOffer {
	if !from.Valid() || !to.Valid() {
		return nil
	}
	if !from.StrictlyBelow(to) {
		return nil
	}
	price, ok := t.cat.PriceFor(from, to)
	if !ok {
		return nil
	}
	return &domain.UpgradeOffer{From: from, To: to, PriceCents: price}
}

// Offers lista todas las rutas de upgrade disponibles desde un tier.
func (t *TierAccess) Offers(from domain.PremiumTier) []domain.UpgradeOffer {
	var offers []domain.UpgradeOffer
	for _, entry := range t.cat.Prices {
		if entry.From != from {
			continue
		}
		if offer := t.ComputeUpgrade(entry.From, entry.To); offer != nil {
			offers = append(offers, *offer)
		}
	}
	return offers
}

// IsAccessible es una pura pertenencia: la seccion declara que tiers la
// desbloquean y el tier actual accede si implica alguno de ellos. Nunca se
// infiere de comparaciones de precio.
func (t *TierAccess) IsAccessible(section domain.ContentSection, current domain.PremiumTier) bool {
	for _, unlock := range section.UnlockedBy {
		if current.Implies(unlock) {
			return true
		}
	}
	return false
}

// IsAccessibleKey resuelve la seccion por clave contra el catalogo.
func (t *TierAccess) IsAccessibleKey(sectionKey string, current domain.PremiumTier) (bool, error) {
	section, ok := t.cat.Section(sectionKey)
	if !ok {
		return false, fmt.Errorf("unknown section %q", sectionKey)
	}
	return t.IsAccessible(section, current), nil
}

// Filter devuelve las secciones visibles para un tier, en el orden del
// catalogo.
func (t *TierAccess) Filter(current domain.PremiumTier) []domain.ContentSection {
	var visible []domain.ContentSection
	for _, s := range t.cat.Sections {
		if t.IsAccessible(s, current) {
			visible = append(visible, s)
		}
	}
	return visible
}

// ApplyUpgrade valida la transicion de tier tras una compra exitosa. La
// transicion es monotona: el tier nunca regresa. Destinos ya implicados
// fallan con ErrAlreadyOwned; destinos que no dominan estrictamente al
// actual fallan con ErrNoUpgradePath.
func (t *TierAccess) ApplyUpgrade(from, to domain.PremiumTier) (domain.PremiumTier, error) {
	if !from.Valid() {
		return from, fmt.Errorf("%w: %q", ErrUnknownTier, from)
	}
	if !to.Valid() {
		return from, fmt.Errorf("%w: %q", ErrUnknownTier, to)
	}
	if from.Implies(to) {
		return from, fmt.Errorf("%w: %s already grants %s", ErrAlreadyOwned, from, to)
	}
	if !from.StrictlyBelow(to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrNoUpgradePath, from, to)
	}
	return to, nil
}
