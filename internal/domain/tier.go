package domain

// PremiumTier es el nivel de acceso comprado para una sesion. El orden es un
// orden parcial estricto, no una escalera de enteros: blueprint domina a
// roadmap y a personality, pero roadmap y personality son hermanos
// incomparables entre si.
type PremiumTier string

const (
	TierNone        PremiumTier = "none"
	TierRoadmap     PremiumTier = "roadmap"
	TierPersonality PremiumTier = "personality"
	TierBlueprint   PremiumTier = "blueprint"
)

// Valid indica si el tier pertenece al conjunto cerrado.
func (t PremiumTier) Valid() bool {
	switch t {
	case TierNone, TierRoadmap, TierPersonality, TierBlueprint:
		return true
	default:
		return false
	}
}

// impliedTiers materializa el orden parcial como conjuntos de implicacion:
// poseer la clave otorga todos los tiers del valor.
var impliedTiers = map[PremiumTier][]PremiumTier{
	TierNone:        {TierNone},
	TierRoadmap:     {TierNone, TierRoadmap},
	TierPersonality: {TierNone, TierPersonality},
	TierBlueprint:   {TierNone, TierRoadmap, TierPersonality, TierBlueprint},
}

// Implies responde si poseer t otorga tambien other. Todo tier se implica a
// si mismo y todos implican none.
func (t PremiumTier) Implies(other PremiumTier) bool {
	for _, imp := range impliedTiers[t] {
		if imp == other {
			return true
		}
	}
	return false
}

// StrictlyBelow responde si other domina estrictamente a t en el orden
// parcial (other implica t y no son iguales).
func (t PremiumTier) StrictlyBelow(other PremiumTier) bool {
	return t != other && other.Implies(t)
}

// UpgradeOffer es una derivacion: solo existe cuando To domina estrictamente
// a From. El precio sale de una tabla fija por par (From, To), nunca de una
// formula por distancia.
type UpgradeOffer struct {
	From       PremiumTier `json:"from"`
	To         PremiumTier `json:"to"`
	PriceCents int         `json:"price_cents"`
}

// ContentSection declara que tiers la desbloquean. El acceso es una pura
// pertenencia contra UnlockedBy (via implicacion de tiers); jamas se infiere
// comparando precios.
type ContentSection struct {
	Key        string        `json:"key" yaml:"key"`
	Title      string        `json:"title" yaml:"title"`
	UnlockedBy []PremiumTier `json:"unlocked_by" yaml:"unlocked_by"`
}
