package service

import (
	"errors"
	"testing"

	"ikigai-engine/internal/catalog"
	"ikigai-engine/internal/domain"
)

func newTierAccess(t *testing.T) *TierAccess {
	t.Helper()
	cat := catalog.Default()
	if err := cat.Validate(); err != nil {
		t.Fatalf("default catalog must validate: %v", err)
	}
	return NewTierAccess(cat)
}

func TestComputeUpgrade_Monotonicity(t *testing.T) {
	ta := newTierAccess(t)

	if offer := ta.ComputeUpgrade(domain.TierRoadmap, domain.TierRoadmap); offer != nil {
		t.Fatalf("equal tiers must not produce an offer, got %+v", offer)
	}
	if offer := ta.ComputeUpgrade(domain.TierBlueprint, domain.TierRoadmap); offer != nil {
		t.Fatalf("downgrade must not produce an offer, got %+v", offer)
	}

	roadmapUp := ta.ComputeUpgrade(domain.TierRoadmap, domain.TierBlueprint)
	if roadmapUp == nil {
		t.Fatalf("expected offer for roadmap -> blueprint")
	}
	personalityUp := ta.ComputeUpgrade(domain.TierPersonality, domain.TierBlueprint)
	if personalityUp == nil {
		t.Fatalf("expected offer for personality -> blueprint")
	}
	// La asimetria de la tabla se preserva: no hay formula por distancia.
	if roadmapUp.PriceCents == personalityUp.PriceCents {
		t.Fatalf("expected distinct prices for the two paths to blueprint, both %d", roadmapUp.PriceCents)
	}
}

func TestComputeUpgrade_SiblingsAreIncomparable(t *testing.T) {
	ta := newTierAccess(t)

	if offer := ta.ComputeUpgrade(domain.TierRoadmap, domain.TierPersonality); offer != nil {
		t.Fatalf("siblings must not offer upgrades, got %+v", offer)
	}
	if offer := ta.ComputeUpgrade(domain.TierPersonality, domain.TierRoadmap); offer != nil {
		t.Fatalf("siblings must not offer upgrades, got %+v", offer)
	}
}

func TestComputeUpgrade_FromNone(t *testing.T) {
	ta := newTierAccess(t)

	for _, to := range []domain.PremiumTier{domain.TierRoadmap, domain.TierPersonality, domain.TierBlueprint} {
		offer := ta.ComputeUpgrade(domain.TierNone, to)
		if offer == nil {
			t.Fatalf("expected offer none -> %s", to)
		}
		if offer.PriceCents <= 0 {
			t.Fatalf("expected positive price for none -> %s", to)
		}
	}
}

func TestIsAccessible_ScenarioC(t *testing.T) {
	ta := newTierAccess(t)

	// Comprador con roadmap pide una seccion solo-blueprint.
	ok, err := ta.IsAccessibleKey("action_plan", domain.TierRoadmap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("roadmap must not access blueprint-only content")
	}
	if offer := ta.ComputeUpgrade(domain.TierRoadmap, domain.TierBlueprint); offer == nil {
		t.Fatalf("expected a non-nil upgrade offer to blueprint")
	}
}

func TestComputeUpgrade_ScenarioD(t *testing.T) {
	ta := newTierAccess(t)
	if offer := ta.ComputeUpgrade(domain.TierBlueprint, domain.TierRoadmap); offer != nil {
		t.Fatalf("blueprint already contains roadmap, got %+v", offer)
	}
}

func TestIsAccessible_Membership(t *testing.T) {
	ta := newTierAccess(t)

	cases := []struct {
		section string
		tier    domain.PremiumTier
		want    bool
	}{
		{"overview", domain.TierNone, true},
		{"overview", domain.TierBlueprint, true},
		{"career_roadmap", domain.TierNone, false},
		{"career_roadmap", domain.TierRoadmap, true},
		{"career_roadmap", domain.TierPersonality, false}, // hermanos: personality no otorga roadmap
		{"career_roadmap", domain.TierBlueprint, true},
		{"personality_deep_dive", domain.TierRoadmap, false},
		{"personality_deep_dive", domain.TierPersonality, true},
		{"action_plan", domain.TierPersonality, false},
		{"action_plan", domain.TierBlueprint, true},
	}
	for _, tc := range cases {
		got, err := ta.IsAccessibleKey(tc.section, tc.tier)
		if err != nil {
			t.Fatalf("unexpected error for %s/%s: %v", tc.section, tc.tier, err)
		}
		if got != tc.want {
			t.Fatalf("IsAccessible(%s, %s) = %v, want %v", tc.section, tc.tier, got, tc.want)
		}
	}

	if _, err := ta.IsAccessibleKey("ghost_section", domain.TierBlueprint); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestFilter_GrowsWithTier(t *testing.T) {
	ta := newTierAccess(t)

	free := ta.Filter(domain.TierNone)
	blueprint := ta.Filter(domain.TierBlueprint)
	if len(free) == 0 {
		t.Fatalf("free tier must still see free sections")
	}
	if len(blueprint) <= len(free) {
		t.Fatalf("blueprint must see strictly more sections than free: %d vs %d", len(blueprint), len(free))
	}
	// Todo lo visible gratis sigue visible con blueprint.
	for _, s := range free {
		found := false
		for _, b := range blueprint {
			if b.Key == s.Key {
				found = true
			}
		}
		if !found {
			t.Fatalf("section %q lost when upgrading", s.Key)
		}
	}
}

func TestApplyUpgrade_Transitions(t *testing.T) {
	ta := newTierAccess(t)

	got, err := ta.ApplyUpgrade(domain.TierNone, domain.TierRoadmap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.TierRoadmap {
		t.Fatalf("expected roadmap, got %s", got)
	}

	got, err = ta.ApplyUpgrade(domain.TierRoadmap, domain.TierBlueprint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.TierBlueprint {
		t.Fatalf("expected blueprint, got %s", got)
	}

	if _, err := ta.ApplyUpgrade(domain.TierRoadmap, domain.TierRoadmap); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned for re-purchase, got %v", err)
	}
	if _, err := ta.ApplyUpgrade(domain.TierBlueprint, domain.TierRoadmap); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned for implied tier, got %v", err)
	}
	if _, err := ta.ApplyUpgrade(domain.TierRoadmap, domain.TierPersonality); !errors.Is(err, ErrNoUpgradePath) {
		t.Fatalf("expected ErrNoUpgradePath between siblings, got %v", err)
	}
	if _, err := ta.ApplyUpgrade(domain.TierRoadmap, "platinum"); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
}

func TestOffers_ListsOnlyReachableTargets(t *testing.T) {
	ta := newTierAccess(t)

	fromNone := ta.Offers(domain.TierNone)
	if len(fromNone) != 3 {
		t.Fatalf("expected three offers from none, got %d", len(fromNone))
	}
	fromBlueprint := ta.Offers(domain.TierBlueprint)
	if len(fromBlueprint) != 0 {
		t.Fatalf("expected no offers from blueprint, got %d", len(fromBlueprint))
	}
}
