package service

import (
	"errors"
	"testing"

	"ikigai-engine/internal/catalog"
	"ikigai-engine/internal/domain"
)

func quickTable(t *testing.T) (domain.ArchetypeTable, map[domain.Category]int) {
	t.Helper()
	cat := catalog.Default()
	table, ok := cat.Table(domain.KindQuick)
	if !ok {
		t.Fatalf("expected quick table in default catalog")
	}
	return table, cat.CategoryMaxima(domain.KindQuick)
}

func TestClassify_ScenarioA_PassionDominant(t *testing.T) {
	table, maxima := quickTable(t)
	vector := domain.ScoreVector{Passion: 2, Mission: 1, Vocation: 1, Profession: 0}

	result, err := DefaultClassifier.Classify(vector, table, maxima)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PrimaryType != catalog.ArchCreativeEnthusiast {
		t.Fatalf("expected passion-dominant primary, got %q", result.PrimaryType)
	}
	// mission y vocation empatan en 1; la prioridad configurada pone a
	// mission primero.
	if result.SecondaryType != catalog.ArchCompassionateHelper {
		t.Fatalf("expected mission archetype as secondary, got %q", result.SecondaryType)
	}
	if result.OverallScore != 4 {
		t.Fatalf("expected overall 4, got %d", result.OverallScore)
	}
}

func TestClassify_ScenarioB_AllZero(t *testing.T) {
	table, maxima := quickTable(t)

	first, err := DefaultClassifier.Classify(domain.ScoreVector{}, table, maxima)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.OverallScore != 0 {
		t.Fatalf("expected overall 0, got %d", first.OverallScore)
	}
	// Empate total en cero: decide la lista de prioridad, no es error.
	if first.PrimaryType != catalog.ArchCreativeEnthusiast {
		t.Fatalf("expected first-priority archetype, got %q", first.PrimaryType)
	}
	if first.SecondaryType != catalog.ArchCompassionateHelper {
		t.Fatalf("expected second-priority archetype, got %q", first.SecondaryType)
	}

	for i := 0; i < 10; i++ {
		again, err := DefaultClassifier.Classify(domain.ScoreVector{}, table, maxima)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.PrimaryType != first.PrimaryType || again.SecondaryType != first.SecondaryType {
			t.Fatalf("classification is not deterministic: (%q,%q) vs (%q,%q)",
				again.PrimaryType, again.SecondaryType, first.PrimaryType, first.SecondaryType)
		}
	}
}

func TestClassify_TieBreakMatchesConfiguredPriority(t *testing.T) {
	table, maxima := quickTable(t)

	// vocation y profession empatados y estrictamente maximos.
	vector := domain.ScoreVector{Passion: 0, Mission: 0, Vocation: 2, Profession: 2}
	result, err := DefaultClassifier.Classify(vector, table, maxima)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// La tabla quick prioriza vocation (skilled_builder) sobre profession.
	if result.PrimaryType != catalog.ArchSkilledBuilder {
		t.Fatalf("tie-break must follow configured priority, got %q", result.PrimaryType)
	}
	if result.SecondaryType != catalog.ArchStrategicAchiever {
		t.Fatalf("expected profession archetype as secondary, got %q", result.SecondaryType)
	}
}

func TestClassify_SecondaryNeverEqualsPrimary(t *testing.T) {
	table, maxima := quickTable(t)

	vectors := []domain.ScoreVector{
		{},
		{Passion: 5},
		{Passion: 3, Mission: 3, Vocation: 3, Profession: 3},
		{Mission: 1, Profession: 4},
		{Passion: 2, Mission: 1, Vocation: 1},
	}
	for _, v := range vectors {
		result, err := DefaultClassifier.Classify(v, table, maxima)
		if err != nil {
			t.Fatalf("unexpected error for %+v: %v", v, err)
		}
		if result.PrimaryType == result.SecondaryType {
			t.Fatalf("secondary equals primary for %+v: %q", v, result.PrimaryType)
		}
	}
}

func TestClassify_BlendedArchetypes(t *testing.T) {
	cat := catalog.Default()
	table, ok := cat.Table(domain.KindFull)
	if !ok {
		t.Fatalf("expected full table in default catalog")
	}
	maxima := cat.CategoryMaxima(domain.KindFull)

	// passion+mission altos: gana el arquetipo mezclado sobre esas dos.
	vector := domain.ScoreVector{Passion: 3, Mission: 3, Vocation: 1, Profession: 0}
	result, err := DefaultClassifier.Classify(vector, table, maxima)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PrimaryType != catalog.ArchVisionaryDreamer {
		t.Fatalf("expected passion+mission blend to win, got %q", result.PrimaryType)
	}
}

func TestClassify_NormalizedScores(t *testing.T) {
	table, _ := quickTable(t)
	maxima := map[domain.Category]int{
		domain.CategoryPassion:    2,
		domain.CategoryMission:    2,
		domain.CategoryVocation:   2,
		domain.CategoryProfession: 2,
	}

	vector := domain.ScoreVector{Passion: 2, Mission: 1}
	result, err := DefaultClassifier.Classify(vector, table, maxima)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.NormalizedScores[domain.CategoryPassion]; got != 100 {
		t.Fatalf("expected passion 100, got %d", got)
	}
	if got := result.NormalizedScores[domain.CategoryMission]; got != 50 {
		t.Fatalf("expected mission 50, got %d", got)
	}
	if got := result.NormalizedScores[domain.CategoryProfession]; got != 0 {
		t.Fatalf("expected profession 0, got %d", got)
	}
	if got := result.CategoryScores[domain.CategoryPassion]; got != 2 {
		t.Fatalf("expected raw passion 2, got %d", got)
	}
}

func TestClassify_StrengthsComeFromWinningDefinition(t *testing.T) {
	table, maxima := quickTable(t)

	vector := domain.ScoreVector{Profession: 3}
	result, err := DefaultClassifier.Classify(vector, table, maxima)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var winner domain.ArchetypeDefinition
	for _, def := range table.Definitions {
		if def.Key == result.PrimaryType {
			winner = def
		}
	}
	if len(result.Strengths) == 0 || result.Strengths[0] != winner.Strengths[0] {
		t.Fatalf("strengths must be selected verbatim from the winning archetype")
	}
	if len(result.Recommendations.Careers) != len(winner.Recommendations.Careers) {
		t.Fatalf("recommendations must be selected verbatim from the winning archetype")
	}
}

func TestClassify_RejectsMalformedTables(t *testing.T) {
	_, maxima := quickTable(t)

	empty := domain.ArchetypeTable{}
	if _, err := DefaultClassifier.Classify(domain.ScoreVector{}, empty, maxima); !errors.Is(err, catalog.ErrInvalidArchetypeTable) {
		t.Fatalf("expected ErrInvalidArchetypeTable for empty table, got %v", err)
	}

	single := domain.ArchetypeTable{
		Definitions: []domain.ArchetypeDefinition{
			{Key: "only", Name: "Only", Weights: map[domain.Category]int{domain.CategoryPassion: 1}},
		},
		TieBreak: []domain.ArchetypeKey{"only"},
	}
	if _, err := DefaultClassifier.Classify(domain.ScoreVector{}, single, maxima); !errors.Is(err, catalog.ErrInvalidArchetypeTable) {
		t.Fatalf("expected ErrInvalidArchetypeTable for single-archetype table, got %v", err)
	}
}
