package service

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"ikigai-engine/internal/catalog"
	"ikigai-engine/internal/domain"
)

func quickBank(t *testing.T) []domain.Question {
	t.Helper()
	bank, ok := catalog.Default().Bank(domain.KindQuick)
	if !ok {
		t.Fatalf("expected quick bank in default catalog")
	}
	return bank
}

func answer(questionID string, option int) domain.Answer {
	return domain.Answer{QuestionID: questionID, OptionIndex: option, AnsweredAt: time.Now().UTC()}
}

func TestAggregate_ScenarioA(t *testing.T) {
	// Cuatro preguntas, cada opcion elegida aporta 1 punto a exactamente
	// una categoria: passion, passion, mission, vocation.
	questions := []domain.Question{
		{ID: "p1", Category: domain.CategoryPassion, Options: []domain.AnswerOption{{Contribution: domain.ScoreContribution{Categories: map[domain.Category]int{domain.CategoryPassion: 1}}}}},
		{ID: "p2", Category: domain.CategoryPassion, Options: []domain.AnswerOption{{Contribution: domain.ScoreContribution{Categories: map[domain.Category]int{domain.CategoryPassion: 1}}}}},
		{ID: "m1", Category: domain.CategoryMission, Options: []domain.AnswerOption{{Contribution: domain.ScoreContribution{Categories: map[domain.Category]int{domain.CategoryMission: 1}}}}},
		{ID: "v1", Category: domain.CategoryVocation, Options: []domain.AnswerOption{{Contribution: domain.ScoreContribution{Categories: map[domain.Category]int{domain.CategoryVocation: 1}}}}},
	}
	answers := []domain.Answer{answer("p1", 0), answer("p2", 0), answer("m1", 0), answer("v1", 0)}

	vector, err := DefaultScoreAggregator.Aggregate(questions, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.ScoreVector{Passion: 2, Mission: 1, Vocation: 1, Profession: 0}
	if vector.Passion != want.Passion || vector.Mission != want.Mission ||
		vector.Vocation != want.Vocation || vector.Profession != want.Profession {
		t.Fatalf("expected %+v, got %+v", want, vector)
	}
}

func TestAggregate_OrderIndependence(t *testing.T) {
	questions := quickBank(t)
	answers := []domain.Answer{
		answer("q-quick-01", 0),
		answer("q-quick-03", 0),
		answer("q-quick-05", 1),
		answer("q-quick-07", 0),
		answer("q-quick-08", 0),
	}

	base, err := DefaultScoreAggregator.Aggregate(questions, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]domain.Answer, len(answers))
		copy(shuffled, answers)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := DefaultScoreAggregator.Aggregate(questions, shuffled)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Passion != base.Passion || got.Mission != base.Mission ||
			got.Vocation != base.Vocation || got.Profession != base.Profession {
			t.Fatalf("permutation %d changed the vector: %+v vs %+v", i, got, base)
		}
	}
}

func TestAggregate_ReanswerReplaces(t *testing.T) {
	questions := quickBank(t)

	first := answer("q-quick-01", 0)  // aporta 1 a passion
	second := answer("q-quick-01", 2) // opcion neutral, aporta 0

	both, err := DefaultScoreAggregator.Aggregate(questions, []domain.Answer{first, second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	onlySecond, err := DefaultScoreAggregator.Aggregate(questions, []domain.Answer{second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if both.Passion != onlySecond.Passion || both.Total() != onlySecond.Total() {
		t.Fatalf("re-answer must replace, not add: %+v vs %+v", both, onlySecond)
	}
	if both.Passion != 0 {
		t.Fatalf("expected neutral option to contribute nothing, got passion=%d", both.Passion)
	}
}

func TestAggregate_PartialSession(t *testing.T) {
	questions := quickBank(t)

	vector, err := DefaultScoreAggregator.Aggregate(questions, []domain.Answer{answer("q-quick-04", 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vector.Mission != 1 || vector.Total() != 1 {
		t.Fatalf("expected single mission point, got %+v", vector)
	}

	empty, err := DefaultScoreAggregator.Aggregate(questions, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Total() != 0 {
		t.Fatalf("expected zero vector for no answers, got %+v", empty)
	}
}

func TestAggregate_InvalidAnswers(t *testing.T) {
	questions := quickBank(t)

	if _, err := DefaultScoreAggregator.Aggregate(questions, []domain.Answer{answer("ghost", 0)}); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for unknown question, got %v", err)
	}
	if _, err := DefaultScoreAggregator.Aggregate(questions, []domain.Answer{answer("q-quick-01", 99)}); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for option out of range, got %v", err)
	}
	if _, err := DefaultScoreAggregator.Aggregate(questions, []domain.Answer{answer("q-quick-01", -1)}); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for negative option, got %v", err)
	}
}

func TestAggregate_MultiDimensionContribution(t *testing.T) {
	full, ok := catalog.Default().Bank(domain.KindFull)
	if !ok {
		t.Fatalf("expected full bank in default catalog")
	}

	// q-full-12 opcion 0 aporta a passion y profession a la vez.
	vector, err := DefaultScoreAggregator.Aggregate(full, []domain.Answer{answer("q-full-12", 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vector.Passion != 1 || vector.Profession != 1 {
		t.Fatalf("expected contribution on two dimensions, got %+v", vector)
	}
	if vector.Subcategories[domain.SubStrategy] != 1 {
		t.Fatalf("expected strategy subcategory point, got %+v", vector.Subcategories)
	}
}
