package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	pgvector "github.com/pgvector/pgvector-go"

	"ikigai-engine/internal/catalog"
	"ikigai-engine/internal/domain"
	"ikigai-engine/internal/repository"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.AssessmentSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]domain.AssessmentSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s domain.AssessmentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (domain.AssessmentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.AssessmentSession{}, repository.ErrNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) MarkCompleted(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.CompletedAt != nil {
		return repository.ErrNotFound
	}
	s.CompletedAt = &at
	r.sessions[id] = s
	return nil
}

func (r *fakeSessionRepo) UpdateTier(_ context.Context, id string, tier domain.PremiumTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Tier = tier
	r.sessions[id] = s
	return nil
}

type fakeAnswerRepo struct {
	mu      sync.Mutex
	answers map[string]map[string]domain.Answer
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{answers: make(map[string]map[string]domain.Answer)}
}

func (r *fakeAnswerRepo) Upsert(_ context.Context, sessionID string, a domain.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.answers[sessionID] == nil {
		r.answers[sessionID] = make(map[string]domain.Answer)
	}
	r.answers[sessionID][a.QuestionID] = a
	return nil
}

func (r *fakeAnswerRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Answer
	for _, a := range r.answers[sessionID] {
		out = append(out, a)
	}
	return out, nil
}

type fakeResultRepo struct {
	mu     sync.Mutex
	stored map[string]domain.StoredResult
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{stored: make(map[string]domain.StoredResult)}
}

func (r *fakeResultRepo) Save(_ context.Context, result domain.StoredResult, _ pgvector.Vector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored[result.SessionID] = result
	return nil
}

func (r *fakeResultRepo) GetBySession(_ context.Context, sessionID string) (domain.StoredResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stored[sessionID]
	if !ok {
		return domain.StoredResult{}, repository.ErrNotFound
	}
	return s, nil
}

func (r *fakeResultRepo) FindSimilar(_ context.Context, _ pgvector.Vector, excludeSessionID string, k int) ([]repository.SimilarProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.SimilarProfile
	for id, s := range r.stored {
		if id == excludeSessionID || len(out) >= k {
			continue
		}
		out = append(out, repository.SimilarProfile{
			SessionID:   id,
			PrimaryType: s.Result.PrimaryType,
			PrimaryName: s.Result.PrimaryName,
		})
	}
	return out, nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *capturingPublisher) Publish(eventType string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *capturingPublisher) Close() {}

func newAssessmentFixture(t *testing.T) (*AssessmentService, *fakeSessionRepo, *capturingPublisher) {
	t.Helper()
	cat := catalog.Default()
	if err := cat.Validate(); err != nil {
		t.Fatalf("default catalog must validate: %v", err)
	}
	sessions := newFakeSessionRepo()
	publisher := &capturingPublisher{}
	svc := NewAssessmentService(cat, sessions, newFakeAnswerRepo(), newFakeResultRepo(), NewMemoryResultCache(), publisher, nil)
	return svc, sessions, publisher
}

func TestAssessmentService_FullLifecycle(t *testing.T) {
	svc, _, publisher := newAssessmentFixture(t)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "user-1", domain.KindQuick)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Tier != domain.TierNone {
		t.Fatalf("new sessions must start without tier, got %s", session.Tier)
	}

	vector, err := svc.SubmitAnswer(ctx, session.ID, "q-quick-01", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vector.Passion != 1 {
		t.Fatalf("expected progress vector passion=1, got %+v", vector)
	}

	// Sobreescribir la misma pregunta con la opcion neutral baja el puntaje.
	vector, err = svc.SubmitAnswer(ctx, session.ID, "q-quick-01", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vector.Passion != 0 {
		t.Fatalf("re-answer must replace: got %+v", vector)
	}

	if _, err = svc.SubmitAnswer(ctx, session.ID, "q-quick-03", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Complete(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PrimaryType != catalog.ArchCompassionateHelper {
		t.Fatalf("expected mission-dominant primary, got %q", result.PrimaryType)
	}

	if len(publisher.events) != 1 || publisher.events[0] != "assessment.session.completed" {
		t.Fatalf("expected completion event, got %v", publisher.events)
	}

	// Despues de completar, el resultado se sirve congelado.
	again, err := svc.Result(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.PrimaryType != result.PrimaryType || again.OverallScore != result.OverallScore {
		t.Fatalf("frozen result changed: %+v vs %+v", again, result)
	}

	if _, err := svc.Complete(ctx, session.ID); !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on double complete, got %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, session.ID, "q-quick-02", 0); !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted for answers after completion, got %v", err)
	}
}

func TestAssessmentService_PartialSessionResult(t *testing.T) {
	svc, _, _ := newAssessmentFixture(t)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "user-1", domain.KindQuick)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sin respuestas: el clasificador igual entrega un mejor candidato.
	result, err := svc.Result(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OverallScore != 0 {
		t.Fatalf("expected overall 0 for empty session, got %d", result.OverallScore)
	}
	if result.PrimaryType == "" || result.PrimaryType == result.SecondaryType {
		t.Fatalf("expected deterministic (primary, secondary) pair, got (%q, %q)", result.PrimaryType, result.SecondaryType)
	}
}

func TestAssessmentService_InvalidInput(t *testing.T) {
	svc, _, _ := newAssessmentFixture(t)
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, "user-1", "marathon"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if _, err := svc.Result(ctx, "ghost"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	session, err := svc.StartSession(ctx, "user-1", domain.KindQuick)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, session.ID, "ghost-question", 0); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, session.ID, "q-quick-01", 42); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for out-of-range option, got %v", err)
	}
}

func TestAssessmentService_SimilarProfiles(t *testing.T) {
	svc, _, _ := newAssessmentFixture(t)
	ctx := context.Background()

	first, err := svc.StartSession(ctx, "user-1", domain.KindQuick)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, first.ID, "q-quick-01", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Complete(ctx, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.StartSession(ctx, "user-2", domain.KindQuick)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profiles, err := svc.SimilarProfiles(ctx, second.ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 || profiles[0].SessionID != first.ID {
		t.Fatalf("expected the completed neighbour session, got %+v", profiles)
	}
}
