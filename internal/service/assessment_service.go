package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"ikigai-engine/internal/catalog"
	"ikigai-engine/internal/domain"
	"ikigai-engine/internal/event"
	"ikigai-engine/internal/repository"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
	ErrUnknownKind      = errors.New("unknown assessment kind")
)

// AssessmentService orquesta el ciclo de vida de una sesion: registrar
// respuestas, puntuar sesiones parciales y congelar el resultado al
// completar. El computo en si es de los motores puros; aca solo hay
// coordinacion con los colaboradores de persistencia, cache y eventos.
type AssessmentService struct {
	cat        *catalog.Catalog
	sessions   repository.SessionRepository
	answers    repository.AnswerRepository
	results    repository.ResultRepository
	cache      ResultCache
	events     event.Publisher
	aggregator ScoreAggregator
	classifier Classifier
	logger     *zap.Logger
	cacheTTL   time.Duration
}

func NewAssessmentService(
	cat *catalog.Catalog,
	sessions repository.SessionRepository,
	answers repository.AnswerRepository,
	results repository.ResultRepository,
	cache ResultCache,
	events event.Publisher,
	logger *zap.Logger,
) *AssessmentService {
	if events == nil {
		events = event.NopPublisher{}
	}
	return &AssessmentService{
		cat:        cat,
		sessions:   sessions,
		answers:    answers,
		results:    results,
		cache:      cache,
		events:     events,
		aggregator: DefaultScoreAggregator,
		classifier: DefaultClassifier,
		logger:     logger,
		cacheTTL:   24 * time.Hour,
	}
}

// StartSession crea una sesion nueva sin tier (el primer tier llega recien
// con la primera compra).
func (s *AssessmentService) StartSession(ctx context.Context, userID string, kind domain.AssessmentKind) (domain.AssessmentSession, error) {
	if !kind.Valid() {
		return domain.AssessmentSession{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	session := domain.AssessmentSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Tier:      domain.TierNone,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.AssessmentSession{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Session busca una sesion existente.
func (s *AssessmentService) Session(ctx context.Context, sessionID string) (domain.AssessmentSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.AssessmentSession{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.AssessmentSession{}, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// Questions devuelve el banco de referencia para un kind.
func (s *AssessmentService) Questions(kind domain.AssessmentKind) ([]domain.Question, error) {
	bank, ok := s.cat.Bank(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return bank, nil
}

// SubmitAnswer registra (o sobreescribe) la respuesta de una pregunta y
// devuelve el vector actualizado para display de progreso. Respuestas
// invalidas fallan con ErrInvalidAnswer antes de tocar la persistencia.
func (s *AssessmentService) SubmitAnswer(ctx context.Context, sessionID, questionID string, optionIndex int) (domain.ScoreVector, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.ScoreVector{}, err
	}
	if session.Completed() {
		return domain.ScoreVector{}, ErrSessionCompleted
	}

	bank, err := s.Questions(session.Kind)
	if err != nil {
		return domain.ScoreVector{}, err
	}

	answer := domain.Answer{
		QuestionID:  questionID,
		OptionIndex: optionIndex,
		AnsweredAt:  time.Now().UTC(),
	}
	// Validacion via agregado de una sola respuesta: mismo codigo, mismos
	// errores.
	if _, err := s.aggregator.Aggregate(bank, []domain.Answer{answer}); err != nil {
		return domain.ScoreVector{}, err
	}

	if err := s.answers.Upsert(ctx, sessionID, answer); err != nil {
		return domain.ScoreVector{}, fmt.Errorf("upsert answer: %w", err)
	}
	return s.scoreSession(ctx, session)
}

// Score recalcula el vector de la sesion en cada lectura. Las sesiones
// parciales tambien se puntuan.
func (s *AssessmentService) Score(ctx context.Context, sessionID string) (domain.ScoreVector, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.ScoreVector{}, err
	}
	return s.scoreSession(ctx, session)
}

func (s *AssessmentService) scoreSession(ctx context.Context, session domain.AssessmentSession) (domain.ScoreVector, error) {
	bank, err := s.Questions(session.Kind)
	if err != nil {
		return domain.ScoreVector{}, err
	}
	answers, err := s.answers.ListBySession(ctx, session.ID)
	if err != nil {
		return domain.ScoreVector{}, fmt.Errorf("list answers: %w", err)
	}
	return s.aggregator.Aggregate(bank, answers)
}

// Result devuelve la clasificacion actual. Para sesiones completadas sirve
// el resultado congelado (cache, luego repo); para sesiones en curso
// recomputa el "mejor candidato hasta ahora".
func (s *AssessmentService) Result(ctx context.Context, sessionID string) (domain.ClassificationResult, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	if session.Completed() {
		if s.cache != nil {
			if cached, ok, err := s.cache.Get(sessionID); err == nil && ok {
				return cached, nil
			} else if err != nil && s.logger != nil {
				s.logger.Warn("result cache read failed", zap.Error(err), zap.String("session_id", sessionID))
			}
		}
		stored, err := s.results.GetBySession(ctx, sessionID)
		if err == nil {
			return stored.Result, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return domain.ClassificationResult{}, fmt.Errorf("get stored result: %w", err)
		}
	}

	return s.classifySession(ctx, session)
}

func (s *AssessmentService) classifySession(ctx context.Context, session domain.AssessmentSession) (domain.ClassificationResult, error) {
	vector, err := s.scoreSession(ctx, session)
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	table, ok := s.cat.Table(session.Kind)
	if !ok {
		return domain.ClassificationResult{}, fmt.Errorf("%w: %q", ErrUnknownKind, session.Kind)
	}
	return s.classifier.Classify(vector, table, s.cat.CategoryMaxima(session.Kind))
}

// Complete marca la sesion como completa, congela el resultado y publica el
// evento. Completar dos veces es error, no un no-op silencioso.
func (s *AssessmentService) Complete(ctx context.Context, sessionID string) (domain.ClassificationResult, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	if session.Completed() {
		return domain.ClassificationResult{}, ErrSessionCompleted
	}

	vector, err := s.scoreSession(ctx, session)
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	table, ok := s.cat.Table(session.Kind)
	if !ok {
		return domain.ClassificationResult{}, fmt.Errorf("%w: %q", ErrUnknownKind, session.Kind)
	}
	result, err := s.classifier.Classify(vector, table, s.cat.CategoryMaxima(session.Kind))
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	now := time.Now().UTC()
	if err := s.sessions.MarkCompleted(ctx, sessionID, now); err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("mark completed: %w", err)
	}

	stored := domain.StoredResult{SessionID: sessionID, Result: result, CreatedAt: now}
	if err := s.results.Save(ctx, stored, resultEmbedding(vector)); err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("save result: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(sessionID, result, s.cacheTTL); err != nil && s.logger != nil {
			s.logger.Warn("result cache write failed", zap.Error(err), zap.String("session_id", sessionID))
		}
	}

	if err := s.events.Publish(event.TypeSessionCompleted, map[string]interface{}{
		"session_id":   sessionID,
		"user_id":      session.UserID,
		"kind":         session.Kind,
		"primary_type": result.PrimaryType,
	}); err != nil && s.logger != nil {
		s.logger.Warn("publish session completed failed", zap.Error(err), zap.String("session_id", sessionID))
	}

	if s.logger != nil {
		s.logger.Info("session completed",
			zap.String("session_id", sessionID),
			zap.String("primary_type", string(result.PrimaryType)),
			zap.Int("overall_score", result.OverallScore),
		)
	}
	return result, nil
}

// SimilarProfiles busca sesiones con vectores cercanos a la dada.
func (s *AssessmentService) SimilarProfiles(ctx context.Context, sessionID string, k int) ([]repository.SimilarProfile, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	vector, err := s.scoreSession(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.results.FindSimilar(ctx, resultEmbedding(vector), sessionID, k)
}

// resultEmbedding arma el vector posicional de 15 dimensiones (4 categorias
// en orden canonico + 11 subcategorias en orden canonico) usado para la
// busqueda de perfiles similares.
func resultEmbedding(vector domain.ScoreVector) pgvector.Vector {
	values := make([]float32, 0, len(domain.Categories)+len(domain.Subcategories))
	for _, cat := range domain.Categories {
		values = append(values, float32(vector.Get(cat)))
	}
	for _, sub := range domain.Subcategories {
		values = append(values, float32(vector.Subcategories[sub]))
	}
	return pgvector.NewVector(values)
}
