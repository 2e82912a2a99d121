package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ikigai-engine/internal/domain"
)

// ErrNotFound marca una fila inexistente sin exponer pgx al resto del
// sistema.
var ErrNotFound = errors.New("not found")

// SessionRepository persiste sesiones de assessment. El tier se actualiza
// solo a traves de UpdateTier tras una compra validada; la capa de servicio
// garantiza la monotonia.
type SessionRepository interface {
	Create(ctx context.Context, session domain.AssessmentSession) error
	GetByID(ctx context.Context, id string) (domain.AssessmentSession, error)
	MarkCompleted(ctx context.Context, id string, at time.Time) error
	UpdateTier(ctx context.Context, id string, tier domain.PremiumTier) error
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.AssessmentSession) error {
	const query = `
		INSERT INTO assessment_sessions (id, user_id, kind, tier, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		string(session.Kind),
		string(session.Tier),
		session.CompletedAt,
		session.CreatedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.AssessmentSession, error) {
	const query = `
		SELECT id, user_id, kind, tier, completed_at, created_at
		FROM assessment_sessions
		WHERE id = $1
	`
	var session domain.AssessmentSession
	var kind, tier string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&kind,
		&tier,
		&session.CompletedAt,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AssessmentSession{}, ErrNotFound
	}
	if err != nil {
		return domain.AssessmentSession{}, err
	}
	session.Kind = domain.AssessmentKind(kind)
	session.Tier = domain.PremiumTier(tier)
	return session, nil
}

func (r *PgSessionRepository) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	const query = `
		UPDATE assessment_sessions
		SET completed_at = $2
		WHERE id = $1 AND completed_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgSessionRepository) UpdateTier(ctx context.Context, id string, tier domain.PremiumTier) error {
	const query = `
		UPDATE assessment_sessions
		SET tier = $2
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, string(tier))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
