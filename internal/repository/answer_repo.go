package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ikigai-engine/internal/domain"
)

// AnswerRepository persiste respuestas de una sesion. El upsert materializa
// la semantica del dominio: volver a responder una pregunta sobreescribe la
// fila, nunca agrega otra.
type AnswerRepository interface {
	Upsert(ctx context.Context, sessionID string, answer domain.Answer) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.Answer, error)
}

type PgAnswerRepository struct {
	pool *pgxpool.Pool
}

func NewPgAnswerRepository(pool *pgxpool.Pool) *PgAnswerRepository {
	return &PgAnswerRepository{pool: pool}
}

func (r *PgAnswerRepository) Upsert(ctx context.Context, sessionID string, answer domain.Answer) error {
	const query = `
		INSERT INTO answers (session_id, question_id, option_index, answered_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, question_id)
		DO UPDATE SET
			option_index = EXCLUDED.option_index,
			answered_at = EXCLUDED.answered_at
	`

	_, err := r.pool.Exec(ctx, query,
		sessionID,
		answer.QuestionID,
		answer.OptionIndex,
		answer.AnsweredAt,
	)
	return err
}

func (r *PgAnswerRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Answer, error) {
	const query = `
		SELECT question_id, option_index, answered_at
		FROM answers
		WHERE session_id = $1
		ORDER BY answered_at
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(&a.QuestionID, &a.OptionIndex, &a.AnsweredAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return answers, nil
}
