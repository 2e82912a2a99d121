package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ikigai-engine/internal/domain"
)

// QuestionRepository persiste el dato de referencia de preguntas. El banco
// se siembra una vez y de ahi en mas es solo-lectura para el proceso.
type QuestionRepository interface {
	UpsertBank(ctx context.Context, kind domain.AssessmentKind, bank []domain.Question) error
	ListByKind(ctx context.Context, kind domain.AssessmentKind) ([]domain.Question, error)
}

type PgQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionRepository(pool *pgxpool.Pool) *PgQuestionRepository {
	return &PgQuestionRepository{pool: pool}
}

func (r *PgQuestionRepository) UpsertBank(ctx context.Context, kind domain.AssessmentKind, bank []domain.Question) error {
	const query = `
		INSERT INTO questions (id, kind, text, position, category, subcategory, options)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			kind = EXCLUDED.kind,
			text = EXCLUDED.text,
			position = EXCLUDED.position,
			category = EXCLUDED.category,
			subcategory = EXCLUDED.subcategory,
			options = EXCLUDED.options
	`

	for _, q := range bank {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options for %q: %w", q.ID, err)
		}
		if _, err := r.pool.Exec(ctx, query,
			q.ID,
			string(kind),
			q.Text,
			q.Position,
			string(q.Category),
			string(q.Subcategory),
			options,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgQuestionRepository) ListByKind(ctx context.Context, kind domain.AssessmentKind) ([]domain.Question, error) {
	const query = `
		SELECT id, text, position, category, subcategory, options
		FROM questions
		WHERE kind = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var category, subcategory string
		var options []byte

		if err := rows.Scan(&q.ID, &q.Text, &q.Position, &category, &subcategory, &options); err != nil {
			return nil, err
		}
		q.Category = domain.Category(category)
		q.Subcategory = domain.Subcategory(subcategory)
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options for %q: %w", q.ID, err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}
