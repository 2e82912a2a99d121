package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"ikigai-engine/internal/domain"
)

// SimilarProfile es una fila de la busqueda de perfiles parecidos: la sesion
// vecina y su arquetipo primario.
type SimilarProfile struct {
	SessionID   string              `json:"session_id"`
	PrimaryType domain.ArchetypeKey `json:"primary_type"`
	PrimaryName string              `json:"primary_name"`
}

// ResultRepository congela el resultado de clasificacion al completar la
// sesion. El vector normalizado (4 categorias + 11 subcategorias) se guarda
// como embedding para ordenar por cercania con pgvector.
type ResultRepository interface {
	Save(ctx context.Context, result domain.StoredResult, embedding pgvector.Vector) error
	GetBySession(ctx context.Context, sessionID string) (domain.StoredResult, error)
	FindSimilar(ctx context.Context, embedding pgvector.Vector, excludeSessionID string, k int) ([]SimilarProfile, error)
}

type PgResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgResultRepository(pool *pgxpool.Pool) *PgResultRepository {
	return &PgResultRepository{pool: pool}
}

func (r *PgResultRepository) Save(ctx context.Context, result domain.StoredResult, embedding pgvector.Vector) error {
	payload, err := json.Marshal(result.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	const query = `
		INSERT INTO assessment_results (session_id, result, embedding, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id)
		DO UPDATE SET
			result = EXCLUDED.result,
			embedding = EXCLUDED.embedding,
			created_at = EXCLUDED.created_at
	`
	_, err = r.pool.Exec(ctx, query,
		result.SessionID,
		payload,
		embedding,
		result.CreatedAt,
	)
	return err
}

func (r *PgResultRepository) GetBySession(ctx context.Context, sessionID string) (domain.StoredResult, error) {
	const query = `
		SELECT session_id, result, created_at
		FROM assessment_results
		WHERE session_id = $1
	`
	var stored domain.StoredResult
	var payload []byte
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(&stored.SessionID, &payload, &stored.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StoredResult{}, ErrNotFound
	}
	if err != nil {
		return domain.StoredResult{}, err
	}
	if err := json.Unmarshal(payload, &stored.Result); err != nil {
		return domain.StoredResult{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return stored, nil
}

func (r *PgResultRepository) FindSimilar(ctx context.Context, embedding pgvector.Vector, excludeSessionID string, k int) ([]SimilarProfile, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT session_id, result->>'primary_type', result->>'primary_name'
		FROM assessment_results
		WHERE session_id <> $1
		ORDER BY embedding <=> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, excludeSessionID, embedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []SimilarProfile
	for rows.Next() {
		var p SimilarProfile
		var primaryType string
		if err := rows.Scan(&p.SessionID, &primaryType, &p.PrimaryName); err != nil {
			return nil, err
		}
		p.PrimaryType = domain.ArchetypeKey(primaryType)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
