package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
	"github.com/ryjtoh/mydevduck-api/internal/domain/repository"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Create(a *entity.Activity) error {
	ctx := context.Background()
	var metadata any
	if a.Metadata != "" {
		metadata = a.Metadata
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activities (user_id, type, description, points, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.UserID, a.Type, a.Description, a.Points, metadata)

	return row.Scan(&a.ID, &a.CreatedAt)
}

func (r *ActivityRepository) ListByUser(userID string, limit int) ([]*entity.Activity, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, description, points, COALESCE(metadata, ''), created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Activity
	for rows.Next() {
		a := &entity.Activity{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Description,
			&a.Points, &a.Metadata, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
