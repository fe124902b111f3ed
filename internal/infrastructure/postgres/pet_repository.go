package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
	"github.com/ryjtoh/mydevduck-api/internal/domain/repository"
)

const petColumns = `id, user_id, name, health, happiness, hunger, level, xp,
	last_fed_at, last_played_at, created_at, updated_at, is_dead`

type PetRepository struct {
	pool *pgxpool.Pool
}

func NewPetRepository(pool *pgxpool.Pool) *PetRepository {
	return &PetRepository{pool: pool}
}

func scanPet(row pgx.Row) (*entity.Pet, error) {
	p := &entity.Pet{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Health, &p.Happiness,
		&p.Hunger, &p.Level, &p.XP, &p.LastFedAt, &p.LastPlayedAt,
		&p.CreatedAt, &p.UpdatedAt, &p.IsDead); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PetRepository) Create(p *entity.Pet) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO pets (user_id, name, health, happiness, hunger, level, xp, is_dead)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Name, p.Health, p.Happiness, p.Hunger, p.Level, p.XP, p.IsDead)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PetRepository) GetByIDAndUser(id, userID string) (*entity.Pet, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, id, userID)
	return scanPet(row)
}

const petUpdateSQL = `
	UPDATE pets
	SET name = $1, health = $2, happiness = $3, hunger = $4, level = $5,
	    xp = $6, last_fed_at = $7, last_played_at = $8, updated_at = $9,
	    is_dead = $10
	WHERE id = $11 AND deleted_at IS NULL`

func (r *PetRepository) Update(p *entity.Pet) error {
	ctx := context.Background()
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}

	res, err := r.pool.Exec(ctx, petUpdateSQL,
		p.Name, p.Health, p.Happiness, p.Hunger, p.Level,
		p.XP, p.LastFedAt, p.LastPlayedAt, p.UpdatedAt, p.IsDead, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at; the row stays behind for audit but is
// invisible to every query in this repository.
func (r *PetRepository) SoftDelete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE pets SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

// CountByUser counts live pets only; dead pets do not hold a slot.
func (r *PetRepository) CountByUser(userID string) (int64, error) {
	ctx := context.Background()
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM pets
		WHERE user_id = $1 AND is_dead = FALSE AND deleted_at IS NULL
	`, userID).Scan(&n)
	return n, err
}

func (r *PetRepository) ExistsByUserAndName(userID, name string) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pets
			WHERE user_id = $1 AND name = $2 AND deleted_at IS NULL
		)
	`, userID, name).Scan(&exists)
	return exists, err
}

func (r *PetRepository) FindNeedingAttention(userID string) ([]*entity.Pet, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE user_id = $1 AND deleted_at IS NULL AND is_dead = FALSE
		  AND (hunger < 30 OR happiness < 30 OR health < 30)
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPets(rows)
}

func (r *PetRepository) FindAlive(limit, offset int) ([]*entity.Pet, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE is_dead = FALSE AND deleted_at IS NULL
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPets(rows)
}

// UpdateAllTx writes one decay page atomically: every pet in the slice is
// persisted or none is.
func (r *PetRepository) UpdateAllTx(pets []*entity.Pet) error {
	if len(pets) == 0 {
		return nil
	}
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, p := range pets {
		batch.Queue(petUpdateSQL,
			p.Name, p.Health, p.Happiness, p.Hunger, p.Level,
			p.XP, p.LastFedAt, p.LastPlayedAt, p.UpdatedAt, p.IsDead, p.ID)
	}
	br := tx.SendBatch(ctx, batch)
	for range pets {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func collectPets(rows pgx.Rows) ([]*entity.Pet, error) {
	var pets []*entity.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

var _ repository.PetRepository = (*PetRepository)(nil)
