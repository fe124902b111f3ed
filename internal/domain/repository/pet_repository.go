package repository

import "github.com/ryjtoh/mydevduck-api/internal/domain/entity"

// PetRepository defines the interface for pet-related database operations.
// Reads never return soft-deleted rows.
type PetRepository interface {
	Create(p *entity.Pet) error
	GetByIDAndUser(id, userID string) (*entity.Pet, error)
	Update(p *entity.Pet) error
	SoftDelete(id string) error
	// CountByUser counts live pets; dead pets do not occupy a slot.
	CountByUser(userID string) (int64, error)
	ExistsByUserAndName(userID, name string) (bool, error)
	FindNeedingAttention(userID string) ([]*entity.Pet, error)

	// FindAlive pages through live pets for the decay job, ordered by id
	// for stable pagination.
	FindAlive(limit, offset int) ([]*entity.Pet, error)
	// UpdateAllTx persists a page of mutated pets inside one transaction.
	UpdateAllTx(pets []*entity.Pet) error
}
