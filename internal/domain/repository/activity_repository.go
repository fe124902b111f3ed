package repository

import "github.com/ryjtoh/mydevduck-api/internal/domain/entity"

// ActivityRepository defines the interface for activity persistence.
// Activities are append-only; there is no update or delete.
type ActivityRepository interface {
	Create(a *entity.Activity) error
	ListByUser(userID string, limit int) ([]*entity.Activity, error)
}
