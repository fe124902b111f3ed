package entity

import "time"

// Pet belongs to exactly one user. Health, happiness and hunger are kept
// in [0,100] by every mutation path; a pet whose health reaches 0 is dead
// and stays dead until revived. Level is derivable from XP (xp/100) and
// the derived value is authoritative for stats display.
type Pet struct {
	ID           string
	UserID       string
	Name         string
	Health       int
	Happiness    int
	Hunger       int
	Level        int
	XP           int
	LastFedAt    *time.Time
	LastPlayedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
	IsDead       bool
}

// NewPet returns a pet with the starting stat block.
func NewPet(userID, name string) *Pet {
	return &Pet{
		UserID:    userID,
		Name:      name,
		Health:    100,
		Happiness: 100,
		Hunger:    50,
		Level:     1,
		XP:        0,
		IsDead:    false,
	}
}
