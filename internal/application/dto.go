package application

import (
	"time"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
)

// Transfer shapes returned by the services. Conversion from entities is
// explicit and field-by-field; password hashes never cross this boundary.

type UserDTO struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	GithubUsername string    `json:"github_username,omitempty"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToUserDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Email:          u.Email,
		GithubUsername: u.GithubUsername,
		Role:           string(u.Role),
		CreatedAt:      u.CreatedAt,
	}
}

type AuthResponse struct {
	Token        string  `json:"token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
	User         UserDTO `json:"user"`
}

type PetDTO struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Health       int        `json:"health"`
	Happiness    int        `json:"happiness"`
	Hunger       int        `json:"hunger"`
	Level        int        `json:"level"`
	XP           int        `json:"xp"`
	IsDead       bool       `json:"is_dead"`
	LastFedAt    *time.Time `json:"last_fed_at,omitempty"`
	LastPlayedAt *time.Time `json:"last_played_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToPetDTO(p *entity.Pet) PetDTO {
	return PetDTO{
		ID:           p.ID,
		Name:         p.Name,
		Health:       p.Health,
		Happiness:    p.Happiness,
		Hunger:       p.Hunger,
		Level:        p.Level,
		XP:           p.XP,
		IsDead:       p.IsDead,
		LastFedAt:    p.LastFedAt,
		LastPlayedAt: p.LastPlayedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToPetDTOs(pets []*entity.Pet) []PetDTO {
	out := make([]PetDTO, 0, len(pets))
	for _, p := range pets {
		out = append(out, ToPetDTO(p))
	}
	return out
}

type ActivityDTO struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Metadata    string    `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToActivityDTO(a *entity.Activity) ActivityDTO {
	return ActivityDTO{
		ID:          a.ID,
		Type:        string(a.Type),
		Description: a.Description,
		Points:      a.Points,
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
	}
}
