package application

import (
	"time"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
)

// PetStatus is the qualitative condition shown on the stats view.
type PetStatus string

const (
	StatusHealthy PetStatus = "HEALTHY"
	StatusHungry  PetStatus = "HUNGRY"
	StatusSad     PetStatus = "SAD"
	StatusDying   PetStatus = "DYING"
)

type PetStatsDTO struct {
	TotalXP        int       `json:"total_xp"`
	CurrentLevel   int       `json:"current_level"`
	NextLevelXP    int       `json:"next_level_xp"`
	XPToNextLevel  int       `json:"xp_to_next_level"`
	Health         int       `json:"health"`
	Happiness      int       `json:"happiness"`
	Hunger         int       `json:"hunger"`
	Status         PetStatus `json:"status"`
	NeedsAttention bool      `json:"needs_attention"`

	HoursSinceLastFed    *int64     `json:"hours_since_last_fed,omitempty"`
	HoursSinceLastPlayed *int64     `json:"hours_since_last_played,omitempty"`
	AgeInHours           int64      `json:"age_in_hours"`
	LastFedAt            *time.Time `json:"last_fed_at,omitempty"`
	LastPlayedAt         *time.Time `json:"last_played_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// determineStatus walks the precedence ladder: DYING beats SAD beats
// HUNGRY. Health is deliberately not part of the ladder; it only feeds
// the needs-attention flag.
func determineStatus(happiness, hunger int) PetStatus {
	if hunger < 20 || happiness < 20 {
		return StatusDying
	}
	if happiness < 50 {
		return StatusSad
	}
	if hunger < 50 {
		return StatusHungry
	}
	return StatusHealthy
}

// BuildPetStats derives the stats view from a pet snapshot at the given
// instant. The level shown is always xp/100, regardless of the stored
// level field.
func BuildPetStats(p *entity.Pet, now time.Time) PetStatsDTO {
	level := p.XP / 100
	nextLevelXP := (level + 1) * 100

	stats := PetStatsDTO{
		TotalXP:        p.XP,
		CurrentLevel:   level,
		NextLevelXP:    nextLevelXP,
		XPToNextLevel:  nextLevelXP - p.XP,
		Health:         p.Health,
		Happiness:      p.Happiness,
		Hunger:         p.Hunger,
		Status:         determineStatus(p.Happiness, p.Hunger),
		NeedsAttention: p.Health < 30 || p.Happiness < 30 || p.Hunger < 30,
		LastFedAt:      p.LastFedAt,
		LastPlayedAt:   p.LastPlayedAt,
		CreatedAt:      p.CreatedAt,
		AgeInHours:     int64(now.Sub(p.CreatedAt).Hours()),
	}

	if p.LastFedAt != nil {
		h := int64(now.Sub(*p.LastFedAt).Hours())
		stats.HoursSinceLastFed = &h
	}
	if p.LastPlayedAt != nil {
		h := int64(now.Sub(*p.LastPlayedAt).Hours())
		stats.HoursSinceLastPlayed = &h
	}

	return stats
}
