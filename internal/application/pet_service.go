package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
	repo "github.com/ryjtoh/mydevduck-api/internal/domain/repository"
	"github.com/ryjtoh/mydevduck-api/pkg/helpers"
)

const (
	maxPetsPerUser = 5
	maxPetNameLen  = 50
	petCacheTTL    = 10 * time.Minute
)

// Cache keys are scoped to the owner so a hit never serves another
// user's pet.
func petCacheKey(userID, id string) string {
	return "pet:cache:" + userID + ":" + id
}

// PetService owns every per-pet entry point: creation, care actions, stats
// derivation, death handling. All operations authenticate the raw bearer
// token themselves before touching storage. Redis is an optional
// read-through cache for Get; every mutation invalidates it.
type PetService struct {
	Pets   repo.PetRepository
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewPetService(pets repo.PetRepository, users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *PetService {
	return &PetService{Pets: pets, Users: users, JWT: jwt, Redis: rdb, Logger: logger}
}

// resolveOwner authenticates the token and loads the owning user.
func (s *PetService) resolveOwner(token string) (*entity.User, error) {
	if !s.JWT.Validate(token) {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	email, err := s.JWT.EmailFromToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		return nil, fmt.Errorf("%w: user not found", ErrInvalidRequest)
	}
	return u, nil
}

// ownedPet loads a live or dead pet owned by the caller. Existence and
// ownership collapse into one not-found error so pet ids of other users
// are not revealed.
func (s *PetService) ownedPet(u *entity.User, id string) (*entity.Pet, error) {
	p, err := s.Pets.GetByIDAndUser(id, u.ID)
	if err != nil || p == nil {
		return nil, fmt.Errorf("%w: pet not found or not owned by you", ErrNotFound)
	}
	return p, nil
}

func (s *PetService) invalidate(ctx context.Context, userID, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, petCacheKey(userID, id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("pet_id", id).Warn("pet cache invalidation failed")
	}
}

func (s *PetService) Create(ctx context.Context, token, name string) (*PetDTO, error) {
	u, err := s.resolveOwner(token)
	if err != nil {
		return nil, err
	}
	if name == "" || len(name) > maxPetNameLen {
		return nil, fmt.Errorf("%w: pet name must be 1-%d characters", ErrInvalidRequest, maxPetNameLen)
	}

	count, err := s.Pets.CountByUser(u.ID)
	if err != nil {
		return nil, err
	}
	if count >= maxPetsPerUser {
		return nil, fmt.Errorf("%w: user already has %d pets", ErrInvalidRequest, maxPetsPerUser)
	}
	exists, err := s.Pets.ExistsByUserAndName(u.ID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: user already has a pet with this name", ErrInvalidRequest)
	}

	p := entity.NewPet(u.ID, name)
	if err := s.Pets.Create(p); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"pet_id": p.ID, "user_id": u.ID}).Info("pet created")
	}
	dto := ToPetDTO(p)
	return &dto, nil
}

func (s *PetService) Get(ctx context.Context, token, id string) (*PetDTO, error) {
	u, err := s.resolveOwner(token)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		var cached PetDTO
		if ok, _ := helpers.RedisGetJSON(ctx, s.Redis, petCacheKey(u.ID, id), &cached); ok {
			return &cached, nil
		}
	}

	p, err := s.ownedPet(u, id)
	if err != nil {
		return nil, err
	}
	dto := ToPetDTO(p)

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, petCacheKey(u.ID, id), dto, petCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("pet_id", id).Warn("pet cache write failed")
		}
	}
	return &dto, nil
}

func (s *PetService) Rename(ctx context.Context, token, id, newName string) (*PetDTO, error) {
	u, err := s.resolveOwner(token)
	if err != nil {
		return nil, err
	}
	if newName == "" || len(newName) > maxPetNameLen {
		return nil, fmt.Errorf("%w: pet name must be 1-%d characters", ErrInvalidRequest, maxPetNameLen)
	}
	p, err := s.ownedPet(u, id)
	if err != nil {
		return nil, err
	}

	// Collision check skipped when the name is unchanged.
	if p.Name != newName {
		exists, err := s.Pets.ExistsByUserAndName(u.ID, newName)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: you already have a pet named %s", ErrInvalidRequest, newName)
		}
	}

	p.Name = newName
	p.UpdatedAt = time.Now()
	if err := s.Pets.Update(p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, u.ID, id)

	dto := ToPetDTO(p)
	return &dto, nil
}

func (s *PetService) Delete(ctx context.Context, token, id string) error {
	u, err := s.resolveOwner(token)
	if err != nil {
		return err
	}
	if _, err := s.ownedPet(u, id); err != nil {
		return err
	}
	if err := s.Pets.SoftDelete(id); err != nil {
		return fmt.Errorf("%w: pet not found or not owned by you", ErrNotFound)
	}
	s.invalidate(ctx, u.ID, id)
	return nil
}

func (s *PetService) Feed(ctx context.Context, token, id string) (*PetDTO, error) {
	u, err := s.resolveOwner(token)
	if err != nil {
		return nil, err
	}
	p, err := s.ownedPet(u, id)
	if err != nil {
		return nil, err
	}

	if p.IsDead {
		return nil, fmt.Errorf("%w: pet is dead and must be revived first", ErrInvalidRequest)
	}
	if p.Hunger > 90 {
		return nil, fmt.Errorf("%w: pet hunger is above 90", ErrInvalidRequest)
	}

	now := time.Now()
	p.Hunger = min(100, p.Hunger+20)
	p.XP += 5
	p.LastFedAt = &now
	p.UpdatedAt = now

	if err := s.Pets.Update(p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, u.ID, id)

	dto := ToPetDTO(p)
	return &dto, nil
}

func (s *PetService) Play(ctx context.Context, token, id string) (*PetDTO, error) {
	u, err := s.resolveOwner(token)
	if err != nil {
		return nil, err
	}
	p, err := s.ownedPet(u, id)
	if err != nil {
		return nil, err
	}

	if p.IsDead {
		return nil, fmt.Errorf("%w: pet is dead and must be revived first", ErrInvalidRequest)
	}
	if p.Happiness > 90 {
		return nil, fmt.Errorf("%w: pet happiness is above 90", ErrInvalidRequest)
	}

	now := time.Now()
	p.Happiness = min(100, p.Happiness+15)
	p.XP += 3
	p.LastPlayedAt = &now
	p.UpdatedAt = now

	if err := s.Pets.Update(p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, u.ID, id)

	dto := ToPetDTO(p)
	return &dto, nil
}

func (s *PetService) Stats(ctx context.Context, token, id string) (*PetStatsDTO, error) {
	u, err := s.resolveOwner(token)
	if err != nil {
		return nil, err
	}
	p, err := s.ownedPet(u, id)
	if err != nil {
		return nil, err
	}
	stats := BuildPetStats(p, time.Now())
	return &stats, nil
}

// Revive brings a dead pet back with a deliberately partial stat block.
func (s *PetService) Revive(ctx context.Context, token, id string) (*PetDTO, error) {
	u, err := s.resolveOwner(token)
	if err != nil {
		return nil, err
	}
	p, err := s.ownedPet(u, id)
	if err != nil {
		return nil, err
	}

	if !p.IsDead {
		return nil, fmt.Errorf("%w: pet is not dead", ErrInvalidRequest)
	}

	p.IsDead = false
	p.Health = 50
	p.Hunger = 50
	p.Happiness = 50
	p.UpdatedAt = time.Now()

	if err := s.Pets.Update(p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, u.ID, id)

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"pet_id": p.ID, "user_id": u.ID}).Info("pet revived")
	}
	dto := ToPetDTO(p)
	return &dto, nil
}

// NeedingAttention lists the caller's live pets with any stat below 30.
func (s *PetService) NeedingAttention(ctx context.Context, token string) ([]PetDTO, error) {
	u, err := s.resolveOwner(token)
	if err != nil {
		return nil, err
	}
	pets, err := s.Pets.FindNeedingAttention(u.ID)
	if err != nil {
		return nil, err
	}
	return ToPetDTOs(pets), nil
}
