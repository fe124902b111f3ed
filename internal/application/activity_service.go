package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
	repo "github.com/ryjtoh/mydevduck-api/internal/domain/repository"
	"github.com/ryjtoh/mydevduck-api/pkg/helpers"
)

const activityListLimit = 100

// ActivityService records logged developer actions. Points are derived
// from the activity type, never taken from the caller.
type ActivityService struct {
	Activities repo.ActivityRepository
	Users      repo.UserRepository
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
}

func NewActivityService(activities repo.ActivityRepository, users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *ActivityService {
	return &ActivityService{Activities: activities, Users: users, JWT: jwt, Logger: logger}
}

func (s *ActivityService) caller(token string) (*entity.User, error) {
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

func (s *ActivityService) Log(ctx context.Context, token string, activityType, description, metadata string) (*ActivityDTO, error) {
	u, err := s.caller(token)
	if err != nil {
		return nil, err
	}

	t := entity.ActivityType(activityType)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown activity type %q", ErrInvalidRequest, activityType)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}

	a := &entity.Activity{
		UserID:      u.ID,
		Type:        t,
		Description: description,
		Points:      t.Points(),
		Metadata:    metadata,
	}
	if err := s.Activities.Create(a); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"user_id": u.ID,
			"type":    t,
			"points":  a.Points,
		}).Info("activity logged")
	}
	dto := ToActivityDTO(a)
	return &dto, nil
}

func (s *ActivityService) List(ctx context.Context, token string) ([]ActivityDTO, error) {
	u, err := s.caller(token)
	if err != nil {
		return nil, err
	}
	activities, err := s.Activities.ListByUser(u.ID, activityListLimit)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityDTO, 0, len(activities))
	for _, a := range activities {
		out = append(out, ToActivityDTO(a))
	}
	return out, nil
}
