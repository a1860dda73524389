package service

import (
	"context"
	"errors"

	"egym/plan-service/internal/domain"
	"egym/plan-service/internal/logger"
	"egym/plan-service/internal/planner"
	"egym/plan-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// profileKeys are the only preference fields the service stores. Anything
// else in an update payload is dropped.
var profileKeys = []string{
	"goal",
	"skillLevel",
	"injuries",
	"mobilityLevel",
	"equipment",
	"timePerDayMinutes",
}

type ProfileService interface {
	// GetProfile returns the stored raw preferences alongside the
	// effective profile after defaulting.
	GetProfile(ctx context.Context, userID primitive.ObjectID) (map[string]interface{}, domain.UserProfile, error)
	UpdatePreferences(ctx context.Context, userID primitive.ObjectID, prefs map[string]interface{}) (domain.UserProfile, error)
}

type profileService struct {
	userRepo repository.UserRepository
	log      *logger.Logger
}

func NewProfileService(userRepo repository.UserRepository, log *logger.Logger) ProfileService {
	return &profileService{
		userRepo: userRepo,
		log:      log,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (map[string]interface{}, domain.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.UserProfile{}, ErrUserNotFound
		}
		return nil, domain.UserProfile{}, err
	}

	raw := user.Preferences
	if raw == nil {
		raw = map[string]interface{}{}
	}
	effective := planner.NormalizeProfile(raw, s.log)
	return raw, effective, nil
}

func (s *profileService) UpdatePreferences(ctx context.Context, userID primitive.ObjectID, prefs map[string]interface{}) (domain.UserProfile, error) {
	filtered := make(map[string]interface{}, len(profileKeys))
	for _, key := range profileKeys {
		if value, ok := prefs[key]; ok {
			filtered[key] = value
		}
	}

	if err := s.userRepo.UpdatePreferences(ctx, userID, filtered); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserProfile{}, ErrUserNotFound
		}
		return domain.UserProfile{}, err
	}

	return planner.NormalizeProfile(filtered, s.log), nil
}
