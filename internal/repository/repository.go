package repository

import (
	"context"

	"egym/plan-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound       = RepositoryError("not found")
	ErrUpdateFailed   = RepositoryError("update failed")
	ErrDuplicateEmail = RepositoryError("user with this email already exists")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// UpdatePreferences replaces the raw questionnaire answers on the user
	// record. Values are stored as given; normalization happens at read
	// time.
	UpdatePreferences(ctx context.Context, id primitive.ObjectID, prefs map[string]interface{}) error
	// SetActivePlan writes the active-plan pointer. Idempotent; last write
	// wins when callers race.
	SetActivePlan(ctx context.Context, userID, planID primitive.ObjectID, startWeekday string) error
}

// WorkoutPlanRepository defines the interface for the append-only per-user
// plan collection.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	// UpdateName is the only permitted mutation of a stored plan.
	UpdateName(ctx context.Context, id, userID primitive.ObjectID, name string) error
}
