package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"egym/plan-service/internal/domain"
	"egym/plan-service/internal/llm"
	"egym/plan-service/internal/logger"
	"egym/plan-service/internal/planner"
	"egym/plan-service/internal/repository"
	"egym/plan-service/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPlanNotFound      = errors.New("workout plan not found")
	ErrPersistenceFailed = errors.New("failed to save workout plan")
	// ErrStillPending means a generation attempt timed out and no finished
	// plan could be found for it. The attempt may still land server-side.
	ErrStillPending = errors.New("plan generation is still pending")
)

// generationState tracks where a generation attempt is in its lifecycle.
type generationState int

const (
	stateGenerating generationState = iota
	stateValidating
	statePersisting
	stateRecovering
	stateSucceeded
	stateFailed
)

const (
	recoveryTimeout = 10 * time.Second
	archiveTimeout  = 15 * time.Second
)

type PlanService interface {
	// GeneratePlan runs the full pipeline: normalize the user's profile,
	// request a completion, validate it against the plan contract,
	// persist the plan and flip the user's active-plan pointer.
	GeneratePlan(ctx context.Context, userID primitive.ObjectID) (primitive.ObjectID, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	SetActivePlan(ctx context.Context, userID, planID primitive.ObjectID) error
	RenamePlan(ctx context.Context, userID, planID primitive.ObjectID, name string) error
}

type planService struct {
	userRepo repository.UserRepository
	planRepo repository.WorkoutPlanRepository
	llm      llm.Client
	archive  storage.CompletionArchive
	log      *logger.Logger
}

func NewPlanService(
	userRepo repository.UserRepository,
	planRepo repository.WorkoutPlanRepository,
	llmClient llm.Client,
	archive storage.CompletionArchive,
	log *logger.Logger,
) PlanService {
	if archive == nil {
		archive = storage.NewNoopArchive()
	}
	return &planService{
		userRepo: userRepo,
		planRepo: planRepo,
		llm:      llmClient,
		archive:  archive,
		log:      log,
	}
}

func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID) (primitive.ObjectID, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrUserNotFound
		}
		return primitive.NilObjectID, err
	}

	profile := planner.NormalizeProfile(user.Preferences, s.log)
	messages := planner.BuildMessages(profile)

	log := s.log.With("userId", userID.Hex())
	startedAt := time.Now().UTC()

	var (
		state    = stateGenerating
		raw      string
		plan     *domain.GeneratedPlan
		planID   primitive.ObjectID
		finalErr error
	)

	for {
		switch state {
		case stateGenerating:
			raw, err = s.llm.Complete(ctx, messages)
			s.archiveCompletion(ctx, userID, raw)
			if err != nil {
				if errors.Is(err, llm.ErrGenerationTimedOut) {
					log.Warn("completion timed out, checking for a persisted plan")
					state = stateRecovering
					break
				}
				finalErr = err
				state = stateFailed
				break
			}
			state = stateValidating

		case stateValidating:
			plan, err = planner.ParsePlan(raw, profile)
			if err != nil {
				log.Warn("completion rejected", "error", err)
				finalErr = err
				state = stateFailed
				break
			}
			state = statePersisting

		case statePersisting:
			planID, err = s.persistPlan(ctx, userID, profile, plan)
			if err != nil {
				finalErr = err
				state = stateFailed
				break
			}
			state = stateSucceeded

		case stateRecovering:
			planID, err = s.recoverPlan(userID, startedAt)
			if err != nil {
				finalErr = err
				state = stateFailed
				break
			}
			log.Info("recovered plan after timeout", "planId", planID.Hex())
			state = stateSucceeded

		case stateSucceeded:
			return planID, nil

		case stateFailed:
			return primitive.NilObjectID, finalErr
		}
	}
}

// persistPlan stores the validated plan and points the user at it. The
// pointer write is idempotent; a second attempt with the same plan ID is a
// no-op server-side.
func (s *planService) persistPlan(ctx context.Context, userID primitive.ObjectID, profile domain.UserProfile, generated *domain.GeneratedPlan) (primitive.ObjectID, error) {
	stored := &domain.WorkoutPlan{
		UserID:  userID,
		Name:    planDisplayName(profile.Goal),
		Version: planner.SchemaVersion,
		Status:  domain.PlanStatusActive,
		Caution: generated.Caution,
		Profile: generated.Profile,
		Week:    generated.Week,
	}

	planID, err := s.planRepo.Create(ctx, stored)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	if err := s.userRepo.SetActivePlan(ctx, userID, planID, domain.PlanStartWeekday); err != nil {
		// The plan document exists but the pointer write failed; the
		// caller sees a persistence failure and can retry, recovery will
		// then find the plan by its pointer once a retry lands it.
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return planID, nil
}

// recoverPlan reconciles a timed-out attempt against persisted state. It
// runs on a fresh context so an expired request deadline cannot block the
// lookup.
func (s *planService) recoverPlan(userID primitive.ObjectID, startedAt time.Time) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), recoveryTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrUserNotFound
		}
		return primitive.NilObjectID, ErrStillPending
	}
	if user.ActivePlanID == nil {
		return primitive.NilObjectID, ErrStillPending
	}

	plan, err := s.planRepo.GetByID(ctx, *user.ActivePlanID)
	if err != nil {
		return primitive.NilObjectID, ErrStillPending
	}
	// A plan created before this attempt started is a leftover from an
	// earlier generation, not the one we are waiting on.
	if plan.CreatedAt.Before(startedAt) {
		return primitive.NilObjectID, ErrStillPending
	}
	return plan.ID, nil
}

// archiveCompletion writes the raw model output to the archive. Failures
// are logged and swallowed.
func (s *planService) archiveCompletion(ctx context.Context, userID primitive.ObjectID, raw string) {
	if raw == "" {
		return
	}
	key := fmt.Sprintf("completions/%s/%s.json", userID.Hex(), uuid.NewString())

	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	if err := s.archive.ArchiveCompletion(archiveCtx, key, []byte(raw)); err != nil {
		s.log.Warn("failed to archive completion", "key", key, "error", err)
	}
}

// planDisplayName builds the default plan name from the user's goal,
// e.g. "Weekly Strength Plan".
func planDisplayName(goal string) string {
	titled := goal
	if titled != "" {
		titled = strings.ToUpper(titled[:1]) + titled[1:]
	}
	return fmt.Sprintf("Weekly %s Plan", titled)
}

func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		// Do not leak the existence of other users' plans.
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (s *planService) GetPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return s.planRepo.GetByUserID(ctx, userID)
}

func (s *planService) GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.ActivePlanID == nil {
		return nil, ErrPlanNotFound
	}
	return s.GetPlan(ctx, userID, *user.ActivePlanID)
}

func (s *planService) SetActivePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	// Ownership check before flipping the pointer.
	if _, err := s.GetPlan(ctx, userID, planID); err != nil {
		return err
	}
	if err := s.userRepo.SetActivePlan(ctx, userID, planID, domain.PlanStartWeekday); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *planService) RenamePlan(ctx context.Context, userID, planID primitive.ObjectID, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("plan name cannot be empty")
	}
	err := s.planRepo.UpdateName(ctx, planID, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}
