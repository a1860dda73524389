package service

import (
	"context"
	"testing"

	"egym/plan-service/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetProfileDefaultsEmptyPreferences(t *testing.T) {
	user := newTestUser()
	svc := NewProfileService(newFakeUserRepo(user), logger.NewNop())

	stored, effective, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Empty(t, stored)
	assert.Equal(t, "strength", effective.Goal)
	assert.Equal(t, "beginner", effective.SkillLevel)
	assert.Equal(t, []string{"none"}, effective.Injuries)
	assert.Equal(t, 30, effective.TimePerDayMinutes)
}

func TestGetProfileReturnsStoredAndEffectiveViews(t *testing.T) {
	user := newTestUser()
	user.Preferences = map[string]interface{}{
		"goal":              "endurance",
		"timePerDayMinutes": 9000, // out of range, defaulted in the effective view
	}
	svc := NewProfileService(newFakeUserRepo(user), logger.NewNop())

	stored, effective, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)

	// The raw record keeps what the user wrote; the effective view is usable.
	assert.Equal(t, 9000, stored["timePerDayMinutes"])
	assert.Equal(t, "endurance", effective.Goal)
	assert.Equal(t, 30, effective.TimePerDayMinutes)
}

func TestGetProfileUserNotFound(t *testing.T) {
	svc := NewProfileService(newFakeUserRepo(), logger.NewNop())

	_, _, err := svc.GetProfile(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdatePreferencesDropsUnknownKeys(t *testing.T) {
	user := newTestUser()
	userRepo := newFakeUserRepo(user)
	svc := NewProfileService(userRepo, logger.NewNop())

	effective, err := svc.UpdatePreferences(context.Background(), user.ID, map[string]interface{}{
		"goal":          "tone",
		"favoriteColor": "teal",
		"isAdmin":       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "tone", effective.Goal)

	stored, _, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"goal": "tone"}, stored)
}

func TestUpdatePreferencesReplacesNotMerges(t *testing.T) {
	user := newTestUser()
	user.Preferences = map[string]interface{}{
		"goal":       "endurance",
		"skillLevel": "advanced",
	}
	svc := NewProfileService(newFakeUserRepo(user), logger.NewNop())

	// A later update carrying only goal wipes the previous skillLevel.
	_, err := svc.UpdatePreferences(context.Background(), user.ID, map[string]interface{}{
		"goal": "mobility",
	})
	require.NoError(t, err)

	stored, effective, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"goal": "mobility"}, stored)
	assert.Equal(t, "beginner", effective.SkillLevel)
}

func TestUpdatePreferencesReturnsNormalizedView(t *testing.T) {
	user := newTestUser()
	svc := NewProfileService(newFakeUserRepo(user), logger.NewNop())

	effective, err := svc.UpdatePreferences(context.Background(), user.ID, map[string]interface{}{
		"goal":      "become a superhero",
		"equipment": []interface{}{"dumbbells", "lightsaber"},
	})
	require.NoError(t, err)

	assert.Equal(t, "strength", effective.Goal)
	assert.Equal(t, []string{"dumbbells"}, effective.Equipment)
}

func TestUpdatePreferencesUserNotFound(t *testing.T) {
	svc := NewProfileService(newFakeUserRepo(), logger.NewNop())

	_, err := svc.UpdatePreferences(context.Background(), primitive.NewObjectID(), map[string]interface{}{
		"goal": "tone",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
