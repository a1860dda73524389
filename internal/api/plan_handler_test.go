package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"egym/plan-service/internal/domain"
	"egym/plan-service/internal/llm"
	"egym/plan-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubPlanService returns canned results for GeneratePlan; the other
// methods are unused by these tests.
type stubPlanService struct {
	planID primitive.ObjectID
	err    error
}

func (s *stubPlanService) GeneratePlan(ctx context.Context, userID primitive.ObjectID) (primitive.ObjectID, error) {
	return s.planID, s.err
}
func (s *stubPlanService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return nil, service.ErrPlanNotFound
}
func (s *stubPlanService) GetPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return nil, nil
}
func (s *stubPlanService) GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return nil, service.ErrPlanNotFound
}
func (s *stubPlanService) SetActivePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	return nil
}
func (s *stubPlanService) RenamePlan(ctx context.Context, userID, planID primitive.ObjectID, name string) error {
	return nil
}

func generateWith(t *testing.T, svc service.PlanService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewPlanHandler(svc)
	router.POST("/plans/generate", func(c *gin.Context) {
		c.Set(ContextUserIDKey, primitive.NewObjectID().Hex())
		handler.GeneratePlan(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/plans/generate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGeneratePlanHandlerSuccess(t *testing.T) {
	planID := primitive.NewObjectID()
	w := generateWith(t, &stubPlanService{planID: planID})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"workoutPlanId":"`+planID.Hex()+`"`)
}

func TestGeneratePlanHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"still pending", service.ErrStillPending, http.StatusAccepted},
		{"generation failed", llm.ErrGenerationFailed, http.StatusBadGateway},
		{"generation timed out", llm.ErrGenerationTimedOut, http.StatusGatewayTimeout},
		{"persistence failed", service.ErrPersistenceFailed, http.StatusInternalServerError},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := generateWith(t, &stubPlanService{err: tc.err})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestGeneratePlanHandlerPendingBody(t *testing.T) {
	w := generateWith(t, &stubPlanService{err: service.ErrStillPending})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}
