package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tujitume_backend/internal/auth"
	"tujitume_backend/internal/services"
	"tujitume_backend/internal/services/dto"
	"tujitume_backend/internal/validator"
	"tujitume_backend/pkg/apperrors"
	"tujitume_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testGigID = "0b7c6f8e-3f0c-4a63-9d2b-8f6f7a1c2d3e"
	testAppID = "5a0e9d4c-1b2a-4c3d-8e7f-6a5b4c3d2e1f"
	testUser  = "user-1"
)

// --- фейковые сервисы ---

type fakeGigService struct {
	services.GigService

	lastQuery *dto.ListGigsQuery
	lastOwner string
	err       error
}

func (f *fakeGigService) ListGigs(_ *gorm.DB, q *dto.ListGigsQuery) (*dto.GigListResponse, error) {
	f.lastQuery = q
	params := q.ToParams()
	return &dto.GigListResponse{Gigs: []*dto.GigResponse{}, Skip: params.Skip, Limit: params.LimitValue()}, f.err
}

func (f *fakeGigService) CreateGig(_ *gorm.DB, ownerID string, req *dto.CreateGigRequest) (*dto.GigResponse, error) {
	f.lastOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return &dto.GigResponse{ID: testGigID, OwnerID: ownerID, Title: req.Title}, nil
}

func (f *fakeGigService) GetGig(_ *gorm.DB, gigID string) (*dto.GigResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.GigResponse{ID: gigID}, nil
}

func (f *fakeGigService) CompleteGig(_ *gorm.DB, userID, gigID string) (*dto.GigResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.GigResponse{ID: gigID, OwnerID: userID, IsCompleted: true}, nil
}

func (f *fakeGigService) DeleteGig(_ *gorm.DB, _, _ string) error {
	return f.err
}

type fakeApplicationService struct {
	services.ApplicationService
	err error
}

func (f *fakeApplicationService) SelectApplicant(_ *gorm.DB, _, applicationID string) (*dto.ApplicationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ApplicationResponse{ID: applicationID, Status: "accepted"}, nil
}

func (f *fakeApplicationService) Apply(_ *gorm.DB, userID, gigID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ApplicationResponse{ID: testAppID, GigID: gigID, ApplicantID: userID, CoverLetter: req.CoverLetter, Status: "pending"}, nil
}

type fakeReviewService struct {
	services.ReviewService
	err error
}

func (f *fakeReviewService) SubmitReview(_ *gorm.DB, reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ReviewResponse{GigID: req.GigID, ReviewerID: reviewerID, ReviewedUserID: req.ReviewedUserID, Rating: req.Rating}, nil
}

func (f *fakeReviewService) GetUserReviewStats(_ *gorm.DB, userID string) (*dto.ReviewStatsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ReviewStatsResponse{UserID: userID, AverageRating: 4.0, TotalReviews: 3}, nil
}

type fakeUserService struct {
	services.UserService
	created bool
}

func (f *fakeUserService) Register(_ *gorm.DB, identity *auth.Identity, _ *dto.RegisterUserRequest) (*dto.RegisterResponse, error) {
	return &dto.RegisterResponse{User: &dto.UserResponse{ID: identity.UID, Name: identity.Name}, Created: f.created}, nil
}

func (f *fakeUserService) UpdateUser(_ *gorm.DB, userID string, patch *dto.UserPatch) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID, Name: *patch.Name}, nil
}

// --- тестовый роутер ---

type testEnv struct {
	router *gin.Engine
	gigs   *fakeGigService
	apps   *fakeApplicationService
	review *fakeReviewService
	users  *fakeUserService
}

// testGuard пускает запрос как X-Test-User, без заголовка - 401
func testGuard(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetHeader("X-Test-User")
		if uid == "" {
			if optional {
				c.Next()
				return
			}
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}
		c.Set(contextkeys.UserIDKey, uid)
		c.Set(contextkeys.IdentityKey, &auth.Identity{UID: uid, Name: "Test User"})
		c.Next()
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		gigs:   &fakeGigService{},
		apps:   &fakeApplicationService{},
		review: &fakeReviewService{},
		users:  &fakeUserService{},
	}

	base := NewBaseHandler(validator.New())
	appHandlers := &AppHandlers{
		AuthHandler:         NewAuthHandler(base, env.users),
		UserHandler:         NewUserHandler(base, env.users, env.gigs, env.apps, env.review),
		GigHandler:          NewGigHandler(base, env.gigs, env.apps, env.review),
		ApplicationHandler:  NewApplicationHandler(base, env.apps),
		ReviewHandler:       NewReviewHandler(base, env.review),
		NotificationHandler: NewNotificationHandler(base, nil),
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}})
		c.Next()
	})
	appHandlers.RegisterRoutes(router.Group("/api/v1"), RouteGuards{
		Identity: testGuard(false),
		Auth:     testGuard(false),
		Optional: testGuard(true),
	})

	env.router = router
	return env
}

func (e *testEnv) do(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error.Code
}

// --- тесты ---

func TestListGigs_QueryBinding(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/gigs?budget_type=hourly&sort_by=budget&sort_order=asc&limit=2&skills=go,sql", "", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, env.gigs.lastQuery)
	assert.Equal(t, "hourly", env.gigs.lastQuery.BudgetType)
	assert.Equal(t, "budget", env.gigs.lastQuery.SortBy)
	require.NotNil(t, env.gigs.lastQuery.Limit)
	assert.Equal(t, 2, *env.gigs.lastQuery.Limit)

	var resp dto.GigListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Limit)
}

func TestListGigs_InvalidQuery(t *testing.T) {
	env := newTestEnv(t)

	tests := []string{
		"/api/v1/gigs?budget_type=daily",
		"/api/v1/gigs?sort_by=title",
		"/api/v1/gigs?sort_order=sideways",
	}
	for _, path := range tests {
		w := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestCreateGig(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]interface{}{
		"title":       "Paint my fence",
		"description": "Two coats of white paint on a wooden fence",
		"budget":      50,
		"budget_type": "fixed",
	}

	t.Run("requires auth", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/gigs", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.CodeMissingToken, apperrors.ErrorCode(errorCode(t, w)))
	})

	t.Run("created by caller", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/gigs", testUser, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, testUser, env.gigs.lastOwner)
	})

	t.Run("validation", func(t *testing.T) {
		invalid := map[string]interface{}{"title": "abc", "description": "short"}
		w := env.do(t, http.MethodPost, "/api/v1/gigs", testUser, invalid)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative budget", func(t *testing.T) {
		invalid := map[string]interface{}{
			"title":       "Paint my fence",
			"description": "Two coats of white paint on a wooden fence",
			"budget":      -1,
		}
		w := env.do(t, http.MethodPost, "/api/v1/gigs", testUser, invalid)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetGig_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/gigs/not-a-uuid", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.ErrGigNotFound, http.StatusNotFound},
		{"forbidden", apperrors.ErrNotGigOwner, http.StatusForbidden},
		{"conflict", apperrors.ErrAlreadyCompleted, http.StatusBadRequest},
		{"no accepted", apperrors.ErrNoAcceptedApplicant, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.gigs.err = tt.err

			w := env.do(t, http.MethodPut, "/api/v1/gigs/"+testGigID+"/complete", testUser, nil)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestCompleteGig_OK(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/gigs/"+testGigID+"/complete", testUser, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.GigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsCompleted)
}

func TestDeleteGig_NoContent(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodDelete, "/api/v1/gigs/"+testGigID, testUser, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSelectApplicant(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPut, "/api/v1/applications/"+testAppID+"/select", testUser, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"accepted"`)
	})

	t.Run("already selected", func(t *testing.T) {
		env := newTestEnv(t)
		env.apps.err = apperrors.ErrAlreadySelected
		w := env.do(t, http.MethodPut, "/api/v1/applications/"+testAppID+"/select", testUser, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(apperrors.CodeAlreadySelected), errorCode(t, w))
	})
}

func TestApply_Created(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/gigs/"+testGigID+"/applications", testUser,
		map[string]string{"cover_letter": "I have painted many fences and would love to help you out."})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestCreateReview(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/reviews", testUser, map[string]interface{}{
		"gig_id": testGigID, "reviewed_user_id": "user-2", "rating": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/v1/reviews", testUser, map[string]interface{}{
		"gig_id": "bad", "reviewed_user_id": "user-2", "rating": 5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewStats_Public(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/users/user-2/review-stats", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ReviewStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user-2", resp.UserID)
	assert.Equal(t, 4.0, resp.AverageRating)
	assert.Equal(t, int64(3), resp.TotalReviews)
}

func TestRegister_Status(t *testing.T) {
	env := newTestEnv(t)

	env.users.created = true
	w := env.do(t, http.MethodPost, "/api/v1/auth/register", testUser, nil)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env.users.created = false
	w = env.do(t, http.MethodPost, "/api/v1/auth/register", testUser, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/verify-token", testUser, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.VerifyTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testUser, resp.UID)
	assert.Equal(t, "Test User", resp.Name)
}

func TestUpdateMe(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/users/me", testUser, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "пустой патч")

	w = env.do(t, http.MethodPut, "/api/v1/users/me", testUser, map[string]interface{}{"name": "Wanjiru"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Wanjiru")
}
