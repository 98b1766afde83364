package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "event-registry-service/internal/domain/user"
	"event-registry-service/internal/usecase/user"
	pkgerrors "event-registry-service/pkg/errors"
)

type mockUserUsecase struct {
	mock.Mock
}

func (m *mockUserUsecase) CreateUser(ctx context.Context, in user.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUsecase) UpdateUser(ctx context.Context, in user.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserUsecase) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupUserRouter(t *testing.T, uc user.Usecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(uc, zaptest.NewLogger(t))

	r := gin.New()
	r.POST("/v1/users", h.CreateUser)
	r.GET("/v1/users", h.ListUsers)
	r.GET("/v1/users/:id", h.GetUser)
	r.PUT("/v1/users/:id", h.UpdateUser)
	r.DELETE("/v1/users/:id", h.DeleteUser)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestUserHandler_Create(t *testing.T) {
	uc := new(mockUserUsecase)
	r := setupUserRouter(t, uc)

	uc.On("CreateUser", mock.Anything, mock.MatchedBy(func(in user.CreateUserRequest) bool {
		return in.Name == "Ann" && in.Email == "ann@example.com"
	})).Return(&domain.User{ID: "u1", Name: "Ann"}, nil)

	w := doJSON(t, r, http.MethodPost, "/v1/users", gin.H{
		"name":        "Ann",
		"gender":      "female",
		"dateOfBirth": "1990-01-01",
		"email":       "ann@example.com",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Error)
}

func TestUserHandler_CreateMissingBody(t *testing.T) {
	uc := new(mockUserUsecase)
	r := setupUserRouter(t, uc)

	w := doJSON(t, r, http.MethodPost, "/v1/users", gin.H{"name": "Ann"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	uc.AssertNotCalled(t, "CreateUser")
}

func TestUserHandler_GetNotFound(t *testing.T) {
	uc := new(mockUserUsecase)
	r := setupUserRouter(t, uc)

	uc.On("GetUser", mock.Anything, "ghost").
		Return(nil, pkgerrors.NewNotFoundError("user", "user not found: id=ghost"))

	w := doJSON(t, r, http.MethodGet, "/v1/users/ghost", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "ghost")
}

func TestUserHandler_CreateConflict(t *testing.T) {
	uc := new(mockUserUsecase)
	r := setupUserRouter(t, uc)

	uc.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, pkgerrors.NewAlreadyExistsError("user", "user u1 already exists"))

	w := doJSON(t, r, http.MethodPost, "/v1/users", gin.H{
		"id":          "u1",
		"name":        "Ann",
		"gender":      "female",
		"dateOfBirth": "1990-01-01",
		"email":       "ann@example.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_StorageUnavailable(t *testing.T) {
	uc := new(mockUserUsecase)
	r := setupUserRouter(t, uc)

	uc.On("ListUsers", mock.Anything).
		Return(nil, pkgerrors.NewStorageUnavailableError("proxy down", nil))

	w := doJSON(t, r, http.MethodGet, "/v1/users", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
}

func TestUserHandler_DeleteVoidEnvelope(t *testing.T) {
	uc := new(mockUserUsecase)
	r := setupUserRouter(t, uc)

	uc.On("DeleteUser", mock.Anything, "u1").Return(nil)

	w := doJSON(t, r, http.MethodDelete, "/v1/users/u1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestUserHandler_Update(t *testing.T) {
	uc := new(mockUserUsecase)
	r := setupUserRouter(t, uc)

	uc.On("UpdateUser", mock.Anything, mock.MatchedBy(func(in user.UpdateUserRequest) bool {
		return in.ID == "u1" && in.Name == "Ann2"
	})).Return(&domain.User{ID: "u1", Name: "Ann2"}, nil)

	w := doJSON(t, r, http.MethodPut, "/v1/users/u1", gin.H{
		"name":        "Ann2",
		"gender":      "female",
		"dateOfBirth": "1990-01-01",
		"email":       "ann@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
}
