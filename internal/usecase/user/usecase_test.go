package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "event-registry-service/internal/domain/user"
	pkgerrors "event-registry-service/pkg/errors"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, repo Repository) *Service {
	s := New(repo, zaptest.NewLogger(t))
	s.now = func() time.Time { return fixedNow }
	return s
}

func validCreate() CreateUserRequest {
	return CreateUserRequest{
		Name:        "Ann",
		Gender:      "female",
		DateOfBirth: "1990-01-01",
		Email:       "ann@example.com",
	}
}

func TestCreateUser_GeneratesID(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(t, repo)

	repo.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID != "" && u.Name == "Ann" && u.CreatedAt.Equal(fixedNow)
	})).Return(&domain.User{ID: "generated"}, nil)

	got, err := svc.CreateUser(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Equal(t, "generated", got.ID)
	repo.AssertExpectations(t)
}

func TestCreateUser_ExplicitIDCollision(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(t, repo)

	repo.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)

	in := validCreate()
	in.ID = "u1"
	_, err := svc.CreateUser(context.Background(), in)
	assert.True(t, pkgerrors.IsAlreadyExists(err))
	repo.AssertNotCalled(t, "Save")
}

func TestCreateUser_ExplicitIDFree(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(t, repo)

	repo.On("GetByID", mock.Anything, "u1").
		Return(nil, pkgerrors.NewNotFoundError("user", "not found"))
	repo.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "u1"
	})).Return(&domain.User{ID: "u1"}, nil)

	got, err := svc.CreateUser(context.Background(), validCreate().withID("u1"))
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func (r CreateUserRequest) withID(id string) CreateUserRequest {
	r.ID = id
	return r
}

func TestCreateUser_ValidationFailures(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(t, repo)
	ctx := context.Background()

	cases := map[string]func(*CreateUserRequest){
		"missing name":   func(r *CreateUserRequest) { r.Name = "" },
		"bad gender":     func(r *CreateUserRequest) { r.Gender = "unknown" },
		"bad dob format": func(r *CreateUserRequest) { r.DateOfBirth = "01/01/1990" },
		"bad email":      func(r *CreateUserRequest) { r.Email = "not-an-email" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validCreate()
			mutate(&in)
			_, err := svc.CreateUser(ctx, in)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}

	repo.AssertNotCalled(t, "Save")
}

func TestUpdateUser_PreservesCreatedAt(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(t, repo)

	created := fixedNow.Add(-48 * time.Hour)
	repo.On("GetByID", mock.Anything, "u1").
		Return(&domain.User{ID: "u1", Name: "Ann", CreatedAt: created, UpdatedAt: created}, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Ann2" && u.CreatedAt.Equal(created) && u.UpdatedAt.Equal(fixedNow)
	})).Return(&domain.User{ID: "u1", Name: "Ann2"}, nil)

	in := UpdateUserRequest{
		ID:          "u1",
		Name:        "Ann2",
		Gender:      "female",
		DateOfBirth: "1990-01-01",
		Email:       "ann@example.com",
	}
	got, err := svc.UpdateUser(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Ann2", got.Name)
	repo.AssertExpectations(t)
}

func TestUpdateUser_Missing(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(t, repo)

	repo.On("GetByID", mock.Anything, "nope").
		Return(nil, pkgerrors.NewNotFoundError("user", "not found"))

	in := UpdateUserRequest{
		ID:          "nope",
		Name:        "Ann",
		Gender:      "female",
		DateOfBirth: "1990-01-01",
		Email:       "ann@example.com",
	}
	_, err := svc.UpdateUser(context.Background(), in)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetUser_EmptyID(t *testing.T) {
	svc := newService(t, new(mockRepo))

	_, err := svc.GetUser(context.Background(), "")
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestDeleteUser_MissingIsNoOp(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(t, repo)

	repo.On("DeleteByID", mock.Anything, "ghost").Return(nil)

	assert.NoError(t, svc.DeleteUser(context.Background(), "ghost"))
}

func TestListUsers_PropagatesStorageError(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(t, repo)

	repo.On("List", mock.Anything).
		Return(nil, pkgerrors.NewStorageUnavailableError("proxy down", nil))

	_, err := svc.ListUsers(context.Background())
	assert.True(t, pkgerrors.IsStorageUnavailable(err))
}
