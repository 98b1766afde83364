package cached

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"event-registry-service/internal/adapter/cache"
	domain "event-registry-service/internal/domain/user"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newCachedUserRepo(t *testing.T, backing *mockUserRepo) *UserRepository {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewRedisEntityCache[domain.User](client, "user", time.Minute, zaptest.NewLogger(t))
	return NewUserRepository(backing, c, zaptest.NewLogger(t))
}

func TestCachedUserRepository_GetPopulatesCache(t *testing.T) {
	backing := new(mockUserRepo)
	repo := newCachedUserRepo(t, backing)
	ctx := context.Background()

	u := &domain.User{ID: "u1", Name: "Ann"}
	backing.On("GetByID", mock.Anything, "u1").Return(u, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ann", got.Name)
	}

	// only the first call reaches the backing store
	backing.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestCachedUserRepository_SaveInvalidates(t *testing.T) {
	backing := new(mockUserRepo)
	repo := newCachedUserRepo(t, backing)
	ctx := context.Background()

	u1 := &domain.User{ID: "u1", Name: "Ann"}
	u2 := &domain.User{ID: "u1", Name: "Ann2"}

	backing.On("GetByID", mock.Anything, "u1").Return(u1, nil).Once()
	_, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)

	backing.On("Save", mock.Anything, u2).Return(u2, nil).Once()
	_, err = repo.Save(ctx, u2)
	require.NoError(t, err)

	backing.On("GetByID", mock.Anything, "u1").Return(u2, nil).Once()
	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann2", got.Name)

	backing.AssertExpectations(t)
}

func TestCachedUserRepository_DeleteInvalidates(t *testing.T) {
	backing := new(mockUserRepo)
	repo := newCachedUserRepo(t, backing)
	ctx := context.Background()

	u := &domain.User{ID: "u1", Name: "Ann"}
	backing.On("GetByID", mock.Anything, "u1").Return(u, nil).Once()
	_, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)

	backing.On("DeleteByID", mock.Anything, "u1").Return(nil).Once()
	require.NoError(t, repo.DeleteByID(ctx, "u1"))

	backing.On("GetByID", mock.Anything, "u1").Return(u, nil).Once()
	_, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)

	backing.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestCachedUserRepository_ListBypassesCache(t *testing.T) {
	backing := new(mockUserRepo)
	repo := newCachedUserRepo(t, backing)

	users := []domain.User{{ID: "u1"}, {ID: "u2"}}
	backing.On("List", mock.Anything).Return(users, nil).Twice()

	for i := 0; i < 2; i++ {
		got, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}

	backing.AssertExpectations(t)
}
