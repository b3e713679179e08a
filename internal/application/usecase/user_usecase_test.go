package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func TestUserUseCase_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("usuario activo", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByID", ctx, "u1").Return(&entity.User{
			ID: "u1", Email: "compras@eproc.com", Name: "Compras", Role: entity.RoleBuyer,
			PasswordHash: "hash", Active: true, CreatedAt: created,
		}, nil)

		out, err := NewUserUseCase(repo).GetByID(ctx, "u1")

		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, "compras@eproc.com", out.Email)
		assert.Equal(t, entity.RoleBuyer, out.Role)
		assert.Equal(t, created, out.CreatedAt)
	})

	t.Run("inactivo o inexistente", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByID", ctx, "u2").Return(&entity.User{ID: "u2", Active: false}, nil)
		repo.On("GetByID", ctx, "u3").Return(nil, nil)
		uc := NewUserUseCase(repo)

		out, err := uc.GetByID(ctx, "u2")
		require.NoError(t, err)
		assert.Nil(t, out)

		out, err = uc.GetByID(ctx, "u3")
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("error del repositorio", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByID", ctx, "u4").Return(nil, errors.New("db down"))

		_, err := NewUserUseCase(repo).GetByID(ctx, "u4")
		assert.Error(t, err)
	})
}
