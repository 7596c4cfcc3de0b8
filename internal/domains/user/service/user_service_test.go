package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smartlib-backend/internal/domains/user/model"
	"smartlib-backend/internal/domains/user/repository"
	"smartlib-backend/pkg/jwt"
)

type mockRepo struct {
	createFn           func(ctx context.Context, u *model.User) error
	findByIDFn         func(ctx context.Context, id int64) (*model.User, error)
	findByUsernameFn   func(ctx context.Context, username string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
}

var _ repository.RepositoryInterface = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		u.ID = 1
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFn == nil {
		return nil, model.ErrUserNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFn == nil {
		return nil, model.ErrUserNotFound
	}
	return m.findByUsernameFn(ctx, username)
}

func (m *mockRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn == nil {
		return false, nil
	}
	return m.existsByUsernameFn(ctx, username)
}

func (m *mockRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn == nil {
		return false, nil
	}
	return m.existsByEmailFn(ctx, email)
}

func testManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 30)
}

func TestRegister_Success(t *testing.T) {
	var created *model.User
	repo := &mockRepo{
		createFn: func(_ context.Context, u *model.User) error {
			u.ID = 42
			created = u
			return nil
		},
	}
	svc := NewService(repo, testManager())

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.False(t, resp.IsAdmin)

	// Password is stored hashed, never verbatim
	require.NotNil(t, created)
	assert.NotEqual(t, "supersecret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("supersecret")))
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := &mockRepo{
		existsByUsernameFn: func(context.Context, string) (bool, error) { return true, nil },
	}
	svc := NewService(repo, testManager())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := &mockRepo{
		existsByEmailFn: func(context.Context, string) (bool, error) { return true, nil },
	}
	svc := NewService(repo, testManager())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestRegister_InvalidPayload(t *testing.T) {
	svc := NewService(&mockRepo{}, testManager())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "al",
		Email:    "not-an-email",
		Password: "short",
	})
	assert.Error(t, err)
}

func registeredUser(t *testing.T) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           42,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
}

func TestLogin_Success(t *testing.T) {
	u := registeredUser(t)
	repo := &mockRepo{
		findByUsernameFn: func(context.Context, string) (*model.User, error) { return u, nil },
	}
	manager := testManager()
	svc := NewService(repo, manager)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := manager.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestLogin_WrongPassword(t *testing.T) {
	u := registeredUser(t)
	repo := &mockRepo{
		findByUsernameFn: func(context.Context, string) (*model.User, error) { return u, nil },
	}
	svc := NewService(repo, testManager())

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	repo := &mockRepo{
		findByUsernameFn: func(context.Context, string) (*model.User, error) {
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewService(repo, testManager())

	// The caller cannot tell a missing user from a bad password
	_, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "nobody",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestGetProfile(t *testing.T) {
	u := registeredUser(t)
	repo := &mockRepo{
		findByIDFn: func(_ context.Context, id int64) (*model.User, error) {
			if id != 42 {
				return nil, model.ErrUserNotFound
			}
			return u, nil
		},
	}
	svc := NewService(repo, testManager())

	resp, err := svc.GetProfile(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	_, err = svc.GetProfile(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
