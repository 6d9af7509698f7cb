package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	createFunc     func(ctx context.Context, user User) error
	getByEmailFunc func(ctx context.Context, email string) (User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return User{}, errors.New("not implemented")
}

type stubTokens struct {
	token string
	err   error
}

func (s *stubTokens) Generate(ctx context.Context, user User) (string, error) {
	return s.token, s.err
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	var stored User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user User) error {
			stored = user
			return nil
		},
	}
	svc := NewAuthService(repo, &stubTokens{token: "tok"})

	user, err := svc.Register(context.Background(), "  Alice  ", " alice@example.com ", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, &stubTokens{})

	tests := []struct {
		name, userName, email, password string
	}{
		{"no name", "", "a@b.c", "pw"},
		{"blank name", "   ", "a@b.c", "pw"},
		{"no email", "Alice", "", "pw"},
		{"no password", "Alice", "a@b.c", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user User) error {
			return ErrUserAlreadyExists
		},
	}
	svc := NewAuthService(repo, &stubTokens{})

	// The outcome must not depend on the password.
	for _, password := range []string{"pw1", "another", "s3cret"} {
		_, err := svc.Register(context.Background(), "Bob", "bob@example.com", password)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	}
}

func TestLogin_Success(t *testing.T) {
	hash := hashPassword(t, "s3cret")
	repo := &mockUserRepository{
		getByEmailFunc: func(ctx context.Context, email string) (User, error) {
			return User{Name: "Alice", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(repo, &stubTokens{token: "session-token"})

	result, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "session-token", result.Token)
	assert.Equal(t, "Alice", result.User.Name)
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	hash := hashPassword(t, "correct")
	known := &mockUserRepository{
		getByEmailFunc: func(ctx context.Context, email string) (User, error) {
			return User{Email: email, PasswordHash: hash}, nil
		},
	}
	unknown := &mockUserRepository{
		getByEmailFunc: func(ctx context.Context, email string) (User, error) {
			return User{}, ErrNotFound
		},
	}

	_, errWrongPassword := NewAuthService(known, &stubTokens{}).Login(context.Background(), "a@b.c", "wrong")
	_, errUnknownEmail := NewAuthService(unknown, &stubTokens{}).Login(context.Background(), "ghost@b.c", "whatever")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownEmail)
	assert.Equal(t, errWrongPassword, errUnknownEmail)
	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
}

func TestLogin_TokenGenerationFailure(t *testing.T) {
	hash := hashPassword(t, "s3cret")
	repo := &mockUserRepository{
		getByEmailFunc: func(ctx context.Context, email string) (User, error) {
			return User{Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(repo, &stubTokens{err: errors.New("signing failed")})

	_, err := svc.Login(context.Background(), "a@b.c", "s3cret")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
