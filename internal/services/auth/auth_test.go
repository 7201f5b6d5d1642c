package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-subscription/internal/app_errors"
	"github.com/magabrotheeeer/course-subscription/internal/lib/jwt"
	"github.com/magabrotheeeer/course-subscription/internal/lib/password"
	"github.com/magabrotheeeer/course-subscription/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UsersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret-key", 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	users := new(UsersMock)

	// хранилище нормализует запись и отдаёт её обратно
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "john@example.com" && u.Name == "John" && u.PasswordHash != "secret123"
	})).Return(&models.User{
		UID:       "9f8e7d6c-5b4a-4392-8170-6e5d4c3b2a19",
		Email:     "john@example.com",
		Name:      "John",
		CreatedAt: time.Now().UTC(),
	}, nil).Once()

	svc := NewAuthService(users, testMaker())
	user, token, err := svc.Register(context.Background(), "  John@Example.COM ", "secret123", " John ")

	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)
	assert.NotEmpty(t, token)

	// токен привязан к записи, прочитанной из хранилища, а не к запросу
	claims, err := testMaker().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "9f8e7d6c-5b4a-4392-8170-6e5d4c3b2a19", claims.UserUID)
	assert.Equal(t, "john@example.com", claims.Email)

	users.AssertExpectations(t)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	users := new(UsersMock)
	users.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, app_errors.ErrUserExists).Once()

	svc := NewAuthService(users, testMaker())
	_, _, err := svc.Register(context.Background(), "john@example.com", "secret123", "")

	require.ErrorIs(t, err, app_errors.ErrUserExists)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	stored := &models.User{
		UID:          "9f8e7d6c-5b4a-4392-8170-6e5d4c3b2a19",
		Email:        "john@example.com",
		Name:         "John",
		PasswordHash: hash,
	}

	tests := []struct {
		name      string
		email     string
		rawPass   string
		storedErr error
		wantErr   error
	}{
		{
			name:    "success login",
			email:   "john@example.com",
			rawPass: "secret123",
		},
		{
			name:      "unknown email",
			email:     "nobody@example.com",
			rawPass:   "secret123",
			storedErr: app_errors.ErrUserNotFound,
			wantErr:   app_errors.ErrInvalidCredentials,
		},
		{
			name:    "wrong password",
			email:   "john@example.com",
			rawPass: "wrongpass",
			wantErr: app_errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			if tt.storedErr != nil {
				users.On("GetUserByEmail", mock.Anything, tt.email).Return(nil, tt.storedErr).Once()
			} else {
				users.On("GetUserByEmail", mock.Anything, tt.email).Return(stored, nil).Once()
			}

			svc := NewAuthService(users, testMaker())
			user, token, err := svc.Login(context.Background(), tt.email, tt.rawPass)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored.UID, user.UID)

			claims, err := testMaker().ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, stored.UID, claims.UserUID)
		})
	}
}

// Round-trip: регистрация и последующий вход с теми же учетными данными
// дают токены, декодируемые в одну и ту же учетную запись.
func TestAuthService_RegisterLoginRoundTrip(t *testing.T) {
	users := new(UsersMock)
	var savedHash string

	users.On("CreateUser", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedHash = args.Get(1).(models.User).PasswordHash
		}).
		Return(&models.User{
			UID:   "c3b2a190-1f2e-4d3c-8b4a-59f8e7d6c5b4",
			Email: "jane@example.com",
		}, nil).Once()

	svc := NewAuthService(users, testMaker())
	_, signupToken, err := svc.Register(context.Background(), "Jane@Example.com", "password123", "Jane")
	require.NoError(t, err)

	users.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(&models.User{
		UID:          "c3b2a190-1f2e-4d3c-8b4a-59f8e7d6c5b4",
		Email:        "jane@example.com",
		PasswordHash: savedHash,
	}, nil).Once()

	// вход с другим регистром email находит ту же учетную запись
	_, loginToken, err := svc.Login(context.Background(), "Jane@Example.com", "password123")
	require.NoError(t, err)

	signupClaims, err := testMaker().ParseToken(signupToken)
	require.NoError(t, err)
	loginClaims, err := testMaker().ParseToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, signupClaims.UserUID, loginClaims.UserUID)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "john@example.com", NormalizeEmail("  John@EXAMPLE.com "))
	assert.Equal(t, "a@b.c", NormalizeEmail("a@b.c"))
}
