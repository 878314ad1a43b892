package authservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/auth"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo, &auth.HashService{}, &auth.JWTService{})
	defer ctrl.Finish()
	return service, repo
}

func TestRegister(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		login         string
		password      string
		prepareMock   func()
		expectedRole  string
		expectedError error
	}{
		{
			name:     "first user becomes admin",
			login:    "alice",
			password: "password",
			prepareMock: func() {
				repo.EXPECT().FindByLogin(gomock.Any(), "alice").Return(nil, nil)
				repo.EXPECT().Count(gomock.Any()).Return(0, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, user *domain.User) (*domain.User, error) {
						user.ID = 1
						return user, nil
					})
			},
			expectedRole: domain.RoleAdmin,
		},
		{
			name:     "later users are members",
			login:    "bob",
			password: "password",
			prepareMock: func() {
				repo.EXPECT().FindByLogin(gomock.Any(), "bob").Return(nil, nil)
				repo.EXPECT().Count(gomock.Any()).Return(1, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, user *domain.User) (*domain.User, error) {
						user.ID = 2
						return user, nil
					})
			},
			expectedRole: domain.RoleMember,
		},
		{
			name:     "login already taken",
			login:    "alice",
			password: "password",
			prepareMock: func() {
				repo.EXPECT().FindByLogin(gomock.Any(), "alice").Return(&domain.User{ID: 1, Login: "alice"}, nil)
			},
			expectedError: ErrLoginTaken,
		},
		{
			name:     "lookup error",
			login:    "alice",
			password: "password",
			prepareMock: func() {
				repo.EXPECT().FindByLogin(gomock.Any(), "alice").Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			user, err := service.Register(context.Background(), tt.login, tt.password)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.login, user.Login)
			assert.Equal(t, tt.expectedRole, user.Role)
			assert.NotEqual(t, tt.password, user.PasswordHash)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	service, repo := NewMock(t)

	hashService := &auth.HashService{}
	hashed, err := hashService.HashPassword("password")
	assert.NoError(t, err)

	tests := []struct {
		name        string
		login       string
		password    string
		prepareMock func()
		wantErr     bool
	}{
		{
			name:     "valid credentials",
			login:    "alice",
			password: "password",
			prepareMock: func() {
				repo.EXPECT().FindByLogin(gomock.Any(), "alice").
					Return(&domain.User{ID: 1, Login: "alice", PasswordHash: hashed, Role: domain.RoleAdmin}, nil)
			},
		},
		{
			name:     "wrong password",
			login:    "alice",
			password: "nope",
			prepareMock: func() {
				repo.EXPECT().FindByLogin(gomock.Any(), "alice").
					Return(&domain.User{ID: 1, Login: "alice", PasswordHash: hashed}, nil)
			},
			wantErr: true,
		},
		{
			name:     "unknown user",
			login:    "carol",
			password: "password",
			prepareMock: func() {
				repo.EXPECT().FindByLogin(gomock.Any(), "carol").Return(nil, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			user, err := service.Authenticate(context.Background(), tt.login, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.login, user.Login)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _ := NewMock(t)

	token, err := service.GenerateToken(1, domain.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := (&auth.JWTService{}).ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}
