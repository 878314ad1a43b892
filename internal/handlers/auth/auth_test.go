package auth

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/service/authservice"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "successful registration",
			body: `{"login":"alice","password":"password"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "alice", "password").
					Return(&domain.User{ID: 1, Login: "alice", Role: domain.RoleAdmin}, nil)
				service.EXPECT().
					GenerateToken(1, domain.RoleAdmin).
					Return("token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "invalid request body",
			body:          `{invalid`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "login taken",
			body: `{"login":"alice","password":"password"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "alice", "password").
					Return(nil, authservice.ErrLoginTaken)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "username already taken",
		},
		{
			name: "internal error",
			body: `{"login":"alice","password":"password"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "alice", "password").
					Return(nil, errors.New("db error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "Bearer token", w.Header().Get("Authorization"))
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "successful login",
			body: `{"login":"alice","password":"password"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "alice", "password").
					Return(&domain.User{ID: 1, Login: "alice", Role: domain.RoleMember}, nil)
				service.EXPECT().
					GenerateToken(1, domain.RoleMember).
					Return("token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "invalid credentials",
			body: `{"login":"alice","password":"nope"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "alice", "nope").
					Return(nil, errors.New("invalid credentials"))
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Login(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}
