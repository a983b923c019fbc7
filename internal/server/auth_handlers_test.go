package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ripple/internal/config"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testConfig = &config.Config{JWTSecret: "test-secret-key"}

func newAuthApp(mockUsers *MockUserRepository) *fiber.App {
	s := &Server{config: testConfig, userRepo: mockUsers}
	app := fiber.New()
	app.Post("/auth/signup", s.Signup)
	app.Post("/auth/login", s.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	t.Run("Missing Fields", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		app := newAuthApp(mockUsers)

		resp := postJSON(t, app, "/auth/signup", map[string]string{})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeJSON[fieldErrorBody](t, resp)
		assert.Len(t, body.Errors, 3)
		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Oversized Password", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		app := newAuthApp(mockUsers)

		// bcrypt ignores everything past 72 bytes, so longer passwords are rejected outright
		resp := postJSON(t, app, "/auth/signup", map[string]string{
			"name": "Ada", "email": "ada@example.com", "password": strings.Repeat("p", 73),
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeJSON[fieldErrorBody](t, resp)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "Password must be at most 72 characters", body.Errors[0].Msg)
		assert.Equal(t, "password", body.Errors[0].Param)
		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		app := newAuthApp(mockUsers)

		mockUsers.On("GetByEmail", mock.Anything, "ada@example.com").
			Return(&models.User{ID: 1, Email: "ada@example.com"}, nil)

		resp := postJSON(t, app, "/auth/signup", map[string]string{
			"name": "Ada", "email": "ada@example.com", "password": "hunter22",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Success", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		app := newAuthApp(mockUsers)

		mockUsers.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, nil)
		mockUsers.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.User).ID = 1
			}).
			Return(nil)

		resp := postJSON(t, app, "/auth/signup", map[string]string{
			"name": "Ada", "email": "ada@example.com", "password": "hunter22",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeJSON[struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}](t, resp)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "Ada", body.User.Name)
		assert.Contains(t, body.User.Avatar, "gravatar.com")
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 1, Name: "Ada", Email: "ada@example.com", Password: string(hash)}

	tests := []struct {
		name           string
		payload        map[string]string
		user           *models.User
		expectedStatus int
	}{
		{
			name:           "Success",
			payload:        map[string]string{"email": "ada@example.com", "password": "hunter22"},
			user:           stored,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Wrong Password",
			payload:        map[string]string{"email": "ada@example.com", "password": "wrong"},
			user:           stored,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown Email",
			payload:        map[string]string{"email": "ghost@example.com", "password": "hunter22"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			app := newAuthApp(mockUsers)

			if tt.user != nil {
				mockUsers.On("GetByEmail", mock.Anything, tt.payload["email"]).Return(tt.user, nil)
			} else {
				mockUsers.On("GetByEmail", mock.Anything, tt.payload["email"]).Return(nil, nil)
			}

			resp := postJSON(t, app, "/auth/login", tt.payload)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
