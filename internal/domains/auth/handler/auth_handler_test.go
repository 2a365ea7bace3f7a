package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-api/internal/domains/auth"
	"bookshelf-api/internal/shared/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (uuid.UUID, error)
	loginFn    func(ctx context.Context, req auth.LoginRequest) (string, error)
}

func (m *mockService) Register(ctx context.Context, req auth.RegisterRequest) (uuid.UUID, error) {
	return m.registerFn(ctx, req)
}

func (m *mockService) Login(ctx context.Context, req auth.LoginRequest) (string, error) {
	return m.loginFn(ctx, req)
}

func newRouter(svc auth.Service) *gin.Engine {
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterCreated(t *testing.T) {
	id := uuid.New()
	r := newRouter(&mockService{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (uuid.UUID, error) {
			assert.Equal(t, auth.RegisterRequest{Name: "A", Email: "a@x.com", Password: "p"}, req)
			return id, nil
		},
	})

	w := post(r, "/auth/register", `{"name":"A","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// success is a string in the register contract.
	assert.Equal(t, "true", body["success"])
	assert.Equal(t, id.String(), body["id"])
}

func TestRegisterValidationErrorEnvelope(t *testing.T) {
	r := newRouter(&mockService{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (uuid.UUID, error) {
			return uuid.Nil, apperror.Validation("Email is required!")
		},
	})

	w := post(r, "/auth/register", `{"name":"A"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t,
		`{"success":false,"error":{"code":"BAD REQUEST","message":"Email is required!"}}`,
		w.Body.String())
}

func TestRegisterEmptyBodyReachesService(t *testing.T) {
	// An empty body must still hit field-presence validation instead of a
	// generic bind failure.
	called := false
	r := newRouter(&mockService{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (uuid.UUID, error) {
			called = true
			assert.Equal(t, auth.RegisterRequest{}, req)
			return uuid.Nil, apperror.Validation("Name is required!")
		},
	})

	w := post(r, "/auth/register", "")
	assert.True(t, called)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginOK(t *testing.T) {
	r := newRouter(&mockService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (string, error) {
			return "signed-token", nil
		},
	})

	w := post(r, "/auth/login", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"accessToken":"signed-token"}`, w.Body.String())
}

func TestLoginFailuresUseErrorEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", apperror.NotFound("User Not Found!"), 404, "NOT FOUND", "User Not Found!"},
		{"bad password", apperror.Unauthorized("Invalid Credentials!"), 401, "UNAUTHORIZED", "Invalid Credentials!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockService{
				loginFn: func(ctx context.Context, req auth.LoginRequest) (string, error) {
					return "", tt.err
				},
			})

			w := post(r, "/auth/login", `{"email":"a@x.com","password":"p"}`)
			require.Equal(t, tt.status, w.Code)

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}
