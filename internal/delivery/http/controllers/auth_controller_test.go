package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_SignUp(t *testing.T) {
	now := time.Now()
	created := &domain.User{ID: "user-1", Name: "Sam", Email: "sam@example.com", CreatedAt: now, UpdatedAt: now}

	tests := []struct {
		name       string
		body       []byte
		fake       *fakeUserService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       []byte(`{"name":"Sam","email":"sam@example.com","password":"secret1"}`),
			fake:       &fakeUserService{signUpUser: created},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing fields",
			body:       []byte(`{"name":"Sam"}`),
			fake:       &fakeUserService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "invalid json",
			body:       []byte(`{invalid`),
			fake:       &fakeUserService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "validation error from the service",
			body:       []byte(`{"name":"Sam","email":"bad","password":"secret1"}`),
			fake:       &fakeUserService{signUpErr: domain.ErrValidation},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "duplicate email",
			body:       []byte(`{"name":"Sam","email":"sam@example.com","password":"secret1"}`),
			fake:       &fakeUserService{signUpErr: domain.ErrDuplicateEmail},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "service error",
			body:       []byte(`{"name":"Sam","email":"sam@example.com","password":"secret1"}`),
			fake:       &fakeUserService{signUpErr: assert.AnError},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(discardLogger(), tt.fake)

			rr := httptest.NewRecorder()
			ctrl.SignUp(rr, authedRequest(http.MethodPost, "http://test/users", tt.body, ""))

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)
			assert.NotContains(t, rr.Body.String(), "password")
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	now := time.Now()
	user := &domain.User{ID: "user-1", Name: "Sam", Email: "sam@example.com", CreatedAt: now, UpdatedAt: now}

	t.Run("success returns token and user", func(t *testing.T) {
		fake := &fakeUserService{loginToken: "jwt-token", loginUser: user}
		ctrl := NewAuthController(discardLogger(), fake)

		body := []byte(`{"email":"sam@example.com","password":"secret1"}`)
		rr := httptest.NewRecorder()
		ctrl.Login(rr, authedRequest(http.MethodPost, "http://test/sessions", body, ""))

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.Nil(t, envelope.Error)
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var resp LoginResponse
		require.NoError(t, json.Unmarshal(raw, &resp))
		assert.Equal(t, "jwt-token", resp.Token)
		assert.Equal(t, "user-1", resp.User.ID)
	})

	t.Run("wrong password is indistinguishable from unknown email", func(t *testing.T) {
		body := []byte(`{"email":"sam@example.com","password":"wrong"}`)

		for _, serviceErr := range []error{domain.ErrWrongPassword, domain.ErrUserNotFound} {
			ctrl := NewAuthController(discardLogger(), &fakeUserService{loginErr: serviceErr})

			rr := httptest.NewRecorder()
			ctrl.Login(rr, authedRequest(http.MethodPost, "http://test/sessions", body, ""))

			require.Equal(t, http.StatusUnauthorized, rr.Code)
			envelope := decodeEnvelope(t, rr)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, "invalid credentials", envelope.Error.Message)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := NewAuthController(discardLogger(), &fakeUserService{})

		rr := httptest.NewRecorder()
		ctrl.Login(rr, authedRequest(http.MethodPost, "http://test/sessions", []byte(`{"email":"sam@example.com"}`), ""))

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
