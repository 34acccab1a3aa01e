package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vooud_backend/internal/middleware"
	"vooud_backend/internal/models"
	"vooud_backend/internal/services"
)

type stubAuthService struct {
	deleteErr error
}

func (s *stubAuthService) RegisterVendedor(_ services.RegisterVendedorRequest) (*models.Vendedor, error) {
	return nil, nil
}

func (s *stubAuthService) Login(_ services.LoginRequest) (*services.TokenPair, error) {
	return nil, services.ErrInvalidCredentials
}

func (s *stubAuthService) RefreshTokens(_ string) (*services.TokenPair, error) {
	return nil, services.ErrInvalidToken
}

func (s *stubAuthService) GetVendedorProfile(_ uuid.UUID) (*models.Vendedor, error) {
	return nil, services.ErrVendedorNotFound
}

func (s *stubAuthService) DeleteVendedor(_ uuid.UUID) error {
	return s.deleteErr
}

func authTestEngine(stub *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewAuthHandlers(stub)

	engine.Use(func(c *gin.Context) {
		c.Set(middleware.ContextVendedorIDKey, uuid.New())
	})
	engine.DELETE("/me", h.DeleteAccount)
	return engine
}

func deleteMe(engine *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/me", nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestDeleteAccountStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"sucesso", nil, http.StatusNoContent},
		{"vendedor desconhecido", services.ErrVendedorNotFound, http.StatusNotFound},
		{"bloqueado por vendas", services.ErrVendedorEmUso, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := authTestEngine(&stubAuthService{deleteErr: tc.err})
			w := deleteMe(engine)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d, body: %s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}
