package services

import (
	"errors"
	"testing"

	"vooud_backend/internal/models"
	"vooud_backend/pkg/utils"

	"github.com/google/uuid"
)

func newAuthFixture() (*fakeStore, AuthService) {
	store := newFakeStore()
	service := NewAuthService(
		&fakeVendedorRepo{store: store},
		&fakeQuiosqueRepo{store: store},
		&fakeTxManager{store: store},
	)
	return store, service
}

func registerAna(t *testing.T, service AuthService) *models.Vendedor {
	t.Helper()
	vendedor, err := service.RegisterVendedor(RegisterVendedorRequest{
		NomeCompleto: "Ana Souza",
		Email:        "Ana@VOOUD.com",
		Password:     "senha-muito-forte",
		Password2:    "senha-muito-forte",
	})
	if err != nil {
		t.Fatalf("RegisterVendedor failed: %v", err)
	}
	return vendedor
}

func TestRegisterVendedorNormalizesEmail(t *testing.T) {
	_, service := newAuthFixture()

	vendedor := registerAna(t, service)
	if vendedor.Email != "ana@vooud.com" {
		t.Errorf("email = %q, want lowercased", vendedor.Email)
	}
	if !vendedor.IsActive {
		t.Error("new vendedores must start active")
	}
	if vendedor.PasswordHash != "" {
		t.Error("password hash leaked in the response")
	}
}

func TestRegisterVendedorPasswordMismatch(t *testing.T) {
	_, service := newAuthFixture()

	_, err := service.RegisterVendedor(RegisterVendedorRequest{
		NomeCompleto: "Ana Souza",
		Email:        "ana@vooud.com",
		Password:     "senha-um",
		Password2:    "senha-dois",
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestRegisterVendedorDuplicateEmail(t *testing.T) {
	_, service := newAuthFixture()
	registerAna(t, service)

	_, err := service.RegisterVendedor(RegisterVendedorRequest{
		NomeCompleto: "Outra Ana",
		Email:        "ana@vooud.com",
		Password:     "outra-senha-forte",
		Password2:    "outra-senha-forte",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
}

func TestLoginIssuesValidTokenPair(t *testing.T) {
	_, service := newAuthFixture()
	vendedor := registerAna(t, service)

	tokens, err := service.Login(LoginRequest{Email: "ana@vooud.com", Password: "senha-muito-forte"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims, err := utils.ValidateToken(tokens.Access)
	if err != nil {
		t.Fatalf("access token did not validate: %v", err)
	}
	if claims.VendedorID != vendedor.ID {
		t.Errorf("token vendedor_id = %s, want %s", claims.VendedorID, vendedor.ID)
	}
	if claims.Email != "ana@vooud.com" {
		t.Errorf("token email = %q", claims.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, service := newAuthFixture()
	registerAna(t, service)

	_, err := service.Login(LoginRequest{Email: "ana@vooud.com", Password: "senha-errada"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	_, service := newAuthFixture()

	_, err := service.Login(LoginRequest{Email: "ninguem@vooud.com", Password: "qualquer"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveVendedor(t *testing.T) {
	store, service := newAuthFixture()
	vendedor := registerAna(t, service)

	stored := store.vendedores[vendedor.ID]
	stored.IsActive = false
	store.vendedores[vendedor.ID] = stored

	_, err := service.Login(LoginRequest{Email: "ana@vooud.com", Password: "senha-muito-forte"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshTokens(t *testing.T) {
	_, service := newAuthFixture()
	vendedor := registerAna(t, service)

	tokens, err := service.Login(LoginRequest{Email: "ana@vooud.com", Password: "senha-muito-forte"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	refreshed, err := service.RefreshTokens(tokens.Refresh)
	if err != nil {
		t.Fatalf("RefreshTokens failed: %v", err)
	}
	claims, err := utils.ValidateToken(refreshed.Access)
	if err != nil {
		t.Fatalf("refreshed access token did not validate: %v", err)
	}
	if claims.VendedorID != vendedor.ID {
		t.Errorf("refreshed token vendedor_id = %s, want %s", claims.VendedorID, vendedor.ID)
	}
}

func TestRefreshTokensGarbage(t *testing.T) {
	_, service := newAuthFixture()

	_, err := service.RefreshTokens("not.a.token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestDeleteVendedorReleasesQuiosque(t *testing.T) {
	store, service := newAuthFixture()
	vendedor := registerAna(t, service)

	lojaID := uuid.New()
	store.lojas[lojaID] = models.Loja{ID: lojaID, Nome: "Shopping Recife"}
	quiosqueID := uuid.New()
	store.quiosques[quiosqueID] = models.Quiosque{
		ID:                    quiosqueID,
		Identificador:         "QSQ-01",
		LojaID:                lojaID,
		VendedorResponsavelID: &vendedor.ID,
	}

	if err := service.DeleteVendedor(vendedor.ID); err != nil {
		t.Fatalf("DeleteVendedor failed: %v", err)
	}

	if _, ok := store.vendedores[vendedor.ID]; ok {
		t.Error("vendedor still present after delete")
	}
	if q := store.quiosques[quiosqueID]; q.VendedorResponsavelID != nil {
		t.Error("quiosque should survive with vendedor_responsavel cleared")
	}
}

func TestDeleteVendedorBlockedByVendas(t *testing.T) {
	store, service := newAuthFixture()
	vendedor := registerAna(t, service)

	store.vendas[uuid.New()] = models.Venda{ID: uuid.New(), VendedorID: vendedor.ID}

	err := service.DeleteVendedor(vendedor.ID)
	if !errors.Is(err, ErrVendedorEmUso) {
		t.Fatalf("err = %v, want ErrVendedorEmUso", err)
	}
	if _, ok := store.vendedores[vendedor.ID]; !ok {
		t.Error("vendedor must remain when the delete is blocked")
	}
}
