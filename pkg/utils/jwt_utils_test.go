package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	vendedorID := uuid.New()

	token, err := GenerateAccessToken(vendedorID, "ana@vooud.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.VendedorID != vendedorID {
		t.Errorf("vendedor_id = %s, want %s", claims.VendedorID, vendedorID)
	}
	if claims.Email != "ana@vooud.com" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	vendedorID := uuid.New()

	token, err := GenerateRefreshToken(vendedorID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.VendedorID != vendedorID {
		t.Errorf("vendedor_id = %s, want %s", claims.VendedorID, vendedorID)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("definitely.not.a-jwt"); err == nil {
		t.Fatal("expected garbage token to fail validation")
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), "ana@vooud.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("expected tampered token to fail validation")
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"ana@vooud.com", "Maria.Silva+loja@example.com.br"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	invalid := []string{"", "not-an-email", "a@b", "@vooud.com"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}
