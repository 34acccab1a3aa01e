package services

import (
	"errors"
	"fmt"
	"strings"

	"vooud_backend/internal/models"
	"vooud_backend/internal/repositories"
	"vooud_backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrVendedorNotFound   = errors.New("vendedor não encontrado")
	ErrVendedorEmUso      = errors.New("vendedor com vendas registradas")
	ErrInvalidCredentials = errors.New("email ou senha inválidos")
	ErrEmailExists        = errors.New("já existe um vendedor com este email")
	ErrInvalidToken       = errors.New("token inválido ou expirado")
)

// --- Data Transfer Objects (DTOs) ---

// RegisterVendedorRequest mirrors the registration form: full name, email and
// the password typed twice.
type RegisterVendedorRequest struct {
	NomeCompleto string `json:"nome_completo" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Password2    string `json:"password2" binding:"required"`
	Telefone     string `json:"telefone"`
}

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is the login/refresh response: short-lived access token plus a
// refresh token.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterVendedor(req RegisterVendedorRequest) (*models.Vendedor, error)
	Login(req LoginRequest) (*TokenPair, error)
	RefreshTokens(refreshToken string) (*TokenPair, error)
	GetVendedorProfile(vendedorID uuid.UUID) (*models.Vendedor, error)
	DeleteVendedor(vendedorID uuid.UUID) error
}

// --- authService Implementation ---
type authService struct {
	vendedorRepo repositories.VendedorRepository
	quiosqueRepo repositories.QuiosqueRepository
	txm          repositories.TxManager
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(vr repositories.VendedorRepository, qr repositories.QuiosqueRepository, txm repositories.TxManager) AuthService {
	return &authService{
		vendedorRepo: vr,
		quiosqueRepo: qr,
		txm:          txm,
	}
}

// RegisterVendedor handles the business logic for seller registration.
func (s *authService) RegisterVendedor(req RegisterVendedorRequest) (*models.Vendedor, error) {
	if req.Password != req.Password2 {
		return nil, NewValidationError(FieldError{Field: "password", Message: "as senhas não coincidem"})
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	vendedor := models.Vendedor{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Nome:     req.NomeCompleto,
		Telefone: utils.NewNullString(req.Telefone),
		IsActive: true,
	}

	var createdID uuid.UUID
	err = s.txm.WithinTx(func(ex repositories.SQLExecutor) error {
		id, repoErr := s.vendedorRepo.CreateVendedor(ex, &vendedor, string(hashedPasswordBytes))
		if repoErr != nil {
			return repoErr
		}
		createdID = id
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to register vendedor: %w", err)
	}

	registered, fetchErr := s.vendedorRepo.FindVendedorByID(createdID)
	if fetchErr != nil {
		vendedor.ID = createdID
		vendedor.PasswordHash = ""
		return &vendedor, nil
	}
	registered.PasswordHash = ""
	return registered, nil
}

// Login checks credentials and issues an access/refresh token pair.
func (s *authService) Login(req LoginRequest) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	vendedor, storedHash, err := s.vendedorRepo.FindVendedorByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !vendedor.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(vendedor)
}

// RefreshTokens validates a refresh token and issues a fresh pair.
func (s *authService) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	vendedor, err := s.vendedorRepo.FindVendedorByID(claims.VendedorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to fetch vendedor for token refresh: %w", err)
	}
	if !vendedor.IsActive {
		return nil, ErrInvalidToken
	}

	return s.issueTokens(vendedor)
}

func (s *authService) issueTokens(vendedor *models.Vendedor) (*TokenPair, error) {
	access, err := utils.GenerateAccessToken(vendedor.ID, vendedor.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken(vendedor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// GetVendedorProfile retrieves a seller's profile by ID.
func (s *authService) GetVendedorProfile(vendedorID uuid.UUID) (*models.Vendedor, error) {
	vendedor, err := s.vendedorRepo.FindVendedorByID(vendedorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVendedorNotFound
		}
		return nil, fmt.Errorf("failed to retrieve vendedor profile: %w", err)
	}
	vendedor.PasswordHash = ""
	return vendedor, nil
}

// DeleteVendedor removes a seller account. Kiosk responsibility is nulled out
// first so the kiosk survives; vendas referencing the seller still block the
// delete.
func (s *authService) DeleteVendedor(vendedorID uuid.UUID) error {
	err := s.txm.WithinTx(func(ex repositories.SQLExecutor) error {
		if err := s.quiosqueRepo.ClearVendedorResponsavel(ex, vendedorID); err != nil {
			return err
		}
		return s.vendedorRepo.DeleteVendedor(ex, vendedorID)
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrVendedorNotFound
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return ErrVendedorEmUso
		}
		return err
	}
	return nil
}
