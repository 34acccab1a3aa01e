package services

import (
	"errors"
	"fmt"

	"vooud_backend/internal/models"
	"vooud_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCategoriaNotFound = errors.New("categoria não encontrada")
	ErrCategoriaEmUso    = errors.New("categoria em uso por joias existentes")
	ErrJoiaEmUso         = errors.New("joia referenciada por vendas existentes")
	ErrSKUExists         = errors.New("já existe uma joia com este SKU")
	ErrNomeCategoriaDup  = errors.New("já existe uma categoria com este nome")
)

// CreateJoiaRequest is the typed payload for creating or updating a joia.
type CreateJoiaRequest struct {
	Nome               string          `json:"nome" binding:"required"`
	SKU                string          `json:"sku" binding:"required"`
	Descricao          string          `json:"descricao"`
	CategoriaID        uuid.UUID       `json:"categoria_id" binding:"required"`
	Material           string          `json:"material"`
	PrecoCusto         decimal.Decimal `json:"preco_custo"`
	PrecoVenda         decimal.Decimal `json:"preco_venda"`
	PercentualComissao decimal.Decimal `json:"percentual_comissao"`
}

// ValidateJoia checks monetary and commission bounds before persistence.
func ValidateJoia(req *CreateJoiaRequest) []FieldError {
	var fieldErrs []FieldError
	if req.PrecoCusto.IsNegative() {
		fieldErrs = append(fieldErrs, FieldError{Field: "preco_custo", Message: "não pode ser negativo"})
	}
	if req.PrecoVenda.IsNegative() {
		fieldErrs = append(fieldErrs, FieldError{Field: "preco_venda", Message: "não pode ser negativo"})
	}
	if req.PercentualComissao.IsNegative() || req.PercentualComissao.GreaterThan(decimal.NewFromInt(100)) {
		fieldErrs = append(fieldErrs, FieldError{Field: "percentual_comissao", Message: "deve estar entre 0 e 100"})
	}
	return fieldErrs
}

// --- CatalogService Interface ---

type CatalogService interface {
	CreateCategoria(nome string) (*models.Categoria, error)
	GetCategorias() ([]models.Categoria, error)
	UpdateCategoria(id uuid.UUID, nome string) (*models.Categoria, error)
	DeleteCategoria(id uuid.UUID) error

	CreateJoia(req CreateJoiaRequest) (*models.Joia, error)
	GetJoias() ([]models.Joia, error)
	GetJoiaByID(id uuid.UUID) (*models.Joia, error)
	UpdateJoia(id uuid.UUID, req CreateJoiaRequest) (*models.Joia, error)
	DeleteJoia(id uuid.UUID) error
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(cr repositories.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: cr}
}

// --- Categoria Methods ---

func (s *catalogService) CreateCategoria(nome string) (*models.Categoria, error) {
	if nome == "" {
		return nil, NewValidationError(FieldError{Field: "nome", Message: "campo obrigatório"})
	}
	categoria := &models.Categoria{Nome: nome}
	if _, err := s.catalogRepo.CreateCategoria(categoria); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrNomeCategoriaDup
		}
		return nil, fmt.Errorf("failed to create categoria: %w", err)
	}
	return categoria, nil
}

func (s *catalogService) GetCategorias() ([]models.Categoria, error) {
	categorias, err := s.catalogRepo.GetCategorias()
	if err != nil {
		return nil, fmt.Errorf("failed to get categorias: %w", err)
	}
	return categorias, nil
}

func (s *catalogService) UpdateCategoria(id uuid.UUID, nome string) (*models.Categoria, error) {
	if nome == "" {
		return nil, NewValidationError(FieldError{Field: "nome", Message: "campo obrigatório"})
	}
	categoria := &models.Categoria{ID: id, Nome: nome}
	if err := s.catalogRepo.UpdateCategoria(categoria); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrCategoriaNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrNomeCategoriaDup
		}
		return nil, fmt.Errorf("failed to update categoria: %w", err)
	}
	return categoria, nil
}

func (s *catalogService) DeleteCategoria(id uuid.UUID) error {
	if err := s.catalogRepo.DeleteCategoria(id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrCategoriaNotFound
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return ErrCategoriaEmUso
		}
		return fmt.Errorf("failed to delete categoria: %w", err)
	}
	return nil
}

// --- Joia Methods ---

func (s *catalogService) CreateJoia(req CreateJoiaRequest) (*models.Joia, error) {
	if fieldErrs := ValidateJoia(&req); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	joia := s.joiaFromRequest(req)
	if _, err := s.catalogRepo.CreateJoia(joia); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrSKUExists
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return nil, ErrCategoriaNotFound
		}
		return nil, fmt.Errorf("failed to create joia: %w", err)
	}
	return joia, nil
}

func (s *catalogService) GetJoias() ([]models.Joia, error) {
	joias, err := s.catalogRepo.GetJoias()
	if err != nil {
		return nil, fmt.Errorf("failed to get joias: %w", err)
	}
	return joias, nil
}

func (s *catalogService) GetJoiaByID(id uuid.UUID) (*models.Joia, error) {
	joia, err := s.catalogRepo.GetJoiaByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJoiaNotFound
		}
		return nil, fmt.Errorf("failed to get joia: %w", err)
	}
	return joia, nil
}

func (s *catalogService) UpdateJoia(id uuid.UUID, req CreateJoiaRequest) (*models.Joia, error) {
	if fieldErrs := ValidateJoia(&req); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	joia := s.joiaFromRequest(req)
	joia.ID = id
	if err := s.catalogRepo.UpdateJoia(joia); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrJoiaNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrSKUExists
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return nil, ErrCategoriaNotFound
		}
		return nil, fmt.Errorf("failed to update joia: %w", err)
	}
	return joia, nil
}

func (s *catalogService) DeleteJoia(id uuid.UUID) error {
	if err := s.catalogRepo.DeleteJoia(id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrJoiaNotFound
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return ErrJoiaEmUso
		}
		return fmt.Errorf("failed to delete joia: %w", err)
	}
	return nil
}

func (s *catalogService) joiaFromRequest(req CreateJoiaRequest) *models.Joia {
	percentual := req.PercentualComissao
	if percentual.IsZero() {
		percentual = decimal.RequireFromString("10.00") // default commission
	}
	var descricao *string
	if req.Descricao != "" {
		descricao = &req.Descricao
	}
	return &models.Joia{
		Nome:               req.Nome,
		SKU:                req.SKU,
		Descricao:          descricao,
		CategoriaID:        req.CategoriaID,
		Material:           req.Material,
		PrecoCusto:         req.PrecoCusto,
		PrecoVenda:         req.PrecoVenda,
		PercentualComissao: percentual,
	}
}
