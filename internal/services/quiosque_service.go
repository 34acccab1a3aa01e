package services

import (
	"errors"
	"fmt"
	"strings"

	"vooud_backend/internal/models"
	"vooud_backend/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrLojaNotFound          = errors.New("loja não encontrada")
	ErrLojaEmUso             = errors.New("loja com vendas registradas em seus quiosques")
	ErrQuiosqueEmUso         = errors.New("quiosque referenciado por vendas existentes")
	ErrIdentificadorExists   = errors.New("já existe um quiosque com este identificador")
	ErrVendedorJaResponsavel = errors.New("vendedor já é responsável por outro quiosque")
)

// CreateQuiosqueRequest is the typed payload for creating or updating a quiosque.
type CreateQuiosqueRequest struct {
	Identificador         string     `json:"identificador" binding:"required"`
	LojaID                uuid.UUID  `json:"loja_id" binding:"required"`
	VendedorResponsavelID *uuid.UUID `json:"vendedor_responsavel_id"`
	CapacidadeJoias       int        `json:"capacidade_joias"`
}

// RestockRequest sets the absolute stock count of one joia at a quiosque.
type RestockRequest struct {
	JoiaID     uuid.UUID `json:"joia_id" binding:"required"`
	Quantidade int       `json:"quantidade"`
}

// --- QuiosqueService Interface ---

type QuiosqueService interface {
	CreateLoja(loja *models.Loja) (*models.Loja, error)
	GetLojas() ([]models.Loja, error)
	DeleteLoja(id uuid.UUID) error

	CreateQuiosque(req CreateQuiosqueRequest) (*models.Quiosque, error)
	GetQuiosques() ([]models.Quiosque, error)
	GetQuiosqueByID(id uuid.UUID) (*models.Quiosque, error)
	UpdateQuiosque(id uuid.UUID, req CreateQuiosqueRequest) (*models.Quiosque, error)
	DeleteQuiosque(id uuid.UUID) error

	RestockQuiosque(quiosqueID uuid.UUID, req RestockRequest) (*models.InventarioQuiosque, error)
}

type quiosqueService struct {
	quiosqueRepo repositories.QuiosqueRepository
	catalogRepo  repositories.CatalogRepository
}

// NewQuiosqueService creates a new instance of QuiosqueService.
func NewQuiosqueService(qr repositories.QuiosqueRepository, cr repositories.CatalogRepository) QuiosqueService {
	return &quiosqueService{quiosqueRepo: qr, catalogRepo: cr}
}

// --- Loja Methods ---

func (s *quiosqueService) CreateLoja(loja *models.Loja) (*models.Loja, error) {
	if loja.Nome == "" {
		return nil, NewValidationError(FieldError{Field: "nome", Message: "campo obrigatório"})
	}
	if _, err := s.quiosqueRepo.CreateLoja(loja); err != nil {
		return nil, fmt.Errorf("failed to create loja: %w", err)
	}
	return loja, nil
}

func (s *quiosqueService) GetLojas() ([]models.Loja, error) {
	lojas, err := s.quiosqueRepo.GetLojas()
	if err != nil {
		return nil, fmt.Errorf("failed to get lojas: %w", err)
	}
	return lojas, nil
}

func (s *quiosqueService) DeleteLoja(id uuid.UUID) error {
	if err := s.quiosqueRepo.DeleteLoja(id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrLojaNotFound
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return ErrLojaEmUso
		}
		return fmt.Errorf("failed to delete loja: %w", err)
	}
	return nil
}

// --- Quiosque Methods ---

func (s *quiosqueService) CreateQuiosque(req CreateQuiosqueRequest) (*models.Quiosque, error) {
	quiosque := &models.Quiosque{
		Identificador:         req.Identificador,
		LojaID:                req.LojaID,
		VendedorResponsavelID: req.VendedorResponsavelID,
		CapacidadeJoias:       req.CapacidadeJoias,
	}
	if _, err := s.quiosqueRepo.CreateQuiosque(quiosque); err != nil {
		return nil, s.mapQuiosqueWriteError(err)
	}
	return quiosque, nil
}

func (s *quiosqueService) GetQuiosques() ([]models.Quiosque, error) {
	quiosques, err := s.quiosqueRepo.GetQuiosques()
	if err != nil {
		return nil, fmt.Errorf("failed to get quiosques: %w", err)
	}
	return quiosques, nil
}

func (s *quiosqueService) GetQuiosqueByID(id uuid.UUID) (*models.Quiosque, error) {
	quiosque, err := s.quiosqueRepo.GetQuiosqueByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrQuiosqueNotFound
		}
		return nil, fmt.Errorf("failed to get quiosque: %w", err)
	}
	return quiosque, nil
}

func (s *quiosqueService) UpdateQuiosque(id uuid.UUID, req CreateQuiosqueRequest) (*models.Quiosque, error) {
	quiosque := &models.Quiosque{
		ID:                    id,
		Identificador:         req.Identificador,
		LojaID:                req.LojaID,
		VendedorResponsavelID: req.VendedorResponsavelID,
		CapacidadeJoias:       req.CapacidadeJoias,
	}
	if err := s.quiosqueRepo.UpdateQuiosque(quiosque); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrQuiosqueNotFound
		}
		return nil, s.mapQuiosqueWriteError(err)
	}
	return quiosque, nil
}

func (s *quiosqueService) DeleteQuiosque(id uuid.UUID) error {
	if err := s.quiosqueRepo.DeleteQuiosque(id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrQuiosqueNotFound
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return ErrQuiosqueEmUso
		}
		return fmt.Errorf("failed to delete quiosque: %w", err)
	}
	return nil
}

// mapQuiosqueWriteError distinguishes the two unique constraints on quiosques:
// the identificador and the one-kiosk-per-vendedor index.
func (s *quiosqueService) mapQuiosqueWriteError(err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		if strings.Contains(err.Error(), "quiosques_vendedor_responsavel_uniq") {
			return ErrVendedorJaResponsavel
		}
		return ErrIdentificadorExists
	}
	if errors.Is(err, repositories.ErrForeignKeyViolation) {
		return ErrLojaNotFound
	}
	return fmt.Errorf("failed to write quiosque: %w", err)
}

// --- Inventory Methods ---

// RestockQuiosque sets the stock of one joia at a quiosque. Validates both
// references so the caller gets a 404-style message instead of a raw
// constraint error.
func (s *quiosqueService) RestockQuiosque(quiosqueID uuid.UUID, req RestockRequest) (*models.InventarioQuiosque, error) {
	if req.Quantidade < 0 {
		return nil, NewValidationError(FieldError{Field: "quantidade", Message: "não pode ser negativa"})
	}

	if _, err := s.quiosqueRepo.GetQuiosqueByID(nil, quiosqueID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrQuiosqueNotFound
		}
		return nil, fmt.Errorf("failed to fetch quiosque %s: %w", quiosqueID, err)
	}
	if _, err := s.catalogRepo.GetJoiaByID(nil, req.JoiaID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJoiaNotFound
		}
		return nil, fmt.Errorf("failed to fetch joia %s: %w", req.JoiaID, err)
	}

	item, err := s.quiosqueRepo.UpsertInventario(quiosqueID, req.JoiaID, req.Quantidade)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert inventario: %w", err)
	}
	return item, nil
}
