package services

import (
	"errors"
	"fmt"

	"vooud_backend/internal/models"
	"vooud_backend/internal/repositories"

	"github.com/google/uuid"
)

var ErrClienteNotFound = errors.New("cliente não encontrado")

// ClienteService exposes read access to customers. Creation happens only
// through the sale transaction's match-or-create step.
type ClienteService interface {
	GetClientes() ([]models.Cliente, error)
	GetClienteByID(id uuid.UUID) (*models.Cliente, error)
}

type clienteService struct {
	clienteRepo repositories.ClienteRepository
}

// NewClienteService creates a new instance of ClienteService.
func NewClienteService(cr repositories.ClienteRepository) ClienteService {
	return &clienteService{clienteRepo: cr}
}

func (s *clienteService) GetClientes() ([]models.Cliente, error) {
	clientes, err := s.clienteRepo.GetClientes()
	if err != nil {
		return nil, fmt.Errorf("failed to get clientes: %w", err)
	}
	return clientes, nil
}

func (s *clienteService) GetClienteByID(id uuid.UUID) (*models.Cliente, error) {
	cliente, err := s.clienteRepo.GetClienteByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClienteNotFound
		}
		return nil, fmt.Errorf("failed to get cliente: %w", err)
	}
	return cliente, nil
}
