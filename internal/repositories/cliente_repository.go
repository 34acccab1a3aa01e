package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vooud_backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ClienteRepository defines the interface for customer database operations.
// FindClienteByEmail and CreateCliente take an SQLExecutor because the sale
// transaction resolves customers inside its own transaction.
type ClienteRepository interface {
	CreateCliente(executor SQLExecutor, cliente *models.Cliente) (uuid.UUID, error)
	FindClienteByEmail(executor SQLExecutor, email string) (*models.Cliente, error)
	GetClienteByID(id uuid.UUID) (*models.Cliente, error)
	GetClientes() ([]models.Cliente, error)
}

type clienteRepository struct {
	db *sql.DB
}

// NewClienteRepository creates a new instance of ClienteRepository.
func NewClienteRepository(db *sql.DB) ClienteRepository {
	return &clienteRepository{db: db}
}

func (r *clienteRepository) CreateCliente(executor SQLExecutor, cliente *models.Cliente) (uuid.UUID, error) {
	query := `INSERT INTO clientes (nome, email, whatsapp, data_criacao)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	if cliente.DataCriacao.IsZero() {
		cliente.DataCriacao = time.Now()
	}

	err := executor.QueryRow(query, cliente.Nome, cliente.Email, cliente.Whatsapp, cliente.DataCriacao).Scan(&cliente.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return uuid.Nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: creating cliente: %v", ErrDatabaseError, err)
	}
	return cliente.ID, nil
}

// FindClienteByEmail looks up a customer by exact email. Callers must not pass
// an empty email; customers without email are never matched, only created.
func (r *clienteRepository) FindClienteByEmail(executor SQLExecutor, email string) (*models.Cliente, error) {
	cliente := &models.Cliente{}
	query := `SELECT id, nome, email, whatsapp, data_criacao FROM clientes WHERE email = $1`
	err := executor.QueryRow(query, email).Scan(
		&cliente.ID, &cliente.Nome, &cliente.Email, &cliente.Whatsapp, &cliente.DataCriacao,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding cliente by email %s: %v", ErrDatabaseError, email, err)
	}
	return cliente, nil
}

func (r *clienteRepository) GetClienteByID(id uuid.UUID) (*models.Cliente, error) {
	cliente := &models.Cliente{}
	query := `SELECT id, nome, email, whatsapp, data_criacao FROM clientes WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&cliente.ID, &cliente.Nome, &cliente.Email, &cliente.Whatsapp, &cliente.DataCriacao,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting cliente by ID %s: %v", ErrDatabaseError, id, err)
	}
	return cliente, nil
}

func (r *clienteRepository) GetClientes() ([]models.Cliente, error) {
	clientes := []models.Cliente{}
	query := `SELECT id, nome, email, whatsapp, data_criacao FROM clientes ORDER BY nome`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clientes: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Cliente
		if err := rows.Scan(&c.ID, &c.Nome, &c.Email, &c.Whatsapp, &c.DataCriacao); err != nil {
			return nil, fmt.Errorf("%w: scanning cliente: %v", ErrDatabaseError, err)
		}
		clientes = append(clientes, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating cliente rows: %v", ErrDatabaseError, err)
	}
	return clientes, nil
}
