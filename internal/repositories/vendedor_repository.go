package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vooud_backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq" // For pq.Error
)

// VendedorRepository defines the interface for seller account database operations.
type VendedorRepository interface {
	CreateVendedor(executor SQLExecutor, vendedor *models.Vendedor, hashedPassword string) (uuid.UUID, error)
	FindVendedorByEmail(email string) (*models.Vendedor, string, error) // Returns Vendedor, HashedPassword, Error
	FindVendedorByID(id uuid.UUID) (*models.Vendedor, error)
	DeleteVendedor(executor SQLExecutor, id uuid.UUID) error
}

type vendedorRepository struct {
	db *sql.DB
}

// NewVendedorRepository creates a new instance of VendedorRepository.
func NewVendedorRepository(db *sql.DB) VendedorRepository {
	return &vendedorRepository{db: db}
}

const vendedorColumns = `id, email, password_hash, nome, telefone, comissao_padrao, is_staff, is_active, created_at, updated_at`

// CreateVendedor inserts a new seller account. The caller provides the bcrypt
// hash; the repository never sees plaintext passwords.
func (r *vendedorRepository) CreateVendedor(executor SQLExecutor, vendedor *models.Vendedor, hashedPassword string) (uuid.UUID, error) {
	query := `INSERT INTO vendedores (email, password_hash, nome, telefone, comissao_padrao, is_staff, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	now := time.Now()
	var id uuid.UUID
	err := executor.QueryRow(
		query,
		vendedor.Email,
		hashedPassword,
		vendedor.Nome,
		vendedor.Telefone,
		vendedor.ComissaoPadrao,
		vendedor.IsStaff,
		true, // new accounts start active
		now,
		now,
	).Scan(&id)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return uuid.Nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: creating vendedor: %v", ErrDatabaseError, err)
	}
	return id, nil
}

// FindVendedorByEmail retrieves a seller by login email along with the stored
// password hash for credential checks.
func (r *vendedorRepository) FindVendedorByEmail(email string) (*models.Vendedor, string, error) {
	vendedor := &models.Vendedor{}
	var hashedPassword string

	query := `SELECT ` + vendedorColumns + ` FROM vendedores WHERE email = $1`
	err := r.db.QueryRow(query, email).Scan(
		&vendedor.ID, &vendedor.Email, &hashedPassword, &vendedor.Nome, &vendedor.Telefone,
		&vendedor.ComissaoPadrao, &vendedor.IsStaff, &vendedor.IsActive,
		&vendedor.CreatedAt, &vendedor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding vendedor by email %s: %v", ErrDatabaseError, email, err)
	}
	return vendedor, hashedPassword, nil
}

// FindVendedorByID retrieves a seller by ID for profile reads.
func (r *vendedorRepository) FindVendedorByID(id uuid.UUID) (*models.Vendedor, error) {
	vendedor := &models.Vendedor{}
	var hashedPassword string

	query := `SELECT ` + vendedorColumns + ` FROM vendedores WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&vendedor.ID, &vendedor.Email, &hashedPassword, &vendedor.Nome, &vendedor.Telefone,
		&vendedor.ComissaoPadrao, &vendedor.IsStaff, &vendedor.IsActive,
		&vendedor.CreatedAt, &vendedor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding vendedor by ID %s: %v", ErrDatabaseError, id, err)
	}
	return vendedor, nil
}

// DeleteVendedor removes a seller account. Kiosk responsibility is nulled out
// by the service before this runs; vendas referencing the seller block the
// delete via the RESTRICT rule.
func (r *vendedorRepository) DeleteVendedor(executor SQLExecutor, id uuid.UUID) error {
	result, err := executor.Exec(`DELETE FROM vendedores WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: deleting vendedor %s (constraint: %s)", ErrForeignKeyViolation, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting vendedor %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting vendedor %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
