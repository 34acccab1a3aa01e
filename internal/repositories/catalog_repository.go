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

// CatalogRepository defines the interface for categoria and joia database
// operations. GetJoiaByID takes an SQLExecutor so the sale transaction reads
// the price snapshot inside its own transaction.
type CatalogRepository interface {
	// Categoria methods
	CreateCategoria(categoria *models.Categoria) (uuid.UUID, error)
	GetCategorias() ([]models.Categoria, error)
	GetCategoriaByID(id uuid.UUID) (*models.Categoria, error)
	UpdateCategoria(categoria *models.Categoria) error
	DeleteCategoria(id uuid.UUID) error

	// Joia methods
	CreateJoia(joia *models.Joia) (uuid.UUID, error)
	GetJoias() ([]models.Joia, error)
	GetJoiaByID(executor SQLExecutor, id uuid.UUID) (*models.Joia, error)
	UpdateJoia(joia *models.Joia) error
	DeleteJoia(id uuid.UUID) error
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// --- Categoria Methods ---

func (r *catalogRepository) CreateCategoria(categoria *models.Categoria) (uuid.UUID, error) {
	query := `INSERT INTO categorias (nome) VALUES ($1) RETURNING id`
	err := r.db.QueryRow(query, categoria.Nome).Scan(&categoria.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return uuid.Nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: creating categoria: %v", ErrDatabaseError, err)
	}
	return categoria.ID, nil
}

func (r *catalogRepository) GetCategorias() ([]models.Categoria, error) {
	categorias := []models.Categoria{}
	rows, err := r.db.Query(`SELECT id, nome FROM categorias ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying categorias: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Categoria
		if err := rows.Scan(&c.ID, &c.Nome); err != nil {
			return nil, fmt.Errorf("%w: scanning categoria: %v", ErrDatabaseError, err)
		}
		categorias = append(categorias, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating categoria rows: %v", ErrDatabaseError, err)
	}
	return categorias, nil
}

func (r *catalogRepository) GetCategoriaByID(id uuid.UUID) (*models.Categoria, error) {
	categoria := &models.Categoria{}
	err := r.db.QueryRow(`SELECT id, nome FROM categorias WHERE id = $1`, id).Scan(&categoria.ID, &categoria.Nome)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting categoria by ID %s: %v", ErrDatabaseError, id, err)
	}
	return categoria, nil
}

func (r *catalogRepository) UpdateCategoria(categoria *models.Categoria) error {
	result, err := r.db.Exec(`UPDATE categorias SET nome = $1 WHERE id = $2`, categoria.Nome, categoria.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating categoria %s: %v", ErrDatabaseError, categoria.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for categoria update %s: %v", ErrDatabaseError, categoria.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategoria removes a categoria. Joias still referencing it block the
// delete via the RESTRICT rule (pq code 23503).
func (r *catalogRepository) DeleteCategoria(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: deleting categoria %s (constraint: %s)", ErrForeignKeyViolation, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting categoria %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting categoria %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Joia Methods ---

const joiaColumns = `j.id, j.nome, j.sku, j.descricao, j.categoria_id, j.material,
	                 j.preco_custo, j.preco_venda, j.percentual_comissao, j.data_criacao`

func (r *catalogRepository) CreateJoia(joia *models.Joia) (uuid.UUID, error) {
	query := `INSERT INTO joias (nome, sku, descricao, categoria_id, material, preco_custo, preco_venda, percentual_comissao, data_criacao)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	if joia.DataCriacao.IsZero() {
		joia.DataCriacao = time.Now()
	}

	err := r.db.QueryRow(query,
		joia.Nome, joia.SKU, joia.Descricao, joia.CategoriaID, joia.Material,
		joia.PrecoCusto, joia.PrecoVenda, joia.PercentualComissao, joia.DataCriacao,
	).Scan(&joia.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return uuid.Nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			case "23503":
				return uuid.Nil, fmt.Errorf("%w: creating joia (constraint: %s)", ErrForeignKeyViolation, pqErr.Constraint)
			}
		}
		return uuid.Nil, fmt.Errorf("%w: creating joia: %v", ErrDatabaseError, err)
	}
	return joia.ID, nil
}

func (r *catalogRepository) GetJoias() ([]models.Joia, error) {
	joias := []models.Joia{}
	query := `SELECT ` + joiaColumns + `, c.nome as categoria_nome
	          FROM joias j
	          JOIN categorias c ON j.categoria_id = c.id
	          ORDER BY j.nome`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying joias: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var j models.Joia
		var categoriaNome string
		err := rows.Scan(
			&j.ID, &j.Nome, &j.SKU, &j.Descricao, &j.CategoriaID, &j.Material,
			&j.PrecoCusto, &j.PrecoVenda, &j.PercentualComissao, &j.DataCriacao,
			&categoriaNome,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning joia: %v", ErrDatabaseError, err)
		}
		j.Categoria = &models.Categoria{ID: j.CategoriaID, Nome: categoriaNome}
		joias = append(joias, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating joia rows: %v", ErrDatabaseError, err)
	}
	return joias, nil
}

// GetJoiaByID reads a joia through the given executor so the sale transaction
// snapshots prices from the same transaction that decrements stock. A nil
// executor falls back to the pool for plain reads.
func (r *catalogRepository) GetJoiaByID(executor SQLExecutor, id uuid.UUID) (*models.Joia, error) {
	if executor == nil {
		executor = r.db
	}
	joia := &models.Joia{}
	query := `SELECT ` + joiaColumns + ` FROM joias j WHERE j.id = $1`
	err := executor.QueryRow(query, id).Scan(
		&joia.ID, &joia.Nome, &joia.SKU, &joia.Descricao, &joia.CategoriaID, &joia.Material,
		&joia.PrecoCusto, &joia.PrecoVenda, &joia.PercentualComissao, &joia.DataCriacao,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting joia by ID %s: %v", ErrDatabaseError, id, err)
	}
	return joia, nil
}

func (r *catalogRepository) UpdateJoia(joia *models.Joia) error {
	query := `UPDATE joias
	          SET nome = $1, sku = $2, descricao = $3, categoria_id = $4, material = $5,
	              preco_custo = $6, preco_venda = $7, percentual_comissao = $8
	          WHERE id = $9`

	result, err := r.db.Exec(query,
		joia.Nome, joia.SKU, joia.Descricao, joia.CategoriaID, joia.Material,
		joia.PrecoCusto, joia.PrecoVenda, joia.PercentualComissao, joia.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			case "23503":
				return fmt.Errorf("%w: updating joia %s (constraint: %s)", ErrForeignKeyViolation, joia.ID, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating joia %s: %v", ErrDatabaseError, joia.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for joia update %s: %v", ErrDatabaseError, joia.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteJoia removes a joia. Sale lines referencing it block the delete via
// the RESTRICT rule; inventory rows cascade away.
func (r *catalogRepository) DeleteJoia(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM joias WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: deleting joia %s (constraint: %s)", ErrForeignKeyViolation, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting joia %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting joia %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
