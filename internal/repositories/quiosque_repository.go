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

// QuiosqueRepository defines the interface for loja, quiosque and kiosk
// inventory database operations. The *ForUpdate and decrement methods take an
// SQLExecutor: the sale transaction must lock and mutate inventory rows inside
// a single transaction.
type QuiosqueRepository interface {
	// Loja methods
	CreateLoja(loja *models.Loja) (uuid.UUID, error)
	GetLojas() ([]models.Loja, error)
	GetLojaByID(id uuid.UUID) (*models.Loja, error)
	DeleteLoja(id uuid.UUID) error

	// Quiosque methods
	CreateQuiosque(quiosque *models.Quiosque) (uuid.UUID, error)
	GetQuiosques() ([]models.Quiosque, error)
	GetQuiosqueByID(executor SQLExecutor, id uuid.UUID) (*models.Quiosque, error)
	GetQuiosqueByVendedor(vendedorID uuid.UUID) (*models.Quiosque, error)
	UpdateQuiosque(quiosque *models.Quiosque) error
	DeleteQuiosque(id uuid.UUID) error
	ClearVendedorResponsavel(executor SQLExecutor, vendedorID uuid.UUID) error

	// Inventory methods
	GetInventarioView(quiosqueID uuid.UUID) ([]models.InventarioItemView, error)
	GetInventarioItemForUpdate(executor SQLExecutor, quiosqueID, joiaID uuid.UUID) (*models.InventarioQuiosque, error)
	DecrementInventario(executor SQLExecutor, inventarioID uuid.UUID, quantidade int) (int64, error)
	UpsertInventario(quiosqueID, joiaID uuid.UUID, quantidade int) (*models.InventarioQuiosque, error)
}

type quiosqueRepository struct {
	db *sql.DB
}

// NewQuiosqueRepository creates a new instance of QuiosqueRepository.
func NewQuiosqueRepository(db *sql.DB) QuiosqueRepository {
	return &quiosqueRepository{db: db}
}

// --- Loja Methods ---

func (r *quiosqueRepository) CreateLoja(loja *models.Loja) (uuid.UUID, error) {
	query := `INSERT INTO lojas (nome, endereco, data_criacao) VALUES ($1, $2, $3) RETURNING id`
	if loja.DataCriacao.IsZero() {
		loja.DataCriacao = time.Now()
	}
	err := r.db.QueryRow(query, loja.Nome, loja.Endereco, loja.DataCriacao).Scan(&loja.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: creating loja: %v", ErrDatabaseError, err)
	}
	return loja.ID, nil
}

func (r *quiosqueRepository) GetLojas() ([]models.Loja, error) {
	lojas := []models.Loja{}
	rows, err := r.db.Query(`SELECT id, nome, endereco, data_criacao FROM lojas ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying lojas: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.Loja
		if err := rows.Scan(&l.ID, &l.Nome, &l.Endereco, &l.DataCriacao); err != nil {
			return nil, fmt.Errorf("%w: scanning loja: %v", ErrDatabaseError, err)
		}
		lojas = append(lojas, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating loja rows: %v", ErrDatabaseError, err)
	}
	return lojas, nil
}

func (r *quiosqueRepository) GetLojaByID(id uuid.UUID) (*models.Loja, error) {
	loja := &models.Loja{}
	err := r.db.QueryRow(`SELECT id, nome, endereco, data_criacao FROM lojas WHERE id = $1`, id).Scan(
		&loja.ID, &loja.Nome, &loja.Endereco, &loja.DataCriacao,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting loja by ID %s: %v", ErrDatabaseError, id, err)
	}
	return loja, nil
}

// DeleteLoja removes a loja; its quiosques (and their inventories) cascade away.
// Vendas referencing a cascaded quiosque block the delete through the quiosque
// RESTRICT rule.
func (r *quiosqueRepository) DeleteLoja(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM lojas WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: deleting loja %s (constraint: %s)", ErrForeignKeyViolation, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting loja %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting loja %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Quiosque Methods ---

const quiosqueColumns = `q.id, q.identificador, q.loja_id, q.vendedor_responsavel_id, q.capacidade_joias, q.data_criacao`

func (r *quiosqueRepository) CreateQuiosque(quiosque *models.Quiosque) (uuid.UUID, error) {
	query := `INSERT INTO quiosques (identificador, loja_id, vendedor_responsavel_id, capacidade_joias, data_criacao)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if quiosque.DataCriacao.IsZero() {
		quiosque.DataCriacao = time.Now()
	}
	if quiosque.CapacidadeJoias == 0 {
		quiosque.CapacidadeJoias = 50
	}

	err := r.db.QueryRow(query,
		quiosque.Identificador, quiosque.LojaID, quiosque.VendedorResponsavelID,
		quiosque.CapacidadeJoias, quiosque.DataCriacao,
	).Scan(&quiosque.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return uuid.Nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			case "23503":
				return uuid.Nil, fmt.Errorf("%w: creating quiosque (constraint: %s)", ErrForeignKeyViolation, pqErr.Constraint)
			}
		}
		return uuid.Nil, fmt.Errorf("%w: creating quiosque: %v", ErrDatabaseError, err)
	}
	return quiosque.ID, nil
}

func (r *quiosqueRepository) GetQuiosques() ([]models.Quiosque, error) {
	quiosques := []models.Quiosque{}
	query := `SELECT ` + quiosqueColumns + `, l.nome as loja_nome
	          FROM quiosques q
	          JOIN lojas l ON q.loja_id = l.id
	          ORDER BY q.identificador`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying quiosques: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var q models.Quiosque
		var lojaNome string
		err := rows.Scan(
			&q.ID, &q.Identificador, &q.LojaID, &q.VendedorResponsavelID,
			&q.CapacidadeJoias, &q.DataCriacao, &lojaNome,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning quiosque: %v", ErrDatabaseError, err)
		}
		q.Loja = &models.Loja{ID: q.LojaID, Nome: lojaNome}
		quiosques = append(quiosques, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating quiosque rows: %v", ErrDatabaseError, err)
	}
	return quiosques, nil
}

// GetQuiosqueByID reads a quiosque through the given executor so the sale
// transaction validates the kiosk inside its own transaction.
func (r *quiosqueRepository) GetQuiosqueByID(executor SQLExecutor, id uuid.UUID) (*models.Quiosque, error) {
	if executor == nil {
		executor = r.db
	}
	quiosque := &models.Quiosque{}
	query := `SELECT ` + quiosqueColumns + ` FROM quiosques q WHERE q.id = $1`
	err := executor.QueryRow(query, id).Scan(
		&quiosque.ID, &quiosque.Identificador, &quiosque.LojaID,
		&quiosque.VendedorResponsavelID, &quiosque.CapacidadeJoias, &quiosque.DataCriacao,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting quiosque by ID %s: %v", ErrDatabaseError, id, err)
	}
	return quiosque, nil
}

// GetQuiosqueByVendedor finds the single quiosque a vendedor is responsible
// for. The partial unique index on vendedor_responsavel_id guarantees at most
// one row matches.
func (r *quiosqueRepository) GetQuiosqueByVendedor(vendedorID uuid.UUID) (*models.Quiosque, error) {
	quiosque := &models.Quiosque{}
	query := `SELECT ` + quiosqueColumns + ` FROM quiosques q WHERE q.vendedor_responsavel_id = $1`
	err := r.db.QueryRow(query, vendedorID).Scan(
		&quiosque.ID, &quiosque.Identificador, &quiosque.LojaID,
		&quiosque.VendedorResponsavelID, &quiosque.CapacidadeJoias, &quiosque.DataCriacao,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting quiosque for vendedor %s: %v", ErrDatabaseError, vendedorID, err)
	}
	return quiosque, nil
}

func (r *quiosqueRepository) UpdateQuiosque(quiosque *models.Quiosque) error {
	query := `UPDATE quiosques
	          SET identificador = $1, loja_id = $2, vendedor_responsavel_id = $3, capacidade_joias = $4
	          WHERE id = $5`

	result, err := r.db.Exec(query,
		quiosque.Identificador, quiosque.LojaID, quiosque.VendedorResponsavelID,
		quiosque.CapacidadeJoias, quiosque.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			case "23503":
				return fmt.Errorf("%w: updating quiosque %s (constraint: %s)", ErrForeignKeyViolation, quiosque.ID, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating quiosque %s: %v", ErrDatabaseError, quiosque.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for quiosque update %s: %v", ErrDatabaseError, quiosque.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteQuiosque removes a quiosque; inventory rows cascade away. Vendas
// referencing the quiosque block the delete via the RESTRICT rule.
func (r *quiosqueRepository) DeleteQuiosque(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM quiosques WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: deleting quiosque %s (constraint: %s)", ErrForeignKeyViolation, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting quiosque %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting quiosque %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearVendedorResponsavel nulls out kiosk responsibility for a seller, used
// before deleting the seller account.
func (r *quiosqueRepository) ClearVendedorResponsavel(executor SQLExecutor, vendedorID uuid.UUID) error {
	_, err := executor.Exec(`UPDATE quiosques SET vendedor_responsavel_id = NULL WHERE vendedor_responsavel_id = $1`, vendedorID)
	if err != nil {
		return fmt.Errorf("%w: clearing vendedor responsavel %s: %v", ErrDatabaseError, vendedorID, err)
	}
	return nil
}

// --- Inventory Methods ---

// GetInventarioView returns the positive-quantity inventory rows of a quiosque
// joined with the minimal joia display fields.
func (r *quiosqueRepository) GetInventarioView(quiosqueID uuid.UUID) ([]models.InventarioItemView, error) {
	items := []models.InventarioItemView{}
	query := `SELECT i.id, i.quantidade, j.id, j.nome, j.sku, j.preco_venda
	          FROM inventario_quiosques i
	          JOIN joias j ON i.joia_id = j.id
	          WHERE i.quiosque_id = $1 AND i.quantidade > 0
	          ORDER BY j.nome`

	rows, err := r.db.Query(query, quiosqueID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventario for quiosque %s: %v", ErrDatabaseError, quiosqueID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InventarioItemView
		err := rows.Scan(
			&item.ID, &item.Quantidade,
			&item.Joia.ID, &item.Joia.Nome, &item.Joia.SKU, &item.Joia.PrecoVenda,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning inventario item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventario rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// GetInventarioItemForUpdate locks the (quiosque, joia) inventory row for the
// duration of the surrounding transaction, serializing concurrent stock checks
// on the same pair.
func (r *quiosqueRepository) GetInventarioItemForUpdate(executor SQLExecutor, quiosqueID, joiaID uuid.UUID) (*models.InventarioQuiosque, error) {
	item := &models.InventarioQuiosque{}
	query := `SELECT id, quiosque_id, joia_id, quantidade, data_atualizacao
	          FROM inventario_quiosques
	          WHERE quiosque_id = $1 AND joia_id = $2
	          FOR UPDATE`

	err := executor.QueryRow(query, quiosqueID, joiaID).Scan(
		&item.ID, &item.QuiosqueID, &item.JoiaID, &item.Quantidade, &item.DataAtualizacao,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking inventario for quiosque %s joia %s: %v", ErrDatabaseError, quiosqueID, joiaID, err)
	}
	return item, nil
}

// DecrementInventario subtracts quantidade from a locked inventory row. The
// quantidade >= $1 guard means zero rows affected when stock would go
// negative, which callers must treat as a conflict.
func (r *quiosqueRepository) DecrementInventario(executor SQLExecutor, inventarioID uuid.UUID, quantidade int) (int64, error) {
	query := `UPDATE inventario_quiosques
	          SET quantidade = quantidade - $1, data_atualizacao = $2
	          WHERE id = $3 AND quantidade >= $1`

	result, err := executor.Exec(query, quantidade, time.Now(), inventarioID)
	if err != nil {
		return 0, fmt.Errorf("%w: decrementing inventario %s: %v", ErrDatabaseError, inventarioID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for inventario decrement %s: %v", ErrDatabaseError, inventarioID, err)
	}
	return rowsAffected, nil
}

// UpsertInventario sets the absolute stock count for a (quiosque, joia) pair,
// creating the row when missing. This is the restocking surface; sales never
// go through it.
func (r *quiosqueRepository) UpsertInventario(quiosqueID, joiaID uuid.UUID, quantidade int) (*models.InventarioQuiosque, error) {
	item := &models.InventarioQuiosque{}
	query := `INSERT INTO inventario_quiosques (quiosque_id, joia_id, quantidade, data_atualizacao)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT ON CONSTRAINT inventario_unico_por_joia_quiosque
	          DO UPDATE SET quantidade = EXCLUDED.quantidade, data_atualizacao = EXCLUDED.data_atualizacao
	          RETURNING id, quiosque_id, joia_id, quantidade, data_atualizacao`

	err := r.db.QueryRow(query, quiosqueID, joiaID, quantidade, time.Now()).Scan(
		&item.ID, &item.QuiosqueID, &item.JoiaID, &item.Quantidade, &item.DataAtualizacao,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, fmt.Errorf("%w: upserting inventario (constraint: %s)", ErrForeignKeyViolation, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: upserting inventario for quiosque %s joia %s: %v", ErrDatabaseError, quiosqueID, joiaID, err)
	}
	return item, nil
}
