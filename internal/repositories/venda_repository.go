package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vooud_backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// VendaRepository defines the interface for sale database operations. All
// write methods take an SQLExecutor: a venda and its itens are only ever
// created inside the sale transaction.
type VendaRepository interface {
	CreateVenda(executor SQLExecutor, venda *models.Venda) (uuid.UUID, error)
	UpdateVendaTotais(executor SQLExecutor, vendaID uuid.UUID, totalVenda, totalCusto, totalComissao decimal.Decimal) error
	CreateItemVenda(executor SQLExecutor, item *models.ItemVenda) (uuid.UUID, error)

	GetVendaByID(vendaID uuid.UUID) (*models.Venda, error)
	GetVendas(filters models.VendaFilters) ([]models.Venda, int, error) // vendas, total count, error
	GetItensByVendaID(vendaID uuid.UUID) ([]models.ItemVenda, error)
}

type vendaRepository struct {
	db *sql.DB
}

// NewVendaRepository creates a new instance of VendaRepository.
func NewVendaRepository(db *sql.DB) VendaRepository {
	return &vendaRepository{db: db}
}

// --- Venda Methods ---

func (r *vendaRepository) CreateVenda(executor SQLExecutor, venda *models.Venda) (uuid.UUID, error) {
	query := `INSERT INTO vendas
	            (quiosque_id, vendedor_id, cliente_id, data_venda, metodo_pagamento,
	             desconto, total_venda, total_custo, total_comissao)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	if venda.DataVenda.IsZero() {
		venda.DataVenda = time.Now()
	}

	err := executor.QueryRow(query,
		venda.QuiosqueID, venda.VendedorID, venda.ClienteID, venda.DataVenda, venda.MetodoPagamento,
		venda.Desconto, venda.TotalVenda, venda.TotalCusto, venda.TotalComissao,
	).Scan(&venda.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return uuid.Nil, fmt.Errorf("%w: creating venda (constraint: %s)", ErrForeignKeyViolation, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: creating venda: %v", ErrDatabaseError, err)
	}
	return venda.ID, nil
}

// UpdateVendaTotais writes the computed totals after all line items succeed.
func (r *vendaRepository) UpdateVendaTotais(executor SQLExecutor, vendaID uuid.UUID, totalVenda, totalCusto, totalComissao decimal.Decimal) error {
	query := `UPDATE vendas SET total_venda = $1, total_custo = $2, total_comissao = $3 WHERE id = $4`
	result, err := executor.Exec(query, totalVenda, totalCusto, totalComissao, vendaID)
	if err != nil {
		return fmt.Errorf("%w: updating totals for venda %s: %v", ErrDatabaseError, vendaID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for venda totals update %s: %v", ErrDatabaseError, vendaID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *vendaRepository) GetVendaByID(vendaID uuid.UUID) (*models.Venda, error) {
	venda := &models.Venda{}
	query := `SELECT id, quiosque_id, vendedor_id, cliente_id, data_venda, metodo_pagamento,
	                 desconto, total_venda, total_custo, total_comissao
	          FROM vendas
	          WHERE id = $1`

	err := r.db.QueryRow(query, vendaID).Scan(
		&venda.ID, &venda.QuiosqueID, &venda.VendedorID, &venda.ClienteID, &venda.DataVenda,
		&venda.MetodoPagamento, &venda.Desconto, &venda.TotalVenda, &venda.TotalCusto, &venda.TotalComissao,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting venda by ID %s: %v", ErrDatabaseError, vendaID, err)
	}
	return venda, nil
}

func (r *vendaRepository) GetVendas(filters models.VendaFilters) ([]models.Venda, int, error) {
	vendas := []models.Venda{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT
            v.id, v.quiosque_id, v.vendedor_id, v.cliente_id, v.data_venda, v.metodo_pagamento,
            v.desconto, v.total_venda, v.total_custo, v.total_comissao,
            c.nome as cliente_nome, c.email as cliente_email,
            q.identificador as quiosque_identificador,
            COUNT(*) OVER() as total_count
        FROM vendas v
        LEFT JOIN clientes c ON v.cliente_id = c.id
        JOIN quiosques q ON v.quiosque_id = q.id
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.VendedorID != nil {
		conditions = append(conditions, fmt.Sprintf("v.vendedor_id = $%d", argCounter))
		args = append(args, *filters.VendedorID)
		argCounter++
	}
	if filters.QuiosqueID != nil {
		conditions = append(conditions, fmt.Sprintf("v.quiosque_id = $%d", argCounter))
		args = append(args, *filters.QuiosqueID)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		parsedDate, err := time.Parse("2006-01-02", *filters.Date)
		if err == nil {
			startOfDay := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, parsedDate.Location())
			endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
			conditions = append(conditions, fmt.Sprintf("v.data_venda BETWEEN $%d AND $%d", argCounter, argCounter+1))
			args = append(args, startOfDay, endOfDay)
			argCounter += 2
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY v.data_venda DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying vendas: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var v models.Venda
		var clienteNome, clienteEmail, quiosqueIdentificador sql.NullString

		err := rows.Scan(
			&v.ID, &v.QuiosqueID, &v.VendedorID, &v.ClienteID, &v.DataVenda, &v.MetodoPagamento,
			&v.Desconto, &v.TotalVenda, &v.TotalCusto, &v.TotalComissao,
			&clienteNome, &clienteEmail, &quiosqueIdentificador,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning venda: %v", ErrDatabaseError, err)
		}

		if v.ClienteID != nil {
			cliente := models.Cliente{ID: *v.ClienteID}
			if clienteNome.Valid {
				cliente.Nome = clienteNome.String
			}
			if clienteEmail.Valid {
				email := clienteEmail.String
				cliente.Email = &email
			}
			v.Cliente = &cliente
		}
		if quiosqueIdentificador.Valid {
			v.Quiosque = &models.Quiosque{ID: v.QuiosqueID, Identificador: quiosqueIdentificador.String}
		}
		vendas = append(vendas, v)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating venda rows: %v", ErrDatabaseError, err)
	}
	return vendas, totalCount, nil
}

// --- ItemVenda Methods ---

func (r *vendaRepository) CreateItemVenda(executor SQLExecutor, item *models.ItemVenda) (uuid.UUID, error) {
	query := `INSERT INTO itens_venda
	            (venda_id, joia_id, quantidade, preco_venda_unitario_momento,
	             preco_custo_unitario_momento, comissao_calculada)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := executor.QueryRow(query,
		item.VendaID, item.JoiaID, item.Quantidade,
		item.PrecoVendaUnitarioMomento, item.PrecoCustoUnitarioMomento, item.ComissaoCalculada,
	).Scan(&item.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return uuid.Nil, fmt.Errorf("%w: creating item de venda (constraint: %s)", ErrForeignKeyViolation, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: creating item de venda: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *vendaRepository) GetItensByVendaID(vendaID uuid.UUID) ([]models.ItemVenda, error) {
	items := []models.ItemVenda{}
	query := `
		SELECT
		    i.id, i.venda_id, i.joia_id, i.quantidade,
		    i.preco_venda_unitario_momento, i.preco_custo_unitario_momento, i.comissao_calculada,
		    j.nome as joia_nome, j.sku as joia_sku
		FROM itens_venda i
		JOIN joias j ON i.joia_id = j.id
		WHERE i.venda_id = $1
		ORDER BY i.id`

	rows, err := r.db.Query(query, vendaID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying itens for venda %s: %v", ErrDatabaseError, vendaID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ItemVenda
		var joiaNome, joiaSKU string

		err := rows.Scan(
			&item.ID, &item.VendaID, &item.JoiaID, &item.Quantidade,
			&item.PrecoVendaUnitarioMomento, &item.PrecoCustoUnitarioMomento, &item.ComissaoCalculada,
			&joiaNome, &joiaSKU,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning item de venda for venda %s: %v", ErrDatabaseError, vendaID, err)
		}

		item.Joia = &models.Joia{ID: item.JoiaID, Nome: joiaNome, SKU: joiaSKU}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating item rows for venda %s: %v", ErrDatabaseError, vendaID, err)
	}
	return items, nil
}
