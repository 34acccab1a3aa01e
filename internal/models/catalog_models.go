package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Categoria groups joias (e.g. Anéis, Colares, Pulseiras).
type Categoria struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Nome string    `json:"nome" db:"nome" binding:"required"`
}

// Joia is a sellable catalog item. Its monetary fields are snapshotted onto
// ItemVenda rows at sale time, so later price changes never touch past sales.
type Joia struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	Nome               string          `json:"nome" db:"nome" binding:"required"`
	SKU                string          `json:"sku" db:"sku" binding:"required"`
	Descricao          *string         `json:"descricao,omitempty" db:"descricao"`
	CategoriaID        uuid.UUID       `json:"categoria_id" db:"categoria_id" binding:"required"`
	Material           string          `json:"material" db:"material"`
	PrecoCusto         decimal.Decimal `json:"preco_custo" db:"preco_custo"`
	PrecoVenda         decimal.Decimal `json:"preco_venda" db:"preco_venda"`
	PercentualComissao decimal.Decimal `json:"percentual_comissao" db:"percentual_comissao"`
	DataCriacao        time.Time       `json:"data_criacao" db:"data_criacao"`

	Categoria *Categoria `json:"categoria,omitempty"` // populated on joined reads
}

// JoiaResumo is the minimal joia projection embedded in inventory listings.
type JoiaResumo struct {
	ID         uuid.UUID       `json:"id"`
	Nome       string          `json:"nome"`
	SKU        string          `json:"sku"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
}
