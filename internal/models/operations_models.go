package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment method codes accepted on vendas.
const (
	PagamentoPix           = "PIX"
	PagamentoCartaoCredito = "CC"
	PagamentoCartaoDebito  = "CD"
	PagamentoDinheiro      = "DIN"
)

// Cliente is a retail customer. Email is optional but unique when present;
// sale submissions match-or-create clientes by email.
type Cliente struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Nome        string    `json:"nome" db:"nome"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Whatsapp    *string   `json:"whatsapp,omitempty" db:"whatsapp"`
	DataCriacao time.Time `json:"data_criacao" db:"data_criacao"`
}

// Loja is a physical store that hosts quiosques.
type Loja struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Nome        string    `json:"nome" db:"nome" binding:"required"`
	Endereco    *string   `json:"endereco,omitempty" db:"endereco"`
	DataCriacao time.Time `json:"data_criacao" db:"data_criacao"`
}

// Quiosque is a sales point inside a loja holding its own inventory subset.
// A vendedor is responsible for at most one quiosque at a time.
type Quiosque struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	Identificador         string     `json:"identificador" db:"identificador" binding:"required"`
	LojaID                uuid.UUID  `json:"loja_id" db:"loja_id" binding:"required"`
	VendedorResponsavelID *uuid.UUID `json:"vendedor_responsavel_id,omitempty" db:"vendedor_responsavel_id"`
	CapacidadeJoias       int        `json:"capacidade_joias" db:"capacidade_joias"`
	DataCriacao           time.Time  `json:"data_criacao" db:"data_criacao"`

	Loja *Loja `json:"loja,omitempty"`
}

// InventarioQuiosque is the stock count of one joia at one quiosque.
// The (quiosque, joia) pair is unique; quantidade never goes negative.
type InventarioQuiosque struct {
	ID              uuid.UUID `json:"id" db:"id"`
	QuiosqueID      uuid.UUID `json:"quiosque_id" db:"quiosque_id"`
	JoiaID          uuid.UUID `json:"joia_id" db:"joia_id"`
	Quantidade      int       `json:"quantidade" db:"quantidade"`
	DataAtualizacao time.Time `json:"data_atualizacao" db:"data_atualizacao"`
}

// InventarioItemView is one inventory row in the seller-facing listing.
type InventarioItemView struct {
	ID         uuid.UUID  `json:"id"`
	Joia       JoiaResumo `json:"joia"`
	Quantidade int        `json:"quantidade"`
}

// InventarioView is the payload of GET /meu-quiosque/inventario.
type InventarioView struct {
	QuiosqueID    uuid.UUID            `json:"quiosque_id"`
	Identificador string               `json:"identificador"`
	Inventario    []InventarioItemView `json:"inventario"`
}

// Venda is a completed sale: one quiosque, one vendedor, optional cliente,
// one or more itens. Totals are derived from the itens; desconto is
// subtracted from total_venda only, never from custo or comissao.
type Venda struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	QuiosqueID      uuid.UUID       `json:"quiosque_id" db:"quiosque_id"`
	VendedorID      uuid.UUID       `json:"vendedor_id" db:"vendedor_id"`
	ClienteID       *uuid.UUID      `json:"cliente_id,omitempty" db:"cliente_id"`
	DataVenda       time.Time       `json:"data_venda" db:"data_venda"`
	MetodoPagamento string          `json:"metodo_pagamento" db:"metodo_pagamento"`
	Desconto        decimal.Decimal `json:"desconto" db:"desconto"`
	TotalVenda      decimal.Decimal `json:"total_venda" db:"total_venda"`
	TotalCusto      decimal.Decimal `json:"total_custo" db:"total_custo"`
	TotalComissao   decimal.Decimal `json:"total_comissao" db:"total_comissao"`

	Itens    []ItemVenda `json:"itens,omitempty"`
	Cliente  *Cliente    `json:"cliente,omitempty"`
	Quiosque *Quiosque   `json:"quiosque,omitempty"`
}

// ItemVenda is one line of a venda with unit price, unit cost and commission
// snapshotted at creation time. Rows are append-only and never updated.
type ItemVenda struct {
	ID                        uuid.UUID       `json:"id" db:"id"`
	VendaID                   uuid.UUID       `json:"venda_id" db:"venda_id"`
	JoiaID                    uuid.UUID       `json:"joia_id" db:"joia_id"`
	Quantidade                int             `json:"quantidade" db:"quantidade"`
	PrecoVendaUnitarioMomento decimal.Decimal `json:"preco_venda_unitario_momento" db:"preco_venda_unitario_momento"`
	PrecoCustoUnitarioMomento decimal.Decimal `json:"preco_custo_unitario_momento" db:"preco_custo_unitario_momento"`
	ComissaoCalculada         decimal.Decimal `json:"comissao_calculada" db:"comissao_calculada"`

	Joia *Joia `json:"joia,omitempty"`
}

// VendaFilters narrows venda listings (reports page).
type VendaFilters struct {
	VendedorID *uuid.UUID
	QuiosqueID *uuid.UUID
	Date       *string // YYYY-MM-DD
	Page       int
	PageSize   int
}

// MetodoPagamentoValido reports whether code is an accepted payment method.
func MetodoPagamentoValido(code string) bool {
	switch code {
	case PagamentoPix, PagamentoCartaoCredito, PagamentoCartaoDebito, PagamentoDinheiro:
		return true
	default:
		return false
	}
}
