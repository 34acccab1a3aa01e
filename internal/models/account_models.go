package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vendedor is the authenticated user of the system. Email is the login
// identifier; there is no separate username.
type Vendedor struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Email          string          `json:"email" db:"email"`
	Nome           string          `json:"nome" db:"nome"`
	Telefone       *string         `json:"telefone,omitempty" db:"telefone"`
	ComissaoPadrao decimal.Decimal `json:"comissao_padrao" db:"comissao_padrao"`
	IsStaff        bool            `json:"is_staff" db:"is_staff"`
	IsActive       bool            `json:"is_active" db:"is_active"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`

	// PasswordHash is never serialized; services clear it before returning.
	PasswordHash string `json:"-" db:"password_hash"`
}
