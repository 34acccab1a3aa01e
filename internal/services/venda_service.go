package services

import (
	"errors"
	"fmt"

	"vooud_backend/internal/models"
	"vooud_backend/internal/repositories"
	"vooud_backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Custom Errors
var (
	ErrJoiaNotFound        = errors.New("joia não encontrada")
	ErrQuiosqueNotFound    = errors.New("quiosque não encontrado")
	ErrInventarioNotFound  = errors.New("nenhum registro de inventário para a joia neste quiosque")
	ErrEstoqueInsuficiente = errors.New("estoque insuficiente")
	ErrEstoqueConflito     = errors.New("conflito de estoque: a quantidade foi alterada por outra venda")
	ErrClienteConflito     = errors.New("conflito de cliente: o email foi cadastrado por outra venda")
	ErrVendaNotFound       = errors.New("venda não encontrada")
	ErrVendedorDivergente  = errors.New("vendedor da venda difere do usuário autenticado")
)

var cem = decimal.NewFromInt(100)

// --- Data Transfer Objects (DTOs) ---

// ClientePayload carries the customer fields submitted with a venda.
type ClientePayload struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Whatsapp string `json:"whatsapp"`
}

// ItemVendaRequest is one requested line: a joia and how many of it.
type ItemVendaRequest struct {
	JoiaID     uuid.UUID `json:"joia_id"`
	Quantidade int       `json:"quantidade"`
}

// CreateVendaRequest is the typed sale submission. Vendedor may be omitted;
// when present it must match the authenticated seller.
type CreateVendaRequest struct {
	QuiosqueID      uuid.UUID          `json:"quiosque"`
	VendedorID      uuid.UUID          `json:"vendedor"`
	Cliente         ClientePayload     `json:"cliente"`
	MetodoPagamento string             `json:"metodo_pagamento"`
	Desconto        decimal.Decimal    `json:"desconto"`
	Itens           []ItemVendaRequest `json:"itens"`
}

// CreateVendaResult is what a successful submission returns.
type CreateVendaResult struct {
	VendaID uuid.UUID `json:"venda_id"`
	Message string    `json:"message"`
}

// VendaListResult pairs a page of vendas with the unpaged total.
type VendaListResult struct {
	Vendas     []models.Venda `json:"data"`
	TotalCount int            `json:"total"`
}

// --- VendaService Interface ---

type VendaService interface {
	CreateVenda(vendedorID uuid.UUID, req CreateVendaRequest) (*CreateVendaResult, error)
	GetMeuQuiosqueInventario(vendedorID uuid.UUID) (*models.InventarioView, error)
	GetVendas(filters models.VendaFilters) (*VendaListResult, error)
	GetVendaByID(vendaID uuid.UUID) (*models.Venda, error)
}

// --- vendaService Implementation ---

type vendaService struct {
	vendaRepo    repositories.VendaRepository
	catalogRepo  repositories.CatalogRepository
	quiosqueRepo repositories.QuiosqueRepository
	clienteRepo  repositories.ClienteRepository
	txm          repositories.TxManager
}

// NewVendaService creates a new instance of VendaService.
func NewVendaService(
	vr repositories.VendaRepository,
	cr repositories.CatalogRepository,
	qr repositories.QuiosqueRepository,
	clr repositories.ClienteRepository,
	txm repositories.TxManager,
) VendaService {
	return &vendaService{
		vendaRepo:    vr,
		catalogRepo:  cr,
		quiosqueRepo: qr,
		clienteRepo:  clr,
		txm:          txm,
	}
}

// ValidateCreateVenda checks the shape of a sale submission and returns one
// FieldError per problem. No persistence happens until this passes.
func ValidateCreateVenda(req *CreateVendaRequest) []FieldError {
	var fieldErrs []FieldError

	if req.QuiosqueID == uuid.Nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "quiosque", Message: "campo obrigatório"})
	}
	if req.Cliente.Nome == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "cliente.nome", Message: "campo obrigatório"})
	}
	if req.Cliente.Email != "" && !utils.IsValidEmail(req.Cliente.Email) {
		fieldErrs = append(fieldErrs, FieldError{Field: "cliente.email", Message: "email inválido"})
	}
	if req.MetodoPagamento == "" {
		req.MetodoPagamento = models.PagamentoPix
	} else if !models.MetodoPagamentoValido(req.MetodoPagamento) {
		fieldErrs = append(fieldErrs, FieldError{Field: "metodo_pagamento", Message: "método de pagamento desconhecido"})
	}
	if req.Desconto.IsNegative() {
		fieldErrs = append(fieldErrs, FieldError{Field: "desconto", Message: "não pode ser negativo"})
	}
	if len(req.Itens) == 0 {
		fieldErrs = append(fieldErrs, FieldError{Field: "itens", Message: "a venda precisa de ao menos um item"})
	}
	for i, item := range req.Itens {
		if item.JoiaID == uuid.Nil {
			fieldErrs = append(fieldErrs, FieldError{Field: fmt.Sprintf("itens[%d].joia_id", i), Message: "campo obrigatório"})
		}
		if item.Quantidade < 1 {
			fieldErrs = append(fieldErrs, FieldError{Field: fmt.Sprintf("itens[%d].quantidade", i), Message: "deve ser no mínimo 1"})
		}
	}
	return fieldErrs
}

// CreateVenda runs the whole sale as one transaction: customer resolution,
// per-line stock lock + decrement, price/cost snapshots, commission and totals.
// Any failure rolls everything back; no partial venda is ever visible.
func (s *vendaService) CreateVenda(vendedorID uuid.UUID, req CreateVendaRequest) (*CreateVendaResult, error) {
	if fieldErrs := ValidateCreateVenda(&req); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	if req.VendedorID != uuid.Nil && req.VendedorID != vendedorID {
		return nil, ErrVendedorDivergente
	}

	var vendaID uuid.UUID
	err := s.txm.WithinTx(func(ex repositories.SQLExecutor) error {
		if _, err := s.quiosqueRepo.GetQuiosqueByID(ex, req.QuiosqueID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrQuiosqueNotFound, req.QuiosqueID)
			}
			return fmt.Errorf("failed to fetch quiosque %s: %w", req.QuiosqueID, err)
		}

		cliente, err := s.resolveCliente(ex, req.Cliente)
		if err != nil {
			return err
		}

		venda := models.Venda{
			QuiosqueID:      req.QuiosqueID,
			VendedorID:      vendedorID,
			ClienteID:       &cliente.ID,
			MetodoPagamento: req.MetodoPagamento,
			Desconto:        req.Desconto,
			TotalVenda:      decimal.Zero,
			TotalCusto:      decimal.Zero,
			TotalComissao:   decimal.Zero,
		}
		if _, err := s.vendaRepo.CreateVenda(ex, &venda); err != nil {
			return fmt.Errorf("failed to create venda record: %w", err)
		}

		totalVendaBruto := decimal.Zero
		totalCusto := decimal.Zero
		totalComissao := decimal.Zero

		for _, itemReq := range req.Itens {
			joia, err := s.catalogRepo.GetJoiaByID(ex, itemReq.JoiaID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("%w: %s", ErrJoiaNotFound, itemReq.JoiaID)
				}
				return fmt.Errorf("failed to fetch joia %s: %w", itemReq.JoiaID, err)
			}

			estoque, err := s.quiosqueRepo.GetInventarioItemForUpdate(ex, req.QuiosqueID, joia.ID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("%w: joia %s", ErrInventarioNotFound, joia.Nome)
				}
				return fmt.Errorf("failed to lock inventario for joia %s: %w", joia.Nome, err)
			}
			if estoque.Quantidade < itemReq.Quantidade {
				return fmt.Errorf("%w para a joia %s. Disponível: %d", ErrEstoqueInsuficiente, joia.Nome, estoque.Quantidade)
			}

			rowsAffected, err := s.quiosqueRepo.DecrementInventario(ex, estoque.ID, itemReq.Quantidade)
			if err != nil {
				return fmt.Errorf("failed to decrement inventario for joia %s: %w", joia.Nome, err)
			}
			if rowsAffected == 0 {
				// The guarded UPDATE found less stock than the locked read; a
				// competing transaction got there first.
				return fmt.Errorf("%w: joia %s", ErrEstoqueConflito, joia.Nome)
			}

			quantidade := decimal.NewFromInt(int64(itemReq.Quantidade))
			precoVendaItem := joia.PrecoVenda.Mul(quantidade)
			comissaoItem := precoVendaItem.Mul(joia.PercentualComissao).Div(cem).Round(2)

			item := models.ItemVenda{
				VendaID:                   venda.ID,
				JoiaID:                    joia.ID,
				Quantidade:                itemReq.Quantidade,
				PrecoVendaUnitarioMomento: joia.PrecoVenda,
				PrecoCustoUnitarioMomento: joia.PrecoCusto,
				ComissaoCalculada:         comissaoItem,
			}
			if _, err := s.vendaRepo.CreateItemVenda(ex, &item); err != nil {
				return fmt.Errorf("failed to create item de venda (joia %s): %w", joia.Nome, err)
			}

			totalVendaBruto = totalVendaBruto.Add(precoVendaItem)
			totalCusto = totalCusto.Add(joia.PrecoCusto.Mul(quantidade))
			totalComissao = totalComissao.Add(comissaoItem)
		}

		totalVenda := totalVendaBruto.Sub(req.Desconto).Round(2)
		if err := s.vendaRepo.UpdateVendaTotais(ex, venda.ID, totalVenda, totalCusto.Round(2), totalComissao.Round(2)); err != nil {
			return fmt.Errorf("failed to update venda totals: %w", err)
		}

		vendaID = venda.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateVendaResult{
		VendaID: vendaID,
		Message: "Venda registrada com sucesso!",
	}, nil
}

// resolveCliente reuses the customer matching the submitted email, or creates
// a new one. Submissions without an email always create a fresh cliente so
// unrelated customers are never merged on an empty key.
func (s *vendaService) resolveCliente(ex repositories.SQLExecutor, payload ClientePayload) (*models.Cliente, error) {
	if payload.Email != "" {
		cliente, err := s.clienteRepo.FindClienteByEmail(ex, payload.Email)
		if err == nil {
			return cliente, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up cliente by email: %w", err)
		}
	}

	cliente := &models.Cliente{
		Nome:     payload.Nome,
		Email:    utils.NewNullString(payload.Email),
		Whatsapp: utils.NewNullString(payload.Whatsapp),
	}
	if _, err := s.clienteRepo.CreateCliente(ex, cliente); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// A concurrent sale created this email between the lookup and the
			// insert. Retryable by resubmitting.
			return nil, fmt.Errorf("%w: %s", ErrClienteConflito, payload.Email)
		}
		return nil, fmt.Errorf("failed to create cliente: %w", err)
	}
	return cliente, nil
}

// GetMeuQuiosqueInventario returns the positive-stock inventory of the kiosk
// the authenticated seller is responsible for.
func (s *vendaService) GetMeuQuiosqueInventario(vendedorID uuid.UUID) (*models.InventarioView, error) {
	quiosque, err := s.quiosqueRepo.GetQuiosqueByVendedor(vendedorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrQuiosqueNotFound
		}
		return nil, fmt.Errorf("failed to fetch quiosque for vendedor %s: %w", vendedorID, err)
	}

	items, err := s.quiosqueRepo.GetInventarioView(quiosque.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventario for quiosque %s: %w", quiosque.ID, err)
	}

	return &models.InventarioView{
		QuiosqueID:    quiosque.ID,
		Identificador: quiosque.Identificador,
		Inventario:    items,
	}, nil
}

func (s *vendaService) GetVendas(filters models.VendaFilters) (*VendaListResult, error) {
	vendas, totalCount, err := s.vendaRepo.GetVendas(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendas: %w", err)
	}
	return &VendaListResult{Vendas: vendas, TotalCount: totalCount}, nil
}

func (s *vendaService) GetVendaByID(vendaID uuid.UUID) (*models.Venda, error) {
	venda, err := s.vendaRepo.GetVendaByID(vendaID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVendaNotFound
		}
		return nil, fmt.Errorf("failed to get venda by ID: %w", err)
	}

	itens, err := s.vendaRepo.GetItensByVendaID(vendaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itens for venda %s: %w", vendaID, err)
	}
	venda.Itens = itens
	return venda, nil
}
