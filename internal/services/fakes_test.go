package services

import (
	"strings"

	"vooud_backend/internal/models"
	"vooud_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStore is shared in-memory state backing the fake repositories. A fake
// transaction manager snapshots and restores it so rollback semantics can be
// asserted without a database.
type fakeStore struct {
	vendedores map[uuid.UUID]models.Vendedor
	hashes     map[uuid.UUID]string
	categorias map[uuid.UUID]models.Categoria
	joias      map[uuid.UUID]models.Joia
	lojas      map[uuid.UUID]models.Loja
	quiosques  map[uuid.UUID]models.Quiosque
	inventario map[uuid.UUID]models.InventarioQuiosque
	clientes   map[uuid.UUID]models.Cliente
	vendas     map[uuid.UUID]models.Venda
	itens      map[uuid.UUID]models.ItemVenda
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vendedores: map[uuid.UUID]models.Vendedor{},
		hashes:     map[uuid.UUID]string{},
		categorias: map[uuid.UUID]models.Categoria{},
		joias:      map[uuid.UUID]models.Joia{},
		lojas:      map[uuid.UUID]models.Loja{},
		quiosques:  map[uuid.UUID]models.Quiosque{},
		inventario: map[uuid.UUID]models.InventarioQuiosque{},
		clientes:   map[uuid.UUID]models.Cliente{},
		vendas:     map[uuid.UUID]models.Venda{},
		itens:      map[uuid.UUID]models.ItemVenda{},
	}
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *fakeStore) snapshot() *fakeStore {
	return &fakeStore{
		vendedores: copyMap(s.vendedores),
		hashes:     copyMap(s.hashes),
		categorias: copyMap(s.categorias),
		joias:      copyMap(s.joias),
		lojas:      copyMap(s.lojas),
		quiosques:  copyMap(s.quiosques),
		inventario: copyMap(s.inventario),
		clientes:   copyMap(s.clientes),
		vendas:     copyMap(s.vendas),
		itens:      copyMap(s.itens),
	}
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.vendedores = snap.vendedores
	s.hashes = snap.hashes
	s.categorias = snap.categorias
	s.joias = snap.joias
	s.lojas = snap.lojas
	s.quiosques = snap.quiosques
	s.inventario = snap.inventario
	s.clientes = snap.clientes
	s.vendas = snap.vendas
	s.itens = snap.itens
}

// fakeTxManager mimics transactional semantics: any error from fn restores
// the store to its pre-transaction state.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) WithinTx(fn func(ex repositories.SQLExecutor) error) error {
	snap := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// --- fake VendedorRepository ---

type fakeVendedorRepo struct {
	store *fakeStore
}

func (r *fakeVendedorRepo) CreateVendedor(_ repositories.SQLExecutor, vendedor *models.Vendedor, hashedPassword string) (uuid.UUID, error) {
	for _, existing := range r.store.vendedores {
		if existing.Email == vendedor.Email {
			return uuid.Nil, repositories.ErrDuplicateKey
		}
	}
	vendedor.ID = uuid.New()
	r.store.vendedores[vendedor.ID] = *vendedor
	r.store.hashes[vendedor.ID] = hashedPassword
	return vendedor.ID, nil
}

func (r *fakeVendedorRepo) FindVendedorByEmail(email string) (*models.Vendedor, string, error) {
	for id, v := range r.store.vendedores {
		if v.Email == email {
			found := v
			return &found, r.store.hashes[id], nil
		}
	}
	return nil, "", repositories.ErrNotFound
}

func (r *fakeVendedorRepo) FindVendedorByID(id uuid.UUID) (*models.Vendedor, error) {
	v, ok := r.store.vendedores[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := v
	return &found, nil
}

func (r *fakeVendedorRepo) DeleteVendedor(_ repositories.SQLExecutor, id uuid.UUID) error {
	if _, ok := r.store.vendedores[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, venda := range r.store.vendas {
		if venda.VendedorID == id {
			return repositories.ErrForeignKeyViolation
		}
	}
	delete(r.store.vendedores, id)
	delete(r.store.hashes, id)
	return nil
}

// --- fake CatalogRepository ---

type fakeCatalogRepo struct {
	store *fakeStore
}

func (r *fakeCatalogRepo) CreateCategoria(categoria *models.Categoria) (uuid.UUID, error) {
	for _, existing := range r.store.categorias {
		if strings.EqualFold(existing.Nome, categoria.Nome) {
			return uuid.Nil, repositories.ErrDuplicateKey
		}
	}
	categoria.ID = uuid.New()
	r.store.categorias[categoria.ID] = *categoria
	return categoria.ID, nil
}

func (r *fakeCatalogRepo) GetCategorias() ([]models.Categoria, error) {
	out := make([]models.Categoria, 0, len(r.store.categorias))
	for _, c := range r.store.categorias {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetCategoriaByID(id uuid.UUID) (*models.Categoria, error) {
	c, ok := r.store.categorias[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCatalogRepo) UpdateCategoria(categoria *models.Categoria) error {
	if _, ok := r.store.categorias[categoria.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.store.categorias[categoria.ID] = *categoria
	return nil
}

func (r *fakeCatalogRepo) DeleteCategoria(id uuid.UUID) error {
	if _, ok := r.store.categorias[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, joia := range r.store.joias {
		if joia.CategoriaID == id {
			return repositories.ErrForeignKeyViolation
		}
	}
	delete(r.store.categorias, id)
	return nil
}

func (r *fakeCatalogRepo) CreateJoia(joia *models.Joia) (uuid.UUID, error) {
	for _, existing := range r.store.joias {
		if existing.SKU == joia.SKU {
			return uuid.Nil, repositories.ErrDuplicateKey
		}
	}
	if _, ok := r.store.categorias[joia.CategoriaID]; !ok {
		return uuid.Nil, repositories.ErrForeignKeyViolation
	}
	joia.ID = uuid.New()
	r.store.joias[joia.ID] = *joia
	return joia.ID, nil
}

func (r *fakeCatalogRepo) GetJoias() ([]models.Joia, error) {
	out := make([]models.Joia, 0, len(r.store.joias))
	for _, j := range r.store.joias {
		out = append(out, j)
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetJoiaByID(_ repositories.SQLExecutor, id uuid.UUID) (*models.Joia, error) {
	j, ok := r.store.joias[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := j
	return &found, nil
}

func (r *fakeCatalogRepo) UpdateJoia(joia *models.Joia) error {
	if _, ok := r.store.joias[joia.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.store.joias[joia.ID] = *joia
	return nil
}

func (r *fakeCatalogRepo) DeleteJoia(id uuid.UUID) error {
	if _, ok := r.store.joias[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, item := range r.store.itens {
		if item.JoiaID == id {
			return repositories.ErrForeignKeyViolation
		}
	}
	delete(r.store.joias, id)
	return nil
}

// --- fake QuiosqueRepository ---

type fakeQuiosqueRepo struct {
	store *fakeStore
}

func (r *fakeQuiosqueRepo) CreateLoja(loja *models.Loja) (uuid.UUID, error) {
	loja.ID = uuid.New()
	r.store.lojas[loja.ID] = *loja
	return loja.ID, nil
}

func (r *fakeQuiosqueRepo) GetLojas() ([]models.Loja, error) {
	out := make([]models.Loja, 0, len(r.store.lojas))
	for _, l := range r.store.lojas {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeQuiosqueRepo) GetLojaByID(id uuid.UUID) (*models.Loja, error) {
	l, ok := r.store.lojas[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &l, nil
}

func (r *fakeQuiosqueRepo) DeleteLoja(id uuid.UUID) error {
	if _, ok := r.store.lojas[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, q := range r.store.quiosques {
		if q.LojaID == id {
			return repositories.ErrForeignKeyViolation
		}
	}
	delete(r.store.lojas, id)
	return nil
}

func (r *fakeQuiosqueRepo) CreateQuiosque(quiosque *models.Quiosque) (uuid.UUID, error) {
	for _, existing := range r.store.quiosques {
		if existing.Identificador == quiosque.Identificador {
			return uuid.Nil, repositories.ErrDuplicateKey
		}
	}
	if _, ok := r.store.lojas[quiosque.LojaID]; !ok {
		return uuid.Nil, repositories.ErrForeignKeyViolation
	}
	quiosque.ID = uuid.New()
	r.store.quiosques[quiosque.ID] = *quiosque
	return quiosque.ID, nil
}

func (r *fakeQuiosqueRepo) GetQuiosques() ([]models.Quiosque, error) {
	out := make([]models.Quiosque, 0, len(r.store.quiosques))
	for _, q := range r.store.quiosques {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuiosqueRepo) GetQuiosqueByID(_ repositories.SQLExecutor, id uuid.UUID) (*models.Quiosque, error) {
	q, ok := r.store.quiosques[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := q
	return &found, nil
}

func (r *fakeQuiosqueRepo) GetQuiosqueByVendedor(vendedorID uuid.UUID) (*models.Quiosque, error) {
	for _, q := range r.store.quiosques {
		if q.VendedorResponsavelID != nil && *q.VendedorResponsavelID == vendedorID {
			found := q
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeQuiosqueRepo) UpdateQuiosque(quiosque *models.Quiosque) error {
	if _, ok := r.store.quiosques[quiosque.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.store.quiosques[quiosque.ID] = *quiosque
	return nil
}

func (r *fakeQuiosqueRepo) DeleteQuiosque(id uuid.UUID) error {
	if _, ok := r.store.quiosques[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, venda := range r.store.vendas {
		if venda.QuiosqueID == id {
			return repositories.ErrForeignKeyViolation
		}
	}
	delete(r.store.quiosques, id)
	return nil
}

func (r *fakeQuiosqueRepo) ClearVendedorResponsavel(_ repositories.SQLExecutor, vendedorID uuid.UUID) error {
	for id, q := range r.store.quiosques {
		if q.VendedorResponsavelID != nil && *q.VendedorResponsavelID == vendedorID {
			q.VendedorResponsavelID = nil
			r.store.quiosques[id] = q
		}
	}
	return nil
}

func (r *fakeQuiosqueRepo) GetInventarioView(quiosqueID uuid.UUID) ([]models.InventarioItemView, error) {
	var out []models.InventarioItemView
	for _, inv := range r.store.inventario {
		if inv.QuiosqueID != quiosqueID || inv.Quantidade <= 0 {
			continue
		}
		joia := r.store.joias[inv.JoiaID]
		out = append(out, models.InventarioItemView{
			ID: inv.ID,
			Joia: models.JoiaResumo{
				ID:         joia.ID,
				Nome:       joia.Nome,
				SKU:        joia.SKU,
				PrecoVenda: joia.PrecoVenda,
			},
			Quantidade: inv.Quantidade,
		})
	}
	return out, nil
}

func (r *fakeQuiosqueRepo) GetInventarioItemForUpdate(_ repositories.SQLExecutor, quiosqueID, joiaID uuid.UUID) (*models.InventarioQuiosque, error) {
	for _, inv := range r.store.inventario {
		if inv.QuiosqueID == quiosqueID && inv.JoiaID == joiaID {
			found := inv
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeQuiosqueRepo) DecrementInventario(_ repositories.SQLExecutor, inventarioID uuid.UUID, quantidade int) (int64, error) {
	inv, ok := r.store.inventario[inventarioID]
	if !ok || inv.Quantidade < quantidade {
		return 0, nil
	}
	inv.Quantidade -= quantidade
	r.store.inventario[inventarioID] = inv
	return 1, nil
}

func (r *fakeQuiosqueRepo) UpsertInventario(quiosqueID, joiaID uuid.UUID, quantidade int) (*models.InventarioQuiosque, error) {
	for id, inv := range r.store.inventario {
		if inv.QuiosqueID == quiosqueID && inv.JoiaID == joiaID {
			inv.Quantidade = quantidade
			r.store.inventario[id] = inv
			return &inv, nil
		}
	}
	inv := models.InventarioQuiosque{
		ID:         uuid.New(),
		QuiosqueID: quiosqueID,
		JoiaID:     joiaID,
		Quantidade: quantidade,
	}
	r.store.inventario[inv.ID] = inv
	return &inv, nil
}

// --- fake ClienteRepository ---

type fakeClienteRepo struct {
	store *fakeStore
}

func (r *fakeClienteRepo) CreateCliente(_ repositories.SQLExecutor, cliente *models.Cliente) (uuid.UUID, error) {
	if cliente.Email != nil {
		for _, existing := range r.store.clientes {
			if existing.Email != nil && *existing.Email == *cliente.Email {
				return uuid.Nil, repositories.ErrDuplicateKey
			}
		}
	}
	cliente.ID = uuid.New()
	r.store.clientes[cliente.ID] = *cliente
	return cliente.ID, nil
}

func (r *fakeClienteRepo) FindClienteByEmail(_ repositories.SQLExecutor, email string) (*models.Cliente, error) {
	for _, c := range r.store.clientes {
		if c.Email != nil && *c.Email == email {
			found := c
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeClienteRepo) GetClienteByID(id uuid.UUID) (*models.Cliente, error) {
	c, ok := r.store.clientes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *fakeClienteRepo) GetClientes() ([]models.Cliente, error) {
	out := make([]models.Cliente, 0, len(r.store.clientes))
	for _, c := range r.store.clientes {
		out = append(out, c)
	}
	return out, nil
}

// --- fake VendaRepository ---

type fakeVendaRepo struct {
	store *fakeStore
}

func (r *fakeVendaRepo) CreateVenda(_ repositories.SQLExecutor, venda *models.Venda) (uuid.UUID, error) {
	venda.ID = uuid.New()
	r.store.vendas[venda.ID] = *venda
	return venda.ID, nil
}

func (r *fakeVendaRepo) UpdateVendaTotais(_ repositories.SQLExecutor, vendaID uuid.UUID, totalVenda, totalCusto, totalComissao decimal.Decimal) error {
	venda, ok := r.store.vendas[vendaID]
	if !ok {
		return repositories.ErrNotFound
	}
	venda.TotalVenda = totalVenda
	venda.TotalCusto = totalCusto
	venda.TotalComissao = totalComissao
	r.store.vendas[vendaID] = venda
	return nil
}

func (r *fakeVendaRepo) CreateItemVenda(_ repositories.SQLExecutor, item *models.ItemVenda) (uuid.UUID, error) {
	item.ID = uuid.New()
	r.store.itens[item.ID] = *item
	return item.ID, nil
}

func (r *fakeVendaRepo) GetVendaByID(vendaID uuid.UUID) (*models.Venda, error) {
	venda, ok := r.store.vendas[vendaID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := venda
	return &found, nil
}

func (r *fakeVendaRepo) GetVendas(filters models.VendaFilters) ([]models.Venda, int, error) {
	var out []models.Venda
	for _, v := range r.store.vendas {
		if filters.VendedorID != nil && v.VendedorID != *filters.VendedorID {
			continue
		}
		if filters.QuiosqueID != nil && v.QuiosqueID != *filters.QuiosqueID {
			continue
		}
		out = append(out, v)
	}
	return out, len(out), nil
}

func (r *fakeVendaRepo) GetItensByVendaID(vendaID uuid.UUID) ([]models.ItemVenda, error) {
	var out []models.ItemVenda
	for _, item := range r.store.itens {
		if item.VendaID == vendaID {
			out = append(out, item)
		}
	}
	return out, nil
}
