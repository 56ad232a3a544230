package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido de stocks y movimientos. El mutex emula el lock de
// fila del FOR UPDATE: cada transacción lo retiene de principio a fin.
type memStore struct {
	mu                 sync.Mutex
	stocks             map[string]*entity.Stock
	movements          []*entity.StockMovement
	failMovementInsert bool
}

func newMemStore() *memStore {
	return &memStore{stocks: make(map[string]*entity.Stock)}
}

func (s *memStore) setStock(productID string, quantity, minimum int64) {
	s.stocks[productID] = &entity.Stock{
		ProductID:    productID,
		Quantity:     quantity,
		MinimumStock: minimum,
		UpdatedAt:    time.Now(),
	}
}

// signedSum suma de movimientos con signo para verificar el invariante del ledger.
func (s *memStore) signedSum(productID string) int64 {
	var sum int64
	for _, m := range s.movements {
		if m.ProductID == productID {
			sum += m.Signed()
		}
	}
	return sum
}

// memTxRunner ejecuta fn bajo el lock del store y revierte el estado si fn falla.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Snapshot para simular rollback.
	stocksBefore := make(map[string]entity.Stock, len(r.store.stocks))
	for k, v := range r.store.stocks {
		stocksBefore[k] = *v
	}
	movementsBefore := len(r.store.movements)

	err := fn(&memMovementRepo{store: r.store}, &memStockRepo{store: r.store}, &memProductRepo{})
	if err != nil {
		for k := range r.store.stocks {
			if prev, ok := stocksBefore[k]; ok {
				cp := prev
				r.store.stocks[k] = &cp
			} else {
				delete(r.store.stocks, k)
			}
		}
		r.store.movements = r.store.movements[:movementsBefore]
	}
	return err
}

type memStockRepo struct {
	store *memStore
}

func (r *memStockRepo) Get(productID string) (*entity.Stock, error) {
	if s, ok := r.store.stocks[productID]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID}, nil
}

// GetForUpdate sin fila devuelve ErrNotFound, igual que el adaptador de PostgreSQL:
// sin fila no hay nada que bloquear.
func (r *memStockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	if s, ok := r.store.stocks[productID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.store.stocks[stock.ProductID] = &cp
	return nil
}

func (r *memStockRepo) UpdateMinimum(productID string, minimum int64) error {
	if s, ok := r.store.stocks[productID]; ok {
		s.MinimumStock = minimum
	}
	return nil
}

type memMovementRepo struct {
	store *memStore
}

func (r *memMovementRepo) Create(movement *entity.StockMovement) error {
	if r.store.failMovementInsert {
		return errors.New("insert movement: conexión perdida")
	}
	cp := *movement
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

// movementMatches emula el WHERE del adaptador real: rango de fechas inclusivo
// comparado por día y filtro por tipo opcional.
func movementMatches(m *entity.StockMovement, productID string, from, to *time.Time, movType string) bool {
	if m.ProductID != productID {
		return false
	}
	if movType != "" && m.Type != movType {
		return false
	}
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	if from != nil && day(m.CreatedAt).Before(day(*from)) {
		return false
	}
	if to != nil && day(m.CreatedAt).After(day(*to)) {
		return false
	}
	return true
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, movType string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		m := r.store.movements[i]
		if !movementMatches(m, productID, from, to, movType) {
			continue
		}
		out = append(out, m)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMovementRepo) CountByProduct(productID string, from, to *time.Time, movType string) (int, error) {
	count := 0
	for _, m := range r.store.movements {
		if movementMatches(m, productID, from, to, movType) {
			count++
		}
	}
	return count, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) Update(*entity.Product) error { return nil }
func (r *memProductRepo) List(int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Count() (int, error) { return len(r.products), nil }
func (r *memProductRepo) Delete(string) error { return nil }

// fakeNotifier registra cada alerta despachada; puede configurarse para fallar.
type fakeNotifier struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (n *fakeNotifier) NotifyLowStock(_ context.Context, _ *entity.Product, _ *entity.Stock, _ string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return "", errors.New("notifications caídas")
	}
	n.calls++
	return "alert-id", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "prod-001"
	testUserID    = "user-001"
)

func newFixture(quantity, minimum int64) (*inventory.AdjustStockUseCase, *memStore, *fakeNotifier) {
	store := newMemStore()
	store.setStock(testProductID, quantity, minimum)
	products := &memProductRepo{products: map[string]*entity.Product{
		testProductID: {ID: testProductID, Code: "SKU-001", Name: "Tornillo 3/8"},
	}}
	notifier := &fakeNotifier{}
	uc := inventory.NewAdjustStockUseCase(&memTxRunner{store: store}, products, notifier, logger.Nop())
	return uc, store, notifier
}

func adjust(t *testing.T, uc *inventory.AdjustStockUseCase, movType string, qty int64) (*inventory.MovementResult, error) {
	t.Helper()
	return uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID:   testProductID,
		Type:        movType,
		Quantity:    qty,
		Description: "ajuste de prueba",
		UserID:      testUserID,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Salida que cruza el umbral: 10 - 6 = 4 con mínimo 5 → alerta.
func TestAdjustStock_SalidaCruzaUmbral_RegistraAlerta(t *testing.T) {
	uc, store, notifier := newFixture(10, 5)

	result, err := adjust(t, uc, entity.MovementTypeOut, 6)
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.NewQuantity)
	assert.True(t, result.AlertRaised, "cruzar el umbral debe registrar alerta")
	assert.NotEmpty(t, result.MovementID)
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, int64(4), store.stocks[testProductID].Quantity)
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeOut, store.movements[0].Type)
}

// Salida mayor al saldo → ErrInsufficientStock y nada cambia.
func TestAdjustStock_SalidaInsuficiente_NoAlteraNada(t *testing.T) {
	uc, store, notifier := newFixture(4, 5)

	_, err := adjust(t, uc, entity.MovementTypeOut, 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(4), store.stocks[testProductID].Quantity, "el saldo no debe cambiar")
	assert.Empty(t, store.movements, "no debe registrarse movimiento")
	assert.Equal(t, 0, notifier.calls)
}

// Entrada repone el saldo sin disparar alertas.
func TestAdjustStock_EntradaNoDisparaAlerta(t *testing.T) {
	uc, store, notifier := newFixture(4, 5)

	result, err := adjust(t, uc, entity.MovementTypeIn, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(24), result.NewQuantity)
	assert.False(t, result.AlertRaised)
	assert.Equal(t, 0, notifier.calls)
	assert.Equal(t, int64(24), store.stocks[testProductID].Quantity)
}

// El saldo es siempre la suma con signo del historial.
func TestAdjustStock_InvarianteSaldoIgualSumaDeMovimientos(t *testing.T) {
	uc, store, _ := newFixture(0, 0)

	steps := []struct {
		movType string
		qty     int64
	}{
		{entity.MovementTypeIn, 10},
		{entity.MovementTypeOut, 6},
		{entity.MovementTypeIn, 20},
		{entity.MovementTypeOut, 1},
	}
	for _, s := range steps {
		_, err := adjust(t, uc, s.movType, s.qty)
		require.NoError(t, err)
	}

	assert.Equal(t, store.signedSum(testProductID), store.stocks[testProductID].Quantity,
		"el saldo debe ser la suma con signo de los movimientos")
	assert.Equal(t, int64(23), store.stocks[testProductID].Quantity)
}

// Ajustes sucesivos bajo el mínimo no re-disparan la alerta: solo el cruce cuenta.
func TestAdjustStock_SoloElCruceDeUmbralAlerta(t *testing.T) {
	uc, _, notifier := newFixture(10, 5)

	result, err := adjust(t, uc, entity.MovementTypeOut, 6) // 10 → 4, cruza
	require.NoError(t, err)
	assert.True(t, result.AlertRaised)

	result, err = adjust(t, uc, entity.MovementTypeOut, 1) // 4 → 3, sigue bajo
	require.NoError(t, err)
	assert.False(t, result.AlertRaised, "bajo el mínimo sin cruce no debe re-alertar")

	assert.Equal(t, 1, notifier.calls)
}

// Ajuste que deja el saldo exactamente en el mínimo también cruza.
func TestAdjustStock_SaldoExactoEnMinimoCuentaComoCruce(t *testing.T) {
	uc, _, notifier := newFixture(10, 5)

	result, err := adjust(t, uc, entity.MovementTypeOut, 5) // 10 → 5 == mínimo
	require.NoError(t, err)

	assert.True(t, result.AlertRaised)
	assert.Equal(t, 1, notifier.calls)
}

func TestAdjustStock_ValidacionDeEntrada(t *testing.T) {
	uc, _, _ := newFixture(10, 5)
	ctx := context.Background()

	cases := []struct {
		name  string
		input inventory.AdjustStockInput
	}{
		{"tipo desconocido", inventory.AdjustStockInput{ProductID: testProductID, Type: "transfer", Quantity: 1, Description: "x", UserID: testUserID}},
		{"cantidad cero", inventory.AdjustStockInput{ProductID: testProductID, Type: entity.MovementTypeIn, Quantity: 0, Description: "x", UserID: testUserID}},
		{"cantidad negativa", inventory.AdjustStockInput{ProductID: testProductID, Type: entity.MovementTypeOut, Quantity: -3, Description: "x", UserID: testUserID}},
		{"descripción vacía", inventory.AdjustStockInput{ProductID: testProductID, Type: entity.MovementTypeIn, Quantity: 1, Description: "   ", UserID: testUserID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AdjustStock(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Producto registrado pero sin fila de saldo: no hay fila que bloquear, el ajuste
// se rechaza con ErrNotFound y no queda ningún movimiento registrado.
func TestAdjustStock_ProductoSinFilaDeSaldo(t *testing.T) {
	store := newMemStore()
	products := &memProductRepo{products: map[string]*entity.Product{
		testProductID: {ID: testProductID, Code: "SKU-001", Name: "Tornillo 3/8"},
	}}
	uc := inventory.NewAdjustStockUseCase(&memTxRunner{store: store}, products, &fakeNotifier{}, logger.Nop())

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID:   testProductID,
		Type:        entity.MovementTypeIn,
		Quantity:    5,
		Description: "ajuste",
		UserID:      testUserID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
	assert.Empty(t, store.stocks)
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	uc, _, _ := newFixture(10, 5)

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID:   "no-existe",
		Type:        entity.MovementTypeIn,
		Quantity:    1,
		Description: "ajuste",
		UserID:      testUserID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El fallo del despachador de alertas no revierte ni falla el ajuste.
func TestAdjustStock_FalloDeAlertaNoRevierteElAjuste(t *testing.T) {
	uc, store, notifier := newFixture(10, 5)
	notifier.fail = true

	result, err := adjust(t, uc, entity.MovementTypeOut, 6)
	require.NoError(t, err, "el ajuste debe aplicarse aunque la alerta falle")

	assert.Equal(t, int64(4), result.NewQuantity)
	assert.False(t, result.AlertRaised)
	assert.Equal(t, int64(4), store.stocks[testProductID].Quantity)
	require.Len(t, store.movements, 1)
}

// Falla de persistencia dentro de la transacción → rollback completo.
func TestAdjustStock_FalloDePersistenciaRevierteTodo(t *testing.T) {
	uc, store, _ := newFixture(10, 5)
	store.failMovementInsert = true

	_, err := adjust(t, uc, entity.MovementTypeOut, 6)
	require.Error(t, err)

	assert.Equal(t, int64(10), store.stocks[testProductID].Quantity, "rollback debe restaurar el saldo")
	assert.Empty(t, store.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

func newHistoryFixture() (*inventory.StockHistoryUseCase, *memStore) {
	store := newMemStore()
	products := &memProductRepo{products: map[string]*entity.Product{
		testProductID: {ID: testProductID, Code: "SKU-001", Name: "Tornillo 3/8"},
	}}
	return inventory.NewStockHistoryUseCase(&memMovementRepo{store: store}, products), store
}

func seedMovement(store *memStore, id, movType string, createdAt time.Time) {
	store.movements = append(store.movements, &entity.StockMovement{
		ID:          id,
		ProductID:   testProductID,
		Type:        movType,
		Quantity:    1,
		Description: "ajuste",
		UserID:      testUserID,
		CreatedAt:   createdAt,
	})
}

// Un rango con end_date anterior a start_date se rechaza igual que en los reportes.
func TestGetHistory_RangoInvertidoEsInvalido(t *testing.T) {
	uc, store := newHistoryFixture()
	seedMovement(store, "mov-1", entity.MovementTypeIn, time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC))

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.GetHistory(testProductID, &from, &to, "", dto.PageRequest{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El total de paginación aplica los mismos filtros que el listado: con filtros de
// tipo o de fecha activos, Meta.Total debe coincidir con lo que el listado devuelve.
func TestGetHistory_TotalRespetaLosFiltros(t *testing.T) {
	uc, store := newHistoryFixture()
	base := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	seedMovement(store, "mov-1", entity.MovementTypeIn, base)
	seedMovement(store, "mov-2", entity.MovementTypeOut, base.AddDate(0, 0, 1))
	seedMovement(store, "mov-3", entity.MovementTypeIn, base.AddDate(0, 0, 2))

	out, err := uc.GetHistory(testProductID, nil, nil, entity.MovementTypeIn, dto.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, out.Movements, 2)
	assert.Equal(t, 2, out.Meta.Total, "el total debe contar solo las entradas")

	from, to := base, base.AddDate(0, 0, 1)
	out, err = uc.GetHistory(testProductID, &from, &to, "", dto.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, out.Movements, 2)
	assert.Equal(t, 2, out.Meta.Total, "el total debe respetar el rango de fechas")

	out, err = uc.GetHistory(testProductID, nil, nil, "", dto.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Meta.Total)
}

// Dos salidas concurrentes se serializan en el lock de fila: con saldo 10 y dos
// salidas de 6, exactamente una aplica y la otra recibe ErrInsufficientStock.
func TestAdjustStock_SalidasConcurrentesSeSerializan(t *testing.T) {
	uc, store, _ := newFixture(10, 0)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = adjust(t, uc, entity.MovementTypeOut, 6)
		}(i)
	}
	wg.Wait()

	okCount, insufficientCount := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficientCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una salida debe aplicar")
	assert.Equal(t, 1, insufficientCount, "la otra debe rechazarse por stock insuficiente")
	assert.Equal(t, int64(4), store.stocks[testProductID].Quantity)
	assert.Len(t, store.movements, 1)
}
