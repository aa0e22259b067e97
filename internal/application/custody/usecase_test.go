package custody_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcustody "github.com/dgomezm/custodia-pos/internal/application/custody"
	"github.com/dgomezm/custodia-pos/internal/application/dto"
	"github.com/dgomezm/custodia-pos/internal/domain"
	custodydomain "github.com/dgomezm/custodia-pos/internal/domain/custody"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

const testActorID = "00000000-0000-0000-0000-000000000001"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: item, evento y folio comparten un store con snapshot para
// reproducir la atomicidad de la transacción (error = nada queda escrito).
// ──────────────────────────────────────────────────────────────────────────────

type custodyStore struct {
	mu       sync.Mutex
	items    map[string]*entity.CustodyItem
	events   []*entity.CustodyEvent
	counters map[string]int64
	claimed  map[string]bool
}

func newCustodyStore() *custodyStore {
	return &custodyStore{
		items:    map[string]*entity.CustodyItem{},
		counters: map[string]int64{},
		claimed:  map[string]bool{},
	}
}

func (s *custodyStore) snapshot() *custodyStore {
	snap := newCustodyStore()
	for id, item := range s.items {
		copied := *item
		snap.items[id] = &copied
	}
	snap.events = append(snap.events, s.events...)
	for k, v := range s.counters {
		snap.counters[k] = v
	}
	for k, v := range s.claimed {
		snap.claimed[k] = v
	}
	return snap
}

func (s *custodyStore) restore(snap *custodyStore) {
	s.items = snap.items
	s.events = snap.events
	s.counters = snap.counters
	s.claimed = snap.claimed
}

type fakeItemRepo struct{ store *custodyStore }

func (f *fakeItemRepo) Create(_ context.Context, item *entity.CustodyItem) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, existing := range f.store.items {
		if existing.InventoryNumber == item.InventoryNumber {
			return domain.ErrDuplicate
		}
		if item.SerialNumber != "" && existing.SerialNumber == item.SerialNumber {
			return domain.ErrDuplicate
		}
	}
	copied := *item
	f.store.items[item.ID] = &copied
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.CustodyItem, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	item, ok := f.store.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) GetByInventoryNumber(_ context.Context, inventoryNumber string) (*entity.CustodyItem, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, item := range f.store.items {
		if item.InventoryNumber == inventoryNumber {
			copied := *item
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.CustodyItem, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*entity.CustodyItem
	for _, item := range f.store.items {
		if status == "" || item.Status == status {
			copied := *item
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InventoryNumber < out[j].InventoryNumber })
	return out, nil
}

func (f *fakeItemRepo) UpdateStatusCAS(_ context.Context, id, expected, next string) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	item, ok := f.store.items[id]
	if !ok || item.Status != expected {
		return false, nil
	}
	item.Status = next
	item.UpdatedAt = time.Now()
	return true, nil
}

type fakeEventRepo struct{ store *custodyStore }

func (f *fakeEventRepo) Append(_ context.Context, event *entity.CustodyEvent) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	copied := *event
	f.store.events = append(f.store.events, &copied)
	return nil
}

func (f *fakeEventRepo) ListByItem(_ context.Context, custodyItemID string) ([]*entity.CustodyEvent, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*entity.CustodyEvent
	for _, ev := range f.store.events {
		if ev.CustodyItemID == custodyItemID {
			copied := *ev
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeFolioRepo struct{ store *custodyStore }

func (f *fakeFolioRepo) NextSequence(_ context.Context, series string, year int) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	key := fmt.Sprintf("%s|%d", series, year)
	f.store.counters[key]++
	return f.store.counters[key], nil
}

func (f *fakeFolioRepo) Claim(_ context.Context, folio *entity.Folio) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	key := folio.Namespace + "|" + folio.Rendered
	if f.store.claimed[key] {
		return domain.ErrDuplicateFolio
	}
	f.store.claimed[key] = true
	return nil
}

func (f *fakeFolioRepo) ExistsRendered(_ context.Context, rendered string) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for key := range f.store.claimed {
		if key == entity.FolioNamespaceInventario+"|"+rendered || key == entity.FolioNamespaceCustodia+"|"+rendered {
			return true, nil
		}
	}
	return false, nil
}

// fakeTxRunner reproduce la semántica transaccional con snapshot/restore: si el
// callback falla, ninguna escritura queda visible.
type fakeTxRunner struct{ store *custodyStore }

func (f *fakeTxRunner) RunCustody(_ context.Context, fn func(
	itemRepo repository.CustodyItemRepository,
	eventRepo repository.CustodyEventRepository,
	folioRepo repository.FolioRepository,
) error) error {
	f.store.mu.Lock()
	snap := f.store.snapshot()
	f.store.mu.Unlock()
	err := fn(&fakeItemRepo{store: f.store}, &fakeEventRepo{store: f.store}, &fakeFolioRepo{store: f.store})
	if err != nil {
		f.store.mu.Lock()
		f.store.restore(snap)
		f.store.mu.Unlock()
	}
	return err
}

func newTestUseCase() (*appcustody.UseCase, *custodyStore) {
	store := newCustodyStore()
	uc := appcustody.NewUseCase(&fakeTxRunner{store: store}, &fakeItemRepo{store: store}, &fakeEventRepo{store: store})
	return uc, store
}

func registerRequest(inventoryNumber string) dto.RegisterCustodyItemRequest {
	return dto.RegisterCustodyItemRequest{
		InventoryNumber:  inventoryNumber,
		Description:      "Impresora térmica",
		Brand:            "Epson",
		Model:            "TM-T20",
		Quantity:         1,
		Reason:           entity.ReasonResguardo,
		InitialCondition: entity.ConditionBueno,
		CenterOrigin:     "Centro Norte",
		DeliveredBy:      dto.ActorDTO{Name: "Juan Pérez", Position: "Almacenista"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_AltaConFolioAutomaticoYEvento(t *testing.T) {
	uc, store := newTestUseCase()

	item, err := uc.Register(context.Background(), testActorID, registerRequest("INV-001"))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEnTransito, item.Status, "sin estado inicial explícito, el alta queda en tránsito")

	events, err := uc.History(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, appcustody.EventRegistro, events[0].Kind)
	assert.Equal(t, entity.StatusEnTransito, events[0].ToStatus)
	assert.Equal(t, fmt.Sprintf("RSG-%d-001", time.Now().Year()), events[0].Folio,
		"el alta sin folio manual toma el consecutivo RSG")
	assert.Equal(t, "Juan Pérez", events[0].Actors.DeliveredBy.Name)
	assert.True(t, store.claimed[entity.FolioNamespaceCustodia+"|"+events[0].Folio],
		"el folio queda reclamado en el espacio CUSTODIA")
}

func TestRegister_EstadoInicialEnResguardo(t *testing.T) {
	uc, _ := newTestUseCase()
	in := registerRequest("INV-002")
	in.InitialStatus = entity.StatusEnResguardo

	item, err := uc.Register(context.Background(), testActorID, in)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEnResguardo, item.Status)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newTestUseCase()
	cases := []struct {
		name   string
		mutate func(*dto.RegisterCustodyItemRequest)
	}{
		{"sin número de inventario", func(r *dto.RegisterCustodyItemRequest) { r.InventoryNumber = "" }},
		{"cantidad cero", func(r *dto.RegisterCustodyItemRequest) { r.Quantity = 0 }},
		{"motivo inválido", func(r *dto.RegisterCustodyItemRequest) { r.Reason = "PRESTAMO" }},
		{"condición inválida", func(r *dto.RegisterCustodyItemRequest) { r.InitialCondition = "REGULAR" }},
		{"estado inicial terminal", func(r *dto.RegisterCustodyItemRequest) { r.InitialStatus = entity.StatusBajaDefinitiva }},
		{"sin quien entrega", func(r *dto.RegisterCustodyItemRequest) { r.DeliveredBy = dto.ActorDTO{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := registerRequest("INV-V")
			tc.mutate(&in)
			_, err := uc.Register(context.Background(), testActorID, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegister_NumeroDeInventarioDuplicado(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Register(context.Background(), testActorID, registerRequest("INV-003"))
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), testActorID, registerRequest("INV-003"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El folio manual duplicado aborta el alta completa: ni artículo ni evento.
func TestRegister_FolioManualDuplicadoNoDejaEscrituras(t *testing.T) {
	uc, store := newTestUseCase()
	first := registerRequest("INV-004")
	first.Folio = "OFICIO-44"
	_, err := uc.Register(context.Background(), testActorID, first)
	require.NoError(t, err)

	second := registerRequest("INV-005")
	second.Folio = "OFICIO-44"
	_, err = uc.Register(context.Background(), testActorID, second)
	assert.ErrorIs(t, err, domain.ErrDuplicateFolio)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.items, 1, "el alta fallida no debe dejar artículo")
	assert.Len(t, store.events, 1, "el alta fallida no debe dejar evento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transition: ciclo de vida completo
// ──────────────────────────────────────────────────────────────────────────────

func transitionRequest(kind, expected string) dto.TransitionCustodyItemRequest {
	in := dto.TransitionCustodyItemRequest{Kind: kind, ExpectedStatus: expected}
	switch kind {
	case custodydomain.TransitionRecepcionChofer:
		in.TransportedBy = dto.ActorDTO{Name: "Luis Soto", Position: "Chofer"}
	case custodydomain.TransitionRecepcionAlmacen:
		in.ReceivedBy = dto.ActorDTO{Name: "Ana Ríos", Position: "Supervisora"}
	case custodydomain.TransitionSalida:
		in.DeliveredBy = dto.ActorDTO{Name: "Juan Pérez", Position: "Almacenista"}
		in.TransportedBy = dto.ActorDTO{Name: "Luis Soto", Position: "Chofer"}
		in.ReceivedBy = dto.ActorDTO{Name: "Ana Ríos", Position: "Supervisora"}
	case custodydomain.TransitionBajaAdministrativa:
		in.DeliveredBy = dto.ActorDTO{Name: "Ana Ríos", Position: "Supervisora"}
	}
	return in
}

func TestTransition_CicloCompletoHastaTerminal(t *testing.T) {
	uc, _ := newTestUseCase()
	in := registerRequest("INV-010")
	in.Reason = entity.ReasonBaja
	item, err := uc.Register(context.Background(), testActorID, in)
	require.NoError(t, err)

	// Chofer confirma recepción: el estado no cambia, la cadena sí.
	updated, err := uc.Transition(context.Background(), testActorID, item.ID,
		transitionRequest(custodydomain.TransitionRecepcionChofer, entity.StatusEnTransito))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEnTransito, updated.Status)

	// El almacén recibe.
	updated, err = uc.Transition(context.Background(), testActorID, item.ID,
		transitionRequest(custodydomain.TransitionRecepcionAlmacen, entity.StatusEnTransito))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEnResguardo, updated.Status)

	// Salida por baja: estado terminal.
	updated, err = uc.Transition(context.Background(), testActorID, item.ID,
		transitionRequest(custodydomain.TransitionSalida, entity.StatusEnResguardo))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusBajaDefinitiva, updated.Status)

	// Cuarto intento sobre estado terminal.
	_, err = uc.Transition(context.Background(), testActorID, item.ID,
		transitionRequest(custodydomain.TransitionBajaAdministrativa, entity.StatusBajaDefinitiva))
	assert.ErrorIs(t, err, domain.ErrTerminalState)

	// El historial reproduce el ciclo completo en orden.
	events, err := uc.History(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, appcustody.EventRegistro, events[0].Kind)
	assert.Equal(t, custodydomain.TransitionRecepcionChofer, events[1].Kind)
	assert.Equal(t, custodydomain.TransitionRecepcionAlmacen, events[2].Kind)
	assert.Equal(t, custodydomain.TransitionSalida, events[3].Kind)
	assert.Equal(t, entity.StatusEnResguardo, events[3].FromStatus)
	assert.Equal(t, entity.StatusBajaDefinitiva, events[3].ToStatus)
}

func TestTransition_SalidaAsignaFolioSalRsg(t *testing.T) {
	uc, _ := newTestUseCase()
	in := registerRequest("INV-011")
	in.Reason = entity.ReasonBaja
	in.InitialStatus = entity.StatusEnResguardo
	item, err := uc.Register(context.Background(), testActorID, in)
	require.NoError(t, err)

	_, err = uc.Transition(context.Background(), testActorID, item.ID,
		transitionRequest(custodydomain.TransitionSalida, entity.StatusEnResguardo))
	require.NoError(t, err)

	events, err := uc.History(context.Background(), item.ID)
	require.NoError(t, err)
	salida := events[len(events)-1]
	assert.Equal(t, fmt.Sprintf("SAL-RSG-%d-001", time.Now().Year()), salida.Folio,
		"la salida sin folio manual toma el consecutivo SAL-RSG")
}

// Salida por traslado: el artículo reingresa en tránsito hacia Zona Principal.
func TestTransition_TrasladoReingresaEnTransito(t *testing.T) {
	uc, _ := newTestUseCase()
	in := registerRequest("INV-012")
	in.Reason = entity.ReasonTraslado
	in.InitialStatus = entity.StatusEnResguardo
	item, err := uc.Register(context.Background(), testActorID, in)
	require.NoError(t, err)

	updated, err := uc.Transition(context.Background(), testActorID, item.ID,
		transitionRequest(custodydomain.TransitionSalida, entity.StatusEnResguardo))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEnTransito, updated.Status)

	events, err := uc.History(context.Background(), item.ID)
	require.NoError(t, err)
	salida := events[len(events)-1]
	assert.Equal(t, custodydomain.TrasladoDestination, salida.Destination)
}

func TestTransition_EstadoVistoObsoleto(t *testing.T) {
	uc, _ := newTestUseCase()
	item, err := uc.Register(context.Background(), testActorID, registerRequest("INV-013"))
	require.NoError(t, err)

	// El operador vio EN_RESGUARDO pero el artículo sigue EN_TRANSITO.
	_, err = uc.Transition(context.Background(), testActorID, item.ID,
		transitionRequest(custodydomain.TransitionBajaAdministrativa, entity.StatusEnResguardo))
	assert.ErrorIs(t, err, domain.ErrStaleState)
}

func TestTransition_ArticuloInexistente(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Transition(context.Background(), testActorID, "no-existe",
		transitionRequest(custodydomain.TransitionBajaAdministrativa, entity.StatusEnTransito))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_ActoresIncompletos(t *testing.T) {
	uc, _ := newTestUseCase()
	in := registerRequest("INV-014")
	in.Reason = entity.ReasonBaja
	in.InitialStatus = entity.StatusEnResguardo
	item, err := uc.Register(context.Background(), testActorID, in)
	require.NoError(t, err)

	salida := transitionRequest(custodydomain.TransitionSalida, entity.StatusEnResguardo)
	salida.ReceivedBy = dto.ActorDTO{}
	_, err = uc.Transition(context.Background(), testActorID, item.ID, salida)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la salida exige la terna completa")

	// El rechazo no movió el estado.
	current, err := uc.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEnResguardo, current.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraPorEstado(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Register(context.Background(), testActorID, registerRequest("INV-020"))
	require.NoError(t, err)
	resguardo := registerRequest("INV-021")
	resguardo.InitialStatus = entity.StatusEnResguardo
	_, err = uc.Register(context.Background(), testActorID, resguardo)
	require.NoError(t, err)

	items, err := uc.List(context.Background(), entity.StatusEnResguardo, 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "INV-021", items[0].InventoryNumber)

	all, err := uc.List(context.Background(), "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHistory_ArticuloInexistente(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.History(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
