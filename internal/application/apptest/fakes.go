// Package apptest provee repositorios en memoria para probar los casos de uso
// sin base de datos. Respetan los mismos contratos que los repositorios pgx:
// Get* devuelve (nil, nil) si no existe y las escrituras condicionadas devuelven false.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/quotation"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tooling"
	"github.com/jhoicas/Taller-api/pkg/textnorm"
)

func page[T any](items []T, p repository.ListParams) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	items = items[p.Offset:]
	if p.Limit > 0 && len(items) > p.Limit {
		items = items[:p.Limit]
	}
	return items
}

func matches(search string, fields ...string) bool {
	if strings.TrimSpace(search) == "" {
		return true
	}
	for _, f := range fields {
		if textnorm.Contains(f, search) {
			return true
		}
	}
	return false
}

// ── Users ────────────────────────────────────────────────────────────────────

// Users implementa repository.UserRepository.
type Users struct {
	mu   sync.Mutex
	byID map[string]entity.User
}

func NewUsers(seed ...*entity.User) *Users {
	r := &Users{byID: map[string]entity.User{}}
	for _, u := range seed {
		r.byID[u.ID] = *u
	}
	return r
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if strings.EqualFold(o.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) GetByResetTokenHash(_ context.Context, hash string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if hash != "" && u.ResetTokenHash == hash {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *Users) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.LastLogin = &at
	r.byID[id] = u
	return nil
}

func (r *Users) List(_ context.Context, p repository.ListParams) ([]*entity.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.byID {
		if matches(p.Search, u.Nombre, u.Email) {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, p), len(out), nil
}

// ── Employees ────────────────────────────────────────────────────────────────

// Employees implementa repository.EmployeeRepository. Assigned marca ids con asignaciones.
type Employees struct {
	mu       sync.Mutex
	byID     map[string]entity.Employee
	Assigned map[string]bool
}

func NewEmployees(seed ...*entity.Employee) *Employees {
	r := &Employees{byID: map[string]entity.Employee{}, Assigned: map[string]bool{}}
	for _, e := range seed {
		r.byID[e.ID] = *e
	}
	return r
}

func (r *Employees) Create(_ context.Context, e *entity.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.Email != "" {
		for _, o := range r.byID {
			if strings.EqualFold(o.Email, e.Email) {
				return domain.ErrDuplicate
			}
		}
	}
	r.byID[e.ID] = *e
	return nil
}

func (r *Employees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byID[id]; ok {
		e.Entregas = append([]entity.Delivery(nil), e.Entregas...)
		return &e, nil
	}
	return nil, nil
}

func (r *Employees) Update(_ context.Context, e *entity.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := *e
	next.Entregas = cur.Entregas
	r.byID[e.ID] = next
	return nil
}

func (r *Employees) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *Employees) List(_ context.Context, p repository.ListParams) ([]*entity.Employee, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Employee
	for _, e := range r.byID {
		if matches(p.Search, e.Nombre, e.Email, e.Cargo) {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, p), len(out), nil
}

func (r *Employees) AppendDelivery(_ context.Context, id string, d entity.Delivery) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	e.Entregas = append(append([]entity.Delivery(nil), e.Entregas...), d)
	r.byID[id] = e
	return true, nil
}

func (r *Employees) HasAssignments(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Assigned[id], nil
}

// ── Products ─────────────────────────────────────────────────────────────────

// Products implementa repository.ProductRepository con la misma guarda de cantidad >= 0.
type Products struct {
	mu   sync.Mutex
	byID map[string]entity.Product
}

func NewProducts(seed ...*entity.Product) *Products {
	r := &Products{byID: map[string]entity.Product{}}
	for _, p := range seed {
		r.byID[p.ID] = *p
	}
	return r
}

func (r *Products) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *Products) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byID[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *Products) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.SKU == sku {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *Products) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := *p
	next.Cantidad = cur.Cantidad
	next.Historial = cur.Historial
	next.Asignaciones = cur.Asignaciones
	r.byID[p.ID] = next
	return nil
}

func (r *Products) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *Products) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.byID {
		if f.Categoria != "" && p.Categoria != f.Categoria {
			continue
		}
		if matches(f.Search, p.Nombre, p.SKU, p.Descripcion) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, f.ListParams), len(out), nil
}

func (r *Products) Count(context.Context) (int, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, p := range r.byID {
		total += int64(p.Cantidad)
	}
	return len(r.byID), total, nil
}

func (r *Products) SetQuantity(_ context.Context, id string, cantidad int, entry entity.HistoryEntry) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || cantidad < 0 {
		return false, nil
	}
	p.Cantidad = cantidad
	p.Historial = p.Historial.Append(entry)
	r.byID[id] = p
	return true, nil
}

func (r *Products) AdjustQuantity(_ context.Context, id string, delta int, precio *decimal.Decimal, entry entity.HistoryEntry) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.Cantidad+delta < 0 {
		return false, nil
	}
	p.Cantidad += delta
	if precio != nil {
		p.PrecioUnitario = *precio
	}
	p.Historial = p.Historial.Append(entry)
	r.byID[id] = p
	return true, nil
}

func (r *Products) AppendAssignment(_ context.Context, id string, a entity.ProductAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Asignaciones = append(append([]entity.ProductAssignment(nil), p.Asignaciones...), a)
	r.byID[id] = p
	return nil
}

// ── Tools ────────────────────────────────────────────────────────────────────

// Tools implementa repository.ToolRepository.
type Tools struct {
	mu   sync.Mutex
	byID map[string]entity.Tool
}

func NewTools(seed ...*entity.Tool) *Tools {
	r := &Tools{byID: map[string]entity.Tool{}}
	for _, t := range seed {
		r.byID[t.ID] = *t
	}
	return r
}

func (r *Tools) Create(_ context.Context, t *entity.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.SKU == t.SKU {
			return domain.ErrDuplicate
		}
	}
	r.byID[t.ID] = *t
	return nil
}

func (r *Tools) GetByID(_ context.Context, id string) (*entity.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.byID[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *Tools) Update(_ context.Context, t *entity.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := *t
	next.Estado, next.AssignedTo, next.Historial, next.Activa = cur.Estado, cur.AssignedTo, cur.Historial, cur.Activa
	r.byID[t.ID] = next
	return nil
}

func (r *Tools) SoftDelete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || !t.Activa {
		return false, nil
	}
	t.Activa = false
	r.byID[id] = t
	return true, nil
}

func (r *Tools) List(_ context.Context, f repository.ToolFilter) ([]*entity.Tool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Tool
	for _, t := range r.byID {
		if !t.Activa || (f.Estado != "" && t.Estado != f.Estado) {
			continue
		}
		if f.AssignedTo != "" && (t.AssignedTo == nil || *t.AssignedTo != f.AssignedTo) {
			continue
		}
		if matches(f.Search, t.Nombre, t.SKU) {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, f.ListParams), len(out), nil
}

func (r *Tools) ListAll(context.Context) ([]*entity.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Tool, 0, len(r.byID))
	for _, t := range r.byID {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *Tools) ApplyTransition(_ context.Context, id string, tr tooling.Transition) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || (tr.From != "" && t.Estado != tr.From) {
		return false, nil
	}
	tooling.Apply(&t, tr)
	r.byID[id] = t
	return true, nil
}

// ── Vehicles ─────────────────────────────────────────────────────────────────

// Vehicles implementa repository.VehicleRepository.
type Vehicles struct {
	mu   sync.Mutex
	byID map[string]entity.Vehicle
}

func NewVehicles(seed ...*entity.Vehicle) *Vehicles {
	r := &Vehicles{byID: map[string]entity.Vehicle{}}
	for _, v := range seed {
		r.byID[v.ID] = *v
	}
	return r
}

func (r *Vehicles) Create(_ context.Context, v *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.Placa == v.Placa {
			return domain.ErrDuplicate
		}
	}
	r.byID[v.ID] = *v
	return nil
}

func (r *Vehicles) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.byID[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *Vehicles) Update(_ context.Context, v *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, o := range r.byID {
		if id != v.ID && o.Placa == v.Placa {
			return domain.ErrDuplicate
		}
	}
	next := *v
	next.Productos = cur.Productos
	r.byID[v.ID] = next
	return nil
}

func (r *Vehicles) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *Vehicles) List(_ context.Context, f repository.VehicleFilter) ([]*entity.Vehicle, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vehicle
	for _, v := range r.byID {
		if (f.Estado != "" && v.Estado != f.Estado) || (f.Tipo != "" && v.TipoVehiculo != f.Tipo) {
			continue
		}
		if matches(f.Search, v.Placa, v.Compania) {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Placa < out[j].Placa })
	return page(out, f.ListParams), len(out), nil
}

func (r *Vehicles) AssignEmployee(_ context.Context, id string, employeeID *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	v.EmpleadoAsignado = employeeID
	r.byID[id] = v
	return true, nil
}

func (r *Vehicles) UpdateStatus(_ context.Context, id, estado string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	v.Estado = estado
	r.byID[id] = v
	return true, nil
}

func (r *Vehicles) AppendProduct(_ context.Context, id string, p entity.AssignedProduct) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	v.Productos = append(append([]entity.AssignedProduct(nil), v.Productos...), p)
	r.byID[id] = v
	return true, nil
}

// ── Bays / Providers ─────────────────────────────────────────────────────────

// Bays implementa repository.BayRepository.
type Bays struct {
	mu   sync.Mutex
	byID map[string]entity.Bay
}

func NewBays() *Bays { return &Bays{byID: map[string]entity.Bay{}} }

func (r *Bays) Create(_ context.Context, b *entity.Bay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[b.ID] = *b
	return nil
}

func (r *Bays) GetByID(_ context.Context, id string) (*entity.Bay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.byID[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *Bays) Update(_ context.Context, b *entity.Bay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[b.ID] = *b
	return nil
}

func (r *Bays) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *Bays) List(_ context.Context, p repository.ListParams) ([]*entity.Bay, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bay
	for _, b := range r.byID {
		if matches(p.Search, b.Nombre) {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, p), len(out), nil
}

// Providers implementa repository.ProviderRepository.
type Providers struct {
	mu   sync.Mutex
	byID map[string]entity.Provider
}

func NewProviders() *Providers { return &Providers{byID: map[string]entity.Provider{}} }

func (r *Providers) Create(_ context.Context, p *entity.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = *p
	return nil
}

func (r *Providers) GetByID(_ context.Context, id string) (*entity.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byID[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *Providers) Update(_ context.Context, p *entity.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *Providers) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *Providers) List(_ context.Context, p repository.ListParams) ([]*entity.Provider, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Provider
	for _, pr := range r.byID {
		if matches(p.Search, pr.Nombre, pr.Empresa, pr.NIT) {
			pr := pr
			out = append(out, &pr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, p), len(out), nil
}

// ── Ingresos / Salidas ───────────────────────────────────────────────────────

// Checkins implementa IngresoRepository y SalidaRepository sobre el mismo estado,
// de modo que el borrado de un ingreso con salida falle como en PostgreSQL.
type Checkins struct {
	mu       sync.Mutex
	ingresos map[string]entity.Ingreso
	salidas  map[string]entity.Salida
}

func NewCheckins() *Checkins {
	return &Checkins{ingresos: map[string]entity.Ingreso{}, salidas: map[string]entity.Salida{}}
}

// Ingresos vista IngresoRepository.
func (c *Checkins) Ingresos() repository.IngresoRepository { return ingresoView{c} }

// Salidas vista SalidaRepository.
func (c *Checkins) Salidas() repository.SalidaRepository { return salidaView{c} }

type ingresoView struct{ c *Checkins }

func (v ingresoView) Create(_ context.Context, in *entity.Ingreso) error {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	v.c.ingresos[in.ID] = *in
	return nil
}

func (v ingresoView) GetByID(_ context.Context, id string) (*entity.Ingreso, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	if in, ok := v.c.ingresos[id]; ok {
		return &in, nil
	}
	return nil, nil
}

func (v ingresoView) GetForUpdate(ctx context.Context, id string) (*entity.Ingreso, error) {
	return v.GetByID(ctx, id)
}

func (v ingresoView) Update(_ context.Context, in *entity.Ingreso) error {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	if _, ok := v.c.ingresos[in.ID]; !ok {
		return domain.ErrNotFound
	}
	v.c.ingresos[in.ID] = *in
	return nil
}

func (v ingresoView) SetEstado(_ context.Context, id, estado string) error {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	in, ok := v.c.ingresos[id]
	if !ok {
		return domain.ErrNotFound
	}
	in.Estado = estado
	v.c.ingresos[id] = in
	return nil
}

func (v ingresoView) Delete(_ context.Context, id string) (bool, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	if _, ok := v.c.ingresos[id]; !ok {
		return false, nil
	}
	for _, s := range v.c.salidas {
		if s.IngresoID == id {
			return false, domain.ErrIngresoHasSalida
		}
	}
	delete(v.c.ingresos, id)
	return true, nil
}

func (v ingresoView) List(_ context.Context, f repository.IngresoFilter) ([]*entity.Ingreso, int, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	var out []*entity.Ingreso
	for _, in := range v.c.ingresos {
		if f.Estado != "" && in.Estado != f.Estado {
			continue
		}
		if matches(f.Search, in.VehiculoPlaca, in.Empresa, in.ConductorNombre) {
			in := in
			out = append(out, &in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaIngreso.After(out[j].FechaIngreso) })
	return page(out, f.ListParams), len(out), nil
}

type salidaView struct{ c *Checkins }

func (v salidaView) Create(_ context.Context, s *entity.Salida) error {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	if _, ok := v.c.ingresos[s.IngresoID]; !ok {
		return domain.ErrInvalidInput
	}
	for _, o := range v.c.salidas {
		if o.IngresoID == s.IngresoID {
			return domain.ErrDuplicate
		}
	}
	v.c.salidas[s.ID] = *s
	return nil
}

func (v salidaView) GetByID(_ context.Context, id string) (*entity.Salida, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	if s, ok := v.c.salidas[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (v salidaView) GetByIngresoID(_ context.Context, ingresoID string) (*entity.Salida, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	for _, s := range v.c.salidas {
		if s.IngresoID == ingresoID {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (v salidaView) List(_ context.Context, p repository.ListParams) ([]*entity.Salida, int, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	var out []*entity.Salida
	for _, s := range v.c.salidas {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaSalida.After(out[j].FechaSalida) })
	return page(out, p), len(out), nil
}

// ── Quotations ───────────────────────────────────────────────────────────────

// Quotations implementa repository.QuotationRepository con un contador de folios en memoria.
type Quotations struct {
	mu      sync.Mutex
	byID    map[string]entity.Quotation
	counter int64
}

func NewQuotations() *Quotations { return &Quotations{byID: map[string]entity.Quotation{}} }

func (r *Quotations) NextFolioNumber(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter, nil
}

func cloneQuotation(q entity.Quotation) entity.Quotation {
	q.Productos = append([]entity.QuotationLine(nil), q.Productos...)
	return q
}

func (r *Quotations) Create(_ context.Context, q *entity.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.Folio == q.Folio {
			return domain.ErrDuplicate
		}
	}
	r.byID[q.ID] = cloneQuotation(*q)
	return nil
}

func (r *Quotations) GetByID(_ context.Context, id string) (*entity.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.byID[id]; ok {
		q = cloneQuotation(q)
		return &q, nil
	}
	return nil, nil
}

func (r *Quotations) GetForUpdate(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.GetByID(ctx, id)
}

func (r *Quotations) Update(_ context.Context, q *entity.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[q.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[q.ID] = cloneQuotation(*q)
	return nil
}

func (r *Quotations) UpdateStatus(_ context.Context, id, estado string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	q.Estado = estado
	r.byID[id] = q
	return true, nil
}

func (r *Quotations) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *Quotations) sorted() []entity.Quotation {
	out := make([]entity.Quotation, 0, len(r.byID))
	for _, q := range r.byID {
		out = append(out, cloneQuotation(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Folio > out[j].Folio })
	return out
}

func (r *Quotations) List(_ context.Context, f repository.QuotationFilter) ([]*entity.Quotation, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Quotation
	for _, q := range r.sorted() {
		if f.Estado != "" && q.Estado != f.Estado {
			continue
		}
		if matches(f.Search, q.Folio, q.Placa, q.Empresa, q.Cliente) {
			q := q
			out = append(out, &q)
		}
	}
	return page(out, f.ListParams), len(out), nil
}

func (r *Quotations) SuggestionRefs(_ context.Context, query string, limit int) ([]quotation.LineRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[[3]string]bool{}
	out := []quotation.LineRef{}
	for _, q := range r.sorted() {
		for _, l := range q.Productos {
			if !textnorm.Contains(q.Placa, query) && !textnorm.Contains(q.Empresa, query) && !textnorm.Contains(l.Proveedor, query) {
				continue
			}
			key := [3]string{textnorm.Fold(q.Placa), textnorm.Fold(q.Empresa), textnorm.Fold(l.Proveedor)}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, quotation.LineRef{Placa: q.Placa, Empresa: q.Empresa, Line: l})
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// ── TxRunner / FileStore ─────────────────────────────────────────────────────

// TxRunner ejecuta fn con los mismos repositorios en memoria (sin rollback).
type TxRunner struct {
	Repos repository.Repos
	Calls int
	mu    sync.Mutex
}

func (t *TxRunner) Run(_ context.Context, fn func(r repository.Repos) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(t.Repos)
}

// Files implementa ports.FileStore guardando en memoria. Err fuerza un fallo en Store.
type Files struct {
	mu      sync.Mutex
	Stored  map[string]ports.Upload
	Removed []string
	Err     error
}

func NewFiles() *Files { return &Files{Stored: map[string]ports.Upload{}} }

func (f *Files) Store(_ context.Context, files []ports.Upload) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	refs := make([]string, len(files))
	for i, u := range files {
		refs[i] = "/uploads/" + u.Field + "-" + u.Filename
		f.Stored[refs[i]] = u
	}
	return refs, nil
}

func (f *Files) Remove(_ context.Context, refs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range refs {
		delete(f.Stored, r)
		f.Removed = append(f.Removed, r)
	}
	return nil
}
