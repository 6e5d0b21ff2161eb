package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/crm"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

// ── Proyectos ─────────────────────────────────────────────────────────────────

type memProjects struct {
	byID map[string]*entity.Project
}

func newMemProjects() *memProjects { return &memProjects{byID: map[string]*entity.Project{}} }

func (m *memProjects) Create(_ context.Context, p *entity.Project) error {
	if _, ok := m.byID[p.ID]; ok {
		return domain.Conflict("proyecto duplicado")
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProjects) GetByID(_ context.Context, id string) (*entity.Project, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProjects) List(context.Context) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, p := range m.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedOn.After(out[j].CreatedOn) })
	return out, nil
}

func (m *memProjects) Update(_ context.Context, patch entity.ProjectPatch) (bool, error) {
	p, ok := m.byID[patch.ID]
	if !ok {
		return false, nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.RERANumber != nil {
		p.RERANumber = patch.RERANumber
	}
	if patch.City != nil {
		p.City = patch.City
	}
	at := patch.ModifiedOn
	p.ModifiedOn = &at
	return true, nil
}

func (m *memProjects) UpdateStatus(_ context.Context, id, status string, at time.Time) (bool, error) {
	p, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	p.Status = status
	p.ModifiedOn = &at
	return true, nil
}

// ── Empleados ─────────────────────────────────────────────────────────────────

type memEmployees struct {
	mu   sync.Mutex
	byID map[string]*entity.Employee
}

func newMemEmployees() *memEmployees { return &memEmployees{byID: map[string]*entity.Employee{}} }

// RunEmployees serializa las altas; si fn falla se revierte lo insertado.
func (m *memEmployees) RunEmployees(ctx context.Context, fn func(repository.EmployeeRepository, repository.SequenceRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := map[string]*entity.Employee{}
	for k, v := range m.byID {
		before[k] = v
	}
	if err := fn(m, memEmpSeq{m}); err != nil {
		m.byID = before
		return err
	}
	return nil
}

func (m *memEmployees) Create(_ context.Context, e *entity.Employee) error {
	if _, ok := m.byID[e.ID]; ok {
		return domain.Conflict("el empleado ya existe")
	}
	cp := *e
	m.byID[e.ID] = &cp
	return nil
}

func (m *memEmployees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	return m.byID[id], nil
}

func (m *memEmployees) FindByLogin(context.Context, string, string) (*entity.Employee, error) {
	return nil, nil
}

func (m *memEmployees) List(context.Context) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range m.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memEmployees) Update(_ context.Context, e *entity.Employee) (bool, error) {
	cur, ok := m.byID[e.ID]
	if !ok {
		return false, nil
	}
	cur.FirstName, cur.MiddleName, cur.LastName = e.FirstName, e.MiddleName, e.LastName
	cur.RoleID, cur.Status = e.RoleID, e.Status
	cur.ModifiedBy, cur.ModifiedOn = e.ModifiedBy, e.ModifiedOn
	return true, nil
}

func (m *memEmployees) UpdateStatus(_ context.Context, id, status, by string, at time.Time) (bool, error) {
	cur, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	cur.Status = status
	cur.ModifiedBy, cur.ModifiedOn = &by, &at
	return true, nil
}

func (m *memEmployees) TouchLastLogin(context.Context, string, time.Time) error { return nil }

type memEmpSeq struct{ m *memEmployees }

func (s memEmpSeq) Next(_ context.Context, seq entity.Sequence) (string, error) {
	last := ""
	for id := range s.m.byID {
		if len(id) > len(last) || (len(id) == len(last) && id > last) {
			last = id
		}
	}
	return crm.NextIdentifier(seq.Prefix, last), nil
}

// ── Catálogos ─────────────────────────────────────────────────────────────────

type countingRefs struct {
	mu      sync.Mutex
	calls   int
	sources []string
	err     error
	delay   time.Duration
}

func (r *countingRefs) ListSourceNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	return r.sources, r.err
}

func (r *countingRefs) ListEmployeeNames(context.Context) ([]string, error) { return []string{"Asha"}, nil }
func (r *countingRefs) ListStatusNames(context.Context) ([]string, error)   { return nil, nil }
func (r *countingRefs) ListProjectNames(context.Context) ([]string, error)  { return nil, nil }
func (r *countingRefs) MatchIDs(context.Context, entity.ReferenceKind, string) ([]string, error) {
	return nil, nil
}
func (r *countingRefs) MatchEmployeesByFirstName(context.Context, string) ([]string, error) {
	return nil, nil
}
func (r *countingRefs) MatchEmployeesByFullName(context.Context, string) ([]string, error) {
	return nil, nil
}
func (r *countingRefs) ProjectExists(context.Context, string) (bool, error) { return false, nil }

// mapCache caché en memoria para los tests del catálogo.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type invalidations struct{ n int }

func (i *invalidations) Invalidate(context.Context) { i.n++ }

// ── Llamadas ──────────────────────────────────────────────────────────────────

type memCalls struct {
	next  int64
	byID  map[int64]*entity.CallLog
	views []*entity.CallLogView
	err   error
}

func newMemCalls() *memCalls { return &memCalls{byID: map[int64]*entity.CallLog{}} }

func (m *memCalls) Start(_ context.Context, c *entity.CallLog) (int64, error) {
	m.next++
	cp := *c
	cp.ID = m.next
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memCalls) GetByID(_ context.Context, id int64) (*entity.CallLog, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCalls) End(_ context.Context, id int64, d int, status string) (bool, error) {
	c, ok := m.byID[id]
	if !ok || c.DurationSeconds != nil {
		return false, nil
	}
	c.DurationSeconds = &d
	c.Status = status
	return true, nil
}

func (m *memCalls) ListView(context.Context) ([]*entity.CallLogView, error) {
	return m.views, m.err
}

// stubLeads solo responde GetByID.
type stubLeads struct {
	repository.LeadRepository
	views map[string]*entity.LeadView
}

func (s stubLeads) GetByID(_ context.Context, id string) (*entity.LeadView, error) {
	return s.views[id], nil
}

var errDB = errors.New("conexión rechazada")
