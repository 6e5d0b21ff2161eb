package leads_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jhoicas/presales-crm/internal/domain/crm"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

// memEmployee empleado mínimo para resolver nombres y armar vistas.
type memEmployee struct {
	ID, First, Last string
}

// memStore base en memoria que implementa los cuatro repositorios del módulo de leads.
// RunLeads toma una copia del estado y la restaura si fn falla (equivalente a Rollback).
type memStore struct {
	mu sync.Mutex

	leads     map[string]entity.Lead
	customers map[string]entity.Customer
	refs      map[entity.ReferenceKind]map[string]string // id → nombre
	employees []memEmployee
	callLogs  map[string]int // lead_id → llamadas
	campaigns map[string]int // lead_id → campañas

	writes int
	failAt int // número de escritura (1..n) que falla; 0 = nunca
}

func newMemStore() *memStore {
	return &memStore{
		leads:     map[string]entity.Lead{},
		customers: map[string]entity.Customer{},
		refs: map[entity.ReferenceKind]map[string]string{
			entity.ReferenceSource:  {"S1": "Website", "S2": "Referral"},
			entity.ReferenceStatus:  {"ST1": "New", "ST2": "Contacted"},
			entity.ReferenceProject: {"P1": "Green Villas", "P2": "Sky Towers"},
		},
		employees: []memEmployee{
			{ID: "EMP001", First: "Asha", Last: "Rao"},
			{ID: "EMP002", First: "Ravi", Last: "Kumar"},
			{ID: "EMP003", First: "Ravi", Last: "Shah"},
		},
		callLogs:  map[string]int{},
		campaigns: map[string]int{},
	}
}

type snapshot struct {
	leads     map[string]entity.Lead
	customers map[string]entity.Customer
	callLogs  map[string]int
	campaigns map[string]int
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		leads:     map[string]entity.Lead{},
		customers: map[string]entity.Customer{},
		callLogs:  map[string]int{},
		campaigns: map[string]int{},
	}
	for k, v := range s.leads {
		snap.leads[k] = v
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.callLogs {
		snap.callLogs[k] = v
	}
	for k, v := range s.campaigns {
		snap.campaigns[k] = v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.leads, s.customers, s.callLogs, s.campaigns = snap.leads, snap.customers, snap.callLogs, snap.campaigns
}

// RunLeads implementa leads.TxRunner. Las transacciones se serializan con el mutex.
func (s *memStore) RunLeads(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	customerRepo repository.CustomerRepository,
	refRepo repository.ReferenceRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(memLeads{s}, memCustomers{s}, memRefs{s}, memSeq{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) write() error {
	s.writes++
	if s.failAt > 0 && s.writes == s.failAt {
		return errors.New("fallo de escritura simulado")
	}
	return nil
}

// employeeName nombre de auditoría (solo el primer nombre).
func (s *memStore) employeeName(id string) *string {
	for _, e := range s.employees {
		if e.ID == id {
			n := e.First
			return &n
		}
	}
	return nil
}

// employeeFullName nombre completo, tal como se expone en assignedTo.
func (s *memStore) employeeFullName(id string) *string {
	for _, e := range s.employees {
		if e.ID == id {
			n := crm.JoinName(e.First, e.Last)
			return &n
		}
	}
	return nil
}

func (s *memStore) view(l entity.Lead) *entity.LeadView {
	c := s.customers[l.CustomerID]
	src := s.refs[entity.ReferenceSource][l.SourceID]
	st := s.refs[entity.ReferenceStatus][l.StatusID]
	v := &entity.LeadView{
		ID:             l.ID,
		Name:           crm.JoinName(c.FirstName, c.LastName),
		Phone:          c.Phone,
		AlternatePhone: c.AltPhone,
		Email:          c.Email,
		Profession:     c.Profession,
		ProjectID:      l.ProjectID,
		Source:         &src,
		Status:         &st,
		AssignedTo:     s.employeeFullName(l.EmployeeID),
		Description:    l.Description,
		CreatedAt:      l.CreatedOn,
		ModifiedAt:     l.ModifiedOn,
		IsActive:       l.IsActive,
	}
	if l.ProjectID != nil {
		p := s.refs[entity.ReferenceProject][*l.ProjectID]
		v.Project = &p
	}
	if l.CreatedBy != nil {
		v.CreatedBy = s.employeeName(*l.CreatedBy)
		if v.CreatedBy == nil {
			v.CreatedBy = l.CreatedBy
		}
	}
	if l.ModifiedBy != nil {
		v.ModifiedBy = s.employeeName(*l.ModifiedBy)
		if v.ModifiedBy == nil {
			v.ModifiedBy = l.ModifiedBy
		}
	}
	return v
}

// ── LeadRepository ────────────────────────────────────────────────────────────

type memLeads struct{ s *memStore }

func (r memLeads) Create(_ context.Context, l *entity.Lead) error {
	if err := r.s.write(); err != nil {
		return err
	}
	if _, ok := r.s.leads[l.ID]; ok {
		return errors.New("lead duplicado")
	}
	r.s.leads[l.ID] = *l
	return nil
}

func (r memLeads) GetByID(_ context.Context, id string) (*entity.LeadView, error) {
	l, ok := r.s.leads[id]
	if !ok {
		return nil, nil
	}
	return r.s.view(l), nil
}

func (r memLeads) GetForUpdate(_ context.Context, id string) (*entity.Lead, error) {
	l, ok := r.s.leads[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r memLeads) List(_ context.Context, f entity.LeadFilter) ([]*entity.LeadView, error) {
	var out []*entity.LeadView
	for _, l := range r.s.leads {
		if !l.IsActive {
			continue
		}
		v := r.s.view(l)
		c := r.s.customers[l.CustomerID]
		if f.Customer != "" && !containsFold(c.FirstName, f.Customer) && !containsFold(c.LastName, f.Customer) {
			continue
		}
		if f.Mobile != "" && !strings.Contains(c.Phone, f.Mobile) {
			continue
		}
		if f.Source != "" && (v.Source == nil || *v.Source != f.Source) {
			continue
		}
		if f.Project != "" && (v.Project == nil || *v.Project != f.Project) {
			continue
		}
		if f.Employee != "" && !r.s.employeeMatches(l.EmployeeID, f.Employee) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r memLeads) Update(_ context.Context, p entity.LeadPatch) error {
	if err := r.s.write(); err != nil {
		return err
	}
	l := r.s.leads[p.ID]
	if p.SourceID != nil {
		l.SourceID = *p.SourceID
	}
	if p.StatusID != nil {
		l.StatusID = *p.StatusID
	}
	if p.EmployeeID != nil {
		l.EmployeeID = *p.EmployeeID
	}
	if p.ProjectID != nil {
		l.ProjectID = p.ProjectID
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	at, by := p.ModifiedOn, p.ModifiedBy
	l.ModifiedOn, l.ModifiedBy = &at, &by
	r.s.leads[p.ID] = l
	return nil
}

func (r memLeads) SoftDelete(_ context.Context, id string) (bool, error) {
	l, ok := r.s.leads[id]
	if !ok || !l.IsActive {
		return false, nil
	}
	if err := r.s.write(); err != nil {
		return false, err
	}
	l.IsActive = false
	r.s.leads[id] = l
	return true, nil
}

func (r memLeads) HardDelete(_ context.Context, id string) (bool, error) {
	delete(r.s.callLogs, id)
	delete(r.s.campaigns, id)
	if _, ok := r.s.leads[id]; !ok {
		return false, nil
	}
	if err := r.s.write(); err != nil {
		return false, err
	}
	delete(r.s.leads, id)
	return true, nil
}

func (s *memStore) employeeMatches(id, name string) bool {
	for _, e := range s.employees {
		if e.ID == id && (e.First == name || crm.JoinName(e.First, e.Last) == name) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ── CustomerRepository ────────────────────────────────────────────────────────

type memCustomers struct{ s *memStore }

func (r memCustomers) FindByPhone(_ context.Context, raw, normalized string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.Phone == raw || c.Phone == normalized {
			cc := c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r memCustomers) Create(_ context.Context, c *entity.Customer) error {
	if err := r.s.write(); err != nil {
		return err
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomers) Update(_ context.Context, p entity.CustomerPatch) error {
	if err := r.s.write(); err != nil {
		return err
	}
	c := r.s.customers[p.ID]
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = p.Email
	}
	if p.AltPhone != nil {
		c.AltPhone = p.AltPhone
	}
	if p.Profession != nil {
		c.Profession = p.Profession
	}
	r.s.customers[p.ID] = c
	return nil
}

// ── ReferenceRepository ───────────────────────────────────────────────────────

type memRefs struct{ s *memStore }

func (r memRefs) MatchIDs(_ context.Context, kind entity.ReferenceKind, name string) ([]string, error) {
	var ids []string
	for id, n := range r.s.refs[kind] {
		if n == name {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return limit2(ids), nil
}

func (r memRefs) MatchEmployeesByFirstName(_ context.Context, name string) ([]string, error) {
	var ids []string
	for _, e := range r.s.employees {
		if e.First == name {
			ids = append(ids, e.ID)
		}
	}
	return limit2(ids), nil
}

func (r memRefs) MatchEmployeesByFullName(_ context.Context, name string) ([]string, error) {
	var ids []string
	for _, e := range r.s.employees {
		if crm.JoinName(e.First, e.Last) == name {
			ids = append(ids, e.ID)
		}
	}
	return limit2(ids), nil
}

func (r memRefs) ProjectExists(_ context.Context, id string) (bool, error) {
	_, ok := r.s.refs[entity.ReferenceProject][id]
	return ok, nil
}

func (r memRefs) ListEmployeeNames(context.Context) ([]string, error) { return nil, nil }
func (r memRefs) ListSourceNames(context.Context) ([]string, error)   { return nil, nil }
func (r memRefs) ListStatusNames(context.Context) ([]string, error)   { return nil, nil }
func (r memRefs) ListProjectNames(context.Context) ([]string, error)  { return nil, nil }

func limit2(ids []string) []string {
	if len(ids) > 2 {
		return ids[:2]
	}
	return ids
}

// ── SequenceRepository ────────────────────────────────────────────────────────

type memSeq struct{ s *memStore }

func (r memSeq) Next(_ context.Context, seq entity.Sequence) (string, error) {
	var ids []string
	switch seq {
	case entity.SequenceLead:
		for id := range r.s.leads {
			ids = append(ids, id)
		}
	case entity.SequenceCustomer:
		for id := range r.s.customers {
			ids = append(ids, id)
		}
	}
	best, bestN := "", -1
	for _, id := range ids {
		if !strings.HasPrefix(id, seq.Prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, seq.Prefix))
		if err != nil {
			continue
		}
		if n > bestN {
			best, bestN = id, n
		}
	}
	return crm.NextIdentifier(seq.Prefix, best), nil
}
