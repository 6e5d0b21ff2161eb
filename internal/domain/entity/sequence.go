package entity

// Sequence identifica una familia de IDs secuenciales legibles (prefijo + contador).
// Table y Column vienen de esta lista cerrada, nunca de la entrada del usuario.
type Sequence struct {
	Table  string
	Column string
	Prefix string
}

// LockKey llave del advisory lock que serializa la generación por secuencia.
func (s Sequence) LockKey() string {
	return s.Table + ":" + s.Prefix
}

var (
	SequenceLead     = Sequence{Table: "leads", Column: "lead_id", Prefix: "L"}
	SequenceCustomer = Sequence{Table: "customer", Column: "customer_id", Prefix: "CUST"}
	SequenceEmployee = Sequence{Table: "employee", Column: "emp_id", Prefix: "EMP"}
)

// ReferenceKind catálogo de nombre → id usado en la resolución de leads.
type ReferenceKind int

const (
	ReferenceSource ReferenceKind = iota
	ReferenceStatus
	ReferenceProject
)

func (k ReferenceKind) String() string {
	switch k {
	case ReferenceSource:
		return "source"
	case ReferenceStatus:
		return "status"
	default:
		return "project"
	}
}
