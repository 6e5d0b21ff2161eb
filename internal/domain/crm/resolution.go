package crm

// Outcome resultado de resolver un nombre legible a su ID.
type Outcome int

const (
	NotFound Outcome = iota
	Resolved
	Ambiguous
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Resolution resultado etiquetado: ID solo es válido cuando Outcome == Resolved.
type Resolution struct {
	Outcome Outcome
	ID      string
}

// ResolutionFromMatches clasifica los IDs que coinciden con un nombre.
func ResolutionFromMatches(ids []string) Resolution {
	switch len(ids) {
	case 0:
		return Resolution{Outcome: NotFound}
	case 1:
		return Resolution{Outcome: Resolved, ID: ids[0]}
	default:
		return Resolution{Outcome: Ambiguous}
	}
}

// ResolveTwoStep combina la búsqueda por primer nombre con la de nombre completo (empleados).
// Un único match por primer nombre gana; si no, decide el nombre completo. Si el nombre
// completo no encuentra nada pero el primer nombre encontró varios, es ambiguo.
func ResolveTwoStep(byFirstName, byFullName []string) Resolution {
	first := ResolutionFromMatches(byFirstName)
	if first.Outcome == Resolved {
		return first
	}
	full := ResolutionFromMatches(byFullName)
	if full.Outcome == NotFound && first.Outcome == Ambiguous {
		return first
	}
	return full
}
