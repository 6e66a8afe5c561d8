// Package directory answers esb lookups against the TIAMP directory and
// renders the records as chat text.
package directory

import "slices"

type EntityKind int

const (
	KindUnknown EntityKind = iota
	KindProject
	KindEmployee
)

// Matching is exact: "salarie" and "salarié" are two distinct tokens.
var (
	projectTokens  = []string{"p", "project", "imputation"}
	employeeTokens = []string{"e", "employee", "salarie", "salarié"}
)

// Classify maps the first argument of the command to an entity kind.
func Classify(token string) EntityKind {
	switch {
	case slices.Contains(projectTokens, token):
		return KindProject
	case slices.Contains(employeeTokens, token):
		return KindEmployee
	default:
		return KindUnknown
	}
}

func (k EntityKind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindEmployee:
		return "employee"
	default:
		return "unknown"
	}
}
