package customer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// Predicate condición de filtrado reutilizable sobre clientes.
// Un Predicate nil significa "sin filtro", distinto de un predicado que no coincide con nada.
type Predicate interface {
	Matches(c *entity.Customer) bool
}

// TermsPredicate coincide si Terms aparece como subcadena en el nombre, el email
// o la identificación. La comparación ignora mayúsculas (equivale a ILIKE '%terms%').
type TermsPredicate struct {
	Terms string
}

// Matches implementa Predicate.
func (p TermsPredicate) Matches(c *entity.Customer) bool {
	fold := cases.Fold()
	needle := fold.String(p.Terms)
	for _, field := range []string{c.Name, c.Email, c.Identification} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// ActivePredicate coincide con clientes activos.
type ActivePredicate struct{}

// Matches implementa Predicate.
func (ActivePredicate) Matches(c *entity.Customer) bool { return c.Active }

// WithTerms devuelve nil si terms está vacío; si no, un TermsPredicate.
func WithTerms(terms string) Predicate {
	if terms == "" {
		return nil
	}
	return TermsPredicate{Terms: terms}
}

// OnlyActive devuelve nil si flag es false; si no, un ActivePredicate.
func OnlyActive(flag bool) Predicate {
	if !flag {
		return nil
	}
	return ActivePredicate{}
}

// Compact descarta los predicados nil.
func Compact(preds ...Predicate) []Predicate {
	out := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// MatchAll aplica los predicados en conjunción. Sin predicados, todo coincide.
func MatchAll(c *entity.Customer, preds ...Predicate) bool {
	for _, p := range preds {
		if p != nil && !p.Matches(c) {
			return false
		}
	}
	return true
}

// Filter aplica MatchAll sobre una lista en memoria.
func Filter(list []*entity.Customer, preds ...Predicate) []*entity.Customer {
	out := make([]*entity.Customer, 0, len(list))
	for _, c := range list {
		if MatchAll(c, preds...) {
			out = append(out, c)
		}
	}
	return out
}
