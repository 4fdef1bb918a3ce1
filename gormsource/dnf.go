package gormsource

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

type (
	tConjunct struct {
		Column   string
		Value    any
		Operator Operator
	}

	tDisjunct []tConjunct

	// tDNF is a keyset condition in disjunctive normal form: disjuncts are
	// joined by OR, the conjuncts of a disjunct by AND.
	//
	//	DNF = (A11) OR (A21 AND A22) ... OR (An1 AND ... AND Ann)
	tDNF []tDisjunct
)

// toGORMExpression converts Operator(Column, Value) into "Column Operator ?".
func (c tConjunct) toGORMExpression() clause.Expression {
	return clause.Expr{
		SQL:  fmt.Sprintf("%s %s ?", c.Column, c.Operator),
		Vars: []any{parseAnyValue(c.Value)},
	}
}

// parseAnyValue restores time.Time values that were flattened to text, e.g.
// by a JSON round trip of a cursor token. Other values pass through.
func parseAnyValue(v any) any {
	fnParseBytesToTimeOrValue := func(vBytes []byte) any {
		dst := time.Time{}
		if err := dst.UnmarshalText(vBytes); err == nil {
			return dst
		}

		return v
	}

	switch vt := v.(type) {
	case string:
		return fnParseBytesToTimeOrValue([]byte(vt))
	case []byte:
		return fnParseBytesToTimeOrValue(vt)
	default:
		return v
	}
}

// toGORMExpression converts (K1, K2, K3) into "K1 AND K2 AND K3".
func (d tDisjunct) toGORMExpression() clause.Expression {
	andExpressions := lo.Map(d, func(c tConjunct, _ int) clause.Expression {
		return c.toGORMExpression()
	})

	switch len(andExpressions) {
	case 0:
		return nil
	case 1:
		return andExpressions[0]
	default:
		return clause.And(andExpressions...)
	}
}

// toGORMExpression joins the disjuncts with OR.
func (d tDNF) toGORMExpression() clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(d))
	for _, disjunct := range d {
		if exp := disjunct.toGORMExpression(); exp != nil {
			orExpressions = append(orExpressions, exp)
		}
	}

	switch len(orExpressions) {
	case 0:
		return nil
	case 1:
		return orExpressions[0]
	default:
		return clause.Or(orExpressions...)
	}
}
