package gormsource

import "fmt"

// Operator compares a cursor column with its boundary value. Strict operators
// select rows past the boundary; non-strict ones also select the boundary row
// and may only close a cursor, on its last column.
type Operator string

const (
	OperatorGT  Operator = ">"
	OperatorLT  Operator = "<"
	OperatorGTE Operator = ">="
	OperatorLTE Operator = "<="

	// operatorEq is private: it only appears inside expanded keyset conditions.
	operatorEq Operator = "="
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorGT, OperatorLT, OperatorGTE, OperatorLTE:
		return true
	default:
		return false
	}
}

// Strict reports whether rows equal to the boundary are excluded.
func (o Operator) Strict() bool {
	return o == OperatorGT || o == OperatorLT
}

// ForOrdering returns the sort direction a cursor built with o walks.
func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT, OperatorGTE:
		return DirectionASC
	case OperatorLT, OperatorLTE:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}

// complement returns the operator selecting exactly the values o rejects.
func (o Operator) complement() Operator {
	switch o {
	case OperatorGT:
		return OperatorLTE
	case OperatorGTE:
		return OperatorLT
	case OperatorLT:
		return OperatorGTE
	case OperatorLTE:
		return OperatorGT
	default:
		panic(fmt.Errorf("cannot complement operator '%s'", o))
	}
}
