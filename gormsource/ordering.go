package gormsource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

var ErrInvalidOrdering = errors.New("invalid ordering")

// Direction defines the sort direction of the paged dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (d Direction) Valid() bool {
	return d == DirectionASC || d == DirectionDESC
}

func (d Direction) ForOperator() Operator {
	switch d {
	case DirectionASC:
		return OperatorGT
	case DirectionDESC:
		return OperatorLT
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", d))
	}
}

// Reverse returns the opposite sort direction.
func (d Direction) Reverse() Direction {
	return lo.Ternary(d == DirectionASC, DirectionDESC, DirectionASC)
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}
)

// Identifier symbols plus the MySQL and PostgreSQL identifier quotes.
var _availableColumnNameSymbols = append([]rune("_.`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("%w: direction '%s'", ErrInvalidOrdering, o.Direction)
	}

	// Column names end up in raw SQL, so only identifier symbols are allowed.
	if o.Column == "" || !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("%w: column name contains forbidden symbols '%s'", ErrInvalidOrdering, o.Column)
	}

	return nil
}

// Reverse returns the orderings with every direction flipped. Reading a
// dataset with reversed orderings walks it backwards.
func (o Orderings) Reverse() Orderings {
	return lo.Map(o, func(item OrderBy, _ int) OrderBy {
		return OrderBy{Column: item.Column, Direction: item.Direction.Reverse()}
	})
}

// ToSQL converts Orderings to "<column_1> <direction_1>, <column_2> <direction_2>".
//
// Example: for [{"a", "ASC"}, {"b", "DESC"}] returns "a ASC, b DESC".
func (o Orderings) ToSQL() string {
	return strings.Join(lo.Map(o, func(item OrderBy, _ int) string {
		return fmt.Sprintf("%s %s", item.Column, item.Direction)
	}), ", ")
}

// Apply applies the ordering to a gorm query.
func (o Orderings) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(o.ToSQL())
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return fmt.Errorf("%w: empty ordering list", ErrInvalidOrdering)
	}

	for _, ordering := range o {
		if err := ordering.validate(); err != nil {
			return err
		}
	}

	if dup := lo.FindDuplicatesBy(o, func(item OrderBy) string { return item.Column }); len(dup) > 0 {
		return fmt.Errorf("%w: duplicated column '%s'", ErrInvalidOrdering, dup[0].Column)
	}

	return nil
}
