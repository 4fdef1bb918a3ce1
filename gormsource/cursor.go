package gormsource

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

var (
	_encoder = base64.RawURLEncoding

	ErrInvalidCursor = errors.New("invalid cursor")
)

// Cursor is a keyset boundary: reading with it returns only rows strictly past
// a given element in the cursor's ordering. An empty cursor means "start from
// the dataset edge".
//
// IMPORTANT:
// The ordering behind a cursor MUST contain a unique column.
//
// A cursor is a list of conditions:
//
//	[(C1, O1, V1), (C2, O2, V2)... (Cn, On, Vn)]
type Cursor struct {
	elements []CursorElement
}

func NewCursor(elements ...CursorElement) *Cursor {
	return &Cursor{elements: elements}
}

// DecodeCursor parses a token produced by Cursor.String. An empty token yields
// a nil cursor.
func DecodeCursor(b64String string) (*Cursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded cursor: %w", err)
	}

	var elems []CursorElement
	if err = json.Unmarshal(jsonData, &elems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json encoded cursor: %w", err)
	}

	return &Cursor{elements: elems}, nil
}

// String - implements fmt.Stringer. Returns a URL-safe token.
func (c *Cursor) String() string {
	if c.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(c.elements)
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact cursor value: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

func (c *Cursor) IsEmpty() bool {
	return c == nil || len(c.elements) == 0
}

// Elements returns the compressed conditions of the cursor. They cannot be
// applied to data directly, see Apply.
func (c *Cursor) Elements() []CursorElement {
	if c == nil {
		return nil
	}

	return c.elements
}

// Complement returns the cursor selecting exactly the rows c rejects, read with
// the reversed orderings. For an anchor "past row X" it is "X and everything
// before it", so a loader starting at an anchor can read in both directions.
// The complement of an empty cursor is nil. Elements that would fail
// validation are kept as they are and rejected when the cursor is used.
func (c *Cursor) Complement() *Cursor {
	if c.IsEmpty() {
		return nil
	}

	last := len(c.elements) - 1

	return &Cursor{
		elements: lo.Map(c.elements, func(item CursorElement, i int) CursorElement {
			switch {
			case !item.Operator.Valid(), i != last && !item.Operator.Strict():
			case i == last:
				item.Operator = item.Operator.complement()
			default:
				item.Operator = item.Operator.ForOrdering().Reverse().ForOperator()
			}

			return item
		}),
	}
}

// Apply adds the expanded keyset condition to a gorm query.
func (c *Cursor) Apply(db *gorm.DB) *gorm.DB {
	exp := c.toDNF().toGORMExpression()
	if exp == nil {
		return db
	}

	return db.Clauses(exp)
}

// toDNF expands the cursor conditions into
//
//	(C1 O1 V1) OR (C1 = V1 AND C2 O2 V2) OR ...
//
// which selects exactly the rows past the boundary element.
func (c *Cursor) toDNF() tDNF {
	if c.IsEmpty() {
		return nil
	}

	dnf := make(tDNF, 0, len(c.elements))
	for i := range c.elements {
		disjunct := lo.Map(c.elements[:i], func(item CursorElement, _ int) tConjunct {
			return item.toConjunctWithEqualityCondition()
		})
		disjunct = append(disjunct, tConjunct(c.elements[i]))

		dnf = append(dnf, disjunct)
	}

	return dnf
}

// validate checks the cursor against the orderings the query is read with.
func (c *Cursor) validate(orderings Orderings) error {
	if c.IsEmpty() {
		return nil
	}

	if len(c.elements) != len(orderings) {
		return fmt.Errorf("%w: column number mismatch", ErrInvalidCursor)
	}

	for i, cond := range c.elements {
		orderBy := orderings[i]

		if cond.Column != orderBy.Column {
			return fmt.Errorf("%w: unexpected column '%s'", ErrInvalidCursor, cond.Column)
		}

		if !cond.Operator.Valid() {
			return fmt.Errorf("%w: invalid operator '%s'", ErrInvalidCursor, cond.Operator)
		} else if cond.Operator.ForOrdering() != orderBy.Direction {
			return fmt.Errorf("%w: unexpected operator '%s'", ErrInvalidCursor, cond.Operator)
		} else if !cond.Operator.Strict() && i != len(c.elements)-1 {
			return fmt.Errorf("%w: non-strict operator '%s' before the last column", ErrInvalidCursor, cond.Operator)
		}
	}

	return nil
}

var _ fmt.Stringer = (*Cursor)(nil)

// CursorElement is a triple (c v o):
//
//   - "c" - model column.
//   - "v" - boundary value of the column.
//   - "o" - operator applied to (c, v).
type CursorElement struct {
	Column   string   `json:"c"`
	Value    any      `json:"v"`
	Operator Operator `json:"o"`
}

func (c CursorElement) toConjunctWithEqualityCondition() tConjunct {
	return tConjunct{
		Column:   c.Column,
		Value:    c.Value,
		Operator: operatorEq,
	}
}

// Getters maps ordering columns to value extractors. List every column the
// orderings use:
//
//	gormsource.Getters[models.User]{
//		"id":         func(u models.User) any { return u.ID },
//		"created_at": func(u models.User) any { return u.CreatedAt },
//	}
type Getters[T any] map[string]func(T) any

func (g Getters[T]) validate(orderings Orderings) error {
	for _, orderBy := range orderings {
		if _, ok := g[orderBy.Column]; !ok {
			return fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
		}
	}

	return nil
}

// boundary builds the cursor selecting rows past item when reading with
// orderings.
func (g Getters[T]) boundary(orderings Orderings, item T) *Cursor {
	return &Cursor{
		elements: lo.Map(orderings, func(orderBy OrderBy, _ int) CursorElement {
			return CursorElement{
				Column:   orderBy.Column,
				Value:    g[orderBy.Column](item),
				Operator: orderBy.Direction.ForOperator(),
			}
		}),
	}
}
