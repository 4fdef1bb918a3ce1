package gormsource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func Test_tConjunct_toExpression(t *testing.T) {
	timeNow := time.Now().UTC()
	timeNowStr, _ := timeNow.MarshalText()

	tests := []struct {
		name     string
		conjunct tConjunct
		wantSQL  string
		wantVars []any
	}{
		{
			name:     "string less than",
			conjunct: tConjunct{Column: "name", Operator: OperatorLT, Value: "abc"},
			wantSQL:  "name < ?",
			wantVars: []any{"abc"},
		},
		{
			name:     "timestamp greater than",
			conjunct: tConjunct{Column: "created_at", Operator: OperatorGT, Value: timeNow},
			wantSQL:  "created_at > ?",
			wantVars: []any{timeNow},
		},
		{
			name:     "timestamp text should convert to timestamp",
			conjunct: tConjunct{Column: "created_at", Operator: OperatorGT, Value: timeNowStr},
			wantSQL:  "created_at > ?",
			wantVars: []any{timeNow},
		},
		{
			name:     "integer equality",
			conjunct: tConjunct{Column: "id", Operator: operatorEq, Value: 10},
			wantSQL:  "id = ?",
			wantVars: []any{10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauseExpr := tt.conjunct.toGORMExpression().(clause.Expr)

			require.Equal(t, tt.wantSQL, clauseExpr.SQL)
			require.Len(t, clauseExpr.Vars, len(tt.wantVars))
			for i, wantVar := range tt.wantVars {
				if want, ok := wantVar.(time.Time); ok {
					require.True(t, want.Equal(clauseExpr.Vars[i].(time.Time)), "var[%d]", i)
					continue
				}
				require.Equal(t, wantVar, clauseExpr.Vars[i])
			}
		})
	}
}

func Test_tDisjunct_toExpression(t *testing.T) {
	tests := []struct {
		name     string
		disjunct tDisjunct
		want     clause.Expression
	}{
		{
			name:     "empty disjunct",
			disjunct: tDisjunct{},
			want:     nil,
		},
		{
			name:     "single conjunct is not wrapped",
			disjunct: tDisjunct{{Column: "id", Operator: OperatorGT, Value: 5}},
			want:     clause.Expr{SQL: "id > ?", Vars: []any{5}},
		},
		{
			name: "several conjuncts are joined by AND",
			disjunct: tDisjunct{
				{Column: "id", Operator: operatorEq, Value: 5},
				{Column: "name", Operator: OperatorLT, Value: 7},
			},
			want: clause.And(
				clause.Expr{SQL: "id = ?", Vars: []any{5}},
				clause.Expr{SQL: "name < ?", Vars: []any{7}},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.disjunct.toGORMExpression())
		})
	}
}

func Test_tDNF_toExpression(t *testing.T) {
	require.Nil(t, tDNF{}.toGORMExpression())
	require.Nil(t, tDNF{{}}.toGORMExpression())

	got := tDNF{
		{{Column: "id", Operator: OperatorGT, Value: 10}},
		{{Column: "id", Operator: operatorEq, Value: 10}, {Column: "rank", Operator: OperatorLT, Value: 3}},
	}.toGORMExpression()

	want := clause.Or(
		clause.Expr{SQL: "id > ?", Vars: []any{10}},
		clause.And(
			clause.Expr{SQL: "id = ?", Vars: []any{10}},
			clause.Expr{SQL: "rank < ?", Vars: []any{3}},
		),
	)
	require.Equal(t, want, got)
}
