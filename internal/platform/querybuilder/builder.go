package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxBindParameters is the postgres wire protocol limit for one statement.
const MaxBindParameters = 65535

// statement accumulates SQL text and its positional arguments.
type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, part := range parts {
		s.sql.WriteString(part)
	}
}

// bind records value and returns its $n placeholder.
func (s *statement) bind(value any) string {
	s.args = append(s.args, value)
	return "$" + strconv.Itoa(len(s.args))
}

// bindExpr swaps each ? in expr for the next placeholder.
func (s *statement) bindExpr(expr string, values []any) error {
	if strings.Count(expr, "?") != len(values) {
		return fmt.Errorf("expression %q expects %d arguments, got %d", expr, strings.Count(expr, "?"), len(values))
	}
	next := 0
	for _, r := range expr {
		if r == '?' {
			s.write(s.bind(values[next]))
			next++
			continue
		}
		s.sql.WriteRune(r)
	}
	return nil
}

func (s *statement) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.writeTo(s)
	}
}

func (s *statement) result() (string, []any, error) {
	if len(s.args) > MaxBindParameters {
		return "", nil, fmt.Errorf("statement binds %d parameters, limit is %d", len(s.args), MaxBindParameters)
	}
	return s.sql.String(), s.args, nil
}

type Condition interface {
	writeTo(s *statement)
}

type conditionFunc func(s *statement)

func (f conditionFunc) writeTo(s *statement) { f(s) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(s *statement) {
		s.write(column, " = ", s.bind(value))
	})
}

// In with no values matches nothing.
func In(column string, values ...any) Condition {
	return conditionFunc(func(s *statement) {
		if len(values) == 0 {
			s.write("1=0")
			return
		}
		placeholders := make([]string, len(values))
		for i, value := range values {
			placeholders[i] = s.bind(value)
		}
		s.write(column, " IN (", strings.Join(placeholders, ", "), ")")
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(s *statement) {
		s.write(column, " IS NULL")
	})
}

type SelectBuilder struct {
	columns   []string
	table     string
	where     []Condition
	orderBy   []string
	forUpdate bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

// From takes a table name or a join expression.
func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// ForUpdate appends a row lock; only meaningful inside a transaction.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var s statement
	s.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	s.where(b.where)
	if len(b.orderBy) > 0 {
		s.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.forUpdate {
		s.write(" FOR UPDATE")
	}
	return s.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, e.g. ON CONFLICT or RETURNING clauses.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	var s statement
	s.args = make([]any, 0, len(b.rows)*len(b.columns))
	s.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			s.write(", ")
		}
		placeholders := make([]string, len(row))
		for j, value := range row {
			placeholders[j] = s.bind(value)
		}
		s.write("(", strings.Join(placeholders, ", "), ")")
	}
	if b.suffix != "" {
		s.write(" ", b.suffix)
	}
	return s.result()
}

type assignment struct {
	column string
	value  any
	expr   string
	raw    bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression; ? marks are bound to args in order.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, value: args, raw: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("update requires at least one condition")
	}

	var s statement
	s.write("UPDATE ", b.table, " SET ")
	for i, set := range b.sets {
		if i > 0 {
			s.write(", ")
		}
		s.write(set.column, " = ")
		if !set.raw {
			s.write(s.bind(set.value))
			continue
		}
		args, _ := set.value.([]any)
		if err := s.bindExpr(set.expr, args); err != nil {
			return "", nil, fmt.Errorf("set %s: %w", set.column, err)
		}
	}
	s.where(b.where)
	return s.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete requires at least one condition")
	}

	var s statement
	s.write("DELETE FROM ", b.table)
	s.where(b.where)
	return s.result()
}
