package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// ParseDirection maps "ASC"/"DESC" (any case) to a Direction. Anything else
// yields the fallback.
func ParseDirection(s string, fallback Direction) Direction {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC":
		return Asc
	case "DESC":
		return Desc
	default:
		return fallback
	}
}

type orderTerm struct {
	column string
	dir    Direction
}

// Builder constructs SELECT queries for a single table. The same builder
// renders Spanner statements (Build) and database/sql queries (BuildSQL), so
// the Spanner and SQL repositories share their filtering logic.
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	groupBy      []string
	orderBy      []orderTerm
	limitVal     int64
	offsetVal    int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{
		table:        table,
		selectCols:   []string{},
		whereClauses: []Condition{},
	}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Where adds a WHERE condition. Multiple calls are combined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.whereClauses = append(nb.whereClauses, condition)
	return nb
}

// GroupBy sets the GROUP BY columns.
func (b *Builder) GroupBy(columns ...string) *Builder {
	nb := b.clone()
	nb.groupBy = append(nb.groupBy, columns...)
	return nb
}

// OrderBy appends a sort key. Earlier keys take precedence.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderBy = append(nb.orderBy, orderTerm{column: column, dir: direction})
	return nb
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offsetVal = offset
	return nb
}

// Count returns a builder for COUNT(*) over the same FROM and WHERE.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)"}
	nb.limitVal = 0
	nb.offsetVal = 0
	nb.orderBy = nil
	nb.groupBy = nil
	return nb
}

// Build constructs a spanner.Statement with named parameters.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	b.writeHead(&sql)

	if len(b.whereClauses) > 0 {
		sql.WriteString(" WHERE ")
		parts := make([]string, 0, len(b.whereClauses))
		paramIndex := 0
		for _, condition := range b.whereClauses {
			fragment, condParams := condition.SQL(paramIndex)
			parts = append(parts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
			paramIndex += len(condParams)
		}
		sql.WriteString(strings.Join(parts, " AND "))
	}

	b.writeGroup(&sql)
	b.writeOrder(&sql)

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limitVal
	}
	if b.offsetVal > 0 {
		sql.WriteString(" OFFSET @offset")
		params["offset"] = b.offsetVal
	}

	return spanner.Statement{
		SQL:    sql.String(),
		Params: params,
	}
}

// BuildSQL constructs a query with "?" placeholders and its arguments.
// Callers using sqlx pass the result through DB.Rebind for their driver.
func (b *Builder) BuildSQL() (string, []interface{}) {
	var sql strings.Builder
	var args []interface{}

	b.writeHead(&sql)

	if len(b.whereClauses) > 0 {
		sql.WriteString(" WHERE ")
		parts := make([]string, 0, len(b.whereClauses))
		for _, condition := range b.whereClauses {
			fragment, condArgs := condition.Positional()
			parts = append(parts, fragment)
			args = append(args, condArgs...)
		}
		sql.WriteString(strings.Join(parts, " AND "))
	}

	b.writeGroup(&sql)
	b.writeOrder(&sql)

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT ?")
		args = append(args, b.limitVal)
	}
	if b.offsetVal > 0 {
		sql.WriteString(" OFFSET ?")
		args = append(args, b.offsetVal)
	}

	return sql.String(), args
}

func (b *Builder) writeHead(sql *strings.Builder) {
	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)
}

func (b *Builder) writeGroup(sql *strings.Builder) {
	if len(b.groupBy) == 0 {
		return
	}
	sql.WriteString(" GROUP BY ")
	sql.WriteString(strings.Join(b.groupBy, ", "))
}

func (b *Builder) writeOrder(sql *strings.Builder) {
	if len(b.orderBy) == 0 {
		return
	}
	terms := make([]string, 0, len(b.orderBy))
	for _, term := range b.orderBy {
		if term.dir == Desc {
			terms = append(terms, term.column+" DESC")
		} else {
			terms = append(terms, term.column+" ASC")
		}
	}
	sql.WriteString(" ORDER BY ")
	sql.WriteString(strings.Join(terms, ", "))
}

func (b *Builder) clone() *Builder {
	nb := &Builder{
		table:        b.table,
		selectCols:   make([]string, len(b.selectCols)),
		whereClauses: make([]Condition, len(b.whereClauses)),
		groupBy:      make([]string, len(b.groupBy)),
		orderBy:      make([]orderTerm, len(b.orderBy)),
		limitVal:     b.limitVal,
		offsetVal:    b.offsetVal,
	}
	copy(nb.selectCols, b.selectCols)
	copy(nb.whereClauses, b.whereClauses)
	copy(nb.groupBy, b.groupBy)
	copy(nb.orderBy, b.orderBy)
	return nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
