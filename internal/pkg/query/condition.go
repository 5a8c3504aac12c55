package query

import "fmt"

// Condition represents a WHERE clause condition. Every condition renders
// twice: with Spanner named parameters (@p0, @p1, ...) and with positional
// "?" placeholders for database/sql drivers.
type Condition interface {
	// SQL returns the fragment and named parameters. paramIndex is the
	// index of the first parameter name to allocate.
	SQL(paramIndex int) (string, map[string]interface{})

	// Positional returns the fragment with "?" placeholders and its args.
	Positional() (string, []interface{})
}

// cmpCondition implements a binary comparison (field <op> value).
type cmpCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates an equality condition.
// Example: Eq("year", 2025) generates "year = @p0"
func Eq(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "=", value: value}
}

// Ne creates an inequality condition.
func Ne(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "!=", value: value}
}

// Lte creates a "field <= value" condition.
func Lte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<=", value: value}
}

// Gte creates a "field >= value" condition.
func Gte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: ">=", value: value}
}

func (c *cmpCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

func (c *cmpCondition) Positional() (string, []interface{}) {
	return fmt.Sprintf("%s %s ?", c.field, c.op), []interface{}{c.value}
}

// nullCondition implements IS NULL / IS NOT NULL.
type nullCondition struct {
	field string
	not   bool
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("deleted_at") generates "deleted_at IS NULL"
func IsNull(field string) Condition {
	return &nullCondition{field: field}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, not: true}
}

func (c *nullCondition) fragment() string {
	if c.not {
		return c.field + " IS NOT NULL"
	}
	return c.field + " IS NULL"
}

func (c *nullCondition) SQL(int) (string, map[string]interface{}) {
	return c.fragment(), map[string]interface{}{}
}

func (c *nullCondition) Positional() (string, []interface{}) {
	return c.fragment(), nil
}
