package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("campaigns").
		Select("campaign_id", "year", "title").
		Build()

	assert.Equal(t, "SELECT campaign_id, year, title FROM campaigns", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("campaigns").Build()

	assert.Equal(t, "SELECT * FROM campaigns", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_WindowLookup(t *testing.T) {
	b := From("campaigns").
		Select("campaign_id").
		Where(IsNull("deleted_at")).
		Where(Lte("default_start_at", "2025-03-10")).
		Where(Gte("default_end_at", "2025-03-10")).
		OrderBy("year", Desc)

	t.Run("spanner", func(t *testing.T) {
		stmt := b.Build()
		assert.Equal(t,
			"SELECT campaign_id FROM campaigns WHERE deleted_at IS NULL AND default_start_at <= @p0 AND default_end_at >= @p1 ORDER BY year DESC",
			stmt.SQL)
		assert.Equal(t, map[string]interface{}{
			"p0": "2025-03-10",
			"p1": "2025-03-10",
		}, stmt.Params)
	})

	t.Run("positional", func(t *testing.T) {
		sql, args := b.BuildSQL()
		assert.Equal(t,
			"SELECT campaign_id FROM campaigns WHERE deleted_at IS NULL AND default_start_at <= ? AND default_end_at >= ? ORDER BY year DESC",
			sql)
		assert.Equal(t, []interface{}{"2025-03-10", "2025-03-10"}, args)
	})
}

func TestBuilder_MultipleOrderTerms(t *testing.T) {
	stmt := From("weight_entries").
		Select("entry_id").
		OrderBy("created_at", Desc).
		OrderBy("entry_id", Asc).
		Build()

	assert.Equal(t, "SELECT entry_id FROM weight_entries ORDER BY created_at DESC, entry_id ASC", stmt.SQL)
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	b := From("campaigns").
		Select("campaign_id").
		Limit(10).
		Offset(20)

	stmt := b.Build()
	assert.Equal(t, "SELECT campaign_id FROM campaigns LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(10),
		"offset": int64(20),
	}, stmt.Params)

	sql, args := b.BuildSQL()
	assert.Equal(t, "SELECT campaign_id FROM campaigns LIMIT ? OFFSET ?", sql)
	assert.Equal(t, []interface{}{int64(10), int64(20)}, args)
}

func TestBuilder_Count(t *testing.T) {
	builder := From("campaigns").
		Select("campaign_id", "year").
		Where(IsNull("deleted_at")).
		Where(Eq("year", int64(2025))).
		OrderBy("year", Desc).
		Limit(50).
		Offset(100)

	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM campaigns WHERE deleted_at IS NULL AND year = @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": int64(2025)}, countStmt.Params)

	// the original builder keeps its pagination
	mainStmt := builder.Build()
	assert.Contains(t, mainStmt.SQL, "LIMIT @limit")
	assert.Contains(t, mainStmt.SQL, "ORDER BY year DESC")
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("stores").Select("store_id")

	stmt1 := base.Where(Eq("centre_id", "c1")).Build()
	stmt2 := base.Where(Eq("address", "1 rue de Paris")).Build()

	assert.Contains(t, stmt1.SQL, "centre_id = @p0")
	assert.NotContains(t, stmt1.SQL, "address")

	assert.Contains(t, stmt2.SQL, "address = @p0")
	assert.NotContains(t, stmt2.SQL, "centre_id")
}

func TestCondition_ParamIndex(t *testing.T) {
	sql, params := Ne("campaign_id", "c1").SQL(5)

	assert.Equal(t, "campaign_id != @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "c1"}, params)
}

func TestCondition_NullChecks(t *testing.T) {
	sql, params := IsNull("deleted_at").SQL(0)
	assert.Equal(t, "deleted_at IS NULL", sql)
	assert.Empty(t, params)

	sql, args := IsNotNull("validated_at").Positional()
	assert.Equal(t, "validated_at IS NOT NULL", sql)
	assert.Empty(t, args)
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Asc, ParseDirection("asc", Desc))
	assert.Equal(t, Desc, ParseDirection(" DESC ", Asc))
	assert.Equal(t, Desc, ParseDirection("sideways", Desc))
}

func TestBuilder_String(t *testing.T) {
	str := From("campaigns").Where(Eq("year", 2025)).String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
}

func TestBuilder_GroupBy(t *testing.T) {
	sql, args := From("weight_entries").
		Select("product_id", "SUM(weight)").
		Where(Eq("campaign_id", "c1")).
		GroupBy("product_id").
		OrderBy("product_id", Asc).
		BuildSQL()

	assert.Equal(t, "SELECT product_id, SUM(weight) FROM weight_entries WHERE campaign_id = ? GROUP BY product_id ORDER BY product_id ASC", sql)
	assert.Equal(t, []interface{}{"c1"}, args)
}
