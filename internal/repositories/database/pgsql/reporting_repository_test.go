package pgsql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The monthly aggregations must never count carry-over lines as revenue and
// must use half-open range filtering. Pin the query shape so a rewrite
// cannot silently drop either rule.
func TestMonthlySalesQueriesExcludeCarryOverLines(t *testing.T) {
	for name, query := range map[string]string{
		"client":  monthlyClientSalesQuery,
		"product": monthlyProductSalesQuery,
	} {
		assert.Contains(t, query, "d.name <> $3", "%s query must filter the carry-over line name", name)
		assert.Contains(t, query, "create_date >= $1", "%s query must use an inclusive lower bound", name)
		assert.Contains(t, query, "create_date < $2", "%s query must use an exclusive upper bound", name)
	}
}

func TestMonthlyProductSalesGroupsByTrimmedNameAndSpec(t *testing.T) {
	assert.True(t, strings.Contains(monthlyProductSalesQuery, "GROUP BY TRIM(d.name), TRIM(COALESCE(d.spec, ''))"))
}
