package service

import (
	"testing"
	"time"

	"go-inventory-pos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleOn(day time.Time, name string, qty int, price, cost string) model.Transaction {
	t := model.Transaction{
		Type:          model.TxOut,
		Quantity:      qty,
		PriceSnapshot: decimal.RequireFromString(price),
		CostSnapshot:  decimal.RequireFromString(cost),
		Product:       model.Product{Name: name},
	}
	t.CreatedAt = day
	return t
}

func expenseOn(day time.Time, typ, amount string) model.Expense {
	return model.Expense{
		Description: "op cost",
		Amount:      decimal.RequireFromString(amount),
		Type:        typ,
		Date:        day,
	}
}

func TestBuildProfitLossEmpty(t *testing.T) {
	result := buildProfitLoss(nil, nil)

	assert.True(t, result.Stats.TotalRevenue.IsZero())
	assert.True(t, result.Stats.NetProfit.IsZero())
	assert.Equal(t, 0, result.Stats.TransactionCount)
	assert.Equal(t, float64(0), result.KPI.GrossProfitMargin)
	assert.Empty(t, result.Charts.Timeline)
	assert.NotNil(t, result.Breakdown.Expenses)
}

func TestBuildProfitLossScenario(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// 20 units at 100 revenue / 40 cost = revenue 2000, cost 800.
	sales := []model.Transaction{
		saleOn(day, "Widget", 12, "100", "40"),
		saleOn(day, "Widget", 8, "100", "40"),
	}
	expenses := []model.Expense{
		expenseOn(day, "Rent", "500"),
	}

	result := buildProfitLoss(sales, expenses)

	assert.True(t, result.Stats.TotalRevenue.Equal(decimal.NewFromInt(2000)))
	assert.True(t, result.Stats.TotalCost.Equal(decimal.NewFromInt(800)))
	assert.True(t, result.Stats.GrossProfit.Equal(decimal.NewFromInt(1200)))
	assert.True(t, result.Stats.TotalExpenses.Equal(decimal.NewFromInt(500)))
	assert.True(t, result.Stats.NetProfit.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 2, result.Stats.TransactionCount)
	assert.Equal(t, 20, result.Stats.TotalItemsSold)
	assert.True(t, result.Stats.AverageSalePerBill.Equal(decimal.NewFromInt(1000)))

	assert.InDelta(t, 60.0, result.KPI.GrossProfitMargin, 0.001)
	assert.InDelta(t, 35.0, result.KPI.NetProfitMargin, 0.001)

	require.Len(t, result.Charts.Timeline, 1)
	point := result.Charts.Timeline[0]
	assert.Equal(t, "2026-03-10", point.Date)
	assert.True(t, point.Profit.Equal(decimal.NewFromInt(700)))
}

func TestMergeTimelineZeroFillsMissingDays(t *testing.T) {
	saleDay := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	expenseDay := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

	sales := salesByDay([]model.Transaction{saleOn(saleDay, "Widget", 2, "50", "20")})
	expenses := expensesByDay([]model.Expense{expenseOn(expenseDay, "Rent", "30")})

	timeline := mergeTimeline(sales, expenses)
	require.Len(t, timeline, 2)

	assert.Equal(t, "2026-03-10", timeline[0].Date)
	assert.True(t, timeline[0].Revenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, timeline[0].Expense.IsZero())

	assert.Equal(t, "2026-03-12", timeline[1].Date)
	assert.True(t, timeline[1].Revenue.IsZero())
	assert.True(t, timeline[1].Expense.Equal(decimal.NewFromInt(30)))
	assert.True(t, timeline[1].Profit.Equal(decimal.NewFromInt(-30)))
}

// The merged series must not depend on which input the walk starts from.
func TestMergeTimelineOrderIndependent(t *testing.T) {
	d1 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	sales := []model.Transaction{
		saleOn(d2, "A", 1, "10", "5"),
		saleOn(d1, "B", 3, "20", "8"),
		saleOn(d2, "A", 2, "10", "5"),
	}
	expenses := []model.Expense{
		expenseOn(d3, "Rent", "15"),
		expenseOn(d1, "Utilities", "5"),
	}

	reversedSales := make([]model.Transaction, len(sales))
	for i := range sales {
		reversedSales[len(sales)-1-i] = sales[i]
	}
	reversedExpenses := make([]model.Expense, len(expenses))
	for i := range expenses {
		reversedExpenses[len(expenses)-1-i] = expenses[i]
	}

	forward := mergeTimeline(salesByDay(sales), expensesByDay(expenses))
	backward := mergeTimeline(salesByDay(reversedSales), expensesByDay(reversedExpenses))

	require.Equal(t, len(forward), len(backward))
	for i := range forward {
		assert.Equal(t, forward[i].Date, backward[i].Date)
		assert.True(t, forward[i].Revenue.Equal(backward[i].Revenue))
		assert.True(t, forward[i].Cost.Equal(backward[i].Cost))
		assert.True(t, forward[i].Expense.Equal(backward[i].Expense))
		assert.True(t, forward[i].Profit.Equal(backward[i].Profit))
	}
}

func TestTopSellingProductsRanksAndTruncates(t *testing.T) {
	day := time.Now()
	var sales []model.Transaction
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, name := range names {
		sales = append(sales, saleOn(day, name, i+1, "10", "5"))
	}

	ranking := topSellingProducts(sales)
	require.Len(t, ranking, topRankSize)
	assert.Equal(t, "G", ranking[0].Name)
	assert.Equal(t, 7, ranking[0].Value)
	assert.Equal(t, "C", ranking[topRankSize-1].Name)
}

func TestTopSellingProductsDeterministicTies(t *testing.T) {
	day := time.Now()
	sales := []model.Transaction{
		saleOn(day, "Zebra", 5, "10", "5"),
		saleOn(day, "Apple", 5, "10", "5"),
	}

	ranking := topSellingProducts(sales)
	require.Len(t, ranking, 2)
	assert.Equal(t, "Apple", ranking[0].Name)
	assert.Equal(t, "Zebra", ranking[1].Name)
}

func TestMostProfitableProducts(t *testing.T) {
	day := time.Now()
	sales := []model.Transaction{
		saleOn(day, "Thin margin", 10, "10", "9"),  // profit 10
		saleOn(day, "Fat margin", 2, "100", "40"),  // profit 120
	}

	ranking := mostProfitableProducts(sales)
	require.Len(t, ranking, 2)
	assert.Equal(t, "Fat margin", ranking[0].Name)
	assert.True(t, ranking[0].Value.Equal(decimal.NewFromInt(120)))
}

func TestRevenueByCategorySkipsUncategorized(t *testing.T) {
	day := time.Now()
	categorized := saleOn(day, "Widget", 2, "50", "20")
	categorized.Product.Category = &model.Category{Name: "Tools"}
	uncategorized := saleOn(day, "Gadget", 1, "30", "10")

	slices := revenueByCategory([]model.Transaction{categorized, uncategorized})
	require.Len(t, slices, 1)
	assert.Equal(t, "Tools", slices[0].Name)
	assert.True(t, slices[0].Value.Equal(decimal.NewFromInt(100)))
}

func TestExpensesByTypeLabelsBlankAsUncategorized(t *testing.T) {
	day := time.Now()
	slices := expensesByType([]model.Expense{
		expenseOn(day, "", "10"),
		expenseOn(day, "Rent", "40"),
	})

	require.Len(t, slices, 2)
	assert.Equal(t, "Rent", slices[0].Name)
	assert.Equal(t, "Uncategorized", slices[1].Name)
}

func TestBuildSalesDataZeroFillsWeek(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC) // a Sunday

	sales := []model.Transaction{
		saleOn(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), "Widget", 4, "10", "5"),
		saleOn(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), "Widget", 2, "10", "5"),
		// Outside the window, must be ignored.
		saleOn(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "Widget", 99, "10", "5"),
	}

	series := buildSalesData(sales, now)
	require.Len(t, series, 7)

	assert.Equal(t, "Mon", series[0].Name)
	assert.Equal(t, 0, series[0].Total)
	assert.Equal(t, "Sat", series[5].Name)
	assert.Equal(t, 4, series[5].Total)
	assert.Equal(t, "Sun", series[6].Name)
	assert.Equal(t, 2, series[6].Total)
}
