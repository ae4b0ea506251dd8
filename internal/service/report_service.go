package service

import (
	"sort"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitLossStats are the headline figures of the profit/loss report.
// Every field is zero-valued on an empty result set, never null.
type ProfitLossStats struct {
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalCost          decimal.Decimal `json:"total_cost"` // COGS
	GrossProfit        decimal.Decimal `json:"gross_profit"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetProfit          decimal.Decimal `json:"net_profit"`
	TransactionCount   int             `json:"transaction_count"`
	TotalItemsSold     int             `json:"total_items_sold"`
	AverageSalePerBill decimal.Decimal `json:"average_sale_per_bill"`
}

// TimelinePoint is one calendar day in the merged revenue/cost/expense
// series. Profit = revenue - cost - expense.
type TimelinePoint struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

// NameAmount is a chart slice: a label with a monetary value.
type NameAmount struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// NameCount is a ranking entry keyed by units.
type NameCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ProfitLossResult bundles stats, raw expense breakdown, chart-ready
// series and KPI/top-N lists. A failure in any sub-aggregation fails the
// whole call; there are no partial results.
//
// Expenses are category-agnostic: a category-scoped view still subtracts
// the full unscoped expense total, which can understate that category's
// true contribution. Known limitation carried over deliberately.
type ProfitLossResult struct {
	Stats     ProfitLossStats `json:"stats"`
	Breakdown struct {
		Expenses []model.Expense `json:"expenses"`
	} `json:"breakdown"`
	Charts struct {
		Timeline   []TimelinePoint `json:"timeline"`
		ByCategory []NameAmount    `json:"by_category"`
		ByExpense  []NameAmount    `json:"by_expense"`
	} `json:"charts"`
	KPI struct {
		GrossProfitMargin float64      `json:"gross_profit_margin"`
		NetProfitMargin   float64      `json:"net_profit_margin"`
		TopSelling        []NameCount  `json:"top_selling"`
		MostProfitable    []NameAmount `json:"most_profitable"`
	} `json:"kpi"`
}

// DashboardSummary backs the overview page.
type DashboardSummary struct {
	TotalProducts    int64           `json:"total_products"`
	TotalStock       int64           `json:"total_stock"`
	LowStockCount    int64           `json:"low_stock_count"`
	OutOfStockCount  int64           `json:"out_of_stock_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	RecentProducts   []model.Product `json:"recent_products"`
	LowStockProducts []model.Product `json:"low_stock_products"`
	SalesData        []DailySales    `json:"sales_data"`
}

// DailySales is one bar of the last-7-days units-sold chart.
type DailySales struct {
	Name  string `json:"name"` // weekday label
	Total int    `json:"total"`
}

const topRankSize = 5

type ReportService interface {
	ProfitLoss(start, end time.Time, categoryID *uuid.UUID) (*ProfitLossResult, error)
	Summary() (*DashboardSummary, error)
}

type reportService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	expenseRepo     repository.ExpenseRepository
}

func NewReportService(
	pRepo repository.ProductRepository,
	tRepo repository.TransactionRepository,
	eRepo repository.ExpenseRepository,
) ReportService {
	return &reportService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		expenseRepo:     eRepo,
	}
}

func (s *reportService) ProfitLoss(start, end time.Time, categoryID *uuid.UUID) (*ProfitLossResult, error) {
	sales, err := s.transactionRepo.FindOutInRange(start, end, categoryID)
	if err != nil {
		return nil, err
	}
	// Expenses are never scoped by category.
	expenses, err := s.expenseRepo.FindInRange(start, end)
	if err != nil {
		return nil, err
	}
	return buildProfitLoss(sales, expenses), nil
}

// buildProfitLoss computes the full report from already-fetched rows.
// Kept free of database access so the aggregation properties are directly
// testable.
func buildProfitLoss(sales []model.Transaction, expenses []model.Expense) *ProfitLossResult {
	result := &ProfitLossResult{}

	revenue := decimal.Zero
	cost := decimal.Zero
	itemsSold := 0
	for i := range sales {
		t := &sales[i]
		qty := decimal.NewFromInt(int64(t.Quantity))
		revenue = revenue.Add(t.PriceSnapshot.Mul(qty))
		cost = cost.Add(t.CostSnapshot.Mul(qty))
		itemsSold += t.Quantity
	}

	totalExpenses := decimal.Zero
	for i := range expenses {
		totalExpenses = totalExpenses.Add(expenses[i].Amount)
	}

	grossProfit := revenue.Sub(cost)
	netProfit := grossProfit.Sub(totalExpenses)

	averagePerBill := decimal.Zero
	if len(sales) > 0 {
		averagePerBill = revenue.Div(decimal.NewFromInt(int64(len(sales))))
	}

	result.Stats = ProfitLossStats{
		TotalRevenue:       revenue,
		TotalCost:          cost,
		GrossProfit:        grossProfit,
		TotalExpenses:      totalExpenses,
		NetProfit:          netProfit,
		TransactionCount:   len(sales),
		TotalItemsSold:     itemsSold,
		AverageSalePerBill: averagePerBill,
	}

	if expenses == nil {
		expenses = []model.Expense{}
	}
	result.Breakdown.Expenses = expenses

	result.Charts.Timeline = mergeTimeline(salesByDay(sales), expensesByDay(expenses))
	result.Charts.ByCategory = revenueByCategory(sales)
	result.Charts.ByExpense = expensesByType(expenses)

	if revenue.IsPositive() {
		hundred := decimal.NewFromInt(100)
		result.KPI.GrossProfitMargin = grossProfit.Div(revenue).Mul(hundred).InexactFloat64()
		result.KPI.NetProfitMargin = netProfit.Div(revenue).Mul(hundred).InexactFloat64()
	}
	result.KPI.TopSelling = topSellingProducts(sales)
	result.KPI.MostProfitable = mostProfitableProducts(sales)

	return result
}

type dayAggregate struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func salesByDay(sales []model.Transaction) map[string]dayAggregate {
	byDay := make(map[string]dayAggregate)
	for i := range sales {
		t := &sales[i]
		key := dayKey(t.CreatedAt)
		agg := byDay[key]
		qty := decimal.NewFromInt(int64(t.Quantity))
		agg.Revenue = agg.Revenue.Add(t.PriceSnapshot.Mul(qty))
		agg.Cost = agg.Cost.Add(t.CostSnapshot.Mul(qty))
		byDay[key] = agg
	}
	return byDay
}

func expensesByDay(expenses []model.Expense) map[string]decimal.Decimal {
	byDay := make(map[string]decimal.Decimal)
	for i := range expenses {
		key := dayKey(expenses[i].Date)
		byDay[key] = byDay[key].Add(expenses[i].Amount)
	}
	return byDay
}

// mergeTimeline combines the day-keyed sales and expense series into one
// ascending sequence. Days present in only one series appear with the
// other side zero-filled; the result does not depend on which series is
// walked first.
func mergeTimeline(sales map[string]dayAggregate, expenses map[string]decimal.Decimal) []TimelinePoint {
	days := make(map[string]struct{}, len(sales)+len(expenses))
	for day := range sales {
		days[day] = struct{}{}
	}
	for day := range expenses {
		days[day] = struct{}{}
	}

	timeline := make([]TimelinePoint, 0, len(days))
	for day := range days {
		agg := sales[day]
		expense := expenses[day]
		timeline = append(timeline, TimelinePoint{
			Date:    day,
			Revenue: agg.Revenue,
			Cost:    agg.Cost,
			Expense: expense,
			Profit:  agg.Revenue.Sub(agg.Cost).Sub(expense),
		})
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date < timeline[j].Date
	})
	return timeline
}

func revenueByCategory(sales []model.Transaction) []NameAmount {
	byName := make(map[string]decimal.Decimal)
	for i := range sales {
		t := &sales[i]
		if t.Product.Category == nil {
			continue // uncategorized products stay off the category chart
		}
		name := t.Product.Category.Name
		qty := decimal.NewFromInt(int64(t.Quantity))
		byName[name] = byName[name].Add(t.PriceSnapshot.Mul(qty))
	}
	return sortedNameAmounts(byName)
}

func expensesByType(expenses []model.Expense) []NameAmount {
	byType := make(map[string]decimal.Decimal)
	for i := range expenses {
		label := expenses[i].Type
		if label == "" {
			label = "Uncategorized"
		}
		byType[label] = byType[label].Add(expenses[i].Amount)
	}
	return sortedNameAmounts(byType)
}

func topSellingProducts(sales []model.Transaction) []NameCount {
	units := make(map[string]int)
	for i := range sales {
		units[sales[i].Product.Name] += sales[i].Quantity
	}

	ranking := make([]NameCount, 0, len(units))
	for name, total := range units {
		ranking = append(ranking, NameCount{Name: name, Value: total})
	}
	// Name order first so equal unit counts rank deterministically.
	sort.Slice(ranking, func(i, j int) bool { return ranking[i].Name < ranking[j].Name })
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Value > ranking[j].Value })
	if len(ranking) > topRankSize {
		ranking = ranking[:topRankSize]
	}
	return ranking
}

func mostProfitableProducts(sales []model.Transaction) []NameAmount {
	profit := make(map[string]decimal.Decimal)
	for i := range sales {
		t := &sales[i]
		qty := decimal.NewFromInt(int64(t.Quantity))
		margin := t.PriceSnapshot.Sub(t.CostSnapshot).Mul(qty)
		profit[t.Product.Name] = profit[t.Product.Name].Add(margin)
	}

	ranking := sortedNameAmounts(profit)
	if len(ranking) > topRankSize {
		ranking = ranking[:topRankSize]
	}
	return ranking
}

func sortedNameAmounts(values map[string]decimal.Decimal) []NameAmount {
	out := make([]NameAmount, 0, len(values))
	for name, value := range values {
		out = append(out, NameAmount{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
	return out
}

func (s *reportService) Summary() (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	var err error
	if summary.TotalProducts, err = s.productRepo.CountAll(); err != nil {
		return nil, err
	}
	if summary.TotalStock, err = s.productRepo.SumQuantity(); err != nil {
		return nil, err
	}
	if summary.LowStockCount, err = s.productRepo.CountLowStock(); err != nil {
		return nil, err
	}
	if summary.OutOfStockCount, err = s.productRepo.CountOutOfStock(); err != nil {
		return nil, err
	}

	revenue, cost, err := s.transactionRepo.AllTimeRevenueCost()
	if err != nil {
		return nil, err
	}
	summary.TotalRevenue = revenue
	summary.TotalCost = cost
	summary.NetProfit = revenue.Sub(cost)

	if summary.RecentProducts, err = s.productRepo.FindRecent(5); err != nil {
		return nil, err
	}
	if summary.LowStockProducts, err = s.productRepo.FindLowStock(5); err != nil {
		return nil, err
	}
	if summary.RecentProducts == nil {
		summary.RecentProducts = []model.Product{}
	}
	if summary.LowStockProducts == nil {
		summary.LowStockProducts = []model.Product{}
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	recentSales, err := s.transactionRepo.FindOutSince(sevenDaysAgo)
	if err != nil {
		return nil, err
	}
	summary.SalesData = buildSalesData(recentSales, time.Now())

	return summary, nil
}

// buildSalesData produces the last-7-days units-sold series, zero-filled
// and labelled by weekday.
func buildSalesData(sales []model.Transaction, now time.Time) []DailySales {
	totals := make(map[string]int, 7)
	order := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		day := dayKey(now.AddDate(0, 0, -i))
		totals[day] = 0
		order = append(order, day)
	}
	for i := range sales {
		key := dayKey(sales[i].CreatedAt)
		if _, ok := totals[key]; ok {
			totals[key] += sales[i].Quantity
		}
	}

	series := make([]DailySales, 0, 7)
	for _, day := range order {
		date, _ := time.Parse("2006-01-02", day)
		series = append(series, DailySales{
			Name:  date.Format("Mon"),
			Total: totals[day],
		})
	}
	return series
}
