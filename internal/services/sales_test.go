package services

import (
	"fmt"
	"testing"
	"time"

	"fleetpanel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSales(t *testing.T, n int, performance string, base time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		sale := models.Sale{
			SaleDate:        base.Add(-time.Duration(i) * time.Hour),
			PerformanceName: performance,
			Tickets:         2,
			Amount:          100,
			Customer:        fmt.Sprintf("customer-%d", i),
			Status:          models.SalePaid,
			PaymentMethod:   "card",
		}
		require.NoError(t, models.DB.Create(&sale).Error)
	}
}

func TestSalesPagination(t *testing.T) {
	cfg := setupTestDB(t)
	salesService := NewSalesService(cfg)

	seedSales(t, 23, "Hamlet", time.Now())

	page1, err := salesService.List(SaleFilter{}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(23), page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Len(t, page1.Sales, 10)

	page3, err := salesService.List(SaleFilter{}, 3)
	require.NoError(t, err)
	assert.Len(t, page3.Sales, 3)

	// Past the end: empty page, not an error
	page4, err := salesService.List(SaleFilter{}, 4)
	require.NoError(t, err)
	assert.Empty(t, page4.Sales)
	assert.Equal(t, 3, page4.TotalPages)
}

func TestSalesOrderedByDateThenIDDescending(t *testing.T) {
	cfg := setupTestDB(t)
	salesService := NewSalesService(cfg)

	day := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedSales(t, 2, "Hamlet", day)
	// Two more sales on the same date: id breaks the tie
	seedSales(t, 1, "Carmen", day)
	var dup models.Sale
	require.NoError(t, models.DB.Where("performance_name = ?", "Carmen").First(&dup).Error)
	second := models.Sale{SaleDate: dup.SaleDate, PerformanceName: "Carmen", Tickets: 1, Amount: 50, Status: models.SalePaid}
	require.NoError(t, models.DB.Create(&second).Error)

	page, err := salesService.List(SaleFilter{}, 1)
	require.NoError(t, err)
	for i := 1; i < len(page.Sales); i++ {
		prev, cur := page.Sales[i-1], page.Sales[i]
		if prev.SaleDate.Equal(cur.SaleDate) {
			assert.Greater(t, prev.ID, cur.ID)
		} else {
			assert.True(t, prev.SaleDate.After(cur.SaleDate))
		}
	}
}

func TestSalesStatsZeroMatchesCoerceToZero(t *testing.T) {
	cfg := setupTestDB(t)
	salesService := NewSalesService(cfg)

	from := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	stats, err := salesService.Stats(SaleFilter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.SalesCount)
	assert.Equal(t, 0.0, stats.TotalSales)
	assert.Equal(t, int64(0), stats.TotalTickets)
	assert.Equal(t, 0.0, stats.AvgTicketPrice)
}

func TestSalesStatsAveragesPerTicketNotPerSale(t *testing.T) {
	cfg := setupTestDB(t)
	salesService := NewSalesService(cfg)

	now := time.Now()
	require.NoError(t, models.DB.Create(&models.Sale{
		SaleDate: now, PerformanceName: "Hamlet", Tickets: 2, Amount: 100, Status: models.SalePaid,
	}).Error)
	require.NoError(t, models.DB.Create(&models.Sale{
		SaleDate: now, PerformanceName: "Hamlet", Tickets: 1, Amount: 30, Status: models.SalePaid,
	}).Error)

	stats, err := salesService.Stats(SaleFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.SalesCount)
	assert.Equal(t, 130.0, stats.TotalSales)
	assert.Equal(t, int64(3), stats.TotalTickets)
	// Mean of per-sale ticket prices (50 and 30), not mean of sale totals (65)
	assert.InDelta(t, 40.0, stats.AvgTicketPrice, 0.001)
}

func TestSalesFilterByPerformance(t *testing.T) {
	cfg := setupTestDB(t)
	salesService := NewSalesService(cfg)

	perf := models.Performance{Name: "Hamlet", BasePrice: 900, Active: true}
	require.NoError(t, models.DB.Create(&perf).Error)

	seedSales(t, 3, "Hamlet", time.Now())
	seedSales(t, 2, "Carmen", time.Now())

	page, err := salesService.List(SaleFilter{PerformanceID: perf.ID}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	for _, sale := range page.Sales {
		assert.Equal(t, "Hamlet", sale.PerformanceName)
	}

	// Unknown performance id matches nothing
	page, err = salesService.List(SaleFilter{PerformanceID: 9999}, 1)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestSalesFilterByDateRange(t *testing.T) {
	cfg := setupTestDB(t)
	salesService := NewSalesService(cfg)

	base := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	seedSales(t, 5, "Hamlet", base)                    // within range
	seedSales(t, 4, "Hamlet", base.AddDate(0, -2, 0))  // before range

	from := base.AddDate(0, -1, 0)
	to := base.Add(time.Hour)
	page, err := salesService.List(SaleFilter{DateFrom: &from, DateTo: &to}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
}

func TestSeedDemoData(t *testing.T) {
	cfg := setupTestDB(t)
	cfg.Demo.SeedSales = true
	salesService := NewSalesService(cfg)

	require.NoError(t, salesService.SeedDemoData())

	performances, err := salesService.Performances()
	require.NoError(t, err)
	assert.Len(t, performances, 5)

	var count int64
	models.DB.Model(&models.Sale{}).Count(&count)
	assert.Equal(t, int64(100), count)

	cutoff := time.Now().AddDate(0, 0, -31)
	var stale int64
	models.DB.Model(&models.Sale{}).Where("sale_date < ?", cutoff).Count(&stale)
	assert.Zero(t, stale)

	// Idempotent once seeded
	require.NoError(t, salesService.SeedDemoData())
	models.DB.Model(&models.Sale{}).Count(&count)
	assert.Equal(t, int64(100), count)
}

func TestSeedDemoDataDisabled(t *testing.T) {
	cfg := setupTestDB(t)
	cfg.Demo.SeedSales = false
	salesService := NewSalesService(cfg)

	require.NoError(t, salesService.SeedDemoData())

	var count int64
	models.DB.Model(&models.Performance{}).Count(&count)
	assert.Zero(t, count)
}
