package services

import (
	"math/rand"
	"time"

	"fleetpanel/internal/config"
	"fleetpanel/internal/models"

	"gorm.io/gorm"
)

// SalesPageSize is the fixed page size of the sales report.
const SalesPageSize = 10

// SaleFilter narrows the report. Every set field is applied conjunctively;
// the zero value selects everything.
type SaleFilter struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	PerformanceID uint
}

// SalesPage is one page of the filtered report.
type SalesPage struct {
	Sales      []models.Sale
	Page       int
	TotalPages int
	Total      int64
}

// SalesStats aggregates the filtered set. AvgTicketPrice is the mean of
// amount/tickets per sale, not the mean of sale totals.
type SalesStats struct {
	SalesCount     int64   `json:"sales_count"`
	TotalSales     float64 `json:"total_sales"`
	TotalTickets   int64   `json:"total_tickets"`
	AvgTicketPrice float64 `json:"avg_ticket_price"`
}

type SalesService struct {
	cfg *config.Config
}

func NewSalesService(cfg *config.Config) *SalesService {
	return &SalesService{cfg: cfg}
}

// filtered translates the filter into parameterized predicates. Sales store
// the performance name, so a performance id resolves to its name first; an
// unknown id matches nothing rather than everything.
func (s *SalesService) filtered(f SaleFilter) *gorm.DB {
	q := models.DB.Model(&models.Sale{})
	if f.DateFrom != nil {
		q = q.Where("sale_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("sale_date <= ?", *f.DateTo)
	}
	if f.PerformanceID != 0 {
		var perf models.Performance
		if err := models.DB.First(&perf, f.PerformanceID).Error; err != nil {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("performance_name = ?", perf.Name)
		}
	}
	return q
}

// List returns one page of the filtered report, newest sales first. A page
// past the end yields an empty page, not an error.
func (s *SalesService) List(f SaleFilter, page int) (*SalesPage, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.filtered(f).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + SalesPageSize - 1) / SalesPageSize)

	var sales []models.Sale
	err := s.filtered(f).
		Order("sale_date DESC, id DESC").
		Limit(SalesPageSize).
		Offset((page - 1) * SalesPageSize).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}

	return &SalesPage{
		Sales:      sales,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// Stats aggregates the filtered set. COALESCE keeps the zero-match case at
// zero instead of NULL.
func (s *SalesService) Stats(f SaleFilter) (*SalesStats, error) {
	var stats SalesStats
	err := s.filtered(f).
		Select("COUNT(*) AS sales_count, " +
			"COALESCE(SUM(amount), 0) AS total_sales, " +
			"COALESCE(SUM(tickets), 0) AS total_tickets, " +
			"COALESCE(AVG(amount * 1.0 / tickets), 0) AS avg_ticket_price").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Performances returns the active reference list for the filter dropdown
func (s *SalesService) Performances() ([]models.Performance, error) {
	var performances []models.Performance
	if err := models.DB.Where("active = ?", true).Order("name").Find(&performances).Error; err != nil {
		return nil, err
	}
	return performances, nil
}

var demoPerformances = []models.Performance{
	{Name: "Swan Lake", Description: "Classical ballet in four acts", BasePrice: 1500},
	{Name: "The Nutcracker", Description: "Ballet-feerie in two acts", BasePrice: 1200},
	{Name: "Carmen", Description: "Opera in four acts", BasePrice: 1800},
	{Name: "Hamlet", Description: "Tragedy in five acts", BasePrice: 900},
	{Name: "The Cherry Orchard", Description: "Comedy in four acts", BasePrice: 800},
}

var demoPaymentMethods = []string{"card", "cash", "transfer"}

// SeedDemoData populates the performances and 100 synthetic sales over the
// last 30 days when the performances table is empty. Demo convenience only;
// disabled via demo.seed_sales.
func (s *SalesService) SeedDemoData() error {
	if !s.cfg.Demo.SeedSales {
		return nil
	}

	var count int64
	if err := models.DB.Model(&models.Performance{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		performances := make([]models.Performance, len(demoPerformances))
		copy(performances, demoPerformances)
		for i := range performances {
			performances[i].Active = true
		}
		if err := tx.Create(&performances).Error; err != nil {
			return err
		}

		now := time.Now()
		sales := make([]models.Sale, 0, 100)
		for i := 0; i < 100; i++ {
			perf := performances[rand.Intn(len(performances))]
			tickets := rand.Intn(5) + 1
			sales = append(sales, models.Sale{
				SaleDate:        now.Add(-time.Duration(rand.Intn(30*24)) * time.Hour),
				PerformanceName: perf.Name,
				Tickets:         tickets,
				Amount:          perf.BasePrice * float64(tickets),
				Customer:        "Demo customer",
				CustomerContact: "demo@example.com",
				Status:          randomSaleStatus(),
				PaymentMethod:   demoPaymentMethods[rand.Intn(len(demoPaymentMethods))],
			})
		}
		return tx.Create(&sales).Error
	})
}

// randomSaleStatus weights the outcome toward paid
func randomSaleStatus() models.SaleStatus {
	switch n := rand.Intn(10); {
	case n < 7:
		return models.SalePaid
	case n < 9:
		return models.SalePending
	default:
		return models.SaleCancelled
	}
}
