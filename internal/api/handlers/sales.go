package handlers

import (
	"fmt"
	"strconv"
	"time"

	"fleetpanel/internal/api/flash"
	"fleetpanel/internal/config"
	"fleetpanel/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SalesHandler struct {
	salesService *services.SalesService
	log          *zap.SugaredLogger
}

func NewSalesHandler(cfg *config.Config, log *zap.SugaredLogger) *SalesHandler {
	return &SalesHandler{
		salesService: services.NewSalesService(cfg),
		log:          log,
	}
}

// List renders the filtered, paginated sales report with aggregate stats
func (h *SalesHandler) List(c *gin.Context) {
	filter, dateFrom, dateTo := parseSaleFilter(c)

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}

	salesPage, err := h.salesService.List(filter, page)
	if err != nil {
		h.log.Errorw("failed to query sales", "error", err)
		flash.Set(c, flash.Error, "Could not load the sales report")
		c.Redirect(302, "/dashboard")
		return
	}

	stats, err := h.salesService.Stats(filter)
	if err != nil {
		h.log.Errorw("failed to aggregate sales", "error", err)
		stats = &services.SalesStats{}
	}

	performances, err := h.salesService.Performances()
	if err != nil {
		h.log.Errorw("failed to load performances", "error", err)
	}

	render(c, 200, "sales.html", gin.H{
		"Title":         "Sales report",
		"Page":          salesPage,
		"Stats":         stats,
		"Performances":  performances,
		"DateFrom":      dateFrom,
		"DateTo":        dateTo,
		"PerformanceID": filter.PerformanceID,
		"PrevURL":       pageURL(dateFrom, dateTo, filter.PerformanceID, salesPage.Page-1),
		"NextURL":       pageURL(dateFrom, dateTo, filter.PerformanceID, salesPage.Page+1),
	})
}

// parseSaleFilter reads the optional query filters. Unparseable values are
// treated as absent. The date-to bound is pushed to the end of its day so a
// same-day range still matches that day's sales.
func parseSaleFilter(c *gin.Context) (services.SaleFilter, string, string) {
	var filter services.SaleFilter

	dateFrom := c.Query("date_from")
	if t, err := time.Parse("2006-01-02", dateFrom); err == nil {
		filter.DateFrom = &t
	} else {
		dateFrom = ""
	}

	dateTo := c.Query("date_to")
	if t, err := time.Parse("2006-01-02", dateTo); err == nil {
		end := t.Add(24*time.Hour - time.Second)
		filter.DateTo = &end
	} else {
		dateTo = ""
	}

	if id, err := strconv.ParseUint(c.Query("performance_id"), 10, 32); err == nil {
		filter.PerformanceID = uint(id)
	}

	return filter, dateFrom, dateTo
}

func pageURL(dateFrom, dateTo string, performanceID uint, page int) string {
	url := fmt.Sprintf("/sales?page=%d", page)
	if dateFrom != "" {
		url += "&date_from=" + dateFrom
	}
	if dateTo != "" {
		url += "&date_to=" + dateTo
	}
	if performanceID != 0 {
		url += fmt.Sprintf("&performance_id=%d", performanceID)
	}
	return url
}
