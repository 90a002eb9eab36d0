package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pms-backend/services"
	"pms-backend/utils"
)

// DashboardReporter produces the daily aggregates for a reference date.
type DashboardReporter interface {
	Stats(today time.Time) (services.DashboardStats, error)
}

type DashboardController struct {
	Dashboard DashboardReporter
}

func NewDashboardController(svc DashboardReporter) *DashboardController {
	return &DashboardController{Dashboard: svc}
}

// GetDashboard renders today's numbers. An optional ?date= overrides the
// reference day, mainly for reports and tests. The override is anchored in
// server-local time so the day window matches the stored timestamps.
func (ctrl *DashboardController) GetDashboard(c *gin.Context) {
	today := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(services.DateLayout, raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "error.invalidDate",
					"message": "date must be formatted as " + services.DateLayout,
				},
			})
			return
		}
		today = parsed
	}

	stats, err := ctrl.Dashboard.Stats(today)
	if err != nil {
		log.Printf("GetDashboard: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
