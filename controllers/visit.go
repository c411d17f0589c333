// controllers/visit.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/levomgrup/sales-api/services"
	"github.com/levomgrup/sales-api/utils"
	"github.com/sirupsen/logrus"
)

type VisitController struct {
	Visits    *services.VisitService
	Scheduler *services.VisitScheduler
	Log       *logrus.Logger
}

func (ctl *VisitController) CreateVisit(c *gin.Context) {
	var input services.CreateVisitInput
	if !bindJSON(c, &input) {
		return
	}

	visit, err := ctl.Visits.Create(c.Request.Context(), input)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, visit)
}

// GetVisits lists active visits. Query parameters: status, customerId,
// startDate and endDate (both inclusive, RFC 3339 or YYYY-MM-DD).
func (ctl *VisitController) GetVisits(c *gin.Context) {
	from, err := dateParam(c, "startDate")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, services.MsgInvalidData)
		return
	}
	to, err := dateParam(c, "endDate")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, services.MsgInvalidData)
		return
	}
	query := services.VisitQuery{
		Status:     c.Query("status"),
		CustomerID: c.Query("customerId"),
		From:       from,
		To:         to,
	}

	visits, err := ctl.Visits.List(c.Request.Context(), query)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, visits)
}

func (ctl *VisitController) GetOverdueVisits(c *gin.Context) {
	visits, err := ctl.Visits.Overdue(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, visits)
}

func (ctl *VisitController) GetVisit(c *gin.Context) {
	visit, err := ctl.Visits.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

func (ctl *VisitController) UpdateVisit(c *gin.Context) {
	var input services.UpdateVisitInput
	if !bindJSON(c, &input) {
		return
	}

	visit, err := ctl.Visits.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

func (ctl *VisitController) DeleteVisit(c *gin.Context) {
	if err := ctl.Visits.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": services.MsgVisitDeleted})
}

// RunRollover triggers the automatic visit rollover immediately
func (ctl *VisitController) RunRollover(c *gin.Context) {
	result, err := ctl.Scheduler.Rollover(c.Request.Context())
	if err != nil {
		ctl.Log.WithError(err).Error("Manual visit rollover failed")
		utils.RespondWithError(c, http.StatusInternalServerError, services.MsgRolloverFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": services.MsgRolloverDone, "result": result})
}

func dateParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
