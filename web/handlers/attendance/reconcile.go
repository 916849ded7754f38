package attendance

import (
	"errors"
	"net/http"

	"axiapac.com/timeclock/core"
	web "axiapac.com/timeclock/web/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReconcileRequest struct {
	StartDate *web.DateOnly `json:"startDate" binding:"required"`
	EndDate   *web.DateOnly `json:"endDate" binding:"required"`
}

// Reconcile rebuilds work records for a date range. Group and chunk failures
// come back in the body with a 200.
func (ep *Endpoint) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	start, end := req.StartDate.In(ep.loc), req.EndDate.In(ep.loc)
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("endDate must not be before startDate"))
		return
	}

	result, err := ep.reconciler.Reconcile(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, core.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
			return
		}
		ep.logger.Error("reconcile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(result))
}
