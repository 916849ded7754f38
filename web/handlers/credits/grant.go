package credits

import (
	"net/http"

	web "axiapac.com/timeclock/web/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GrantRequest struct {
	Date    *web.DateOnly `json:"date" binding:"required"`
	GrantOT bool          `json:"grantOT"`
}

// Grant gives lunch, and OT meals when asked, to everyone who scanned on the
// date. Chunk failures are reported with a 200.
func (ep *Endpoint) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	result, err := ep.service.GrantForDate(c.Request.Context(), req.Date.In(ep.loc), req.GrantOT)
	if err != nil {
		ep.logger.Error("grant failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(result))
}

func (ep *Endpoint) Status(c *gin.Context) {
	date, err := ep.dateParam(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	status, err := ep.service.Status(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(status))
}
