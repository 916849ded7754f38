package credits

import (
	"net/http"

	web "axiapac.com/timeclock/web/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MarkOTRequest struct {
	EmployeeCode string        `json:"employeeCode" binding:"required"`
	Date         *web.DateOnly `json:"date" binding:"required"`
}

// MarkOT grants lunch and the OT meal to a single employee for a date.
func (ep *Endpoint) MarkOT(c *gin.Context) {
	var req MarkOTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	result, err := ep.service.GrantOTForCodes(c.Request.Context(), req.Date.In(ep.loc), []string{req.EmployeeCode})
	if err != nil {
		ep.logger.Error("mark OT failed", zap.String("employee", req.EmployeeCode), zap.Error(err))
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	if len(result.NotFound) > 0 {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("employee not found: "+req.EmployeeCode))
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(result))
}
