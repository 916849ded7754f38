package attendance

import (
	"net/http"

	"axiapac.com/timeclock/store"
	"axiapac.com/timeclock/utils"
	web "axiapac.com/timeclock/web/common"
	"github.com/gin-gonic/gin"
)

const defaultPageSize = 100

type WorkRecordQuery struct {
	StartDate    string `form:"startDate" binding:"required"`
	EndDate      string `form:"endDate" binding:"required"`
	EmployeeCode string `form:"employeeCode"`
	Status       string `form:"status" binding:"omitempty,oneof=complete incomplete"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset       int    `form:"offset" binding:"omitempty,min=0"`
}

func (ep *Endpoint) SearchWorkRecords(c *gin.Context) {
	var q WorkRecordQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	start, err := web.ParseDate(q.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}
	end, err := web.ParseDate(q.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultPageSize
	}

	records, total, err := ep.records.SearchWorkRecords(c.Request.Context(), store.WorkRecordFilter{
		StartDate:    utils.DateOf(start),
		EndDate:      utils.DateOf(end),
		EmployeeCode: q.EmployeeCode,
		Status:       q.Status,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(records, total, q.Limit, q.Offset))
}
