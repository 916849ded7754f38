package directory

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/store"
	web "axiapac.com/timeclock/web/common"
	"github.com/gin-gonic/gin"
)

type Directory interface {
	ListEmployees(ctx context.Context, filter store.EmployeeFilter) ([]model.Employee, int64, error)
	UpdateEmployee(ctx context.Context, code string, update store.EmployeeUpdate) (*model.Employee, error)
	ListShifts(ctx context.Context) ([]model.Shift, error)
}

type Endpoint struct {
	directory Directory
}

func NewEndpoint(directory Directory) *Endpoint {
	return &Endpoint{directory: directory}
}

func Register(r *gin.RouterGroup, ep *Endpoint) {
	r.GET("/employees", ep.ListEmployees)
	r.PUT("/employees/:code", ep.UpdateEmployee)
	r.GET("/shifts", ep.ListShifts)
}

type EmployeeQuery struct {
	Provisional *bool `form:"provisional"`
	Limit       int   `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset      int   `form:"offset" binding:"omitempty,min=0"`
}

func (ep *Endpoint) ListEmployees(c *gin.Context) {
	var q EmployeeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	employees, total, err := ep.directory.ListEmployees(c.Request.Context(), store.EmployeeFilter{
		Provisional: q.Provisional,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(employees, total, q.Limit, q.Offset))
}

type EmployeeUpdateRequest struct {
	DisplayName string  `json:"displayName" binding:"required,max=255"`
	ExternalID  *string `json:"externalId" binding:"omitempty,max=64"`
}

// UpdateEmployee confirms a provisional employee with their real identity.
func (ep *Endpoint) UpdateEmployee(c *gin.Context) {
	code := c.Param("code")

	var req EmployeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	employee, err := ep.directory.UpdateEmployee(c.Request.Context(), code, store.EmployeeUpdate{
		DisplayName: req.DisplayName,
		ExternalID:  req.ExternalID,
	})
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("employee "+strconv.Quote(code)+" not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(employee))
}

func (ep *Endpoint) ListShifts(c *gin.Context) {
	shifts, err := ep.directory.ListShifts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(shifts))
}
