package attendance

import (
	"errors"
	"net/http"

	"axiapac.com/timeclock/pipeline"
	web "axiapac.com/timeclock/web/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SyncRequest struct {
	Devices []string `json:"devices" binding:"omitempty,dive,required"`
}

// Sync pulls the named devices, or every configured device for an empty body.
func (ep *Endpoint) Sync(c *gin.Context) {
	var req SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
			return
		}
	}

	outcome, err := ep.syncer.Sync(c.Request.Context(), req.Devices)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownDevice) {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
			return
		}
		ep.logger.Error("sync failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(outcome))
}
