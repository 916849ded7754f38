package credits

import (
	"fmt"
	"net/http"

	"axiapac.com/timeclock/report"
	"axiapac.com/timeclock/utils"
	web "axiapac.com/timeclock/web/common"
	"github.com/gin-gonic/gin"
)

func (ep *Endpoint) Export(c *gin.Context) {
	date, err := ep.dateParam(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	credits, err := ep.service.Credits(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	key := date.Format(utils.DateLayout)
	buf, err := report.BuildCreditWorkbook(key, credits)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.WorkbookFilename(key)))
	c.Data(http.StatusOK, report.XLSXContentType, buf.Bytes())
}
