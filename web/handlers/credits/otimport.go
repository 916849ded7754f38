package credits

import (
	"net/http"

	"axiapac.com/timeclock/report"
	web "axiapac.com/timeclock/web/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxRosterSize = 10 << 20

type ImportResponse struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	NotFound []string `json:"notFound"`
	Errors   []string `json:"errors"`
}

// ImportOT grants OT meals to the employees listed in an uploaded roster.
// Expects multipart fields "file" (xlsx or csv) and "date".
func (ep *Endpoint) ImportOT(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRosterSize)

	dateValue := c.PostForm("date")
	if dateValue == "" {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("file and date are required"))
		return
	}
	date, err := ep.dateParam(dateValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("file and date are required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}
	defer file.Close()

	codes, err := report.ParseOTRoster(file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	result, err := ep.service.GrantOTForCodes(c.Request.Context(), date, codes)
	if err != nil {
		ep.logger.Error("OT import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	ep.logger.Info("OT roster imported",
		zap.String("file", header.Filename),
		zap.Int("codes", len(codes)),
		zap.Int("imported", result.Imported),
		zap.Int("notFound", len(result.NotFound)))

	c.JSON(http.StatusOK, web.NewSuccessResponse(ImportResponse{
		Imported: result.Imported,
		Failed:   result.Failed,
		NotFound: result.NotFound,
		Errors:   result.Errors,
	}))
}
