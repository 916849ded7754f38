package credits

import (
	"context"
	"time"

	"axiapac.com/timeclock/core"
	"axiapac.com/timeclock/model"
	web "axiapac.com/timeclock/web/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	GrantForDate(ctx context.Context, date time.Time, grantOT bool) (*core.GrantResult, error)
	GrantOTForCodes(ctx context.Context, date time.Time, codes []string) (*core.ImportResult, error)
	Status(ctx context.Context, date time.Time) (*core.CreditStatus, error)
	Credits(ctx context.Context, date time.Time) ([]model.MealCredit, error)
}

type Endpoint struct {
	service Service
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

func NewEndpoint(service Service, loc *time.Location, logger *zap.Logger) *Endpoint {
	return &Endpoint{service: service, loc: loc, now: time.Now, logger: logger}
}

func Register(r *gin.RouterGroup, ep *Endpoint) {
	r.POST("/credits/grant", ep.Grant)
	r.GET("/credits/status", ep.Status)
	r.GET("/credits/export", ep.Export)
	r.POST("/credits/ot", ep.MarkOT)
	r.POST("/credits/ot-import", ep.ImportOT)
}

// dateParam reads an optional yyyy-MM-dd value, defaulting to today in the
// site location.
func (ep *Endpoint) dateParam(value string) (time.Time, error) {
	if value == "" {
		y, m, d := ep.now().In(ep.loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, ep.loc), nil
	}
	t, err := web.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	return web.DateOnly{Time: t}.In(ep.loc), nil
}
