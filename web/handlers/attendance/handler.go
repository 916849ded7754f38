package attendance

import (
	"context"
	"time"

	"axiapac.com/timeclock/core"
	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/pipeline"
	"axiapac.com/timeclock/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Reconciler interface {
	Reconcile(ctx context.Context, startDate, endDate time.Time) (*core.ReconcileResult, error)
}

type WorkRecordSearcher interface {
	SearchWorkRecords(ctx context.Context, filter store.WorkRecordFilter) ([]model.WorkRecord, int64, error)
}

type Syncer interface {
	Sync(ctx context.Context, deviceIDs []string) (*pipeline.SyncOutcome, error)
}

type Endpoint struct {
	reconciler Reconciler
	records    WorkRecordSearcher
	syncer     Syncer
	loc        *time.Location
	logger     *zap.Logger
}

func NewEndpoint(reconciler Reconciler, records WorkRecordSearcher, syncer Syncer, loc *time.Location, logger *zap.Logger) *Endpoint {
	return &Endpoint{reconciler: reconciler, records: records, syncer: syncer, loc: loc, logger: logger}
}

func Register(r *gin.RouterGroup, ep *Endpoint) {
	r.POST("/reconcile", ep.Reconcile)
	r.GET("/work-records", ep.SearchWorkRecords)
	r.POST("/sync", ep.Sync)
}
