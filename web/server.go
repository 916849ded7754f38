package web

import (
	"net/http"
	"time"

	"axiapac.com/timeclock/web/handlers/attendance"
	"axiapac.com/timeclock/web/handlers/credits"
	"axiapac.com/timeclock/web/handlers/directory"
	"axiapac.com/timeclock/web/middlewares"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterOptions struct {
	JWTSecret []byte
	Location  *time.Location
	Logger    *zap.Logger

	Reconciler attendance.Reconciler
	Records    attendance.WorkRecordSearcher
	Syncer     attendance.Syncer
	Credits    credits.Service
	Directory  directory.Directory
}

func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.Logger(opts.Logger))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(opts.JWTSecret))
	{
		attendance.Register(protected, attendance.NewEndpoint(opts.Reconciler, opts.Records, opts.Syncer, opts.Location, opts.Logger))
		credits.Register(protected, credits.NewEndpoint(opts.Credits, opts.Location, opts.Logger))
		directory.Register(protected, directory.NewEndpoint(opts.Directory))
	}
	return r
}
