// Package pipeline strings the ingestion, reconciliation and credit steps into
// the runs the server and the scheduled worker trigger.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"axiapac.com/timeclock/core"
	"axiapac.com/timeclock/ingest"
	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/utils"
	"go.uber.org/zap"
)

var ErrUnknownDevice = errors.New("unknown device")

type DeviceSyncer interface {
	SyncAll(ctx context.Context, devices []ingest.Device) (*ingest.SyncResult, error)
}

type Granter interface {
	GrantForDate(ctx context.Context, date time.Time, grantOT bool) (*core.GrantResult, error)
	Status(ctx context.Context, date time.Time) (*core.CreditStatus, error)
	Credits(ctx context.Context, date time.Time) ([]model.MealCredit, error)
}

type RecordReconciler interface {
	Reconcile(ctx context.Context, startDate, endDate time.Time) (*core.ReconcileResult, error)
}

type Options struct {
	GrantAfterSync   bool
	GrantOTAfterSync bool
	Location         *time.Location
	Now              func() time.Time
}

type Runner struct {
	syncer     DeviceSyncer
	devices    []ingest.Device
	granter    Granter
	reconciler RecordReconciler
	opts       Options
	logger     *zap.Logger
}

func NewRunner(syncer DeviceSyncer, devices []ingest.Device, granter Granter, reconciler RecordReconciler, opts Options, logger *zap.Logger) *Runner {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{
		syncer:     syncer,
		devices:    devices,
		granter:    granter,
		reconciler: reconciler,
		opts:       opts,
		logger:     logger,
	}
}

type SyncOutcome struct {
	Sync       *ingest.SyncResult `json:"sync"`
	Grant      *core.GrantResult  `json:"grant,omitempty"`
	GrantError string             `json:"grantError,omitempty"`
}

// Sync pulls the selected devices, all of them when ids is empty, then grants
// today's lunch credits when configured to and the run stored new scans.
func (r *Runner) Sync(ctx context.Context, ids []string) (*SyncOutcome, error) {
	devices, err := r.selectDevices(ids)
	if err != nil {
		return nil, err
	}

	result, err := r.syncer.SyncAll(ctx, devices)
	if err != nil {
		return nil, err
	}
	outcome := &SyncOutcome{Sync: result}

	if r.opts.GrantAfterSync && result.NewEvents() > 0 {
		today := r.opts.Now().In(r.opts.Location)
		grant, err := r.granter.GrantForDate(ctx, today, r.opts.GrantOTAfterSync)
		if err != nil {
			r.logger.Error("post-sync grant failed", zap.Error(err))
			outcome.GrantError = err.Error()
		} else {
			outcome.Grant = grant
		}
	}
	return outcome, nil
}

func (r *Runner) selectDevices(ids []string) ([]ingest.Device, error) {
	if len(ids) == 0 {
		return r.devices, nil
	}
	byID := make(map[string]ingest.Device, len(r.devices))
	for _, d := range r.devices {
		byID[d.ID] = d
	}

	selected := make([]ingest.Device, 0, len(ids))
	for _, id := range utils.Unique(ids) {
		d, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDevice, id)
		}
		selected = append(selected, d)
	}
	return selected, nil
}

type DailyReport struct {
	Date      string                `json:"date"`
	Sync      *SyncOutcome          `json:"sync"`
	Reconcile *core.ReconcileResult `json:"reconcile,omitempty"`
	Status    *core.CreditStatus    `json:"status,omitempty"`
	Credits   []model.MealCredit    `json:"-"`
	Errors    []string              `json:"errors"`
}

func (d *DailyReport) Failed() bool {
	if len(d.Errors) > 0 {
		return true
	}
	if d.Sync != nil {
		if (d.Sync.Sync != nil && d.Sync.Sync.Failed()) || d.Sync.GrantError != "" {
			return true
		}
		if d.Sync.Grant != nil && len(d.Sync.Grant.Errors) > 0 {
			return true
		}
	}
	return d.Reconcile != nil && len(d.Reconcile.Errors) > 0
}

// RunDaily syncs every device (with the post-sync grant that Sync applies),
// rebuilds yesterday's and today's work records and collects today's credit
// picture.
func (r *Runner) RunDaily(ctx context.Context) (*DailyReport, error) {
	now := r.opts.Now().In(r.opts.Location)

	outcome, err := r.Sync(ctx, nil)
	if err != nil {
		return nil, err
	}
	report := &DailyReport{
		Date:   now.Format(utils.DateLayout),
		Sync:   outcome,
		Errors: []string{},
	}

	reconciled, err := r.reconciler.Reconcile(ctx, now.AddDate(0, 0, -1), now)
	if err != nil {
		r.logger.Error("reconcile failed", zap.Error(err))
		report.Errors = append(report.Errors, fmt.Sprintf("reconcile: %v", err))
	}
	report.Reconcile = reconciled

	status, err := r.granter.Status(ctx, now)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("credit status: %v", err))
	}
	report.Status = status

	credits, err := r.granter.Credits(ctx, now)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("credit list: %v", err))
	}
	report.Credits = credits

	return report, nil
}
