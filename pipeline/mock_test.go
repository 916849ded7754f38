package pipeline

import (
	"context"
	"errors"
	"time"

	"axiapac.com/timeclock/core"
	"axiapac.com/timeclock/infrastructure/mail"
	"axiapac.com/timeclock/ingest"
	"axiapac.com/timeclock/model"
	"axiapac.com/timeclock/utils"
)

var (
	bangkok  = time.FixedZone("ICT", 7*60*60)
	runNow   = time.Date(2025, 12, 27, 18, 0, 0, 0, bangkok)
	errStore = errors.New("store down")
)

type fakeSyncer struct {
	synced []string
	result *ingest.SyncResult
	err    error
}

func (f *fakeSyncer) SyncAll(_ context.Context, devices []ingest.Device) (*ingest.SyncResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	res := &ingest.SyncResult{}
	if f.result != nil {
		res = f.result
	}
	for _, d := range devices {
		f.synced = append(f.synced, d.ID)
		if f.result == nil {
			res.Devices = append(res.Devices, ingest.DeviceResult{DeviceID: d.ID, NewEvents: 3, Errors: []string{}})
		}
	}
	return res, nil
}

type grantCall struct {
	date    string
	grantOT bool
}

type fakeGranter struct {
	grants    []grantCall
	grantErr  error
	statusErr error
	credits   []model.MealCredit
}

func (f *fakeGranter) GrantForDate(_ context.Context, date time.Time, grantOT bool) (*core.GrantResult, error) {
	f.grants = append(f.grants, grantCall{date: date.Format(utils.DateLayout), grantOT: grantOT})
	if f.grantErr != nil {
		return nil, f.grantErr
	}
	return &core.GrantResult{Date: date.Format(utils.DateLayout), LunchGranted: 2, Errors: []string{}}, nil
}

func (f *fakeGranter) Status(_ context.Context, date time.Time) (*core.CreditStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &core.CreditStatus{
		Date:       date.Format(utils.DateLayout),
		Attendance: core.AttendanceSummary{TotalScans: 6, UniqueEmployees: 2},
		Credits:    core.CreditSummary{Total: 2, LunchAvailable: 2},
	}, nil
}

func (f *fakeGranter) Credits(context.Context, time.Time) ([]model.MealCredit, error) {
	return f.credits, nil
}

type reconcileCall struct {
	start, end string
}

type fakeReconciler struct {
	calls []reconcileCall
	err   error
}

func (f *fakeReconciler) Reconcile(_ context.Context, start, end time.Time) (*core.ReconcileResult, error) {
	f.calls = append(f.calls, reconcileCall{start.Format(utils.DateLayout), end.Format(utils.DateLayout)})
	if f.err != nil {
		return nil, f.err
	}
	return &core.ReconcileResult{Processed: 2, Complete: 1, Incomplete: 1, Errors: []string{}}, nil
}

type fakeObjects struct {
	written map[string][]byte
	err     error
}

func (f *fakeObjects) WriteFile(_ context.Context, bucket, key string, data []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	if f.written == nil {
		f.written = map[string][]byte{}
	}
	f.written[bucket+"/"+key] = data
	return nil
}

type fakeMailer struct {
	sent []*mail.EmailInfo
}

func (f *fakeMailer) Send(_ context.Context, info *mail.EmailInfo) (string, error) {
	f.sent = append(f.sent, info)
	return "msg-1", nil
}

type fakeNotifier struct {
	info, errors []string
}

func (f *fakeNotifier) Info(m string) error {
	f.info = append(f.info, m)
	return nil
}

func (f *fakeNotifier) Error(m string) error {
	f.errors = append(f.errors, m)
	return nil
}
