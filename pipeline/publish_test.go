package pipeline

import (
	"context"
	"testing"

	"axiapac.com/timeclock/core"
	"axiapac.com/timeclock/ingest"
	"axiapac.com/timeclock/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleReport() *DailyReport {
	return &DailyReport{
		Date: "2025-12-27",
		Sync: &SyncOutcome{Sync: &ingest.SyncResult{Devices: []ingest.DeviceResult{
			{DeviceID: "gate", NewEvents: 5, Errors: []string{}},
			{DeviceID: "canteen", NewEvents: 2, Errors: []string{}},
		}}},
		Reconcile: &core.ReconcileResult{Processed: 3, Complete: 2, Incomplete: 1, Errors: []string{}},
		Status: &core.CreditStatus{
			Attendance: core.AttendanceSummary{UniqueEmployees: 3},
			Credits:    core.CreditSummary{LunchAvailable: 3, OTMealAvailable: 1},
		},
		Credits: []model.MealCredit{{LunchAvailable: true, Employee: &model.Employee{Code: "101"}}},
		Errors:  []string{},
	}
}

func TestPublish_AllChannels(t *testing.T) {
	objects, mailer, notifier := &fakeObjects{}, &fakeMailer{}, &fakeNotifier{}
	publisher := NewPublisher(objects, mailer, notifier, PublishOptions{
		Bucket:    "reports",
		Prefix:    "meal-credits/",
		EmailFrom: "timeclock@example.com",
		EmailTo:   []string{"hr@example.com"},
	}, zap.NewNop())

	require.NoError(t, publisher.Publish(context.Background(), sampleReport()))

	assert.Contains(t, objects.written, "reports/meal-credits/meal-credits-2025-12-27.xlsx")
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Meal credits 2025-12-27", mailer.sent[0].Subject)
	require.Len(t, mailer.sent[0].Attachments, 1)
	assert.Equal(t, "meal-credits-2025-12-27.xlsx", mailer.sent[0].Attachments[0].Filename)
	assert.Len(t, notifier.info, 1)
	assert.Empty(t, notifier.errors)
}

func TestPublish_FailureGoesToErrorChannel(t *testing.T) {
	objects, notifier := &fakeObjects{err: errStore}, &fakeNotifier{}
	publisher := NewPublisher(objects, nil, notifier, PublishOptions{Bucket: "reports"}, zap.NewNop())

	daily := sampleReport()
	daily.Sync.Sync.Devices[0].Errors = []string{"fetch events: timeout"}

	err := publisher.Publish(context.Background(), daily)
	assert.ErrorIs(t, err, errStore)
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "gate: fetch events: timeout")
}

func TestSummary(t *testing.T) {
	text := Summary(sampleReport())

	assert.Contains(t, text, "Timeclock daily run 2025-12-27")
	assert.Contains(t, text, "devices: 2 (0 failed), new scans: 7")
	assert.Contains(t, text, "work records: 3 processed, 2 complete, 1 incomplete")
	assert.Contains(t, text, "meal credits: 3 lunch, 1 OT meal (attendance 3)")
	assert.NotContains(t, text, "!")
}
