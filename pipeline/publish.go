package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"axiapac.com/timeclock/infrastructure/mail"
	"axiapac.com/timeclock/report"
	"go.uber.org/zap"
)

type ObjectWriter interface {
	WriteFile(ctx context.Context, bucket string, key string, data []byte, contentType string) error
}

type Mailer interface {
	Send(ctx context.Context, info *mail.EmailInfo) (string, error)
}

type Notifier interface {
	Info(message string) error
	Error(message string) error
}

type PublishOptions struct {
	Bucket    string
	Prefix    string
	EmailFrom string
	EmailTo   []string
}

// Publisher ships the daily report: workbook to S3, workbook by email and a
// short summary to chat. Each channel is optional.
type Publisher struct {
	objects  ObjectWriter
	mailer   Mailer
	notifier Notifier
	opts     PublishOptions
	logger   *zap.Logger
}

func NewPublisher(objects ObjectWriter, mailer Mailer, notifier Notifier, opts PublishOptions, logger *zap.Logger) *Publisher {
	return &Publisher{objects: objects, mailer: mailer, notifier: notifier, opts: opts, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, daily *DailyReport) error {
	var errs []error

	workbook, err := report.BuildCreditWorkbook(daily.Date, daily.Credits)
	if err != nil {
		errs = append(errs, err)
	}
	filename := report.WorkbookFilename(daily.Date)

	if workbook != nil && p.objects != nil && p.opts.Bucket != "" {
		key := path.Join(p.opts.Prefix, filename)
		if err := p.objects.WriteFile(ctx, p.opts.Bucket, key, workbook.Bytes(), report.XLSXContentType); err != nil {
			errs = append(errs, fmt.Errorf("upload workbook: %w", err))
		} else {
			p.logger.Info("workbook uploaded", zap.String("bucket", p.opts.Bucket), zap.String("key", key))
		}
	}

	if workbook != nil && p.mailer != nil && len(p.opts.EmailTo) > 0 {
		id, err := p.mailer.Send(ctx, &mail.EmailInfo{
			From:    p.opts.EmailFrom,
			To:      p.opts.EmailTo,
			Subject: fmt.Sprintf("Meal credits %s", daily.Date),
			Text:    Summary(daily),
			Attachments: []mail.Attachment{{
				Filename:    filename,
				ContentType: report.XLSXContentType,
				Content:     workbook.Bytes(),
			}},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("email workbook: %w", err))
		} else {
			p.logger.Info("workbook emailed", zap.String("messageId", id))
		}
	}

	if p.notifier != nil {
		notify := p.notifier.Info
		if daily.Failed() {
			notify = p.notifier.Error
		}
		if err := notify(Summary(daily)); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Summary is the plain text digest of a daily run.
func Summary(daily *DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Timeclock daily run %s\n", daily.Date)

	if daily.Sync != nil && daily.Sync.Sync != nil {
		failed := 0
		for _, d := range daily.Sync.Sync.Devices {
			if len(d.Errors) > 0 {
				failed++
			}
		}
		fmt.Fprintf(&b, "devices: %d (%d failed), new scans: %d\n",
			len(daily.Sync.Sync.Devices), failed, daily.Sync.Sync.NewEvents())
	}
	if rec := daily.Reconcile; rec != nil {
		fmt.Fprintf(&b, "work records: %d processed, %d complete, %d incomplete\n",
			rec.Processed, rec.Complete, rec.Incomplete)
	}
	if st := daily.Status; st != nil {
		fmt.Fprintf(&b, "meal credits: %d lunch, %d OT meal (attendance %d)\n",
			st.Credits.LunchAvailable, st.Credits.OTMealAvailable, st.Attendance.UniqueEmployees)
	}

	var problems []string
	problems = append(problems, daily.Errors...)
	if daily.Sync != nil {
		if daily.Sync.Sync != nil {
			for _, d := range daily.Sync.Sync.Devices {
				for _, e := range d.Errors {
					problems = append(problems, d.DeviceID+": "+e)
				}
			}
			problems = append(problems, daily.Sync.Sync.Errors...)
		}
		if daily.Sync.GrantError != "" {
			problems = append(problems, "grant: "+daily.Sync.GrantError)
		}
	}
	if daily.Reconcile != nil {
		problems = append(problems, daily.Reconcile.Errors...)
	}
	for _, p := range problems {
		fmt.Fprintf(&b, "! %s\n", p)
	}
	return b.String()
}
