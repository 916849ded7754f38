package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"axiapac.com/timeclock/app"
	"axiapac.com/timeclock/infrastructure/communication"
	"axiapac.com/timeclock/infrastructure/mail"
	"axiapac.com/timeclock/pipeline"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// WorkerEvent is the scheduler payload. An empty event runs the daily job.
type WorkerEvent struct {
	// Devices limits the run to a plain sync of these devices.
	Devices []string `json:"devices"`
	// SkipPublish keeps the daily report off S3, email and Slack.
	SkipPublish bool `json:"skipPublish"`
}

type WorkerResult struct {
	Daily *pipeline.DailyReport `json:"daily,omitempty"`
	Sync  *pipeline.SyncOutcome `json:"sync,omitempty"`
}

func HandleRequest(ctx context.Context, event WorkerEvent) (*WorkerResult, error) {
	a, err := app.New(ctx, os.Getenv("TIMECLOCK_CONFIG"))
	if err != nil {
		return nil, err
	}
	defer a.Close()

	if len(event.Devices) > 0 {
		outcome, err := a.Runner.Sync(ctx, event.Devices)
		if err != nil {
			return nil, err
		}
		return &WorkerResult{Sync: outcome}, nil
	}

	daily, err := a.Runner.RunDaily(ctx)
	if err != nil {
		return nil, err
	}
	if !event.SkipPublish {
		publisher, err := newPublisher(ctx, a)
		if err != nil {
			return nil, err
		}
		if err := publisher.Publish(ctx, daily); err != nil {
			a.Logger.Error("publish failed", zap.Error(err))
		}
	}
	if daily.Failed() {
		a.Logger.Warn("daily run finished with errors", zap.Strings("errors", daily.Errors))
	}
	return &WorkerResult{Daily: daily}, nil
}

func newPublisher(ctx context.Context, a *app.App) (*pipeline.Publisher, error) {
	cfg := a.Config

	var mailer pipeline.Mailer
	if len(cfg.Report.EmailTo) > 0 {
		sender, err := mail.NewSender(ctx)
		if err != nil {
			return nil, err
		}
		mailer = sender
	}

	slack := communication.NewSlack(cfg.Slack.Token, communication.SlackOption{
		InfoChannelID:  cfg.Slack.InfoChannel,
		ErrorChannelID: cfg.Slack.ErrorChannel,
	})

	return pipeline.NewPublisher(a.Objects, mailer, slack, pipeline.PublishOptions{
		Bucket:    cfg.Report.Bucket,
		Prefix:    cfg.Report.Prefix,
		EmailFrom: cfg.Report.EmailFrom,
		EmailTo:   cfg.Report.EmailTo,
	}, a.Logger.Named("publish")), nil
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	// local run
	skipPublish := flag.Bool("skip-publish", true, "do not publish the daily report")
	flag.Parse()
	_ = godotenv.Load()

	result, err := HandleRequest(context.Background(), WorkerEvent{
		Devices:     flag.Args(),
		SkipPublish: *skipPublish,
	})
	if err != nil {
		log.Fatalf("sync worker failed: %v", err)
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}
