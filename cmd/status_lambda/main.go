package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/squad-arena/pkg/config"
	"github.com/chris/squad-arena/pkg/matches"
	"github.com/chris/squad-arena/pkg/notify"
	dydbstore "github.com/chris/squad-arena/pkg/storage/dynamodb"
)

var engine *matches.Engine

// bootstrap builds the dependencies once per execution environment.
func bootstrap() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.WalletsTable, cfg.TransactionsTable, cfg.MatchesTable)

	var publisher notify.Publisher
	if cfg.NotifyQueueURL != "" {
		publisher = notify.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.NotifyQueueURL)
	}

	// Affordability checks are never made by status updates.
	engine = matches.NewEngine(store, nil, publisher, matches.Config{CompleteAfter: cfg.MatchCompleteAfter})
}

// HandleRequest is triggered by an EventBridge schedule.
func HandleRequest(ctx context.Context, event events.CloudWatchEvent) error {
	now := event.Time.UTC()
	if event.Time.IsZero() {
		now = time.Now().UTC()
	}

	updated, err := engine.AutoUpdateStatuses(ctx, now)
	if err != nil {
		log.Printf("ERROR: status update finished with errors after %d changes: %v", updated, err)
		return err
	}

	log.Printf("Status update finished, %d matches changed", updated)
	return nil
}

func main() {
	bootstrap()
	lambda.Start(HandleRequest)
}
