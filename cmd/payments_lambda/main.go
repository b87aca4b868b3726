package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/squad-arena/pkg/config"
	"github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/notify"
	"github.com/chris/squad-arena/pkg/storage"
	dydbstore "github.com/chris/squad-arena/pkg/storage/dynamodb"
)

// Callback is the payment gateway's verdict on a deposit, as queued by the
// gateway webhook.
type Callback struct {
	TransactionID string `json:"transaction_id"`
	Succeeded     bool   `json:"succeeded"`
}

type depositCompleter interface {
	CompleteDeposit(ctx context.Context, txID string, succeeded bool) (*models.Transaction, error)
}

var deposits depositCompleter

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

	deposits = ledger.NewService(store, publisher)
}

// HandleRequest settles one pending deposit per SQS message. Messages that
// can never succeed are logged and dropped; the rest are reported back as
// batch failures so SQS retries only those.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, message := range sqsEvent.Records {
		var cb Callback
		if err := json.Unmarshal([]byte(message.Body), &cb); err != nil || cb.TransactionID == "" {
			log.Printf("ERROR: dropping malformed callback %s: %v", message.MessageId, err)
			continue
		}

		tx, err := deposits.CompleteDeposit(ctx, cb.TransactionID, cb.Succeeded)
		switch {
		case err == nil:
			log.Printf("Deposit %s settled as %s", tx.ID, tx.Status)
		case errors.Is(err, storage.ErrDepositNotPending), errors.Is(err, storage.ErrNotFound):
			log.Printf("Ignoring callback for deposit %s: %v", cb.TransactionID, err)
		default:
			log.Printf("ERROR: failed to settle deposit %s: %v", cb.TransactionID, err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
		}
	}

	return resp, nil
}

func main() {
	bootstrap()
	lambda.Start(HandleRequest)
}
