package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/squad-arena/pkg/config"
	"github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/models"
	dydbstore "github.com/chris/squad-arena/pkg/storage/dynamodb"
)

type walletLister interface {
	ListWallets(ctx context.Context) ([]models.Wallet, error)
}

type auditor interface {
	Audit(ctx context.Context, userID string) (*ledger.AuditReport, error)
	FailStaleDeposits(ctx context.Context, maxAge time.Duration) (int, error)
}

var (
	wallets         walletLister
	ledgerService   auditor
	staleDepositAge time.Duration
)

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
	wallets = store
	ledgerService = ledger.NewService(store, nil)
	staleDepositAge = cfg.StaleDepositAge
}

// HandleRequest is triggered by an EventBridge Schedule. It expires deposits
// the gateway never answered and then audits every wallet against its ledger.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation...")

	var errs []error

	failed, err := ledgerService.FailStaleDeposits(ctx, staleDepositAge)
	if err != nil {
		log.Printf("ERROR: failed to expire stale deposits: %v", err)
		errs = append(errs, err)
	}
	log.Printf("Expired %d stale deposits older than %s", failed, staleDepositAge)

	all, err := wallets.ListWallets(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list wallets: %v", err)
		return errors.Join(append(errs, err)...)
	}

	var inconsistent int
	for _, w := range all {
		report, err := ledgerService.Audit(ctx, w.UserID)
		if err != nil {
			log.Printf("ERROR: failed to audit wallet of %s: %v", w.UserID, err)
			// Continue to the next wallet, don't let one failure stop the whole batch.
			errs = append(errs, err)
			continue
		}
		if !report.Consistent {
			inconsistent++
			log.Printf("ALERT: wallet of %s is inconsistent: balance=%d credits=%d debits=%d deposits=%d withdrawals=%d",
				w.UserID, report.Balance, report.Credits, report.Debits, report.TotalDeposits, report.TotalWithdrawals)
		}
	}

	log.Printf("Reconciliation finished: %d wallets audited, %d inconsistent.", len(all), inconsistent)

	if inconsistent > 0 {
		errs = append(errs, fmt.Errorf("%d inconsistent wallets", inconsistent))
	}
	return errors.Join(errs...)
}

func main() {
	bootstrap()
	lambda.Start(HandleRequest)
}
