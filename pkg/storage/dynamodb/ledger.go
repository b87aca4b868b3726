package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
)

// ApplyTransaction atomically changes the wallet balance and appends the
// transaction record. The balance check of a debit is part of the write
// condition, so concurrent debits can never overdraw the wallet.
func (s *Store) ApplyTransaction(ctx context.Context, tx *models.Transaction) (*models.Wallet, error) {
	prepareTransaction(tx, models.SUCCESS)

	slog.Log(ctx, slog.LevelDebug, "applying transaction", "transaction", tx)

	items, err := s.ledgerItems(tx)
	if err != nil {
		return nil, err
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if reasons := cancellationReasons(err); reasons != nil {
			return nil, s.ledgerFailure(ctx, tx, reasons, 0)
		}
		return nil, fmt.Errorf("failed to execute transaction: %w", err)
	}

	// Get the updated wallet to return to the caller.
	return s.GetWallet(ctx, tx.UserID)
}

// prepareTransaction completes a transaction with server-side details.
func prepareTransaction(tx *models.Transaction, status models.TransactionStatus) {
	ts := now()
	if tx.ID == "" {
		tx.ID = models.TransactionIDFor(tx.UserID, tx.ReferenceID)
	}
	if tx.WalletID == "" {
		tx.WalletID = models.WalletIDFor(tx.UserID)
	}
	tx.Status = status
	tx.CreatedAt = ts
	tx.UpdatedAt = ts
}

// ledgerItems builds the wallet update and transaction put for a successful
// credit or debit. The wallet update is always the first item.
func (s *Store) ledgerItems(tx *models.Transaction) ([]types.TransactWriteItem, error) {
	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	walletUpdate, err := s.walletBalanceUpdate(tx)
	if err != nil {
		return nil, err
	}

	return []types.TransactWriteItem{
		{
			// Operation 1: Update the wallet balance and counters.
			Update: walletUpdate,
		},
		{
			// Operation 2: Append the transaction record.
			Put: &types.Put{
				TableName:           aws.String(s.TransactionsTableName),
				Item:                txAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}, nil
}

// walletBalanceUpdate builds the conditional balance change for tx.
func (s *Store) walletBalanceUpdate(tx *models.Transaction) (*types.Update, error) {
	tsAV, err := attributevalue.Marshal(tx.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	values := map[string]types.AttributeValue{
		":amount": numberAV(tx.Amount),
		":active": stringAV(string(models.WalletActive)),
		":now":    tsAV,
		":inc":    numberAV(1),
	}

	var update, condition string
	switch tx.Type {
	case models.CREDIT:
		update = "SET balance = balance + :amount, total_deposits = total_deposits + :amount, last_transaction_at = :now, updated_at = :now, version = version + :inc"
		condition = "attribute_exists(user_id) AND #status = :active"
	case models.DEBIT:
		update = "SET balance = balance - :amount, total_withdrawals = total_withdrawals + :amount, last_transaction_at = :now, updated_at = :now, version = version + :inc"
		condition = "attribute_exists(user_id) AND #status = :active AND balance >= :amount"
	default:
		return nil, fmt.Errorf("unknown transaction type %q", tx.Type)
	}

	return &types.Update{
		TableName:           aws.String(s.WalletsTableName),
		Key:                 map[string]types.AttributeValue{"user_id": stringAV(tx.UserID)},
		UpdateExpression:    aws.String(update),
		ConditionExpression: aws.String(condition),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: values,
	}, nil
}

// ledgerFailure maps the cancellation reasons of a write that contained
// ledgerItems starting at offset to a storage error.
func (s *Store) ledgerFailure(ctx context.Context, tx *models.Transaction, reasons []types.CancellationReason, offset int) error {
	if failedAt(reasons, offset+1) {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateReference, tx.ReferenceID)
	}
	if failedAt(reasons, offset) {
		return s.walletFailure(ctx, tx)
	}
	return fmt.Errorf("failed to execute transaction: %w", storage.ErrConcurrentUpdate)
}

// walletFailure works out why the wallet condition of tx did not hold. It
// only reads; the failed write left nothing behind.
func (s *Store) walletFailure(ctx context.Context, tx *models.Transaction) error {
	wallet, err := s.GetWallet(ctx, tx.UserID)
	if err != nil {
		return err
	}
	if wallet.Status != models.WalletActive {
		return fmt.Errorf("%w: status is %s", storage.ErrWalletNotActive, wallet.Status)
	}
	if tx.Type == models.DEBIT && wallet.Balance < tx.Amount {
		return storage.ErrInsufficientBalance
	}
	return storage.ErrConcurrentUpdate
}
