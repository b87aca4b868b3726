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

// CreatePendingTransaction records a deposit that waits for the payment
// gateway. The wallet is not touched until the deposit settles.
func (s *Store) CreatePendingTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	prepareTransaction(tx, models.PENDING)

	av, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TransactionsTableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrDuplicateReference, tx.ReferenceID)
		}
		return nil, fmt.Errorf("failed to put pending transaction: %w", err)
	}

	return tx, nil
}

// SettleDeposit finalises a pending deposit. A successful deposit flips the
// status and credits the wallet in one transaction; a failed one only flips
// the status.
func (s *Store) SettleDeposit(ctx context.Context, txID string, succeeded bool) (*models.Transaction, error) {
	tx, err := s.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.PENDING {
		return nil, fmt.Errorf("%w: transaction %s is %s", storage.ErrDepositNotPending, txID, tx.Status)
	}

	tx.UpdatedAt = now()
	statusUpdate, err := s.pendingStatusUpdate(tx, succeeded)
	if err != nil {
		return nil, err
	}

	if !succeeded {
		tx.Status = models.FAILED
		_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 statusUpdate.TableName,
			Key:                       statusUpdate.Key,
			UpdateExpression:          statusUpdate.UpdateExpression,
			ConditionExpression:       statusUpdate.ConditionExpression,
			ExpressionAttributeNames:  statusUpdate.ExpressionAttributeNames,
			ExpressionAttributeValues: statusUpdate.ExpressionAttributeValues,
		})
		if err != nil {
			if isConditionalCheckFailed(err) {
				return nil, fmt.Errorf("%w: transaction %s", storage.ErrDepositNotPending, txID)
			}
			return nil, fmt.Errorf("failed to mark deposit as failed: %w", err)
		}
		return tx, nil
	}

	tx.Status = models.SUCCESS
	walletUpdate, err := s.walletBalanceUpdate(tx)
	if err != nil {
		return nil, err
	}

	slog.Log(ctx, slog.LevelDebug, "settling deposit", "transaction_id", tx.ID, "user_id", tx.UserID, "amount", tx.Amount)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Move the transaction from pending to success.
				Update: statusUpdate,
			},
			{
				// Operation 2: Credit the wallet.
				Update: walletUpdate,
			},
		},
	})
	if err != nil {
		reasons := cancellationReasons(err)
		switch {
		case failedAt(reasons, 0):
			return nil, fmt.Errorf("%w: transaction %s", storage.ErrDepositNotPending, txID)
		case failedAt(reasons, 1):
			return nil, s.walletFailure(ctx, tx)
		case reasons != nil:
			return nil, storage.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("failed to settle deposit: %w", err)
	}

	return tx, nil
}

// pendingStatusUpdate builds the pending -> success|failed update of tx.
func (s *Store) pendingStatusUpdate(tx *models.Transaction, succeeded bool) (*types.Update, error) {
	tsAV, err := attributevalue.Marshal(tx.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	next := models.FAILED
	if succeeded {
		next = models.SUCCESS
	}

	return &types.Update{
		TableName:           aws.String(s.TransactionsTableName),
		Key:                 map[string]types.AttributeValue{"id": stringAV(tx.ID)},
		UpdateExpression:    aws.String("SET #status = :next, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next":    stringAV(string(next)),
			":pending": stringAV(string(models.PENDING)),
			":now":     tsAV,
		},
	}, nil
}
