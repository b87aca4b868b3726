package dynamodb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
)

// GetTransaction retrieves a transaction from DynamoDB by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": txID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.TransactionsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: ID %s", storage.ErrTransactionNotFound, txID)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// ListTransactions retrieves one page of a user's transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID string, limit int32, cursor string) (*models.TransactionPage, error) {
	startKey, err := decodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(userTransactionsIndex),
		KeyConditionExpression: aws.String("user_id = :userID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": stringAV(userID),
		},
		ScanIndexForward:  aws.Bool(false), // Sort by created_at in descending order
		Limit:             aws.Int32(limit),
		ExclusiveStartKey: startKey,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for transactions by user ID: %w", err)
	}

	page := &models.TransactionPage{}
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &page.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	page.NextCursor, err = encodeCursor(result.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}

	return page, nil
}

// GetStalePendingTransactions retrieves transactions that have been pending for longer than maxAge.
func (s *Store) GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(statusTransactionIndex),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": stringAV(string(models.PENDING)),
			":cutoff": models.SortKeyTime(now().Add(-maxAge)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query for stale pending transactions: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stale pending transactions: %w", err)
	}

	return transactions, nil
}

// encodeCursor turns a LastEvaluatedKey into an opaque page token. Every key
// attribute of the transactions table and its index is a string.
func encodeCursor(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}

	var plain map[string]string
	if err := attributevalue.UnmarshalMap(key, &plain); err != nil {
		return "", fmt.Errorf("failed to unmarshal page key: %w", err)
	}

	raw, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("failed to encode page key: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	if cursor == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed cursor", storage.ErrInvalidCursor)
	}

	var plain map[string]string
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("%w: malformed cursor", storage.ErrInvalidCursor)
	}

	key, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page key: %w", err)
	}

	return key, nil
}
