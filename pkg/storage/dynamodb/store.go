package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/squad-arena/pkg/storage"
)

//go:generate mockery --name=DynamoDBAPI --output=mocks

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                DynamoDBAPI
	WalletsTableName      string
	TransactionsTableName string
	MatchesTableName      string
}

// New creates a new Store.
func New(client DynamoDBAPI, walletsTable, transactionsTable, matchesTable string) *Store {
	return &Store{
		Client:                client,
		WalletsTableName:      walletsTable,
		TransactionsTableName: transactionsTable,
		MatchesTableName:      matchesTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

const (
	userTransactionsIndex  = "user_id-created_at-index"
	statusTransactionIndex = "status-created_at-index"
	statusMatchIndex       = "status-start_time-index"
)

func now() time.Time {
	return time.Now().UTC()
}
