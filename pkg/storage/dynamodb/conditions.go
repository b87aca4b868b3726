package dynamodb

import (
	"context"
	"errors"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const conditionalCheckFailed = "ConditionalCheckFailed"

// cancellationReasons returns the per-item reasons of a cancelled
// TransactWriteItems call, or nil when err is something else.
func cancellationReasons(err error) []types.CancellationReason {
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		return tce.CancellationReasons
	}
	return nil
}

// failedAt reports whether the item at index i failed its condition.
func failedAt(reasons []types.CancellationReason, i int) bool {
	if i < 0 || i >= len(reasons) || reasons[i].Code == nil {
		return false
	}
	return *reasons[i].Code == conditionalCheckFailed
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func numberAV(n int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}

func stringAV(s string) *types.AttributeValueMemberS {
	return &types.AttributeValueMemberS{Value: s}
}

// queryAll follows LastEvaluatedKey until the query is exhausted.
func (s *Store) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	in := *input
	var items []map[string]types.AttributeValue
	for {
		out, err := s.Client.Query(ctx, &in)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// scanAll reads every item of a table, one page at a time.
func (s *Store) scanAll(ctx context.Context, tableName string) ([]map[string]types.AttributeValue, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(tableName)}
	var items []map[string]types.AttributeValue
	for {
		out, err := s.Client.Scan(ctx, in)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
