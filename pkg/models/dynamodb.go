package models

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SortKeyLayout is the fixed-width UTC layout of time attributes that are
// index sort keys. Every value has nine fractional digits, so string order
// is time order. It still parses as RFC 3339.
const SortKeyLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SortKeyTime encodes t for use as, or comparison against, a sort key.
func SortKeyTime(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: t.UTC().Format(SortKeyLayout)}
}

// MarshalDynamoDBAttributeValue encodes created_at as a sort key.
func (t Transaction) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	type record Transaction
	return withSortKey(record(t), "created_at", t.CreatedAt)
}

// MarshalDynamoDBAttributeValue encodes start_time as a sort key.
func (m Match) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	type record Match
	return withSortKey(record(m), "start_time", m.StartTime)
}

func withSortKey(v interface{}, name string, t time.Time) (types.AttributeValue, error) {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return nil, err
	}
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("expected map attribute, got %T", av)
	}
	m.Value[name] = SortKeyTime(t)
	return m, nil
}
