package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
)

// RecordResults writes the final results and completes the match. Results
// can only be written once.
func (s *Store) RecordResults(ctx context.Context, matchID string, results *models.Results) (*models.Match, error) {
	resultsAV, err := attributevalue.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.MatchesTableName),
		Key:              map[string]types.AttributeValue{"id": stringAV(matchID)},
		UpdateExpression: aws.String("SET results = :results, #status = :completed, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("attribute_exists(id) AND (#status = :live OR #status = :completed) " +
			"AND (attribute_not_exists(results) OR results.is_completed = :false)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":results":   resultsAV,
			":completed": stringAV(string(models.MatchCompleted)),
			":live":      stringAV(string(models.MatchLive)),
			":false":     &types.AttributeValueMemberBOOL{Value: false},
			":now":       nowAV,
			":inc":       numberAV(1),
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	return s.updateMatch(ctx, matchID, input, func(current *models.Match) error {
		if current.ResultsRecorded() {
			return storage.ErrResultsAlreadyRecorded
		}
		if current.Status != models.MatchLive && current.Status != models.MatchCompleted {
			return fmt.Errorf("%w: match is %s", storage.ErrInvalidMatchState, current.Status)
		}
		return nil
	})
}
