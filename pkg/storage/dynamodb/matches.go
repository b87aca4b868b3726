package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/squad-arena/pkg/models"
	"github.com/chris/squad-arena/pkg/storage"
)

// CreateMatch creates a new match document in DynamoDB.
func (s *Store) CreateMatch(ctx context.Context, match *models.Match) (*models.Match, error) {
	av, err := attributevalue.MarshalMap(match)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal match: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.MatchesTableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("%w: ID %s", storage.ErrMatchExists, match.ID)
		}
		return nil, fmt.Errorf("failed to create match in DynamoDB: %w", err)
	}

	return match, nil
}

// GetMatch retrieves a match from DynamoDB by its ID.
func (s *Store) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.MatchesTableName),
		Key:            map[string]types.AttributeValue{"id": stringAV(matchID)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get match from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: ID %s", storage.ErrMatchNotFound, matchID)
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(result.Item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}

// ListMatches scans every match, or queries the status index when status is set.
func (s *Store) ListMatches(ctx context.Context, status models.MatchStatus) ([]models.Match, error) {
	if status == "" {
		items, err := s.scanAll(ctx, s.MatchesTableName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan matches table: %w", err)
		}

		var matches []models.Match
		if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
		}
		return matches, nil
	}

	return s.queryMatches(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.MatchesTableName),
		IndexName:              aws.String(statusMatchIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": stringAV(string(status)),
		},
	})
}

// ListMatchesStartedBefore retrieves matches in status whose start time is at or before t.
func (s *Store) ListMatchesStartedBefore(ctx context.Context, status models.MatchStatus, t time.Time) ([]models.Match, error) {
	return s.queryMatches(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.MatchesTableName),
		IndexName:              aws.String(statusMatchIndex),
		KeyConditionExpression: aws.String("#status = :status AND start_time <= :t"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": stringAV(string(status)),
			":t":      models.SortKeyTime(t),
		},
	})
}

func (s *Store) queryMatches(ctx context.Context, input *dynamodb.QueryInput) ([]models.Match, error) {
	items, err := s.queryAll(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches by status: %w", err)
	}

	var matches []models.Match
	if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
	}

	return matches, nil
}

// UpdateMatchDetails replaces the admin-editable fields of a match that is
// still upcoming or live. max_players may not drop below active_count.
func (s *Store) UpdateMatchDetails(ctx context.Context, match *models.Match) (*models.Match, error) {
	distAV, err := attributevalue.Marshal(match.PrizeDistribution)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prize distribution: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.MatchesTableName),
		Key:       map[string]types.AttributeValue{"id": stringAV(match.ID)},
		UpdateExpression: aws.String("SET #name = :name, entry_fee = :fee, prize_pool = :pool, max_players = :max, " +
			"#map = :map, start_time = :start, prize_distribution = :dist, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("attribute_exists(id) AND (#status = :upcoming OR #status = :live) AND active_count <= :max"),
		ExpressionAttributeNames: map[string]string{
			"#name":   "name",
			"#map":    "map",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":     stringAV(match.Name),
			":fee":      numberAV(match.EntryFee),
			":pool":     numberAV(match.PrizePool),
			":max":      numberAV(int64(match.MaxPlayers)),
			":map":      stringAV(string(match.Map)),
			":start":    models.SortKeyTime(match.StartTime),
			":dist":     distAV,
			":now":      nowAV,
			":inc":      numberAV(1),
			":upcoming": stringAV(string(models.MatchUpcoming)),
			":live":     stringAV(string(models.MatchLive)),
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	return s.updateMatch(ctx, match.ID, input, func(current *models.Match) error {
		if current.Status.Terminal() {
			return fmt.Errorf("%w: match is %s", storage.ErrInvalidMatchState, current.Status)
		}
		if current.ActiveCount > match.MaxPlayers {
			return fmt.Errorf("%w: %d players registered", storage.ErrCapacityBelowRegistrations, current.ActiveCount)
		}
		return nil
	})
}

// TransitionMatchStatus moves a match from one status to another. The write
// only succeeds while the stored status is still from.
func (s *Store) TransitionMatchStatus(ctx context.Context, matchID string, from, to models.MatchStatus) (*models.Match, error) {
	nowAV, err := attributevalue.Marshal(now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.MatchesTableName),
		Key:                 map[string]types.AttributeValue{"id": stringAV(matchID)},
		UpdateExpression:    aws.String("SET #status = :to, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("#status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": stringAV(string(from)),
			":to":   stringAV(string(to)),
			":now":  nowAV,
			":inc":  numberAV(1),
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	return s.updateMatch(ctx, matchID, input, func(current *models.Match) error {
		return fmt.Errorf("%w: match is %s, not %s", storage.ErrInvalidMatchState, current.Status, from)
	})
}

// updateMatch runs a conditional update returning the new document. When the
// condition fails the match is re-read and classify names the rule that was
// broken; a nil result from classify means the write lost a race.
func (s *Store) updateMatch(ctx context.Context, matchID string, input *dynamodb.UpdateItemInput, classify func(*models.Match) error) (*models.Match, error) {
	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, s.matchFailure(ctx, matchID, classify)
		}
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(result.Attributes, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}

func (s *Store) matchFailure(ctx context.Context, matchID string, classify func(*models.Match) error) error {
	current, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if err := classify(current); err != nil {
		return err
	}
	return storage.ErrConcurrentUpdate
}
