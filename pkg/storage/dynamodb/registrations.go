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

// AddRegistration appends reg to the match and, when fee is set, debits the
// entry fee in the same transaction. Capacity, duplicate entry, status and
// balance are all conditions of the one write, as is the entry fee the
// caller read so an edited fee cannot be charged at the old price.
func (s *Store) AddRegistration(ctx context.Context, matchID string, reg models.Registration, fee *models.Transaction) (*models.Match, error) {
	entryAV, err := attributevalue.Marshal([]models.Registration{reg})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registration: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: Claim a slot in the match.
			Update: &types.Update{
				TableName: aws.String(s.MatchesTableName),
				Key:       map[string]types.AttributeValue{"id": stringAV(matchID)},
				UpdateExpression: aws.String("SET registered_players = list_append(if_not_exists(registered_players, :empty), :entry), " +
					"active_count = active_count + :inc, updated_at = :now, version = version + :inc ADD active_user_ids :uidset"),
				ConditionExpression: aws.String("attribute_exists(id) AND #status = :upcoming AND entry_fee = :fee " +
					"AND active_count < max_players AND NOT contains(active_user_ids, :uid)"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":empty":    &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
					":fee":      numberAV(reg.EntryFeePaid),
					":entry":    entryAV,
					":inc":      numberAV(1),
					":now":      nowAV,
					":uidset":   &types.AttributeValueMemberSS{Value: []string{reg.UserID}},
					":uid":      stringAV(reg.UserID),
					":upcoming": stringAV(string(models.MatchUpcoming)),
				},
			},
		},
	}

	if fee != nil {
		prepareTransaction(fee, models.SUCCESS)
		feeItems, err := s.ledgerItems(fee)
		if err != nil {
			return nil, err
		}
		// Operations 2 and 3: Debit the entry fee and record it.
		items = append(items, feeItems...)
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		reasons := cancellationReasons(err)
		if reasons == nil {
			return nil, fmt.Errorf("failed to register for match: %w", err)
		}
		if failedAt(reasons, 0) {
			return nil, s.matchFailure(ctx, matchID, func(current *models.Match) error {
				if current.Status != models.MatchUpcoming {
					return fmt.Errorf("%w: registration is closed, match is %s", storage.ErrInvalidMatchState, current.Status)
				}
				if _, existing := current.Registration(reg.UserID); existing != nil {
					return storage.ErrAlreadyRegistered
				}
				if current.ActiveCount >= current.MaxPlayers {
					return storage.ErrMatchFull
				}
				return nil
			})
		}
		if fee != nil {
			return nil, s.ledgerFailure(ctx, fee, reasons, 1)
		}
		return nil, storage.ErrConcurrentUpdate
	}

	return s.GetMatch(ctx, matchID)
}

// CancelRegistration flips the registration at index to cancelled and frees
// its slot. A refund, when given, is credited in the same transaction and
// is only allowed while the entry is still unconfirmed.
func (s *Store) CancelRegistration(ctx context.Context, matchID string, index int, userID string, refund *models.Transaction) (*models.Match, error) {
	nowAV, err := attributevalue.Marshal(now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	entry := fmt.Sprintf("registered_players[%d]", index)
	entryCondition := entry + ".#status IN (:registered, :confirmed)"
	if refund != nil {
		entryCondition = entry + ".#status = :registered"
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: Cancel the entry and release the slot.
			Update: &types.Update{
				TableName: aws.String(s.MatchesTableName),
				Key:       map[string]types.AttributeValue{"id": stringAV(matchID)},
				UpdateExpression: aws.String("SET " + entry + ".#status = :cancelled, " + entry + ".updated_at = :now, " +
					"active_count = active_count - :inc, updated_at = :now, version = version + :inc DELETE active_user_ids :uidset"),
				ConditionExpression: aws.String("(#status = :upcoming OR #status = :live) AND " +
					entry + ".user_id = :uid AND " + entryCondition),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":cancelled":  stringAV(string(models.RegistrationCancelled)),
					":registered": stringAV(string(models.RegistrationRegistered)),
					":confirmed":  stringAV(string(models.RegistrationConfirmed)),
					":upcoming":   stringAV(string(models.MatchUpcoming)),
					":live":       stringAV(string(models.MatchLive)),
					":uid":        stringAV(userID),
					":uidset":     &types.AttributeValueMemberSS{Value: []string{userID}},
					":now":        nowAV,
					":inc":        numberAV(1),
				},
			},
		},
	}

	if refund != nil {
		prepareTransaction(refund, models.SUCCESS)
		refundItems, err := s.ledgerItems(refund)
		if err != nil {
			return nil, err
		}
		// Operations 2 and 3: Credit the refund and record it.
		items = append(items, refundItems...)
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		reasons := cancellationReasons(err)
		if reasons == nil {
			return nil, fmt.Errorf("failed to leave match: %w", err)
		}
		if failedAt(reasons, 0) {
			return nil, s.matchFailure(ctx, matchID, registrationFailure(userID))
		}
		if refund != nil {
			return nil, s.ledgerFailure(ctx, refund, reasons, 1)
		}
		return nil, storage.ErrConcurrentUpdate
	}

	return s.GetMatch(ctx, matchID)
}

// ConfirmRegistration moves the registration at index from registered to confirmed.
func (s *Store) ConfirmRegistration(ctx context.Context, matchID string, index int, userID string) (*models.Match, error) {
	nowAV, err := attributevalue.Marshal(now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	entry := fmt.Sprintf("registered_players[%d]", index)
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.MatchesTableName),
		Key:       map[string]types.AttributeValue{"id": stringAV(matchID)},
		UpdateExpression: aws.String("SET " + entry + ".#status = :confirmed, " + entry + ".updated_at = :now, " +
			"updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("(#status = :upcoming OR #status = :live) AND " +
			entry + ".user_id = :uid AND " + entry + ".#status = :registered"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":confirmed":  stringAV(string(models.RegistrationConfirmed)),
			":registered": stringAV(string(models.RegistrationRegistered)),
			":upcoming":   stringAV(string(models.MatchUpcoming)),
			":live":       stringAV(string(models.MatchLive)),
			":uid":        stringAV(userID),
			":now":        nowAV,
			":inc":        numberAV(1),
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	return s.updateMatch(ctx, matchID, input, registrationFailure(userID))
}

// registrationFailure classifies a failed write against userID's entry.
func registrationFailure(userID string) func(*models.Match) error {
	return func(current *models.Match) error {
		if current.Status.Terminal() {
			return fmt.Errorf("%w: match is %s", storage.ErrInvalidMatchState, current.Status)
		}
		if _, reg := current.Registration(userID); reg == nil {
			return storage.ErrNotRegistered
		}
		return nil
	}
}
