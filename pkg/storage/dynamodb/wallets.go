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

// CreateWallet creates a new wallet record in DynamoDB. When an opening
// transaction is given, the wallet and its first ledger entry are written
// together so the log always reconstructs the balance.
func (s *Store) CreateWallet(ctx context.Context, wallet *models.Wallet, opening *models.Transaction) (*models.Wallet, error) {
	// Marshal the wallet object for the Put operation.
	walletAV, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	if opening == nil {
		_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(s.WalletsTableName),
			Item:                walletAV,
			ConditionExpression: aws.String("attribute_not_exists(user_id)"), // Prevent overwriting existing wallets.
		})
		if err != nil {
			if isConditionalCheckFailed(err) {
				return nil, fmt.Errorf("%w: user ID %s", storage.ErrWalletExists, wallet.UserID)
			}
			return nil, fmt.Errorf("failed to create wallet in DynamoDB: %w", err)
		}
		return wallet, nil
	}

	txAV, err := attributevalue.MarshalMap(opening)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal opening transaction: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the wallet.
				Put: &types.Put{
					TableName:           aws.String(s.WalletsTableName),
					Item:                walletAV,
					ConditionExpression: aws.String("attribute_not_exists(user_id)"),
				},
			},
			{
				// Operation 2: Record the opening balance as a credit.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		reasons := cancellationReasons(err)
		if failedAt(reasons, 0) {
			return nil, fmt.Errorf("%w: user ID %s", storage.ErrWalletExists, wallet.UserID)
		}
		if failedAt(reasons, 1) {
			return nil, storage.ErrDuplicateReference
		}
		return nil, fmt.Errorf("failed to create wallet in DynamoDB: %w", err)
	}

	return wallet, nil
}

// GetWallet retrieves a user's wallet from DynamoDB by their user ID.
func (s *Store) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet user ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.WalletsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: user ID %s", storage.ErrWalletNotFound, userID)
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Item, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return &wallet, nil
}

// ListWallets retrieves all wallets from DynamoDB.
func (s *Store) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	items, err := s.scanAll(ctx, s.WalletsTableName)
	if err != nil {
		return nil, fmt.Errorf("failed to scan wallets table: %w", err)
	}

	var wallets []models.Wallet
	if err := attributevalue.UnmarshalListOfMaps(items, &wallets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallets: %w", err)
	}

	return wallets, nil
}

// SetWalletStatus changes the moderation status of a wallet. Closed wallets
// cannot be reopened.
func (s *Store) SetWalletStatus(ctx context.Context, userID string, status models.WalletStatus) (*models.Wallet, error) {
	nowAV, err := attributevalue.Marshal(now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.WalletsTableName),
		Key:                 map[string]types.AttributeValue{"user_id": stringAV(userID)},
		UpdateExpression:    aws.String("SET #status = :status, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("attribute_exists(user_id) AND #status <> :closed"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": stringAV(string(status)),
			":closed": stringAV(string(models.WalletClosed)),
			":now":    nowAV,
			":inc":    numberAV(1),
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			if _, getErr := s.GetWallet(ctx, userID); getErr != nil {
				return nil, getErr
			}
			return nil, fmt.Errorf("%w: wallet is closed", storage.ErrWalletNotActive)
		}
		return nil, fmt.Errorf("failed to update wallet status: %w", err)
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Attributes, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return &wallet, nil
}
