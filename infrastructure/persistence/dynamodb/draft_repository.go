package dynamodb

import (
	"context"
	"fmt"
	"time"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/domain/draft"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	draftKeyPrefix = "DRAFT#"
	userKeyPrefix  = "USER#"
)

// DraftRepository stores wizard drafts as PK=DRAFT#<id>/SK=METADATA items
// with a per-user GSI sorted by last update. Expiry rides on the table's
// native TTL attribute, so stale drafts disappear without a sweeper.
type DraftRepository struct {
	client        *dynamodb.Client
	tableName     string
	userIndexName string
	logger        *zap.Logger
}

// NewDraftRepository creates a DynamoDB-backed draft repository.
func NewDraftRepository(client *dynamodb.Client, tableName, userIndexName string, logger *zap.Logger) *DraftRepository {
	return &DraftRepository{
		client:        client,
		tableName:     tableName,
		userIndexName: userIndexName,
		logger:        logger,
	}
}

func draftKey(draftID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: draftKeyPrefix + draftID},
		"SK": &types.AttributeValueMemberS{Value: metadataSK},
	}
}

// Put upserts a draft.
func (r *DraftRepository) Put(ctx context.Context, d *draft.Draft) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: draftKeyPrefix + d.ID}
	item["SK"] = &types.AttributeValueMemberS{Value: metadataSK}
	item["GSI1PK"] = &types.AttributeValueMemberS{Value: userKeyPrefix + d.UserID}
	item["GSI1SK"] = &types.AttributeValueMemberS{Value: d.LastUpdated.UTC().Format(time.RFC3339Nano)}
	item["EntityType"] = &types.AttributeValueMemberS{Value: "DRAFT"}
	// Native TTL wants epoch seconds.
	item["TTL"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", d.ExpiresAt.Unix())}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	return nil
}

// Get fetches a draft by id regardless of owner.
func (r *DraftRepository) Get(ctx context.Context, draftID string) (*draft.Draft, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       draftKey(draftID),
	})
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if out.Item == nil {
		return nil, ports.ErrNotFound
	}

	var d draft.Draft
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &d, nil
}

// GetLatestByUser returns the user's most recently updated draft.
func (r *DraftRepository) GetLatestByUser(ctx context.Context, userID string) (*draft.Draft, error) {
	drafts, err := r.ListByUser(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ports.ErrNotFound
	}
	return drafts[0], nil
}

// ListByUser returns the user's drafts, most recently updated first.
func (r *DraftRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*draft.Draft, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(userKeyPrefix + userID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build draft query: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.userIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("query drafts: %w", err)
	}

	drafts := make([]*draft.Draft, 0, len(out.Items))
	for _, item := range out.Items {
		var d draft.Draft
		if err := attributevalue.UnmarshalMap(item, &d); err != nil {
			return nil, fmt.Errorf("unmarshal draft: %w", err)
		}
		drafts = append(drafts, &d)
	}
	return drafts, nil
}

// Delete removes a draft.
func (r *DraftRepository) Delete(ctx context.Context, draftID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       draftKey(draftID),
	})
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
