// Package dynamodb implements the persistence ports on a single DynamoDB
// table. Shared-document mutations (view counts, guestbook appends) go
// through conditional UpdateItem expressions so concurrent requests never
// lose updates.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/domain/wishbloom"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	bloomKeyPrefix = "WISHBLOOM#"
	urlKeyPrefix   = "URL#"
	bloomListKey   = "TYPE#WISHBLOOM"
	metadataSK     = "METADATA"
)

// WishBloomRepository stores published documents as single items:
// PK=WISHBLOOM#<id>/SK=METADATA, with GSI1 keyed by share slug and GSI2
// providing the newest-first listing.
type WishBloomRepository struct {
	client        *dynamodb.Client
	tableName     string
	urlIndexName  string
	listIndexName string
	logger        *zap.Logger
}

// NewWishBloomRepository creates a DynamoDB-backed document repository.
func NewWishBloomRepository(client *dynamodb.Client, tableName, urlIndexName, listIndexName string, logger *zap.Logger) *WishBloomRepository {
	return &WishBloomRepository{
		client:        client,
		tableName:     tableName,
		urlIndexName:  urlIndexName,
		listIndexName: listIndexName,
		logger:        logger,
	}
}

func bloomKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: bloomKeyPrefix + id},
		"SK": &types.AttributeValueMemberS{Value: metadataSK},
	}
}

func (r *WishBloomRepository) marshal(doc *wishbloom.WishBloom) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal wishbloom: %w", err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: bloomKeyPrefix + doc.ID}
	item["SK"] = &types.AttributeValueMemberS{Value: metadataSK}
	item["GSI1PK"] = &types.AttributeValueMemberS{Value: urlKeyPrefix + doc.UniqueURL}
	item["GSI1SK"] = &types.AttributeValueMemberS{Value: metadataSK}
	item["GSI2PK"] = &types.AttributeValueMemberS{Value: bloomListKey}
	item["GSI2SK"] = &types.AttributeValueMemberS{Value: doc.CreatedDate.UTC().Format(time.RFC3339Nano)}
	item["EntityType"] = &types.AttributeValueMemberS{Value: "WISHBLOOM"}
	return item, nil
}

// Create writes a new document, rejecting id collisions.
func (r *WishBloomRepository) Create(ctx context.Context, doc *wishbloom.WishBloom) error {
	item, err := r.marshal(doc)
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ports.ErrAlreadyExists
		}
		return fmt.Errorf("put wishbloom: %w", err)
	}
	return nil
}

// GetByID fetches a document by raw id, archived or not.
func (r *WishBloomRepository) GetByID(ctx context.Context, id string) (*wishbloom.WishBloom, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       bloomKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get wishbloom: %w", err)
	}
	if out.Item == nil {
		return nil, ports.ErrNotFound
	}

	var doc wishbloom.WishBloom
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal wishbloom: %w", err)
	}
	return &doc, nil
}

// GetByUniqueURL fetches a document by its public share slug.
func (r *WishBloomRepository) GetByUniqueURL(ctx context.Context, url string) (*wishbloom.WishBloom, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(urlKeyPrefix + url))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build url query: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.urlIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query wishbloom by url: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, ports.ErrNotFound
	}

	var doc wishbloom.WishBloom
	if err := attributevalue.UnmarshalMap(out.Items[0], &doc); err != nil {
		return nil, fmt.Errorf("unmarshal wishbloom: %w", err)
	}
	return &doc, nil
}

// UniqueURLExists reports whether any document, archived included, owns
// the slug.
func (r *WishBloomRepository) UniqueURLExists(ctx context.Context, url string) (bool, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(urlKeyPrefix + url))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return false, fmt.Errorf("build url query: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.urlIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Select:                    types.SelectCount,
	})
	if err != nil {
		return false, fmt.Errorf("query wishbloom by url: %w", err)
	}
	return out.Count > 0, nil
}

// List returns non-archived documents, newest first, up to limit. The
// archived filter runs server-side after the key condition, so pages are
// walked until the limit is met.
func (r *WishBloomRepository) List(ctx context.Context, limit int) ([]*wishbloom.WishBloom, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(bloomListKey))
	filter := expression.Name("IsArchived").Equal(expression.Value(false))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	docs := make([]*wishbloom.WishBloom, 0, limit)
	var startKey map[string]types.AttributeValue

	for len(docs) < limit {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.listIndexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query wishblooms: %w", err)
		}

		for _, item := range out.Items {
			var doc wishbloom.WishBloom
			if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
				return nil, fmt.Errorf("unmarshal wishbloom: %w", err)
			}
			docs = append(docs, &doc)
			if len(docs) == limit {
				break
			}
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return docs, nil
}

// Patch applies a partial field update via a single SET expression.
func (r *WishBloomRepository) Patch(ctx context.Context, id string, patch ports.WishBloomPatch) error {
	update := expression.UpdateBuilder{}
	touched := false

	if patch.RecipientName != nil {
		update = update.Set(expression.Name("RecipientName"), expression.Value(*patch.RecipientName))
		touched = true
	}
	if patch.Age != nil {
		update = update.Set(expression.Name("Age"), expression.Value(*patch.Age))
		touched = true
	}
	if patch.CreativeAgeDescription != nil {
		update = update.Set(expression.Name("CreativeAgeDescription"), expression.Value(*patch.CreativeAgeDescription))
		touched = true
	}
	if patch.IntroMessage != nil {
		update = update.Set(expression.Name("IntroMessage"), expression.Value(*patch.IntroMessage))
		touched = true
	}
	if patch.CelebrationWishPhrases != nil {
		update = update.Set(expression.Name("CelebrationWishPhrases"), expression.Value(*patch.CelebrationWishPhrases))
		touched = true
	}
	if !touched {
		return nil
	}

	cond := expression.AttributeExists(expression.Name("PK"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build patch expression: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       bloomKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ports.ErrNotFound
		}
		return fmt.Errorf("patch wishbloom: %w", err)
	}
	return nil
}

// Archive soft-deletes a document.
func (r *WishBloomRepository) Archive(ctx context.Context, id string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 bloomKey(id),
		UpdateExpression:    aws.String("SET IsArchived = :true"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ports.ErrNotFound
		}
		return fmt.Errorf("archive wishbloom: %w", err)
	}
	return nil
}

// IncrementViewCount bumps the counter atomically server-side.
func (r *WishBloomRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 bloomKey(id),
		UpdateExpression:    aws.String("ADD ViewCount :one"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

// AppendGuestbookEntry appends atomically, enforcing the cap in the
// condition so concurrent appends cannot overshoot it.
func (r *WishBloomRepository) AppendGuestbookEntry(ctx context.Context, id string, entry wishbloom.GuestbookEntry) error {
	entryAV, err := attributevalue.Marshal([]wishbloom.GuestbookEntry{entry})
	if err != nil {
		return fmt.Errorf("marshal guestbook entry: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 bloomKey(id),
		UpdateExpression:    aws.String("SET Guestbook = list_append(if_not_exists(Guestbook, :empty), :entry)"),
		ConditionExpression: aws.String("attribute_exists(PK) AND (attribute_not_exists(Guestbook) OR size(Guestbook) < :cap)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":entry": entryAV,
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":cap":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", wishbloom.GuestbookCap)},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ports.ErrGuestbookFull
		}
		return fmt.Errorf("append guestbook entry: %w", err)
	}
	return nil
}

// CountActive counts non-archived documents.
func (r *WishBloomRepository) CountActive(ctx context.Context) (int, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(bloomListKey))
	filter := expression.Name("IsArchived").Equal(expression.Value(false))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	total := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.listIndexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Select:                    types.SelectCount,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("count wishblooms: %w", err)
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
