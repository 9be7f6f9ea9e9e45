package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoLimiter is a Limiter whose counters live in DynamoDB, so budgets
// hold across Lambda invocations and multiple server instances. Each
// (policy, identifier, window) triple is one item; the check-and-increment
// is a single conditional UpdateItem.
type DynamoLimiter struct {
	client    *dynamodb.Client
	tableName string
	budgets   map[Policy]Budget
}

// NewDynamoLimiter creates a DynamoDB-backed fixed-window limiter.
func NewDynamoLimiter(client *dynamodb.Client, tableName string, budgets map[Policy]Budget) *DynamoLimiter {
	return &DynamoLimiter{
		client:    client,
		tableName: tableName,
		budgets:   budgets,
	}
}

// Allow atomically increments the window counter, denying once the budget
// is spent. Store errors fail open so a limiter outage never blocks
// legitimate traffic.
func (l *DynamoLimiter) Allow(ctx context.Context, policy Policy, identifier string) (bool, error) {
	budget, ok := l.budgets[policy]
	if !ok || budget.Limit <= 0 {
		return true, nil
	}

	windowStart := time.Now().Truncate(budget.Window)
	pk := fmt.Sprintf("RATELIMIT#%s#%s#%d", policy, identifier, windowStart.Unix())
	expiry := windowStart.Add(budget.Window + time.Hour)

	_, err := l.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(l.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: "COUNTER"},
		},
		UpdateExpression:    aws.String("SET #count = if_not_exists(#count, :zero) + :one, #ttl = :ttl"),
		ConditionExpression: aws.String("attribute_not_exists(#count) OR #count < :limit"),
		ExpressionAttributeNames: map[string]string{
			"#count": "Count",
			"#ttl":   "ExpiresAt",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero":  &types.AttributeValueMemberN{Value: "0"},
			":one":   &types.AttributeValueMemberN{Value: "1"},
			":limit": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", budget.Limit)},
			":ttl":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expiry.Unix())},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return false, nil
		}
		return true, fmt.Errorf("rate limiter store error (failing open): %w", err)
	}

	return true, nil
}
