package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatrelay/application/ports"
	"chatrelay/domain/chat"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ThreadRepository implements the ThreadStore interface using DynamoDB.
// One item per identity, keyed USER#<email> / THREAD.
type ThreadRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewThreadRepository creates a new ThreadRepository.
func NewThreadRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ThreadStore {
	return &ThreadRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// threadItem represents the DynamoDB item structure for a thread mapping.
type threadItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Email      string `dynamodbav:"Email"`
	ThreadID   string `dynamodbav:"ThreadId"`
	ReadAlong  bool   `dynamodbav:"ReadAlong"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

const threadSortKey = "THREAD"

func threadKey(identity chat.Identity) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", identity)},
		"SK": &types.AttributeValueMemberS{Value: threadSortKey},
	}
}

// Get retrieves the thread record for an identity.
func (r *ThreadRepository) Get(ctx context.Context, identity chat.Identity) (chat.ThreadRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       threadKey(identity),
	})
	if err != nil {
		return chat.ThreadRecord{}, fmt.Errorf("failed to get thread item: %w", err)
	}
	if out.Item == nil {
		return chat.ThreadRecord{}, chat.ErrThreadNotFound
	}

	var item threadItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return chat.ThreadRecord{}, fmt.Errorf("failed to unmarshal thread item: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return chat.ThreadRecord{
		Identity:  chat.Identity(item.Email),
		ThreadID:  item.ThreadID,
		ReadAlong: item.ReadAlong,
		CreatedAt: createdAt,
	}, nil
}

// Create stores the mapping for a previously unseen identity. The write is
// conditional on the item not existing, so the first writer wins and the
// thread id never changes afterwards.
func (r *ThreadRepository) Create(ctx context.Context, record chat.ThreadRecord) error {
	item := threadItem{
		PK:         fmt.Sprintf("USER#%s", record.Identity),
		SK:         threadSortKey,
		EntityType: "THREAD",
		Email:      record.Identity.String(),
		ThreadID:   record.ThreadID,
		ReadAlong:  record.ReadAlong,
		CreatedAt:  record.CreatedAt.Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal thread item: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("PK"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build condition expression: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return chat.ErrThreadExists
		}
		return fmt.Errorf("failed to put thread item: %w", err)
	}

	r.logger.Info("stored thread mapping",
		zap.String("identity", record.Identity.String()),
		zap.String("threadID", record.ThreadID),
	)
	return nil
}

// SetReadAlong toggles the read-along flag for an existing identity.
func (r *ThreadRepository) SetReadAlong(ctx context.Context, identity chat.Identity, readAlong bool) error {
	update := expression.Set(expression.Name("ReadAlong"), expression.Value(readAlong))
	cond := expression.AttributeExists(expression.Name("PK"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       threadKey(identity),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return chat.ErrThreadNotFound
		}
		return fmt.Errorf("failed to update read-along flag: %w", err)
	}
	return nil
}

// Ping verifies the table is reachable.
func (r *ThreadRepository) Ping(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return fmt.Errorf("threads table unreachable: %w", err)
	}
	return nil
}
