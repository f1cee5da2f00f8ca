// Package ddb implements the single-table store access layer on DynamoDB:
// keyed reads, kind-scoped index queries, partial updates and all-or-nothing
// multi-item transactions.
package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"studio-backend/internal/table"
	apperrors "studio-backend/pkg/errors"
)

// API is the slice of the DynamoDB client the repository uses.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Repository is the shared store client. One instance is created at process
// start and injected everywhere; it is safe for concurrent use.
type Repository struct {
	client    API
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewRepository creates a repository bound to one table and its kind index.
func NewRepository(client API, tableName, indexName string, logger *zap.Logger) *Repository {
	return &Repository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// TableName returns the backing table's name.
func (r *Repository) TableName() string { return r.tableName }

// GetItem fetches one record by key. A missing record is a NotFound error.
func (r *Repository) GetItem(ctx context.Context, key table.Key) (map[string]types.AttributeValue, error) {
	item, ok, err := r.TryGetItem(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewNotFound(fmt.Sprintf("record %s/%s not found", key.PK, key.SK))
	}
	return item, nil
}

// TryGetItem fetches one record by key, reporting absence without error.
func (r *Repository) TryGetItem(ctx context.Context, key table.Key) (map[string]types.AttributeValue, bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       table.MarshalKey(key),
	})
	if err != nil {
		return nil, false, apperrors.NewInternal("get item failed", err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	return out.Item, true, nil
}

// QueryAll runs a query to exhaustion, following pagination.
func (r *Repository) QueryAll(ctx context.Context, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, apperrors.NewInternal("query failed", err)
		}
		items = append(items, out.Items...)

		if out.LastEvaluatedKey == nil || input.Limit != nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// PutItem writes one record.
func (r *Repository) PutItem(ctx context.Context, item map[string]types.AttributeValue) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return apperrors.NewInternal("put item failed", err)
	}
	return nil
}

// UpdateItem applies a built partial-update expression to one record.
func (r *Repository) UpdateItem(ctx context.Context, key table.Key, update *UpdateBuilder) error {
	expr, names, values := update.Build()
	if expr == "" {
		return apperrors.NewValidation("no fields to update")
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       table.MarshalKey(key),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		return apperrors.NewInternal("update item failed", err)
	}
	return nil
}

// DeleteItem removes one record by key.
func (r *Repository) DeleteItem(ctx context.Context, key table.Key) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       table.MarshalKey(key),
	})
	if err != nil {
		return apperrors.NewInternal("delete item failed", err)
	}
	return nil
}

// ExecuteTransaction commits a plan as one all-or-nothing batch. A cancelled
// transaction (condition failure or concurrent modification) surfaces as a
// TransactionConflict; the caller re-plans against fresh state, nothing is
// retried here.
func (r *Repository) ExecuteTransaction(ctx context.Context, items []types.TransactWriteItem) error {
	if len(items) == 0 {
		return apperrors.NewValidation("empty transaction")
	}
	if len(items) > maxTransactionItems {
		return apperrors.NewValidation(
			fmt.Sprintf("transaction exceeds limit of %d items: %d", maxTransactionItems, len(items)))
	}

	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			r.logger.Warn("transaction canceled",
				zap.Int("items", len(items)),
				zap.Any("reasons", canceled.CancellationReasons),
			)
			return apperrors.NewTransactionConflict("transaction rejected by store", err)
		}
		var conflict *types.TransactionConflictException
		if errors.As(err, &conflict) {
			return apperrors.NewTransactionConflict("concurrent transaction in progress", err)
		}
		return apperrors.NewInternal("transaction failed", err)
	}

	r.logger.Debug("transaction committed", zap.Int("items", len(items)))
	return nil
}
