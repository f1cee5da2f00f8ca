package ddb

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"studio-backend/internal/table"
	apperrors "studio-backend/pkg/errors"
)

// QueryBuilder assembles index-scoped and partition-scoped queries. Queries
// never span more than one entity kind: either the kind index pins the
// discriminator, or a kind filter restricts a partition scan.
type QueryBuilder struct {
	tableName    string
	indexName    *string
	keyCondition *expression.KeyConditionBuilder
	filter       *expression.ConditionBuilder
	limit        *int32
	scanForward  *bool
}

// NewQueryBuilder creates a query builder for one table.
func NewQueryBuilder(tableName string) *QueryBuilder {
	return &QueryBuilder{tableName: tableName}
}

// WithKind scopes the query to one entity kind through the kind index.
// Index scans return most-recent-first by default.
func (qb *QueryBuilder) WithKind(indexName string, kind table.Kind) *QueryBuilder {
	keyExpr := expression.Key("indexKey").Equal(expression.Value(string(kind)))
	qb.keyCondition = &keyExpr
	qb.indexName = &indexName
	qb.scanForward = aws.Bool(false)
	return qb
}

// WithSortKeyPrefix narrows the key condition to sort keys beginning with
// prefix, e.g. a date prefix for "today only" queries.
func (qb *QueryBuilder) WithSortKeyPrefix(prefix string) *QueryBuilder {
	cond := expression.Key("SK").BeginsWith(prefix)
	if qb.keyCondition == nil {
		qb.keyCondition = &cond
	} else {
		combined := qb.keyCondition.And(cond)
		qb.keyCondition = &combined
	}
	return qb
}

// WithPartition scopes the query to one partition of the base table; results
// come back in natural sort-key order.
func (qb *QueryBuilder) WithPartition(pk string) *QueryBuilder {
	keyExpr := expression.Key("PK").Equal(expression.Value(pk))
	qb.keyCondition = &keyExpr
	return qb
}

// WithFilter adds a filter condition, AND-ed with any existing one.
func (qb *QueryBuilder) WithFilter(filter expression.ConditionBuilder) *QueryBuilder {
	if qb.filter == nil {
		qb.filter = &filter
	} else {
		combined := qb.filter.And(filter)
		qb.filter = &combined
	}
	return qb
}

// WithKindFilter restricts a partition scan to one entity kind.
func (qb *QueryBuilder) WithKindFilter(kind table.Kind) *QueryBuilder {
	return qb.WithFilter(expression.Name("indexKey").Equal(expression.Value(string(kind))))
}

// WithValidOnly excludes soft-invalidated records.
func (qb *QueryBuilder) WithValidOnly() *QueryBuilder {
	return qb.WithFilter(expression.Name("invalid").Equal(expression.Value(false)))
}

// WithContains filters on membership of value in a list-typed attribute.
func (qb *QueryBuilder) WithContains(attribute, value string) *QueryBuilder {
	return qb.WithFilter(expression.Name(attribute).Contains(value))
}

// WithEquals filters on attribute equality.
func (qb *QueryBuilder) WithEquals(attribute string, value any) *QueryBuilder {
	return qb.WithFilter(expression.Name(attribute).Equal(expression.Value(value)))
}

// WithAttributeExists filters on attribute presence.
func (qb *QueryBuilder) WithAttributeExists(attribute string) *QueryBuilder {
	return qb.WithFilter(expression.AttributeExists(expression.Name(attribute)))
}

// WithAttributeNotExists filters on attribute absence.
func (qb *QueryBuilder) WithAttributeNotExists(attribute string) *QueryBuilder {
	return qb.WithFilter(expression.AttributeNotExists(expression.Name(attribute)))
}

// WithDatePrefix filters on a date-prefixed attribute, for "today only"
// queries over kinds whose sort key is not a timestamp.
func (qb *QueryBuilder) WithDatePrefix(attribute, prefix string) *QueryBuilder {
	return qb.WithFilter(expression.Name(attribute).BeginsWith(prefix))
}

// WithLimit caps the number of evaluated items.
func (qb *QueryBuilder) WithLimit(limit int32) *QueryBuilder {
	qb.limit = &limit
	return qb
}

// Newest orders results most-recent-first.
func (qb *QueryBuilder) Newest() *QueryBuilder {
	qb.scanForward = aws.Bool(false)
	return qb
}

// Build constructs the final QueryInput.
func (qb *QueryBuilder) Build() (*dynamodb.QueryInput, error) {
	if qb.keyCondition == nil {
		return nil, apperrors.NewValidation("key condition is required for query")
	}

	builder := expression.NewBuilder().WithKeyCondition(*qb.keyCondition)
	if qb.filter != nil {
		builder = builder.WithFilter(*qb.filter)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, apperrors.NewInternal("failed to build query expression", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(qb.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if qb.indexName != nil {
		input.IndexName = qb.indexName
	}
	if qb.filter != nil {
		input.FilterExpression = expr.Filter()
	}
	if qb.limit != nil {
		input.Limit = qb.limit
	}
	if qb.scanForward != nil {
		input.ScanIndexForward = qb.scanForward
	}

	return input, nil
}
