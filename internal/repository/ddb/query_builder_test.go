package ddb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-backend/internal/table"
	apperrors "studio-backend/pkg/errors"
)

func TestQueryBuilderKindScan(t *testing.T) {
	input, err := NewQueryBuilder("primary_table").
		WithKind("GSI-1-SK", table.KindVideo).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "primary_table", *input.TableName)
	assert.Equal(t, "GSI-1-SK", *input.IndexName)
	require.NotNil(t, input.ScanIndexForward)
	assert.False(t, *input.ScanIndexForward)
	assert.Nil(t, input.FilterExpression)
	assert.Contains(t, input.ExpressionAttributeNames, "#0")
}

func TestQueryBuilderFiltersCombine(t *testing.T) {
	input, err := NewQueryBuilder("primary_table").
		WithKind("GSI-1-SK", table.KindVideo).
		WithAttributeExists("invalid").
		WithValidOnly().
		WithContains("tagIds", "T-1").
		WithEquals("categoryId", "C-1").
		Build()
	require.NoError(t, err)

	require.NotNil(t, input.FilterExpression)
	filter := *input.FilterExpression
	assert.Contains(t, filter, "attribute_exists")
	assert.Contains(t, filter, "contains")
	assert.Contains(t, filter, "AND")
}

func TestQueryBuilderPartitionScan(t *testing.T) {
	input, err := NewQueryBuilder("primary_table").
		WithPartition("L-11112222").
		WithKindFilter(table.KindThread).
		Build()
	require.NoError(t, err)

	assert.Nil(t, input.IndexName)
	assert.Nil(t, input.ScanIndexForward)
	require.NotNil(t, input.FilterExpression)

	found := false
	for _, attr := range input.ExpressionAttributeNames {
		if attr == "indexKey" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestQueryBuilderSortKeyPrefix(t *testing.T) {
	input, err := NewQueryBuilder("primary_table").
		WithKind("GSI-1-SK", table.KindStatus).
		WithSortKeyPrefix("2026-08-31").
		Build()
	require.NoError(t, err)

	assert.Contains(t, *input.KeyConditionExpression, "begins_with")
	assert.Contains(t, *input.KeyConditionExpression, "AND")
}

func TestQueryBuilderLimitAndOrder(t *testing.T) {
	input, err := NewQueryBuilder("primary_table").
		WithPartition("user@example.com").
		WithKindFilter(table.KindHistory).
		Newest().
		WithLimit(20).
		Build()
	require.NoError(t, err)

	require.NotNil(t, input.Limit)
	assert.Equal(t, int32(20), *input.Limit)
	require.NotNil(t, input.ScanIndexForward)
	assert.False(t, *input.ScanIndexForward)
}

func TestQueryBuilderRequiresKeyCondition(t *testing.T) {
	_, err := NewQueryBuilder("primary_table").WithValidOnly().Build()
	assert.True(t, apperrors.IsValidation(err))
}
