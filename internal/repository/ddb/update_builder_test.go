package ddb

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-backend/internal/table"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

func TestUpdateBuilderSkipsNilFields(t *testing.T) {
	ub := NewUpdateBuilder().
		SetString("name", strPtr("intro")).
		SetString("description", nil).
		SetBool("invalid", nil).
		SetInt("plays", nil)

	expr, names, values := ub.Build()
	assert.Equal(t, "SET #name = :name", expr)
	assert.Equal(t, map[string]string{"#name": "name"}, names)
	require.Len(t, values, 1)
	assert.Equal(t, "intro", values[":name"].(*types.AttributeValueMemberS).Value)
}

func TestAuditedUpdateAlwaysTouchesAuditFields(t *testing.T) {
	ub := NewAuditedUpdate("2026-08-31 10:00:00", "alice@example.com")

	expr, _, values := ub.Build()
	assert.Contains(t, expr, "#updatedAt = :updatedAt")
	assert.Contains(t, expr, "#updatedUser = :updatedUser")
	assert.Equal(t, "alice@example.com", values[":updatedUser"].(*types.AttributeValueMemberS).Value)
	assert.False(t, ub.Empty())
}

func TestUpdateBuilderReservedNamesAliased(t *testing.T) {
	ub := NewUpdateBuilder().
		SetString("name", strPtr("x")).
		SetInt("duration", intPtr(120)).
		SetString("status", strPtr("uploading"))

	expr, names, _ := ub.Build()
	assert.NotContains(t, strings.ReplaceAll(expr, "#name", ""), " name")
	assert.Equal(t, "duration", names["#duration"])
	assert.Equal(t, "status", names["#status"])
}

func TestUpdateBuilderStringSetSentinel(t *testing.T) {
	ub := NewUpdateBuilder().SetStringSet("tagIds", []string{})

	_, _, values := ub.Build()
	set := values[":tagIds"].(*types.AttributeValueMemberSS)
	assert.Equal(t, table.Sentinel(), set.Value)
}

func TestUpdateBuilderEmpty(t *testing.T) {
	ub := NewUpdateBuilder().SetString("name", nil)
	assert.True(t, ub.Empty())

	expr, names, values := ub.Build()
	assert.Empty(t, expr)
	assert.Nil(t, names)
	assert.Nil(t, values)
}

func TestUpdateBuilderBoolAndInt(t *testing.T) {
	ub := NewUpdateBuilder().
		SetBool("invalid", boolPtr(true)).
		SetInt("plays", intPtr(42))

	_, _, values := ub.Build()
	assert.True(t, values[":invalid"].(*types.AttributeValueMemberBOOL).Value)
	assert.Equal(t, "42", values[":plays"].(*types.AttributeValueMemberN).Value)
}
