package ddb

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"studio-backend/internal/table"
)

// UpdateBuilder assembles a partial-update expression. A field contributes a
// SET clause if and only if the caller supplied a value for it; omitted
// fields are left untouched in storage. Attribute names are always aliased
// through placeholders, which keeps reserved words (name, duration, status,
// order) out of the expression.
type UpdateBuilder struct {
	setExpressions []string
	attrNames      map[string]string
	attrValues     map[string]types.AttributeValue
}

// NewUpdateBuilder creates an empty update builder.
func NewUpdateBuilder() *UpdateBuilder {
	return &UpdateBuilder{
		attrNames:  make(map[string]string),
		attrValues: make(map[string]types.AttributeValue),
	}
}

// NewAuditedUpdate creates a builder pre-loaded with the audit fields every
// mutation refreshes.
func NewAuditedUpdate(timestamp, user string) *UpdateBuilder {
	return NewUpdateBuilder().
		Set("updatedAt", &types.AttributeValueMemberS{Value: timestamp}).
		Set("updatedUser", &types.AttributeValueMemberS{Value: user})
}

// Set adds a SET clause for attribute with an already-marshalled value.
func (ub *UpdateBuilder) Set(attribute string, value types.AttributeValue) *UpdateBuilder {
	namePlaceholder := fmt.Sprintf("#%s", attribute)
	valuePlaceholder := fmt.Sprintf(":%s", attribute)

	ub.setExpressions = append(ub.setExpressions,
		fmt.Sprintf("%s = %s", namePlaceholder, valuePlaceholder))
	ub.attrNames[namePlaceholder] = attribute
	ub.attrValues[valuePlaceholder] = value
	return ub
}

// SetString adds a SET clause when value is non-nil.
func (ub *UpdateBuilder) SetString(attribute string, value *string) *UpdateBuilder {
	if value == nil {
		return ub
	}
	return ub.Set(attribute, &types.AttributeValueMemberS{Value: *value})
}

// SetBool adds a SET clause when value is non-nil.
func (ub *UpdateBuilder) SetBool(attribute string, value *bool) *UpdateBuilder {
	if value == nil {
		return ub
	}
	return ub.Set(attribute, &types.AttributeValueMemberBOOL{Value: *value})
}

// SetInt adds a SET clause when value is non-nil.
func (ub *UpdateBuilder) SetInt(attribute string, value *int) *UpdateBuilder {
	if value == nil {
		return ub
	}
	return ub.Set(attribute, &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *value)})
}

// SetStringSet adds a SET clause for a reference list when value is non-nil.
// Empty lists are stored in sentinel form.
func (ub *UpdateBuilder) SetStringSet(attribute string, value []string) *UpdateBuilder {
	if value == nil {
		return ub
	}
	return ub.Set(attribute, table.StringSet(value))
}

// Empty reports whether no clause has been added.
func (ub *UpdateBuilder) Empty() bool {
	return len(ub.setExpressions) == 0
}

// Build returns the update expression with its name and value maps.
func (ub *UpdateBuilder) Build() (string, map[string]string, map[string]types.AttributeValue) {
	if len(ub.setExpressions) == 0 {
		return "", nil, nil
	}
	return fmt.Sprintf("SET %s", strings.Join(ub.setExpressions, ", ")), ub.attrNames, ub.attrValues
}
