package ddb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"studio-backend/internal/table"
	apperrors "studio-backend/pkg/errors"
)

// maxTransactionItems is the store's per-transaction item limit.
const maxTransactionItems = 100

// Reader is the slice of the repository the planner reads current state
// through. Plans are computed against one snapshot; if the snapshot goes
// stale before commit the transaction is rejected and the caller re-plans.
type Reader interface {
	Video(ctx context.Context, uri string) (table.Video, error)
	Videos(ctx context.Context, filter VideoFilter, openOnly bool) ([]table.Video, error)
	OrdersByPath(ctx context.Context, pathID string) ([]table.Order, error)
}

// Planner turns multi-entity mutations into ordered transaction plans.
// Every plan is a pure description: nothing is written until the caller
// hands it to ExecuteTransaction.
type Planner struct {
	tableName string
	reader    Reader
	now       func() string
}

// NewPlanner creates a planner over one table.
func NewPlanner(tableName string, reader Reader) *Planner {
	return &Planner{
		tableName: tableName,
		reader:    reader,
		now:       table.Timestamp,
	}
}

// PathUpdate describes a learning-path mutation. Nil fields are left
// untouched; a nil Videos slice skips membership reconciliation entirely,
// while a non-nil one (empty included) is the desired final membership.
type PathUpdate struct {
	PathID      string
	Name        *string
	Description *string
	Note        *string
	Invalid     *bool
	Videos      []table.VideoOrder
	User        string
}

// PlanPathUpdate builds the plan for a learning-path update. Item order is
// fixed: the path's own fields first, then reference additions on newly
// appended videos, then reference removals and order-record deletes for
// videos leaving the path, and finally an update-or-put of every order
// record in the desired membership.
func (p *Planner) PlanPathUpdate(ctx context.Context, update PathUpdate) ([]types.TransactWriteItem, error) {
	if update.PathID == "" {
		return nil, apperrors.NewValidation("path ID is required")
	}
	now := p.now()

	meta := NewAuditedUpdate(now, update.User).
		SetString("name", update.Name).
		SetString("description", update.Description).
		SetString("note", update.Note).
		SetBool("invalid", update.Invalid)
	items := []types.TransactWriteItem{p.updateItem(table.KeyFor(update.PathID), meta)}

	if update.Videos == nil {
		return items, nil
	}

	current, err := p.reader.OrdersByPath(ctx, update.PathID)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(current))
	for _, order := range current {
		existing[order.SK] = true
	}
	desired := make(map[string]bool, len(update.Videos))
	for _, vo := range update.Videos {
		desired[vo.URI] = true
	}

	for _, vo := range update.Videos {
		if existing[vo.URI] {
			continue
		}
		item, err := p.referenceUpdate(ctx, vo.URI, "learningPathIds", update.PathID, now, update.User, table.AddReference)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	for _, order := range current {
		if desired[order.SK] {
			continue
		}
		item, err := p.referenceUpdate(ctx, order.SK, "learningPathIds", update.PathID, now, update.User, table.RemoveReference)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	for _, order := range current {
		if !desired[order.SK] {
			items = append(items, p.deleteItem(table.OrderKey(update.PathID, order.SK)))
		}
	}

	for _, vo := range update.Videos {
		key := table.OrderKey(update.PathID, vo.URI)
		if existing[vo.URI] {
			ub := NewUpdateBuilder().
				Set("order", &types.AttributeValueMemberN{Value: strconv.Itoa(vo.Order)})
			items = append(items, p.updateItem(key, ub))
			continue
		}
		record, err := table.MarshalRecord(table.Order{
			PK:        key.PK,
			SK:        key.SK,
			IndexKey:  table.KindVideo,
			CreatedAt: now,
			Order:     vo.Order,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, p.putItem(record))
	}

	return items, nil
}

// PlanPathDelete builds the plan that removes a learning path: the path
// record, its back-reference in every member video, and every order record
// under it.
func (p *Planner) PlanPathDelete(ctx context.Context, pathID, user string) ([]types.TransactWriteItem, error) {
	if pathID == "" {
		return nil, apperrors.NewValidation("path ID is required")
	}
	now := p.now()

	items := []types.TransactWriteItem{p.deleteItem(table.KeyFor(pathID))}

	members, err := p.reader.Videos(ctx, VideoFilter{LearningPathID: pathID}, false)
	if err != nil {
		return nil, err
	}
	for _, video := range members {
		newRefs, err := table.RemoveReference(video.LearningPathIDs, pathID)
		if err != nil {
			return nil, err
		}
		ub := NewAuditedUpdate(now, user).SetStringSet("learningPathIds", newRefs)
		items = append(items, p.updateItem(table.KeyFor(video.PK), ub))
	}

	orders, err := p.reader.OrdersByPath(ctx, pathID)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		items = append(items, p.deleteItem(table.OrderKey(pathID, order.SK)))
	}

	return items, nil
}

// PlanTagDelete builds the plan that removes a tag: the tag record and its
// back-reference in every video carrying it.
func (p *Planner) PlanTagDelete(ctx context.Context, tagID, user string) ([]types.TransactWriteItem, error) {
	if tagID == "" {
		return nil, apperrors.NewValidation("tag ID is required")
	}
	now := p.now()

	items := []types.TransactWriteItem{p.deleteItem(table.KeyFor(tagID))}

	tagged, err := p.reader.Videos(ctx, VideoFilter{TagID: tagID}, false)
	if err != nil {
		return nil, err
	}
	for _, video := range tagged {
		newRefs, err := table.RemoveReference(video.TagIDs, tagID)
		if err != nil {
			return nil, err
		}
		ub := NewAuditedUpdate(now, user).SetStringSet("tagIds", newRefs)
		items = append(items, p.updateItem(table.KeyFor(video.PK), ub))
	}

	return items, nil
}

// CheckCategoryDeletable refuses category deletion while any video still
// references it. Categories hold no back-reference list, so this is a guard
// rather than a plan.
func (p *Planner) CheckCategoryDeletable(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return apperrors.NewValidation("category ID is required")
	}
	referencing, err := p.reader.Videos(ctx, VideoFilter{CategoryID: categoryID}, false)
	if err != nil {
		return err
	}
	if len(referencing) > 0 {
		return apperrors.NewConstraintViolation(
			fmt.Sprintf("category %s is referenced by %d videos", categoryID, len(referencing)))
	}
	return nil
}

type refMutation func(list []string, ref string) ([]string, error)

func (p *Planner) referenceUpdate(ctx context.Context, videoURI, attribute, ref, now, user string, mutate refMutation) (types.TransactWriteItem, error) {
	video, err := p.reader.Video(ctx, videoURI)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	list := video.LearningPathIDs
	if attribute == "tagIds" {
		list = video.TagIDs
	}
	newRefs, err := mutate(list, ref)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	ub := NewAuditedUpdate(now, user).SetStringSet(attribute, newRefs)
	return p.updateItem(table.KeyFor(videoURI), ub), nil
}

func (p *Planner) updateItem(key table.Key, update *UpdateBuilder) types.TransactWriteItem {
	expr, names, values := update.Build()
	item := types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(p.tableName),
			Key:                       table.MarshalKey(key),
			UpdateExpression:          aws.String(expr),
			ExpressionAttributeValues: values,
		},
	}
	if len(names) > 0 {
		item.Update.ExpressionAttributeNames = names
	}
	return item
}

func (p *Planner) putItem(record map[string]types.AttributeValue) types.TransactWriteItem {
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(p.tableName),
			Item:      record,
		},
	}
}

func (p *Planner) deleteItem(key table.Key) types.TransactWriteItem {
	return types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(p.tableName),
			Key:       table.MarshalKey(key),
		},
	}
}
