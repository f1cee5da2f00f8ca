package ddb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-backend/internal/table"
	apperrors "studio-backend/pkg/errors"
)

type fakeReader struct {
	videos []table.Video
	orders map[string][]table.Order
}

func (f *fakeReader) Video(ctx context.Context, uri string) (table.Video, error) {
	for _, video := range f.videos {
		if video.PK == uri {
			return video, nil
		}
	}
	return table.Video{}, apperrors.NewNotFound("video not found")
}

func (f *fakeReader) Videos(ctx context.Context, filter VideoFilter, openOnly bool) ([]table.Video, error) {
	var out []table.Video
	for _, video := range f.videos {
		if filter.TagID != "" && !table.ContainsReference(video.TagIDs, filter.TagID) {
			continue
		}
		if filter.LearningPathID != "" && !table.ContainsReference(video.LearningPathIDs, filter.LearningPathID) {
			continue
		}
		if filter.CategoryID != "" && video.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, video)
	}
	return out, nil
}

func (f *fakeReader) OrdersByPath(ctx context.Context, pathID string) ([]table.Order, error) {
	return f.orders[pathID], nil
}

func newTestPlanner(reader *fakeReader) *Planner {
	p := NewPlanner("primary_table", reader)
	p.now = func() string { return "2026-08-31 10:00:00" }
	return p
}

func videoWithPaths(uri string, paths []string) table.Video {
	return table.Video{
		PK:              uri,
		SK:              uri,
		IndexKey:        table.KindVideo,
		TagIDs:          table.Sentinel(),
		LearningPathIDs: paths,
	}
}

func updateKey(item types.TransactWriteItem) table.Key {
	return table.Key{
		PK: item.Update.Key["PK"].(*types.AttributeValueMemberS).Value,
		SK: item.Update.Key["SK"].(*types.AttributeValueMemberS).Value,
	}
}

func deleteKey(item types.TransactWriteItem) table.Key {
	return table.Key{
		PK: item.Delete.Key["PK"].(*types.AttributeValueMemberS).Value,
		SK: item.Delete.Key["SK"].(*types.AttributeValueMemberS).Value,
	}
}

func TestPlanPathUpdateFullReconciliation(t *testing.T) {
	reader := &fakeReader{
		videos: []table.Video{
			videoWithPaths("/videos/1", []string{"L-1"}),
			videoWithPaths("/videos/2", []string{"L-1"}),
			videoWithPaths("/videos/3", table.Sentinel()),
		},
		orders: map[string][]table.Order{
			"L-1": {
				{PK: "L-1", SK: "/videos/1", Order: 1},
				{PK: "L-1", SK: "/videos/2", Order: 2},
			},
		},
	}
	planner := newTestPlanner(reader)

	plan, err := planner.PlanPathUpdate(context.Background(), PathUpdate{
		PathID: "L-1",
		Name:   strPtr("renamed"),
		Videos: []table.VideoOrder{
			{URI: "/videos/2", Order: 1},
			{URI: "/videos/3", Order: 2},
		},
		User: "alice@example.com",
	})
	require.NoError(t, err)
	require.Len(t, plan, 6)

	// path meta first
	require.NotNil(t, plan[0].Update)
	assert.Equal(t, table.KeyFor("L-1"), updateKey(plan[0]))
	assert.Contains(t, *plan[0].Update.UpdateExpression, "#name")

	// joining video gains the back-reference
	require.NotNil(t, plan[1].Update)
	assert.Equal(t, table.KeyFor("/videos/3"), updateKey(plan[1]))
	joined := plan[1].Update.ExpressionAttributeValues[":learningPathIds"].(*types.AttributeValueMemberSS)
	assert.Equal(t, []string{"L-1"}, joined.Value)

	// leaving video loses it, down to the sentinel
	require.NotNil(t, plan[2].Update)
	assert.Equal(t, table.KeyFor("/videos/1"), updateKey(plan[2]))
	left := plan[2].Update.ExpressionAttributeValues[":learningPathIds"].(*types.AttributeValueMemberSS)
	assert.Equal(t, table.Sentinel(), left.Value)

	// its order record goes too
	require.NotNil(t, plan[3].Delete)
	assert.Equal(t, table.OrderKey("L-1", "/videos/1"), deleteKey(plan[3]))

	// surviving member's position is updated in place
	require.NotNil(t, plan[4].Update)
	assert.Equal(t, table.OrderKey("L-1", "/videos/2"), updateKey(plan[4]))
	assert.Contains(t, *plan[4].Update.UpdateExpression, "#order")

	// new member gets a fresh order record
	require.NotNil(t, plan[5].Put)
	assert.Equal(t, "L-1", plan[5].Put.Item["PK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "/videos/3", plan[5].Put.Item["SK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, string(table.KindVideo), plan[5].Put.Item["indexKey"].(*types.AttributeValueMemberS).Value)
}

func TestPlanPathUpdateMetaOnly(t *testing.T) {
	planner := newTestPlanner(&fakeReader{})

	plan, err := planner.PlanPathUpdate(context.Background(), PathUpdate{
		PathID:  "L-1",
		Invalid: boolPtr(true),
		User:    "alice@example.com",
	})
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, table.KeyFor("L-1"), updateKey(plan[0]))
}

func TestPlanPathUpdateStaleMembershipFails(t *testing.T) {
	// the order record says the video is a member, its reference list
	// disagrees: planning must surface the drift, not paper over it
	reader := &fakeReader{
		videos: []table.Video{videoWithPaths("/videos/4", table.Sentinel())},
		orders: map[string][]table.Order{
			"L-1": {{PK: "L-1", SK: "/videos/4", Order: 1}},
		},
	}
	planner := newTestPlanner(reader)

	_, err := planner.PlanPathUpdate(context.Background(), PathUpdate{
		PathID: "L-1",
		Videos: []table.VideoOrder{},
		User:   "alice@example.com",
	})
	assert.True(t, apperrors.IsInconsistentReference(err))
}

func TestPlanPathDelete(t *testing.T) {
	reader := &fakeReader{
		videos: []table.Video{
			videoWithPaths("/videos/1", []string{"L-1", "L-2"}),
			videoWithPaths("/videos/2", []string{"L-2"}),
		},
		orders: map[string][]table.Order{
			"L-1": {{PK: "L-1", SK: "/videos/1", Order: 1}},
		},
	}
	planner := newTestPlanner(reader)

	plan, err := planner.PlanPathDelete(context.Background(), "L-1", "alice@example.com")
	require.NoError(t, err)
	require.Len(t, plan, 3)

	require.NotNil(t, plan[0].Delete)
	assert.Equal(t, table.KeyFor("L-1"), deleteKey(plan[0]))

	require.NotNil(t, plan[1].Update)
	assert.Equal(t, table.KeyFor("/videos/1"), updateKey(plan[1]))
	refs := plan[1].Update.ExpressionAttributeValues[":learningPathIds"].(*types.AttributeValueMemberSS)
	assert.Equal(t, []string{"L-2"}, refs.Value)

	require.NotNil(t, plan[2].Delete)
	assert.Equal(t, table.OrderKey("L-1", "/videos/1"), deleteKey(plan[2]))
}

func TestPlanTagDelete(t *testing.T) {
	tagged := videoWithPaths("/videos/1", table.Sentinel())
	tagged.TagIDs = []string{"T-1"}
	other := videoWithPaths("/videos/2", table.Sentinel())
	other.TagIDs = []string{"T-2"}

	planner := newTestPlanner(&fakeReader{videos: []table.Video{tagged, other}})

	plan, err := planner.PlanTagDelete(context.Background(), "T-1", "alice@example.com")
	require.NoError(t, err)
	require.Len(t, plan, 2)

	assert.Equal(t, table.KeyFor("T-1"), deleteKey(plan[0]))
	assert.Equal(t, table.KeyFor("/videos/1"), updateKey(plan[1]))
	refs := plan[1].Update.ExpressionAttributeValues[":tagIds"].(*types.AttributeValueMemberSS)
	assert.Equal(t, table.Sentinel(), refs.Value)
}

func TestCheckCategoryDeletable(t *testing.T) {
	referenced := videoWithPaths("/videos/1", table.Sentinel())
	referenced.CategoryID = "C-1"
	planner := newTestPlanner(&fakeReader{videos: []table.Video{referenced}})

	err := planner.CheckCategoryDeletable(context.Background(), "C-1")
	assert.True(t, apperrors.IsConstraintViolation(err))

	assert.NoError(t, planner.CheckCategoryDeletable(context.Background(), "C-2"))
}
