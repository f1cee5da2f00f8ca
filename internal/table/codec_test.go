package table

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalVideoNormalisesEmptyLists(t *testing.T) {
	video := Video{
		PK:       "/videos/1",
		SK:       "/videos/1",
		IndexKey: KindVideo,
		TagIDs:   []string{},
	}

	item, err := MarshalVideo(video)
	require.NoError(t, err)

	tags, ok := item["tagIds"].(*types.AttributeValueMemberSS)
	require.True(t, ok)
	assert.Equal(t, Sentinel(), tags.Value)

	paths, ok := item["learningPathIds"].(*types.AttributeValueMemberSS)
	require.True(t, ok)
	assert.Equal(t, Sentinel(), paths.Value)
}

func TestMarshalVideoKeepsPopulatedLists(t *testing.T) {
	video := Video{
		PK:              "/videos/1",
		SK:              "/videos/1",
		IndexKey:        KindVideo,
		TagIDs:          []string{"T-1", "T-2"},
		LearningPathIDs: []string{"L-1"},
	}

	item, err := MarshalVideo(video)
	require.NoError(t, err)

	tags := item["tagIds"].(*types.AttributeValueMemberSS)
	assert.ElementsMatch(t, []string{"T-1", "T-2"}, tags.Value)
}

func TestVideoRoundTrip(t *testing.T) {
	video := Video{
		PK:              "/videos/1",
		SK:              "/videos/1",
		IndexKey:        KindVideo,
		CreatedAt:       "2026-08-31 10:00:00",
		Invalid:         false,
		Name:            "orientation",
		Duration:        640,
		TagIDs:          []string{"T-1"},
		LearningPathIDs: Sentinel(),
	}

	item, err := MarshalVideo(video)
	require.NoError(t, err)

	decoded, err := UnmarshalRecord[Video](item)
	require.NoError(t, err)
	assert.Equal(t, video.Name, decoded.Name)
	assert.Equal(t, video.Duration, decoded.Duration)
	assert.True(t, IsSentinel(decoded.LearningPathIDs))
	assert.False(t, decoded.Match)
}

func TestStringSet(t *testing.T) {
	set := StringSet(nil).(*types.AttributeValueMemberSS)
	assert.Equal(t, Sentinel(), set.Value)

	set = StringSet([]string{"T-1"}).(*types.AttributeValueMemberSS)
	assert.Equal(t, []string{"T-1"}, set.Value)
}

func TestMarshalKey(t *testing.T) {
	item := MarshalKey(Key{PK: "L-1", SK: "/videos/9"})
	assert.Equal(t, "L-1", item["PK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "/videos/9", item["SK"].(*types.AttributeValueMemberS).Value)
}
