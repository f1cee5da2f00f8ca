package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-backend/internal/table"
	"studio-backend/internal/vimeo"
)

func storedVideo(uri string) table.Video {
	return table.Video{
		PK:              uri,
		SK:              uri,
		IndexKey:        table.KindVideo,
		TagIDs:          table.Sentinel(),
		LearningPathIDs: table.Sentinel(),
	}
}

func platformVideo(uri, name string) vimeo.Video {
	return vimeo.Video{
		URI:       uri,
		Name:      name,
		Duration:  120,
		Plays:     7,
		Thumbnail: vimeo.Thumbnail{Link: "https://img.example/" + name},
	}
}

func TestVideosViewerKeepsOnlyMatched(t *testing.T) {
	stored := []table.Video{storedVideo("/videos/1"), storedVideo("/videos/2")}
	platform := []vimeo.Video{platformVideo("/videos/1", "intro"), platformVideo("/videos/3", "orphan")}

	merged := Videos(stored, platform, false)

	require.Len(t, merged, 1)
	assert.Equal(t, "/videos/1", merged[0].PK)
	assert.True(t, merged[0].Match)
	assert.Equal(t, "intro", merged[0].Name)
	assert.Equal(t, 120, merged[0].Duration)
	assert.Equal(t, "https://img.example/intro", merged[0].Thumbnail)
}

func TestVideosAdminKeepsBothSides(t *testing.T) {
	stored := []table.Video{storedVideo("/videos/1"), storedVideo("/videos/2")}
	platform := []vimeo.Video{platformVideo("/videos/1", "intro"), platformVideo("/videos/3", "orphan")}

	merged := Videos(stored, platform, true)
	require.Len(t, merged, 3)

	byURI := map[string]table.Video{}
	for _, video := range merged {
		key := video.PK
		if key == "" {
			key = video.URI
		}
		byURI[key] = video
	}

	assert.True(t, byURI["/videos/1"].Match)
	assert.False(t, byURI["/videos/2"].Match)

	orphan := byURI["/videos/3"]
	assert.False(t, orphan.Match)
	assert.Empty(t, orphan.PK)
	assert.NotEmpty(t, orphan.Note)
}

func TestVideosIdempotent(t *testing.T) {
	stored := []table.Video{storedVideo("/videos/1")}
	platform := []vimeo.Video{platformVideo("/videos/1", "intro")}

	once := Videos(stored, platform, true)
	twice := Videos(once, platform, true)
	assert.Equal(t, once, twice)
}

func TestVideosResetsStaleMatchFlag(t *testing.T) {
	video := storedVideo("/videos/1")
	video.Match = true

	merged := Videos([]table.Video{video}, nil, true)

	require.Len(t, merged, 1)
	assert.False(t, merged[0].Match)
}

func TestPathsWithOrders(t *testing.T) {
	paths := []table.LearningPath{
		{PK: "L-1", SK: "L-1", Name: "onboarding"},
		{PK: "L-2", SK: "L-2", Name: "advanced"},
	}
	orders := []table.Order{
		{PK: "L-1", SK: "/videos/2", Order: 2},
		{PK: "L-1", SK: "/videos/1", Order: 1},
	}

	merged := PathsWithOrders(paths, orders)
	require.Len(t, merged, 2)

	assert.Equal(t, 1, merged[0].ID)
	require.Len(t, merged[0].Videos, 2)
	assert.Equal(t, "/videos/1", merged[0].Videos[0].URI)
	assert.Equal(t, "/videos/2", merged[0].Videos[1].URI)

	assert.Equal(t, 2, merged[1].ID)
	assert.NotNil(t, merged[1].Videos)
	assert.Empty(t, merged[1].Videos)
}

func TestCategoriesResolveParents(t *testing.T) {
	categories := []table.Category{
		{PK: "C-aaa", SK: "C-aaa", Name: "engineering", ParentID: table.RootCategoryID},
		{PK: "C-bbb", SK: "C-bbb", Name: "golang", ParentID: "C-aaa"},
		{PK: "C-ccc", SK: "C-ccc", Name: "dangling", ParentID: "C-zzz"},
	}

	merged := Categories(categories)
	require.Len(t, merged, 3)

	assert.Equal(t, 1, merged[0].ID)
	assert.Empty(t, merged[0].Parent)
	assert.Equal(t, "engineering", merged[1].Parent)
	assert.Empty(t, merged[2].Parent)
}

func TestVideoTable(t *testing.T) {
	video := storedVideo("/videos/1")
	video.URI = "/videos/1"
	video.Match = true
	video.Name = "intro"
	video.CategoryID = "C-bbb"
	video.TagIDs = []string{"T-1", "T-gone"}
	video.LearningPathIDs = []string{"L-1"}
	video.CreatedUser = "alice@example.com"
	video.UpdatedUser = "alice@example.com"

	rows := VideoTable(
		[]table.Video{video},
		[]table.Category{
			{PK: "C-aaa", Name: "engineering", ParentID: table.RootCategoryID},
			{PK: "C-bbb", Name: "golang", ParentID: "C-aaa"},
		},
		[]table.Tag{{PK: "T-1", Name: "beginner"}},
		[]table.LearningPath{{PK: "L-1", Name: "onboarding"}},
		[]table.User{{PK: "alice@example.com", Name: "Alice"}},
	)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 1, row.ID)
	assert.Equal(t, "engineering", row.Primary)
	assert.Equal(t, "golang", row.Secondary)
	assert.Equal(t, []string{"beginner"}, row.Tags)
	assert.Equal(t, []string{"onboarding"}, row.Paths)
	assert.Equal(t, "Alice", row.CreatedUser)
}

func TestVideoTableDanglingReferencesBlank(t *testing.T) {
	video := storedVideo("/videos/1")
	video.CategoryID = "C-missing"

	rows := VideoTable([]table.Video{video}, nil, nil, nil, nil)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Primary)
	assert.Empty(t, rows[0].Secondary)
	assert.Empty(t, rows[0].Tags)
}
