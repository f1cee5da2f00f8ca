// Package merge joins stored records with each other and with platform
// state. Merges are pure: they read slices and return slices, never the
// store.
package merge

import (
	"sort"

	"studio-backend/internal/table"
	"studio-backend/internal/vimeo"
)

// Videos joins stored video records with the platform listing, matching
// on the platform URI. Matched records get the platform's denormalized
// fields overlaid and Match set. With includeUnmatched, records present
// on only one side are kept too (stored-only as-is, platform-only as a
// flagged placeholder) so the admin view can surface the drift; without
// it only matched records survive.
func Videos(stored []table.Video, platform []vimeo.Video, includeUnmatched bool) []table.Video {
	byURI := make(map[string]vimeo.Video, len(platform))
	for _, pv := range platform {
		byURI[pv.URI] = pv
	}

	records := make([]table.Video, 0, len(stored))
	for _, video := range stored {
		if pv, ok := byURI[video.PK]; ok {
			overlay(&video, pv)
			records = append(records, video)
			continue
		}
		video.Match = false
		if includeUnmatched {
			records = append(records, video)
		}
	}

	if includeUnmatched {
		known := make(map[string]bool, len(stored))
		for _, video := range stored {
			known[video.PK] = true
		}
		for _, pv := range platform {
			if known[pv.URI] {
				continue
			}
			placeholder := table.Video{
				Note:            "registered on the video platform but missing from the database",
				LearningPathIDs: []string{},
				TagIDs:          []string{},
			}
			overlay(&placeholder, pv)
			placeholder.Match = false
			records = append(records, placeholder)
		}
	}

	return records
}

func overlay(video *table.Video, pv vimeo.Video) {
	video.Match = true
	video.URI = pv.URI
	video.Name = pv.Name
	video.Duration = pv.Duration
	video.Plays = pv.Plays
	video.HTML = pv.HTML
	video.Thumbnail = pv.Thumbnail.Link
}

// PathsWithOrders attaches each path's playback ordering, built from its
// order records sorted by playback position, and numbers the paths for
// presentation.
func PathsWithOrders(paths []table.LearningPath, orders []table.Order) []table.LearningPath {
	byPath := make(map[string][]table.VideoOrder)
	for _, order := range orders {
		byPath[order.PK] = append(byPath[order.PK], table.VideoOrder{
			URI:   order.SK,
			Order: order.Order,
		})
	}

	out := make([]table.LearningPath, 0, len(paths))
	for i, path := range paths {
		path.ID = i + 1
		path.Videos = byPath[path.PK]
		if path.Videos == nil {
			path.Videos = []table.VideoOrder{}
		}
		sort.Slice(path.Videos, func(a, b int) bool {
			return path.Videos[a].Order < path.Videos[b].Order
		})
		out = append(out, path)
	}
	return out
}

// Categories numbers the categories and resolves each child's parent name
// from within the same slice. Top-level categories keep an empty parent.
func Categories(categories []table.Category) []table.Category {
	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.PK] = category.Name
	}

	out := make([]table.Category, 0, len(categories))
	for i, category := range categories {
		category.ID = i + 1
		if category.ParentID != table.RootCategoryID {
			category.Parent = names[category.ParentID]
		}
		out = append(out, category)
	}
	return out
}

// VideoRow is one row of the admin video table: a video with every
// reference resolved to its display name.
type VideoRow struct {
	ID          int      `json:"id"`
	Match       bool     `json:"match"`
	URI         string   `json:"uri"`
	Invalid     bool     `json:"invalid"`
	Thumbnail   string   `json:"thumbnail"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Primary     string   `json:"primary"`
	Secondary   string   `json:"secondary"`
	Tags        []string `json:"tags"`
	Paths       []string `json:"paths"`
	Note        string   `json:"note"`
	Duration    int      `json:"duration"`
	Plays       int      `json:"plays"`
	CreatedUser string   `json:"createdUser"`
	UpdatedUser string   `json:"updatedUser"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// VideoTable resolves every reference a video carries into display names
// and flattens the result into admin table rows. Dangling references
// resolve to blanks rather than failing the whole table.
func VideoTable(videos []table.Video, categories []table.Category, tags []table.Tag, paths []table.LearningPath, users []table.User) []VideoRow {
	categoryByID := make(map[string]table.Category, len(categories))
	for _, category := range categories {
		categoryByID[category.PK] = category
	}
	tagNames := make(map[string]string, len(tags))
	for _, tag := range tags {
		tagNames[tag.PK] = tag.Name
	}
	pathNames := make(map[string]string, len(paths))
	for _, path := range paths {
		pathNames[path.PK] = path.Name
	}
	userNames := make(map[string]string, len(users))
	for _, user := range users {
		userNames[user.PK] = user.Name
	}

	rows := make([]VideoRow, 0, len(videos))
	for i, video := range videos {
		row := VideoRow{
			ID:          i + 1,
			Match:       video.Match,
			URI:         video.URI,
			Invalid:     video.Invalid,
			Thumbnail:   video.Thumbnail,
			Name:        video.Name,
			Description: video.Description,
			Tags:        []string{},
			Paths:       []string{},
			Note:        video.Note,
			Duration:    video.Duration,
			Plays:       video.Plays,
			CreatedUser: userNames[video.CreatedUser],
			UpdatedUser: userNames[video.UpdatedUser],
			CreatedAt:   video.CreatedAt,
			UpdatedAt:   video.UpdatedAt,
		}

		if secondary, ok := categoryByID[video.CategoryID]; ok {
			row.Secondary = secondary.Name
			if primary, ok := categoryByID[secondary.ParentID]; ok {
				row.Primary = primary.Name
			}
		}
		for _, id := range table.Refs(video.TagIDs) {
			if name, ok := tagNames[id]; ok {
				row.Tags = append(row.Tags, name)
			}
		}
		for _, id := range table.Refs(video.LearningPathIDs) {
			if name, ok := pathNames[id]; ok {
				row.Paths = append(row.Paths, name)
			}
		}

		rows = append(rows, row)
	}
	return rows
}
