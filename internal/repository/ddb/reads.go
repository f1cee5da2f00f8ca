package ddb

import (
	"context"
	"sort"

	"studio-backend/internal/table"
)

// Typed reads over the single table. Every query is kind-scoped: through
// the kind index for listings, or through a partition scan plus kind filter
// for records hanging off a parent key.

// VideoFilter restricts a video listing by contained references or title.
type VideoFilter struct {
	CategoryID     string
	TagID          string
	LearningPathID string
	Name           string
}

// Video fetches one video record by its platform URI.
func (r *Repository) Video(ctx context.Context, uri string) (table.Video, error) {
	item, err := r.GetItem(ctx, table.KeyFor(uri))
	if err != nil {
		return table.Video{}, err
	}
	return table.UnmarshalRecord[table.Video](item)
}

// Videos lists video records, optionally restricted to valid (open) ones
// and filtered by reference membership. Most recent first.
func (r *Repository) Videos(ctx context.Context, filter VideoFilter, openOnly bool) ([]table.Video, error) {
	qb := NewQueryBuilder(r.tableName).
		WithKind(r.indexName, table.KindVideo).
		WithAttributeExists("invalid")
	if openOnly {
		qb = qb.WithValidOnly()
	}
	if filter.CategoryID != "" {
		qb = qb.WithEquals("categoryId", filter.CategoryID)
	}
	if filter.TagID != "" {
		qb = qb.WithContains("tagIds", filter.TagID)
	}
	if filter.LearningPathID != "" {
		qb = qb.WithContains("learningPathIds", filter.LearningPathID)
	}
	if filter.Name != "" {
		qb = qb.WithContains("name", filter.Name)
	}

	input, err := qb.Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[table.Video](items)
}

// LearningPath fetches one learning-path record.
func (r *Repository) LearningPath(ctx context.Context, pathID string) (table.LearningPath, error) {
	item, err := r.GetItem(ctx, table.KeyFor(pathID))
	if err != nil {
		return table.LearningPath{}, err
	}
	return table.UnmarshalRecord[table.LearningPath](item)
}

// LearningPaths lists learning-path records, most recent first.
func (r *Repository) LearningPaths(ctx context.Context) ([]table.LearningPath, error) {
	return queryKind[table.LearningPath](ctx, r, table.KindLearningPath)
}

// Orders lists every playback-order record across all paths, sorted by
// path ID. Order records share the Video discriminator but lack the
// invalid attribute, which is what tells them apart from video records.
func (r *Repository) Orders(ctx context.Context) ([]table.Order, error) {
	input, err := NewQueryBuilder(r.tableName).
		WithKind(r.indexName, table.KindVideo).
		WithAttributeNotExists("invalid").
		Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	orders, err := table.UnmarshalRecords[table.Order](items)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].PK < orders[j].PK })
	return orders, nil
}

// OrdersByPath lists the playback-order records under one path, sorted by
// playback order.
func (r *Repository) OrdersByPath(ctx context.Context, pathID string) ([]table.Order, error) {
	input, err := NewQueryBuilder(r.tableName).
		WithPartition(pathID).
		WithAttributeExists("order").
		Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	orders, err := table.UnmarshalRecords[table.Order](items)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Order < orders[j].Order })
	return orders, nil
}

// Order fetches one playback-order record by its (path, video) key.
func (r *Repository) Order(ctx context.Context, pathID, videoURI string) (table.Order, error) {
	item, err := r.GetItem(ctx, table.OrderKey(pathID, videoURI))
	if err != nil {
		return table.Order{}, err
	}
	return table.UnmarshalRecord[table.Order](item)
}

// Tag fetches one tag record.
func (r *Repository) Tag(ctx context.Context, tagID string) (table.Tag, error) {
	item, err := r.GetItem(ctx, table.KeyFor(tagID))
	if err != nil {
		return table.Tag{}, err
	}
	return table.UnmarshalRecord[table.Tag](item)
}

// Tags lists tag records.
func (r *Repository) Tags(ctx context.Context) ([]table.Tag, error) {
	return queryKind[table.Tag](ctx, r, table.KindTag)
}

// Category fetches one category record.
func (r *Repository) Category(ctx context.Context, categoryID string) (table.Category, error) {
	item, err := r.GetItem(ctx, table.KeyFor(categoryID))
	if err != nil {
		return table.Category{}, err
	}
	return table.UnmarshalRecord[table.Category](item)
}

// Categories lists category records sorted by ID.
func (r *Repository) Categories(ctx context.Context) ([]table.Category, error) {
	categories, err := queryKind[table.Category](ctx, r, table.KindCategory)
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].SK < categories[j].SK })
	return categories, nil
}

// User fetches one user record.
func (r *Repository) User(ctx context.Context, userID string) (table.User, error) {
	item, err := r.GetItem(ctx, table.KeyFor(userID))
	if err != nil {
		return table.User{}, err
	}
	return table.UnmarshalRecord[table.User](item)
}

// Users lists user records.
func (r *Repository) Users(ctx context.Context) ([]table.User, error) {
	return queryKind[table.User](ctx, r, table.KindUser)
}

// UsersToday lists users whose record was touched today, for the login
// counter. The creation timestamp is an attribute, so this is a filter, not
// a key condition.
func (r *Repository) UsersToday(ctx context.Context, today string) ([]table.User, error) {
	input, err := NewQueryBuilder(r.tableName).
		WithKind(r.indexName, table.KindUser).
		WithDatePrefix("createdAt", today).
		Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[table.User](items)
}

// Banners lists banner records; active=false hides invalidated ones.
func (r *Repository) Banners(ctx context.Context, includeInvalid bool) ([]table.Banner, error) {
	qb := NewQueryBuilder(r.tableName).WithKind(r.indexName, table.KindBanner)
	if !includeInvalid {
		qb = qb.WithValidOnly()
	}
	input, err := qb.Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[table.Banner](items)
}

// ThreadsByVideo lists the valid comment records under one video.
func (r *Repository) ThreadsByVideo(ctx context.Context, videoURI string) ([]table.Thread, error) {
	input, err := NewQueryBuilder(r.tableName).
		WithPartition(videoURI).
		WithKindFilter(table.KindThread).
		WithValidOnly().
		Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[table.Thread](items)
}

// LikesByVideo lists the like records under one video.
func (r *Repository) LikesByVideo(ctx context.Context, videoURI string) ([]table.Like, error) {
	input, err := NewQueryBuilder(r.tableName).
		WithPartition(videoURI).
		WithKindFilter(table.KindLike).
		Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[table.Like](items)
}

// FavoritesByUser lists one user's favorite records.
func (r *Repository) FavoritesByUser(ctx context.Context, userID string) ([]table.Favorite, error) {
	input, err := NewQueryBuilder(r.tableName).
		WithPartition(userID).
		WithKindFilter(table.KindFavorite).
		Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[table.Favorite](items)
}

// HistoriesByUser lists one user's most recent watch events.
func (r *Repository) HistoriesByUser(ctx context.Context, userID string, limit int32) ([]table.History, error) {
	qb := NewQueryBuilder(r.tableName).
		WithPartition(userID).
		WithKindFilter(table.KindHistory).
		Newest()
	if limit > 0 {
		qb = qb.WithLimit(limit)
	}
	input, err := qb.Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[table.History](items)
}

// HistoriesToday lists today's watch events across all users.
func (r *Repository) HistoriesToday(ctx context.Context, today string) ([]table.History, error) {
	input, err := NewQueryBuilder(r.tableName).
		WithKind(r.indexName, table.KindHistory).
		WithDatePrefix("createdAt", today).
		Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[table.History](items)
}

// UploadStatusesToday lists today's upload-status records. Their sort key
// is the creation timestamp, so the date prefix rides the key condition.
func (r *Repository) UploadStatusesToday(ctx context.Context, today string) ([]table.UploadStatus, error) {
	input, err := NewQueryBuilder(r.tableName).
		WithKind(r.indexName, table.KindStatus).
		WithSortKeyPrefix(today).
		Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[table.UploadStatus](items)
}

func queryKind[T any](ctx context.Context, r *Repository, kind table.Kind) ([]T, error) {
	input, err := NewQueryBuilder(r.tableName).WithKind(r.indexName, kind).Build()
	if err != nil {
		return nil, err
	}
	items, err := r.QueryAll(ctx, input)
	if err != nil {
		return nil, err
	}
	return table.UnmarshalRecords[T](items)
}
