// Package table models the single-table layout shared by every entity:
// a composite (PK, SK) primary key, an indexKey discriminator scanned
// through a secondary index, and string-set reference lists kept non-empty
// with a sentinel element.
package table

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind is the indexKey discriminator value identifying an entity's type.
type Kind string

const (
	KindVideo        Kind = "Video"
	KindLearningPath Kind = "LearningPath"
	KindTag          Kind = "Tag"
	KindCategory     Kind = "Category"
	KindUser         Kind = "User"
	KindBanner       Kind = "Banner"
	KindThread       Kind = "Thread"
	KindLike         Kind = "Like"
	KindFavorite     Kind = "Favorite"
	KindHistory      Kind = "History"
	KindStatus       Kind = "Status"
)

const (
	// EmptyRef is the sentinel element kept in reference lists that are
	// logically empty. The store's string-set type forbids empty sets, so a
	// list is never stored without at least this one element.
	EmptyRef = ""

	// RootCategoryID is the parent ID marking a top-level category.
	RootCategoryID = "C999"
)

// Key is a (partition key, sort key) pair addressing one record.
type Key struct {
	PK string
	SK string
}

// KeyFor returns the key of a top-level entity, which is self-keyed:
// partition key and sort key both equal the entity's identifier.
func KeyFor(id string) Key {
	return Key{PK: id, SK: id}
}

// OrderKey returns the key of a playback-order join record. Order records
// carry the Video discriminator so the index scan that fetches videos by
// path picks them up.
func OrderKey(pathID, videoURI string) Key {
	return Key{PK: pathID, SK: videoURI}
}

// FavoriteKey returns the key of a favorite join record.
func FavoriteKey(userID, videoURI string) Key {
	return Key{PK: userID, SK: videoURI}
}

// LikeKey returns the key of a like record.
func LikeKey(videoURI, likeID string) Key {
	return Key{PK: videoURI, SK: likeID}
}

// HistoryKey returns the key of a watch-history record.
func HistoryKey(userID, historyID string) Key {
	return Key{PK: userID, SK: historyID}
}

// ThreadKey returns the key of a comment record. The sort key is the
// composite timestamp token built by ThreadToken.
func ThreadKey(videoURI, token string) Key {
	return Key{PK: videoURI, SK: token}
}

// StatusKey returns the key of an upload-status record.
func StatusKey(uri, timestamp string) Key {
	return Key{PK: uri, SK: timestamp}
}

// NewID generates a kind-prefixed identifier, e.g. "T-1a2b3c4d".
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// VideoURI builds the platform URI used as a video's natural key.
func VideoURI(videoID string) string {
	return fmt.Sprintf("/videos/%s", videoID)
}

// ThreadToken builds the sort-key token for a comment. A reply carries its
// parent's creation timestamp as prefix so replies sort under the parent.
func ThreadToken(parent, createdAt string) string {
	if parent != "" {
		return fmt.Sprintf("%s_%s", parent, createdAt)
	}
	return fmt.Sprintf("%s_%s", createdAt, createdAt)
}
