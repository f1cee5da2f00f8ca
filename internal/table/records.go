package table

// Record types for every entity kind stored in the table. Attribute names
// follow the live table's schema; reference lists are string sets and are
// never stored empty (see AddReference/RemoveReference).

// Video is a video record. Top-level, self-keyed by the platform URI.
// The platform fields (URI..HTML) are denormalized copies refreshed from
// the video platform.
type Video struct {
	PK              string   `dynamodbav:"PK" json:"PK"`
	SK              string   `dynamodbav:"SK" json:"SK"`
	IndexKey        Kind     `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt       string   `dynamodbav:"createdAt" json:"createdAt"`
	CreatedUser     string   `dynamodbav:"createdUser" json:"createdUser"`
	UpdatedAt       string   `dynamodbav:"updatedAt" json:"updatedAt"`
	UpdatedUser     string   `dynamodbav:"updatedUser" json:"updatedUser"`
	Invalid         bool     `dynamodbav:"invalid" json:"invalid"`
	Note            string   `dynamodbav:"note" json:"note"`
	Description     string   `dynamodbav:"description" json:"description"`
	LearningPathIDs []string `dynamodbav:"learningPathIds,stringset" json:"learningPathIds"`
	TagIDs          []string `dynamodbav:"tagIds,stringset" json:"tagIds"`
	CategoryID      string   `dynamodbav:"categoryId" json:"categoryId"`

	URI       string `dynamodbav:"uri,omitempty" json:"uri"`
	Thumbnail string `dynamodbav:"thumbnail,omitempty" json:"thumbnail"`
	Plays     int    `dynamodbav:"plays,omitempty" json:"plays"`
	Name      string `dynamodbav:"name,omitempty" json:"name"`
	Duration  int    `dynamodbav:"duration,omitempty" json:"duration"`
	HTML      string `dynamodbav:"html,omitempty" json:"html"`

	// Match reports whether the record had a counterpart on the video
	// platform during the last merge. Not stored.
	Match bool `dynamodbav:"-" json:"match"`
}

// Category is a category record with a one-level parent chain.
// ParentID == RootCategoryID marks a top-level category.
type Category struct {
	PK          string `dynamodbav:"PK" json:"PK"`
	SK          string `dynamodbav:"SK" json:"SK"`
	IndexKey    Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	CreatedUser string `dynamodbav:"createdUser" json:"createdUser"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
	UpdatedUser string `dynamodbav:"updatedUser" json:"updatedUser"`
	Invalid     bool   `dynamodbav:"invalid" json:"invalid"`
	Note        string `dynamodbav:"note" json:"note"`
	Name        string `dynamodbav:"name" json:"name"`
	Description string `dynamodbav:"description" json:"description"`
	ParentID    string `dynamodbav:"parentId" json:"parentId"`

	// ID and Parent are presentation fields filled by the category merge.
	ID     int    `dynamodbav:"-" json:"id"`
	Parent string `dynamodbav:"-" json:"parent"`
}

// Tag is a flat tag record referenced from videos.
type Tag struct {
	PK          string `dynamodbav:"PK" json:"PK"`
	SK          string `dynamodbav:"SK" json:"SK"`
	IndexKey    Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	CreatedUser string `dynamodbav:"createdUser" json:"createdUser"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
	UpdatedUser string `dynamodbav:"updatedUser" json:"updatedUser"`
	Invalid     bool   `dynamodbav:"invalid" json:"invalid"`
	Note        string `dynamodbav:"note" json:"note"`
	Name        string `dynamodbav:"name" json:"name"`
	Description string `dynamodbav:"description" json:"description"`
}

// LearningPath is a learning-path record. The playback order of its videos
// lives in separate Order join records, not here.
type LearningPath struct {
	PK          string `dynamodbav:"PK" json:"PK"`
	SK          string `dynamodbav:"SK" json:"SK"`
	IndexKey    Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	CreatedUser string `dynamodbav:"createdUser" json:"createdUser"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
	UpdatedUser string `dynamodbav:"updatedUser" json:"updatedUser"`
	Invalid     bool   `dynamodbav:"invalid" json:"invalid"`
	Note        string `dynamodbav:"note" json:"note"`
	Name        string `dynamodbav:"name" json:"name"`
	Description string `dynamodbav:"description" json:"description"`

	// ID and Videos are presentation fields filled by the path merge.
	ID     int          `dynamodbav:"-" json:"id"`
	Videos []VideoOrder `dynamodbav:"-" json:"videos"`
}

// Order is the playback-order join record for a video within a path,
// keyed (pathID, videoURI). It reuses the Video discriminator.
type Order struct {
	PK        string `dynamodbav:"PK" json:"PK"`
	SK        string `dynamodbav:"SK" json:"SK"`
	IndexKey  Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	Order     int    `dynamodbav:"order" json:"order"`
}

// VideoOrder pairs a video URI with its playback order inside a path.
type VideoOrder struct {
	URI   string `json:"uri"`
	Order int    `json:"order"`
}

// User is a user record. PK equals the user's login identifier.
type User struct {
	PK        string `dynamodbav:"PK" json:"PK"`
	SK        string `dynamodbav:"SK" json:"SK"`
	IndexKey  Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt" json:"updatedAt"`
	Name      string `dynamodbav:"name" json:"name"`
	Image     string `dynamodbav:"image" json:"image"`
	ACL       string `dynamodbav:"acl" json:"acl"`
}

// Banner is a promotional banner record.
type Banner struct {
	PK          string `dynamodbav:"PK" json:"PK"`
	SK          string `dynamodbav:"SK" json:"SK"`
	IndexKey    Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	CreatedUser string `dynamodbav:"createdUser" json:"createdUser"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
	UpdatedUser string `dynamodbav:"updatedUser" json:"updatedUser"`
	Invalid     bool   `dynamodbav:"invalid" json:"invalid"`
	Note        string `dynamodbav:"note" json:"note"`
	Name        string `dynamodbav:"name" json:"name"`
	Description string `dynamodbav:"description" json:"description"`
	Image       string `dynamodbav:"image" json:"image"`
	Link        string `dynamodbav:"link" json:"link"`
}

// Thread is a comment record keyed (videoURI, token). Threads are never
// deleted, only marked invalid.
type Thread struct {
	PK          string `dynamodbav:"PK" json:"PK"`
	SK          string `dynamodbav:"SK" json:"SK"`
	IndexKey    Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	CreatedUser string `dynamodbav:"createdUser" json:"createdUser"`
	Body        string `dynamodbav:"body" json:"body"`
	Invalid     bool   `dynamodbav:"invalid" json:"invalid"`
}

// Like is a like/dislike record keyed (videoURI, generated ID).
type Like struct {
	PK          string `dynamodbav:"PK" json:"PK"`
	SK          string `dynamodbav:"SK" json:"SK"`
	IndexKey    Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	CreatedUser string `dynamodbav:"createdUser" json:"createdUser"`
	Like        bool   `dynamodbav:"like" json:"like"`
}

// Favorite is a favorite join record keyed (userID, videoURI).
type Favorite struct {
	PK        string `dynamodbav:"PK" json:"PK"`
	SK        string `dynamodbav:"SK" json:"SK"`
	IndexKey  Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// History is an append-only watch event keyed (userID, generated ID).
type History struct {
	PK         string  `dynamodbav:"PK" json:"PK"`
	SK         string  `dynamodbav:"SK" json:"SK"`
	IndexKey   Kind    `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt  string  `dynamodbav:"createdAt" json:"createdAt"`
	VideoURI   string  `dynamodbav:"videoUri" json:"videoUri"`
	Parse      float64 `dynamodbav:"parse" json:"parse"`
	FinishedAt string  `dynamodbav:"finishedAt" json:"finishedAt"`
	Referrer   string  `dynamodbav:"referrer" json:"referrer"`
}

// UploadStatus tracks an upload's transcoding progress, keyed
// (platform URI, creation timestamp).
type UploadStatus struct {
	PK          string `dynamodbav:"PK" json:"PK"`
	SK          string `dynamodbav:"SK" json:"SK"`
	ID          string `dynamodbav:"id" json:"id"`
	IndexKey    Kind   `dynamodbav:"indexKey" json:"indexKey"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	CreatedUser string `dynamodbav:"createdUser" json:"createdUser"`
	Name        string `dynamodbav:"name" json:"name"`
	Filename    string `dynamodbav:"filename" json:"filename"`
	Status      string `dynamodbav:"status" json:"status"`
}
