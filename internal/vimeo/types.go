// Package vimeo is a typed client for the video platform's REST API. It
// covers the slice the application uses: listing and fetching videos,
// starting resumable uploads, polling transcode status, and thumbnails.
package vimeo

import "encoding/json"

// videoFields is the field projection requested on every video fetch.
const videoFields = "uri,name,duration,stats,privacy,embed.html,pictures.sizes"

// Thumbnail is one rendition of a video's picture.
type Thumbnail struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Link   string `json:"link"`
}

// Video is the platform's view of one video, flattened from the API's
// nested response shape.
type Video struct {
	URI       string    `json:"uri"`
	Name      string    `json:"name"`
	Duration  int       `json:"duration"`
	Plays     int       `json:"plays"`
	View      string    `json:"view"`
	HTML      string    `json:"html"`
	Thumbnail Thumbnail `json:"thumbnail"`
}

// VideoList is one platform listing: the account's total video count plus
// the fetched records.
type VideoList struct {
	Total  int     `json:"total"`
	Videos []Video `json:"data"`
}

// Upload describes a freshly created resumable upload.
type Upload struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Link        string `json:"link"`
	UploadLink  string `json:"upload_link"`
}

// UploadRequest describes the video an upload will create.
type UploadRequest struct {
	Name        string
	Description string
	Size        int64
}

// apiVideo mirrors the platform's nested JSON for one video.
type apiVideo struct {
	URI      string `json:"uri"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Stats    struct {
		Plays int `json:"plays"`
	} `json:"stats"`
	Privacy struct {
		View string `json:"view"`
	} `json:"privacy"`
	Embed struct {
		HTML string `json:"html"`
	} `json:"embed"`
	Pictures struct {
		Sizes []Thumbnail `json:"sizes"`
	} `json:"pictures"`
}

type apiVideoList struct {
	Total  int             `json:"total"`
	Data   []apiVideo      `json:"data"`
	Paging json.RawMessage `json:"paging"`
}

type apiUpload struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Upload      struct {
		UploadLink string `json:"upload_link"`
	} `json:"upload"`
}

type apiTranscode struct {
	Transcode struct {
		Status string `json:"status"`
	} `json:"transcode"`
}

// flatten picks the application-facing fields out of the nested response.
// The largest picture rendition is the one served as thumbnail.
func (v apiVideo) flatten() Video {
	out := Video{
		URI:      v.URI,
		Name:     v.Name,
		Duration: v.Duration,
		Plays:    v.Stats.Plays,
		View:     v.Privacy.View,
		HTML:     v.Embed.HTML,
	}
	if n := len(v.Pictures.Sizes); n > 0 {
		out.Thumbnail = v.Pictures.Sizes[n-1]
	}
	return out
}
