package vimeo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "studio-backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{BaseURL: server.URL, Token: "test-token"}, zap.NewNop())
	return client, server
}

func pageResponse(total, page, size int) apiVideoList {
	out := apiVideoList{Total: total}
	for i := 0; i < size; i++ {
		var v apiVideo
		v.URI = fmt.Sprintf("/videos/%d-%d", page, i)
		v.Name = fmt.Sprintf("video %d-%d", page, i)
		out.Data = append(out.Data, v)
	}
	return out
}

func TestVideosFetchesAllPagesInOrder(t *testing.T) {
	const total = 250 // 3 pages at 100 per page

	var mu sync.Mutex
	var pagesSeen []int

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		mu.Lock()
		pagesSeen = append(pagesSeen, page)
		mu.Unlock()

		size := perPage
		if page == 3 {
			size = 50
		}
		json.NewEncoder(w).Encode(pageResponse(total, page, size))
	})

	client, _ := newTestClient(t, handler)
	list, err := client.Videos(context.Background())
	require.NoError(t, err)

	assert.Equal(t, total, list.Total)
	require.Len(t, list.Videos, total)
	assert.Len(t, pagesSeen, 3)

	// page order survives concurrent fetching
	assert.Equal(t, "/videos/1-0", list.Videos[0].URI)
	assert.Equal(t, "/videos/2-0", list.Videos[perPage].URI)
	assert.Equal(t, "/videos/3-0", list.Videos[2*perPage].URI)
}

func TestVideosFailingPageAbortsListing(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(pageResponse(250, page, perPage))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.Videos(context.Background())
	assert.True(t, apperrors.IsUpstreamFailure(err))
}

func TestVideoFlattensNestedResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos/123", r.URL.Path)
		w.Write([]byte(`{
			"uri": "/videos/123",
			"name": "intro",
			"duration": 300,
			"stats": {"plays": 12},
			"privacy": {"view": "disable"},
			"embed": {"html": "<iframe></iframe>"},
			"pictures": {"sizes": [
				{"width": 100, "height": 75, "link": "small"},
				{"width": 1920, "height": 1080, "link": "large"}
			]}
		}`))
	})

	client, _ := newTestClient(t, handler)
	video, err := client.Video(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, "/videos/123", video.URI)
	assert.Equal(t, 300, video.Duration)
	assert.Equal(t, 12, video.Plays)
	assert.Equal(t, "<iframe></iframe>", video.HTML)
	assert.Equal(t, "large", video.Thumbnail.Link)
}

func TestTranscodeStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transcode": {"status": "in_progress"}}`))
	})

	client, _ := newTestClient(t, handler)
	status, err := client.TranscodeStatus(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "in_progress", status)
}

func TestCreateUploadAppliesFollowUps(t *testing.T) {
	var mu sync.Mutex
	var calls []string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()

		if r.Method == http.MethodPost && r.URL.Path == "/me/videos" {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "ja", body["locale"])
			w.Write([]byte(`{
				"uri": "/videos/999",
				"name": "new video",
				"link": "https://platform.example/999",
				"upload": {"upload_link": "https://upload.example/tus/999"}
			}`))
			return
		}
		w.Write([]byte(`{}`))
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{
		BaseURL:      server.URL,
		Token:        "test-token",
		Preset:       "120971641",
		EmbedDomains: []string{"studio.example.com"},
	}, zap.NewNop())

	upload, err := client.CreateUpload(context.Background(), UploadRequest{
		Name: "new video",
		Size: 1024,
	})
	require.NoError(t, err)
	assert.Equal(t, "/videos/999", upload.URI)
	assert.Equal(t, "https://upload.example/tus/999", upload.UploadLink)

	assert.Equal(t, []string{
		"POST /me/videos",
		"PUT /videos/999/privacy/domains/studio.example.com",
		"PATCH /videos/999",
		"PUT /videos/999/presets/120971641",
	}, calls)
}

func TestNonSuccessIsUpstreamFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "bad token"}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.Video(context.Background(), "123")
	assert.True(t, apperrors.IsUpstreamFailure(err))
	assert.Contains(t, err.Error(), "401")
}
