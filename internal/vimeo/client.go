package vimeo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "studio-backend/pkg/errors"
)

const (
	perPage      = 100
	fetchWorkers = 3
)

// Config carries the platform account settings.
type Config struct {
	BaseURL      string
	Token        string
	Preset       string
	EmbedDomains []string
}

// Client is the platform API client. One instance is created at process
// start and shared; it is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	preset  string
	domains []string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a platform client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		preset:  cfg.Preset,
		domains: cfg.EmbedDomains,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Video fetches one video's current platform state.
func (c *Client) Video(ctx context.Context, videoID string) (Video, error) {
	var raw apiVideo
	path := fmt.Sprintf("/videos/%s?fields=%s", videoID, url.QueryEscape(videoFields))
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return Video{}, err
	}
	return raw.flatten(), nil
}

// Total fetches the account's video count without paging through the data.
func (c *Client) Total(ctx context.Context) (int, error) {
	var raw apiVideoList
	if err := c.do(ctx, http.MethodGet, "/me/videos?fields=total", nil, &raw); err != nil {
		return 0, err
	}
	return raw.Total, nil
}

// Videos fetches the full account listing. Pages after the first are
// fetched concurrently with a bounded pool; results preserve the
// platform's page order. A single failing page fails the whole listing,
// a partial listing would silently mark missing videos as unmatched
// downstream.
func (c *Client) Videos(ctx context.Context) (VideoList, error) {
	first, err := c.page(ctx, 1)
	if err != nil {
		return VideoList{}, err
	}

	pageCount := (first.Total + perPage - 1) / perPage
	pages := make([]apiVideoList, pageCount)
	if pageCount > 0 {
		pages[0] = first
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchWorkers)
	for n := 2; n <= pageCount; n++ {
		n := n
		g.Go(func() error {
			page, err := c.page(gctx, n)
			if err != nil {
				return err
			}
			pages[n-1] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return VideoList{}, err
	}

	list := VideoList{Total: first.Total}
	for _, page := range pages {
		for _, raw := range page.Data {
			list.Videos = append(list.Videos, raw.flatten())
		}
	}
	return list, nil
}

func (c *Client) page(ctx context.Context, n int) (apiVideoList, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(n))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("fields", videoFields)

	c.logger.Debug("fetching platform page", zap.Int("page", n))
	var raw apiVideoList
	if err := c.do(ctx, http.MethodGet, "/me/videos?"+q.Encode(), nil, &raw); err != nil {
		return apiVideoList{}, err
	}
	return raw, nil
}

// UpdateVideo patches a video's name and description on the platform.
// Nil fields are left unchanged.
func (c *Client) UpdateVideo(ctx context.Context, videoID string, name, description *string) error {
	body := map[string]any{}
	if name != nil {
		body["name"] = *name
	}
	if description != nil {
		body["description"] = *description
	}
	if len(body) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPatch, "/videos/"+videoID, body, nil)
}

// TranscodeStatus reports a video's transcoding state: complete,
// in_progress, or error.
func (c *Client) TranscodeStatus(ctx context.Context, videoID string) (string, error) {
	var raw apiTranscode
	path := fmt.Sprintf("/videos/%s?fields=transcode.status", videoID)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return "", err
	}
	return raw.Transcode.Status, nil
}

// CreateUpload registers a resumable upload on the platform and returns
// the link the browser pushes bytes to. The new video starts unviewable
// and embed-whitelisted to the configured domains; the embed preset is
// applied when one is configured.
func (c *Client) CreateUpload(ctx context.Context, req UploadRequest) (Upload, error) {
	body := map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"locale":      "ja",
		"privacy":     map[string]any{"download": false, "view": "disable"},
		"upload":      map[string]any{"approach": "tus", "size": strconv.FormatInt(req.Size, 10)},
	}
	var raw apiUpload
	if err := c.do(ctx, http.MethodPost, "/me/videos", body, &raw); err != nil {
		return Upload{}, err
	}

	for _, domain := range c.domains {
		if err := c.do(ctx, http.MethodPut, raw.URI+"/privacy/domains/"+domain, nil, nil); err != nil {
			return Upload{}, err
		}
	}
	embed := map[string]any{"privacy": map[string]any{"embed": "whitelist"}}
	if err := c.do(ctx, http.MethodPatch, raw.URI, embed, nil); err != nil {
		return Upload{}, err
	}
	if c.preset != "" {
		if err := c.do(ctx, http.MethodPut, raw.URI+"/presets/"+c.preset, nil, nil); err != nil {
			return Upload{}, err
		}
	}

	return Upload{
		URI:         raw.URI,
		Name:        raw.Name,
		Type:        raw.Type,
		Description: raw.Description,
		Link:        raw.Link,
		UploadLink:  raw.Upload.UploadLink,
	}, nil
}

// UploadThumbnail replaces a video's active thumbnail: register a picture
// slot, push the image bytes, then activate it.
func (c *Client) UploadThumbnail(ctx context.Context, videoID string, image []byte, contentType string) error {
	var picture struct {
		URI  string `json:"uri"`
		Link string `json:"link"`
	}
	if err := c.do(ctx, http.MethodPost, "/videos/"+videoID+"/pictures", nil, &picture); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, picture.Link, bytes.NewReader(image))
	if err != nil {
		return apperrors.NewInternal("failed to build thumbnail request", err)
	}
	req.Header.Set("Content-Type", contentType)
	res, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewUpstreamFailure("thumbnail upload failed", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return apperrors.NewUpstreamFailure(
			fmt.Sprintf("thumbnail upload rejected with status %d", res.StatusCode), nil)
	}

	return c.do(ctx, http.MethodPatch, picture.URI, map[string]any{"active": true}, nil)
}

// do runs one API call. Non-2xx responses surface as upstream failures
// carrying the platform's status and response snippet.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternal("failed to encode request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewInternal("failed to build platform request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.vimeo.*+json;version=3.4")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewUpstreamFailure("platform request failed", err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return apperrors.NewUpstreamFailure("failed to read platform response", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.logger.Warn("platform request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
		)
		return apperrors.NewUpstreamFailure(
			fmt.Sprintf("platform returned status %d: %s", res.StatusCode, snippet(payload)), nil)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperrors.NewUpstreamFailure("failed to decode platform response", err)
	}
	return nil
}

func snippet(payload []byte) string {
	const max = 200
	if len(payload) > max {
		return string(payload[:max])
	}
	return string(payload)
}
