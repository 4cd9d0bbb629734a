// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// =============================================================================
// LIBRARY TYPES
// =============================================================================

// BirdSound is a curated bird call recording with metadata.
type BirdSound struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	Date     string `json:"date"`
	Duration string `json:"duration"`
	Image    string `json:"image"`
	DTS      int64  `json:"dts"`
}

// AudioName is the recording's asset name on the server. Recordings are
// stored as "<id>-EN.mp3" under the bird_sounds audio route.
func (s *BirdSound) AudioName() string {
	return s.ID + "-EN.mp3"
}

// BirdMap is a curated distribution or biodiversity map article.
type BirdMap struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Excerpt  string `json:"excerpt"`
	Image    string `json:"image"`
	Detail   string `json:"detail"`
	DTS      int64  `json:"dts"`
}

// Newsletter is a published newsletter issue.
type Newsletter struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Excerpt  string `json:"excerpt"`
	Image    string `json:"image"`
	HTML     string `json:"html"`
	Detail   string `json:"detail"`
	DTS      int64  `json:"dts"`
}

// =============================================================================
// BIRD SOUNDS
// =============================================================================

// ListBirdSounds retrieves bird sound entries, most recent first.
// limit <= 0 returns everything.
func (c *Client) ListBirdSounds(ctx context.Context, limit int) ([]BirdSound, error) {
	var sounds []BirdSound
	if err := c.getJSON(ctx, listURL(c.config.BaseURL+"/bird_sounds/", limit), &sounds); err != nil {
		return nil, err
	}
	return sounds, nil
}

// GetBirdSound retrieves one bird sound entry by ID.
func (c *Client) GetBirdSound(ctx context.Context, id string) (*BirdSound, error) {
	var sound BirdSound
	if err := c.getJSON(ctx, c.config.BaseURL+"/bird_sounds/"+url.PathEscape(id), &sound); err != nil {
		return nil, err
	}
	return &sound, nil
}

// =============================================================================
// BIRD MAPS
// =============================================================================

// ListBirdMaps retrieves bird map articles, most recent first.
func (c *Client) ListBirdMaps(ctx context.Context, limit int) ([]BirdMap, error) {
	var maps []BirdMap
	if err := c.getJSON(ctx, listURL(c.config.BaseURL+"/bird_maps/", limit), &maps); err != nil {
		return nil, err
	}
	return maps, nil
}

// GetBirdMap retrieves one bird map article by ID.
func (c *Client) GetBirdMap(ctx context.Context, id string) (*BirdMap, error) {
	var m BirdMap
	if err := c.getJSON(ctx, c.config.BaseURL+"/bird_maps/"+url.PathEscape(id), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// =============================================================================
// NEWSLETTERS
// =============================================================================

// ListNewsletters retrieves newsletter issues, most recent first.
func (c *Client) ListNewsletters(ctx context.Context, limit int) ([]Newsletter, error) {
	var issues []Newsletter
	if err := c.getJSON(ctx, listURL(c.config.BaseURL+"/newsletters/", limit), &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// GetNewsletter retrieves one newsletter issue by ID.
func (c *Client) GetNewsletter(ctx context.Context, id string) (*Newsletter, error) {
	var issue Newsletter
	if err := c.getJSON(ctx, c.config.BaseURL+"/newsletters/"+url.PathEscape(id), &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// =============================================================================
// SHARED FETCH
// =============================================================================

func listURL(u string, limit int) string {
	if limit > 0 {
		return u + "?limit=" + strconv.Itoa(limit)
	}
	return u
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &ClientError{Type: ErrTypeNotFound, Message: "entry not found"}
	}
	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp, "request failed")
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}
