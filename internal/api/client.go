// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the birdwatching API service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/jeranaias/birdwatch-tui/internal/model"
)

// maxResponseSize caps response body reads. Chat transcripts can carry
// inline base64 audio, so the cap is generous.
const maxResponseSize = 32 * 1024 * 1024

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// TokenSource supplies the session token attached to every request.
type TokenSource interface {
	Token() string
}

// ClientConfig holds configuration options for the API client.
type ClientConfig struct {
	// BaseURL is the API service root (default: http://localhost:9000)
	BaseURL string

	// Timeout for requests (default: 120s; chat turns wait on inference)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://localhost:9000",
		Timeout: 120 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the birdwatching API service.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := api.NewClient(nil, sessions)
//	chats, err := client.ListChats(ctx, "llm", 20)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a new API client. A nil config uses defaults. A nil
// TokenSource sends no session header; history is then server-anonymous.
func NewClient(config *ClientConfig, tokens TokenSource) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:9000"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		tokens: tokens,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// setHeaders attaches the session identity to a request.
func (c *Client) setHeaders(req *http.Request) {
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("X-Session-ID", tok)
		}
	}
}

// do executes a request, mapping transport failures to typed errors.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "API server is unreachable", Cause: err}
	}
	return resp, nil
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckReachable verifies that the API service responds at its root.
func (c *Client) CheckReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from API server: " + resp.Status,
		}
	}
	return nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// ListChats retrieves recent chats for the session, most recent first.
// limit <= 0 returns everything the server has.
func (c *Client) ListChats(ctx context.Context, modelTag string, limit int) ([]*model.Chat, error) {
	u := c.config.BaseURL + "/" + modelTag + "/chats"
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "failed to list chats")
	}

	var chats []*model.Chat
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&chats); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode chat list", Cause: err}
	}
	return chats, nil
}

// GetChat retrieves one chat with its full transcript.
func (c *Client) GetChat(ctx context.Context, modelTag, chatID string) (*model.Chat, error) {
	u := c.config.BaseURL + "/" + modelTag + "/chats/" + url.PathEscape(chatID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrChatNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "failed to get chat")
	}

	return decodeChat(resp.Body)
}

// StartChat creates a new chat from the first user turn and returns the
// full chat, including the server-assigned ID and the model's reply.
func (c *Client) StartChat(ctx context.Context, modelTag, content string, att *model.Attachment) (*model.Chat, error) {
	return c.postChat(ctx, c.config.BaseURL+"/"+modelTag+"/chats", content, att)
}

// ContinueChat appends a user turn to an existing chat and returns the
// updated full chat.
func (c *Client) ContinueChat(ctx context.Context, modelTag, chatID, content string, att *model.Attachment) (*model.Chat, error) {
	return c.postChat(ctx, c.config.BaseURL+"/"+modelTag+"/chats/"+url.PathEscape(chatID), content, att)
}

// postChat submits a user turn as a multipart form: a "content" text field
// plus an optional "file" upload for local attachments.
func (c *Client) postChat(ctx context.Context, u, content string, att *model.Attachment) (*model.Chat, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if content != "" {
		if err := w.WriteField("content", content); err != nil {
			return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to encode form", Cause: err}
		}
	}
	if att != nil && att.IsLocal() {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, att.Name()))
		if att.MIME() != "" {
			hdr.Set("Content-Type", att.MIME())
		}
		part, err := w.CreatePart(hdr)
		if err != nil {
			return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to encode upload", Cause: err}
		}
		if _, err := part.Write(att.Data()); err != nil {
			return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to encode upload", Cause: err}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to encode form", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrChatNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "chat request failed")
	}

	return decodeChat(resp.Body)
}

// =============================================================================
// RESPONSE HANDLING
// =============================================================================

func decodeChat(r io.Reader) (*model.Chat, error) {
	var chat model.Chat
	if err := json.NewDecoder(io.LimitReader(r, maxResponseSize)).Decode(&chat); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode chat", Cause: err}
	}
	return &chat, nil
}

// apiError is the error body the server produces.
type apiError struct {
	Detail string `json:"detail"`
}

// statusError converts a non-200 response into a typed error, preferring
// the server's detail message when one is present.
func (c *Client) statusError(resp *http.Response, msg string) error {
	errType := ErrTypeInvalidResponse
	if resp.StatusCode >= http.StatusInternalServerError {
		errType = ErrTypeServer
	}

	var apiErr apiError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&apiErr); err == nil && apiErr.Detail != "" {
		return &ClientError{Type: errType, Message: apiErr.Detail}
	}
	return &ClientError{Type: errType, Message: msg + ": " + resp.Status}
}

// Helper to drain response body so connections can be reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
