// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jeranaias/birdwatch-tui/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, staticToken("sess-123"))
}

// =============================================================================
// CHAT LISTING
// =============================================================================

func TestListChats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/llm/chats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %q", got)
		}
		if got := r.Header.Get("X-Session-ID"); got != "sess-123" {
			t.Errorf("session header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"chat_id":"c2","title":"Second","dts":200,"messages":[]},
			{"chat_id":"c1","title":"First","dts":100,"messages":[]}
		]`)
	})

	chats, err := client.ListChats(context.Background(), "llm", 20)
	if err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if len(chats) != 2 {
		t.Fatalf("got %d chats", len(chats))
	}
	if chats[0].ChatID != "c2" || chats[1].ChatID != "c1" {
		t.Errorf("order lost: %q, %q", chats[0].ChatID, chats[1].ChatID)
	}
}

func TestGetChat_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Chat not found"}`)
	})

	_, err := client.GetChat(context.Background(), "llm", "gone")
	if !IsChatNotFound(err) {
		t.Errorf("expected chat-not-found, got %v", err)
	}
}

// =============================================================================
// CHAT SUBMISSION
// =============================================================================

func TestStartChat_MultipartForm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/llm-cnn/chats" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			t.Fatalf("not a multipart form: %v", err)
		}
		if got := r.FormValue("content"); got != "what bird is this?" {
			t.Errorf("content = %q", got)
		}
		file, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer file.Close()
		if hdr.Filename != "song.mp3" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "mp3-bytes" {
			t.Errorf("file bytes = %q", data)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"chat_id":"c9","title":"what bird is this?","dts":123,
			"messages":[
				{"message_id":"m1","role":"user","content":"what bird is this?"},
				{"message_id":"m2","role":"assistant","content":"A robin."}
			]
		}`)
	})

	att := model.NewLocalAttachment(model.AttachmentAudio, "song.mp3", "audio/mpeg", []byte("mp3-bytes"))
	chat, err := client.StartChat(context.Background(), "llm-cnn", "what bird is this?", att)
	if err != nil {
		t.Fatalf("StartChat failed: %v", err)
	}
	if chat.ChatID != "c9" {
		t.Errorf("ChatID = %q", chat.ChatID)
	}
	if chat.MessageCount() != 2 || chat.LastMessage().Role != model.RoleAssistant {
		t.Errorf("unexpected transcript: %+v", chat.Messages)
	}
}

func TestStartChat_TextOnlyOmitsFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart form: %v", err)
		}
		if _, _, err := r.FormFile("file"); err == nil {
			t.Error("text-only submission must not carry a file part")
		}
		io.WriteString(w, `{"chat_id":"c1","messages":[]}`)
	})

	if _, err := client.StartChat(context.Background(), "llm", "hello", nil); err != nil {
		t.Fatalf("StartChat failed: %v", err)
	}
}

func TestContinueChat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/llm/chats/c7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `{"chat_id":"c7","messages":[
			{"message_id":"m1","role":"user","content":"more"},
			{"message_id":"m2","role":"assistant","content":"Sure."}
		]}`)
	})

	chat, err := client.ContinueChat(context.Background(), "llm", "c7", "more", nil)
	if err != nil {
		t.Fatalf("ContinueChat failed: %v", err)
	}
	if chat.ChatID != "c7" {
		t.Errorf("ChatID = %q", chat.ChatID)
	}
}

func TestContinueChat_StaleID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Chat not found"}`)
	})

	_, err := client.ContinueChat(context.Background(), "llm", "stale", "hi", nil)
	if !IsChatNotFound(err) {
		t.Errorf("expected chat-not-found, got %v", err)
	}
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestServerErrorDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail":"inference backend exploded"}`)
	})

	_, err := client.StartChat(context.Background(), "llm", "hi", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "inference backend exploded" {
		t.Errorf("error = %q, want server detail", err.Error())
	}
	if IsChatNotFound(err) || IsTimeout(err) {
		t.Error("wrong category for server error")
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewClient(&ClientConfig{BaseURL: base, Timeout: time.Second}, nil)
	_, err := client.ListChats(context.Background(), "llm", 5)
	if !IsUnreachable(err) {
		t.Errorf("expected unreachable, got %v", err)
	}
}

func TestCheckReachable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"Welcome to the Bird Watching App"}`)
	})
	if err := client.CheckReachable(context.Background()); err != nil {
		t.Errorf("CheckReachable failed: %v", err)
	}
}

// =============================================================================
// LIBRARY ENDPOINTS
// =============================================================================

func TestListBirdSounds(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bird_sounds/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `[{"id":"s1","title":"Wood Thrush","caption":"Dawn song","duration":"0:42","dts":5}]`)
	})

	sounds, err := client.ListBirdSounds(context.Background(), 4)
	if err != nil {
		t.Fatalf("ListBirdSounds failed: %v", err)
	}
	if len(sounds) != 1 || sounds[0].Title != "Wood Thrush" {
		t.Errorf("sounds = %+v", sounds)
	}
}

func TestGetBirdMap_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Bird map not found"}`)
	})

	_, err := client.GetBirdMap(context.Background(), "missing")
	if err == nil || !IsChatNotFound(err) {
		// IsChatNotFound matches any not-found category error.
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestListNewsletters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/newsletters/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `[{"id":"n1","title":"Spring Migration","readTime":"4 min"}]`)
	})

	issues, err := client.ListNewsletters(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListNewsletters failed: %v", err)
	}
	if len(issues) != 1 || issues[0].ReadTime != "4 min" {
		t.Errorf("issues = %+v", issues)
	}
}

// =============================================================================
// URL RESOLUTION
// =============================================================================

func TestURLResolvers(t *testing.T) {
	base := "http://localhost:9000/"
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"chat audio", ChatAudioURL(base, "llm-cnn", "c1/m2.mp3"), "http://localhost:9000/llm-cnn/audio/c1/m2.mp3"},
		{"chat image", ChatImageURL(base, "llm", "c1/m3.jpg"), "http://localhost:9000/llm/images/c1/m3.jpg"},
		{"bird sound", BirdSoundAudioURL(base, "a04bb69e-EN.mp3"), "http://localhost:9000/bird_sounds/audio/a04bb69e-EN.mp3"},
		{"bird map", BirdMapImageURL(base, "mapbirddef.jpg"), "http://localhost:9000/bird_maps/image/mapbirddef.jpg"},
		{"newsletter", NewsletterImageURL(base, "issue1.jpg"), "http://localhost:9000/newsletters/image/issue1.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestBirdSoundAudioName(t *testing.T) {
	s := BirdSound{ID: "a04bb69e-f217-4e30-995b-cc1beddcc79e", Title: "European Robin Song"}
	want := "a04bb69e-f217-4e30-995b-cc1beddcc79e-EN.mp3"
	if got := s.AudioName(); got != want {
		t.Errorf("AudioName = %q, want %q", got, want)
	}
}
