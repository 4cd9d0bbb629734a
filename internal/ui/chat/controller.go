// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"errors"

	"github.com/jeranaias/birdwatch-tui/internal/config"
	"github.com/jeranaias/birdwatch-tui/internal/model"
)

// =============================================================================
// SESSION ERRORS
// =============================================================================

var (
	// ErrBusy is returned when an operation is rejected because a request
	// is already in flight.
	ErrBusy = errors.New("a request is already in flight")

	// ErrEmptySubmission is returned when a submit has neither text nor an
	// attachment. No network request is made.
	ErrEmptySubmission = errors.New("nothing to send")

	// ErrUnknownModel is returned when switching to a model tag the server
	// does not serve.
	ErrUnknownModel = errors.New("unknown model")
)

// =============================================================================
// SESSION STATE
// =============================================================================

// State represents the current state of the chat session.
type State int

const (
	StateIdle       State = iota // No chat active, composer open
	StateLoading                 // Fetching a chat from the server
	StateReady                   // Chat loaded, composer open
	StateSubmitting              // A message is in flight
	StateError                   // Showing an error
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION CONTROLLER
// =============================================================================

// Controller is the chat session state machine. It owns the confirmed chat
// snapshot, the optimistic pending message, and the request sequence counters
// used to discard stale responses. It performs no I/O itself: the Bubble Tea
// model drives it with Begin*/Apply* calls around the network commands.
//
// The confirmed snapshot is immutable. A server reply replaces it wholesale;
// the pending message is an overlay that is never merged into it.
type Controller struct {
	state    State
	modelTag string

	confirmed *model.Chat    // last server-confirmed snapshot, nil for a new chat
	pending   *model.Message // optimistic user message, non-nil only while Submitting

	loadSeq   int
	submitSeq int

	lastErr error
}

// NewController creates a controller for the given model tag.
func NewController(modelTag string) *Controller {
	return &Controller{
		state:    StateIdle,
		modelTag: modelTag,
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// ModelTag returns the active model tag.
func (c *Controller) ModelTag() string {
	return c.modelTag
}

// Err returns the last error, set only in StateError.
func (c *Controller) Err() error {
	return c.lastErr
}

// ChatID returns the active chat's ID, or "" for a new chat.
func (c *Controller) ChatID() string {
	if c.confirmed == nil {
		return ""
	}
	return c.confirmed.ChatID
}

// Chat returns the confirmed snapshot, or nil for a new chat.
func (c *Controller) Chat() *model.Chat {
	return c.confirmed
}

// Title returns the display title of the active chat.
func (c *Controller) Title() string {
	if c.confirmed == nil {
		return ""
	}
	return c.confirmed.DisplayTitle()
}

// Pending returns the in-flight optimistic message, or nil.
func (c *Controller) Pending() *model.Message {
	return c.pending
}

// PendingID returns the ID of the in-flight message, or "".
func (c *Controller) PendingID() string {
	if c.pending == nil {
		return ""
	}
	return c.pending.ID
}

// Messages returns the transcript to render: the confirmed messages with the
// pending message appended. The returned slice is freshly built and safe for
// the caller to hold across state changes.
func (c *Controller) Messages() []*model.Message {
	var msgs []*model.Message
	if c.confirmed != nil {
		msgs = append(msgs, c.confirmed.Messages...)
	}
	if c.pending != nil {
		msgs = append(msgs, c.pending)
	}
	return msgs
}

// ==========================================================================
// LOAD
// ==========================================================================

// BeginLoad starts loading a chat. It returns the sequence number to tag the
// request with, or an error if a request is already in flight. Starting a new
// load supersedes any load still in flight: the older response will carry a
// stale sequence and be discarded.
func (c *Controller) BeginLoad() (int, error) {
	if c.state == StateSubmitting {
		return 0, ErrBusy
	}
	c.loadSeq++
	c.state = StateLoading
	c.lastErr = nil
	return c.loadSeq, nil
}

// ApplyLoaded applies a load result. Responses tagged with a stale sequence
// are discarded and the method reports false.
func (c *Controller) ApplyLoaded(seq int, chat *model.Chat, err error) bool {
	if seq != c.loadSeq || c.state != StateLoading {
		return false
	}
	if err != nil {
		c.fail(err)
		return true
	}
	c.confirmed = chat
	c.state = StateReady
	return true
}

// ==========================================================================
// SUBMIT
// ==========================================================================

// BeginSubmit validates a submission and, if accepted, inserts the optimistic
// user message and moves to StateSubmitting. It returns the pending message
// and the sequence number to tag the request with.
//
// An empty submission (no text, no attachment) is rejected locally with
// ErrEmptySubmission; no request should be made. A submit while another
// request is in flight is rejected with ErrBusy.
func (c *Controller) BeginSubmit(content string, att *model.Attachment) (*model.Message, int, error) {
	if c.state == StateSubmitting || c.state == StateLoading {
		return nil, 0, ErrBusy
	}
	if content == "" && att == nil {
		return nil, 0, ErrEmptySubmission
	}

	msg := model.NewUserMessage(content, att)
	c.pending = msg
	c.submitSeq++
	c.state = StateSubmitting
	c.lastErr = nil
	return msg, c.submitSeq, nil
}

// ApplySubmitDone applies a submit result. On success the server's chat
// replaces the confirmed snapshot wholesale and the pending overlay is
// dropped. On failure the pending message is rolled back, restoring the
// transcript to its exact pre-submit state. Stale responses are discarded.
func (c *Controller) ApplySubmitDone(seq int, chat *model.Chat, err error) bool {
	if seq != c.submitSeq || c.state != StateSubmitting {
		return false
	}
	c.pending = nil
	if err != nil {
		c.fail(err)
		return true
	}
	c.confirmed = chat
	c.state = StateReady
	return true
}

// ==========================================================================
// MODEL SWITCHING AND RESET
// ==========================================================================

// SwitchModel changes the active model tag. Each model owns its own chat
// history, so the active chat is cleared. Rejected while a submit is in
// flight, and for tags the server does not serve.
func (c *Controller) SwitchModel(tag string) error {
	if c.state == StateSubmitting {
		return ErrBusy
	}
	if !config.IsKnownModel(tag) {
		return ErrUnknownModel
	}
	if tag == c.modelTag {
		return nil
	}
	c.modelTag = tag
	c.confirmed = nil
	c.pending = nil
	c.lastErr = nil
	c.state = StateIdle
	return nil
}

// NewChat clears the active chat so the next submit starts a fresh one.
// Rejected while a submit is in flight.
func (c *Controller) NewChat() error {
	if c.state == StateSubmitting {
		return ErrBusy
	}
	c.confirmed = nil
	c.pending = nil
	c.lastErr = nil
	c.state = StateIdle
	return nil
}

// DismissError leaves StateError, returning to Ready or Idle depending on
// whether a chat is active.
func (c *Controller) DismissError() {
	if c.state != StateError {
		return
	}
	c.lastErr = nil
	c.state = c.stateAfterIdle()
}

// ==========================================================================
// INTERNAL
// ==========================================================================

func (c *Controller) fail(err error) {
	c.lastErr = err
	c.state = StateError
}

// stateAfterIdle returns the resting state for the current snapshot.
func (c *Controller) stateAfterIdle() State {
	if c.confirmed != nil {
		return StateReady
	}
	return StateIdle
}
