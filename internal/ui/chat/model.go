// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/config"
	"github.com/jeranaias/birdwatch-tui/internal/model"
	"github.com/jeranaias/birdwatch-tui/internal/storage"
	"github.com/jeranaias/birdwatch-tui/internal/ui/components"
	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
)

// =============================================================================
// VIEW MODES
// =============================================================================

type viewMode int

const (
	modeChat viewMode = iota
	modeHistory
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. All session semantics
// live in the Controller; this type handles terminal concerns.
type Model struct {
	controller *Controller
	client     *api.Client
	cache      *storage.ChatCache
	cfg        *config.Config

	theme  *styles.Theme
	keyMap KeyMap
	width  int
	height int
	mode   viewMode
	ready  bool

	// Components
	viewport  viewport.Model
	input     *components.InputArea
	spinner   components.Spinner
	header    *components.Header
	statusBar *components.StatusBar
	welcome   components.Welcome
	msgList   *components.MessageList

	// History view
	history       []*model.Chat
	historyCursor int
	historyErr    error

	// Transient status note
	noteID  int
	offline bool

	version string
}

// New creates the chat model.
func New(client *api.Client, cache *storage.ChatCache, cfg *config.Config, version string) *Model {
	theme := styles.NewTheme(80, 24)

	m := &Model{
		controller: NewController(cfg.Chat.DefaultModel),
		client:     client,
		cache:      cache,
		cfg:        cfg,
		theme:      theme,
		keyMap:     DefaultKeyMap(),
		input:      components.NewInputArea(theme),
		spinner:    components.NewThinkingSpinner(),
		header:     components.NewHeader(theme),
		statusBar:  components.NewStatusBar(theme),
		welcome:    components.NewWelcome(theme),
		msgList:    components.NewMessageList(theme),
		version:    version,
	}
	m.welcome.SetVersion(version)
	m.header.SetModelTag(cfg.Chat.DefaultModel)
	if client != nil {
		m.msgList.BaseURL = client.BaseURL()
	}
	m.msgList.ModelTag = cfg.Chat.DefaultModel
	return m
}

// Init starts the server probe and focuses the composer.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		CheckReachableCmd(m.client),
		m.input.Focus(),
	)
}

// Controller exposes the session state machine, mainly for tests.
func (m *Model) Controller() *Controller {
	return m.controller
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReachableMsg:
		m.offline = msg.Err != nil
		if m.offline {
			m.statusBar.SetStatus(components.StatusOffline)
			return m, m.setNote("server unreachable, showing cached data only")
		}
		m.statusBar.SetStatus(components.StatusReady)
		return m, nil

	case ChatLoadedMsg:
		return m.handleChatLoaded(msg)

	case SubmitDoneMsg:
		return m.handleSubmitDone(msg)

	case ChatListMsg:
		return m.handleChatList(msg)

	case AttachmentStagedMsg:
		return m.handleAttachmentStaged(msg)

	case NoteExpiredMsg:
		if msg.ID == m.noteID {
			m.statusBar.SetNote("")
		}
		return m, nil

	default:
		// Spinner ticks and cursor blinks.
		var cmds []tea.Cmd
		if cmd := m.spinner.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.input.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.header.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)
	m.input.SetWidth(msg.Width)
	m.msgList.SetWidth(msg.Width - 2)
	m.welcome.SetSize(msg.Width, m.transcriptHeight())

	if !m.ready {
		m.viewport = viewport.New(msg.Width, m.transcriptHeight())
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = m.transcriptHeight()
	}
	m.refreshTranscript(false)
	return nil
}

// transcriptHeight is the room left for messages after the chrome.
func (m *Model) transcriptHeight() int {
	h := m.height - 1 - 3 - 1 // header, composer, status bar
	if m.input.Attachment() != nil {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

// ==========================================================================
// KEY HANDLING
// ==========================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}
	if m.mode == modeHistory {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m, m.handleSubmit()

	case key.Matches(msg, m.keyMap.NewChat):
		if err := m.controller.NewChat(); err != nil {
			return m, m.setNote("wait for the current send to finish")
		}
		m.header.SetChatTitle("")
		m.statusBar.SetStatus(components.StatusReady)
		m.refreshTranscript(false)
		return m, nil

	case key.Matches(msg, m.keyMap.History):
		return m, m.openHistory()

	case key.Matches(msg, m.keyMap.ClearAttachment):
		m.input.ClearAttachment()
		return m, nil

	case key.Matches(msg, m.keyMap.Back):
		if m.controller.State() == StateError {
			m.controller.DismissError()
			m.syncStatus()
			m.refreshTranscript(false)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, m.input.Update(msg)
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		m.mode = modeChat
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.historyCursor < len(m.history)-1 {
			m.historyCursor++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if m.historyCursor >= len(m.history) {
			return m, nil
		}
		chosen := m.history[m.historyCursor]
		seq, err := m.controller.BeginLoad()
		if err != nil {
			return m, m.setNote("wait for the current send to finish")
		}
		m.mode = modeChat
		m.statusBar.SetStatus(components.StatusLoading)
		return m, tea.Batch(
			m.spinner.Start(),
			LoadChatCmd(m.client, m.cache, m.controller.ModelTag(), chosen.ChatID, seq),
		)
	}
	return m, nil
}

// ==========================================================================
// SUBMIT PATH
// ==========================================================================

func (m *Model) handleSubmit() tea.Cmd {
	content := strings.TrimSpace(m.input.Value())

	if strings.HasPrefix(content, "/") {
		return m.handleSlashCommand(content)
	}

	att := m.input.Attachment()
	pending, seq, err := m.controller.BeginSubmit(content, att)
	if err != nil {
		switch err {
		case ErrEmptySubmission:
			return m.setNote("type a message or attach a file first")
		case ErrBusy:
			return m.setNote("wait for the current send to finish")
		default:
			return m.setNote(err.Error())
		}
	}

	m.msgList.PendingID = pending.ID
	m.statusBar.SetStatus(components.StatusSubmitting)
	m.refreshTranscript(true)

	return tea.Batch(
		m.spinner.Start(),
		SubmitCmd(m.client, m.controller.ModelTag(), m.controller.ChatID(), content, att, seq),
	)
}

func (m *Model) handleSlashCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/attach":
		if len(args) == 0 {
			return m.setNote("usage: /attach <path>")
		}
		m.input.Reset()
		return StageAttachmentCmd(strings.Join(args, " "), int64(m.cfg.Chat.MaxUploadBytes))

	case "/model":
		if len(args) == 0 {
			return m.setNote("models: " + strings.Join(config.KnownModels, ", "))
		}
		if err := m.controller.SwitchModel(args[0]); err != nil {
			switch err {
			case ErrBusy:
				return m.setNote("wait for the current send to finish")
			case ErrUnknownModel:
				return m.setNote("unknown model, try: " + strings.Join(config.KnownModels, ", "))
			default:
				return m.setNote(err.Error())
			}
		}
		m.input.Reset()
		m.header.SetModelTag(args[0])
		m.header.SetChatTitle("")
		m.welcome.SetModelTag(args[0])
		m.syncStatus()
		m.refreshTranscript(false)
		return m.setNote("switched to " + args[0])

	case "/new":
		m.input.Reset()
		if err := m.controller.NewChat(); err != nil {
			return m.setNote("wait for the current send to finish")
		}
		m.header.SetChatTitle("")
		m.refreshTranscript(false)
		return nil

	case "/history":
		m.input.Reset()
		return m.openHistory()

	default:
		return m.setNote("unknown command " + cmd)
	}
}

// ==========================================================================
// NETWORK RESULT HANDLING
// ==========================================================================

func (m *Model) handleChatLoaded(msg ChatLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.controller.ApplyLoaded(msg.Seq, msg.Chat, msg.Err) {
		return m, nil
	}
	m.spinner.Stop()
	m.syncStatus()

	var cmd tea.Cmd
	if msg.Err == nil {
		m.header.SetChatTitle(m.controller.Title())
		if msg.Cached {
			cmd = m.setNote("server unreachable, loaded cached copy")
		} else {
			cmd = CacheChatCmd(m.cache, msg.Chat)
		}
	}
	m.refreshTranscript(true)
	return m, cmd
}

func (m *Model) handleSubmitDone(msg SubmitDoneMsg) (tea.Model, tea.Cmd) {
	if !m.controller.ApplySubmitDone(msg.Seq, msg.Chat, msg.Err) {
		return m, nil
	}
	m.spinner.Stop()
	m.msgList.PendingID = ""
	m.syncStatus()

	var cmd tea.Cmd
	if msg.Err == nil {
		// The composer keeps its text until the server confirms.
		m.input.Reset()
		m.input.ClearAttachment()
		m.header.SetChatTitle(m.controller.Title())
		cmd = CacheChatCmd(m.cache, msg.Chat)
	}
	m.refreshTranscript(true)
	return m, cmd
}

func (m *Model) handleChatList(msg ChatListMsg) (tea.Model, tea.Cmd) {
	m.spinner.Stop()
	m.historyErr = msg.Err
	m.history = msg.Chats
	m.historyCursor = 0
	m.mode = modeHistory
	m.syncStatus()
	if msg.Cached {
		return m, m.setNote("server unreachable, showing cached chats")
	}
	return m, nil
}

func (m *Model) handleAttachmentStaged(msg AttachmentStagedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.setNote(msg.Err.Error())
	}
	m.input.SetAttachment(msg.Attachment)
	return m, nil
}

// ==========================================================================
// HELPERS
// ==========================================================================

func (m *Model) openHistory() tea.Cmd {
	if m.controller.State() == StateSubmitting {
		return m.setNote("wait for the current send to finish")
	}
	m.statusBar.SetStatus(components.StatusLoading)
	return tea.Batch(
		m.spinner.Start(),
		ListChatsCmd(m.client, m.cache, m.controller.ModelTag(), m.cfg.Chat.RecentLimit),
	)
}

// syncStatus maps the controller state onto the status bar.
func (m *Model) syncStatus() {
	switch m.controller.State() {
	case StateSubmitting:
		m.statusBar.SetStatus(components.StatusSubmitting)
	case StateLoading:
		m.statusBar.SetStatus(components.StatusLoading)
	case StateError:
		m.statusBar.SetStatus(components.StatusError)
	default:
		if m.offline {
			m.statusBar.SetStatus(components.StatusOffline)
		} else {
			m.statusBar.SetStatus(components.StatusReady)
		}
	}
}

// refreshTranscript rebuilds the viewport content from the controller.
func (m *Model) refreshTranscript(gotoBottom bool) {
	if !m.ready {
		return
	}
	msgs := m.controller.Messages()
	m.msgList.SetMessages(msgs)
	m.msgList.ModelTag = m.controller.ModelTag()
	m.viewport.Height = m.transcriptHeight()
	m.viewport.SetContent(m.msgList.View())
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

// setNote shows a transient status bar note.
func (m *Model) setNote(note string) tea.Cmd {
	m.noteID++
	m.statusBar.SetNote(note)
	return ExpireNoteCmd(m.noteID, 4*time.Second)
}
