package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-brainstorm/internal/adapter"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenRename
	screenNotes
	screenVoice
	screenSummary
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	titleColWidth = 40
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

type mainLoopModel struct {
	ctx           context.Context
	server        adapter.ServerAdapter
	newController ControllerFactory

	screen screen
	width  int
	height int

	conversations []models.Conversation
	usage         models.UsageSummary
	idx           int
	loading       bool

	detail viewport.Model

	renameInput      textinput.Model
	renameSubmitting bool

	confirmDelete bool

	notes    []models.Note
	notesIdx int

	voice   voiceModel
	summary summaryModel

	status string
	errMsg string

	logout bool
}

func newMainLoopModel(ctx context.Context, server adapter.ServerAdapter, newController ControllerFactory) mainLoopModel {
	renameInput := textinput.New()
	renameInput.Placeholder = "title"
	renameInput.CharLimit = 200
	renameInput.Width = 50

	return mainLoopModel{
		ctx:           ctx,
		server:        server,
		newController: newController,
		width:         defaultWidth,
		height:        defaultHeight,
		detail:        viewport.New(defaultWidth-4, defaultHeight-10),
		renameInput:   renameInput,
		loading:       true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadConversations()
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.detail.Width = max(msg.Width-4, 20)
		m.detail.Height = max(msg.Height-10, 5)
		return m, nil

	case conversationsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerError(msg.err)
			return m, nil
		}
		m.conversations = msg.items
		m.usage = msg.usage
		m.idx = clampIndex(m.idx, len(m.conversations))
		return m, nil

	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerError(msg.err)
			return m, nil
		}
		m.notes = msg.items
		m.notesIdx = clampIndex(m.notesIdx, len(m.notes))
		return m, nil

	case conversationRenamedMsg:
		m.renameSubmitting = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Rename failed: %s", humanizeServerError(msg.err))
			return m, nil
		}
		m.screen = screenList
		m.status = "Conversation renamed"
		m.loading = true
		return m, m.cmdLoadConversations()

	case conversationDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Delete failed: %s", humanizeServerError(msg.err))
			return m, nil
		}
		m.screen = screenList
		m.status = "Conversation deleted"
		m.loading = true
		return m, m.cmdLoadConversations()

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = msg.what + " copied to clipboard"
		return m, nil

	case voiceSavedMsg:
		// A save that finishes after its screen was left is not shown.
		if m.screen != screenVoice || !m.voice.owns(msg) {
			return m, nil
		}
		var cmd tea.Cmd
		m.voice, cmd = m.voice.update(msg)
		if msg.err == nil && msg.result != nil {
			m.voice.close()
			m.summary = newSummaryModel(msg.result)
			m.screen = screenSummary
		}
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.screen == screenVoice {
			var cmd tea.Cmd
			m.voice, cmd = m.voice.update(msg)
			return m, cmd
		}
		if m.screen == screenRename {
			var cmd tea.Cmd
			m.renameInput, cmd = m.renameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		if m.screen == screenVoice {
			m.voice.close()
		}
		return m, tea.Quit
	}

	if m.errMsg != "" {
		if key.Matches(keyMsg, keys.enter, keys.esc) {
			m.errMsg = ""
		}
		return m, nil
	}

	if m.confirmDelete {
		return m.updateConfirmDelete(keyMsg)
	}

	switch m.screen {
	case screenDetail:
		return m.updateDetail(keyMsg)
	case screenRename:
		return m.updateRename(keyMsg)
	case screenNotes:
		return m.updateNotes(keyMsg)
	case screenVoice:
		return m.updateVoice(keyMsg)
	case screenSummary:
		return m.updateSummary(keyMsg)
	default:
		return m.updateList(keyMsg)
	}
}

func (m mainLoopModel) updateList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.conversations)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.reload):
		m.loading = true
		m.status = ""
		return m, m.cmdLoadConversations()
	case key.Matches(keyMsg, keys.newSession):
		m.status = ""
		m.voice = newVoiceModel(m.ctx, m.newController())
		m.screen = screenVoice
		return m, m.voice.init()
	case key.Matches(keyMsg, keys.notes):
		m.status = ""
		m.screen = screenNotes
		m.loading = true
		return m, m.cmdLoadNotes()
	case key.Matches(keyMsg, keys.enter):
		if c, ok := m.selected(); ok {
			m.openDetail(c)
		}
	case key.Matches(keyMsg, keys.rename):
		if c, ok := m.selected(); ok {
			return m, m.openRename(c)
		}
	case key.Matches(keyMsg, keys.delete):
		if _, ok := m.selected(); ok {
			m.confirmDelete = true
		}
	}

	return m, nil
}

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		m.screen = screenList
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.screen = screenList
		return m, nil
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopy("Transcript", c.Transcript)
	case key.Matches(keyMsg, keys.rename):
		return m, m.openRename(c)
	case key.Matches(keyMsg, keys.delete):
		m.confirmDelete = true
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(keyMsg)
	return m, cmd
}

func (m mainLoopModel) updateRename(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.renameInput.Blur()
		m.screen = screenList
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		if m.renameSubmitting {
			return m, nil
		}
		c, ok := m.selected()
		title := strings.TrimSpace(m.renameInput.Value())
		if !ok || title == "" {
			return m, nil
		}
		m.renameSubmitting = true
		return m, m.cmdRename(c.ID, title)
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(keyMsg)
	return m, cmd
}

func (m mainLoopModel) updateConfirmDelete(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.confirmDelete = false
		if c, ok := m.selected(); ok {
			return m, m.cmdDelete(c.ID)
		}
	case key.Matches(keyMsg, keys.no, keys.esc):
		m.confirmDelete = false
	}
	return m, nil
}

func (m mainLoopModel) updateNotes(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.screen = screenList
	case key.Matches(keyMsg, keys.up):
		if m.notesIdx > 0 {
			m.notesIdx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.notesIdx < len(m.notes)-1 {
			m.notesIdx++
		}
	case key.Matches(keyMsg, keys.copy):
		if m.notesIdx < len(m.notes) {
			return m, cmdCopy("Note", noteText(m.notes[m.notesIdx].Content, m.notes[m.notesIdx].ActionItems))
		}
	}
	return m, nil
}

func (m mainLoopModel) updateVoice(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(keyMsg, keys.esc) {
		m.voice.close()
		m.screen = screenList
		m.loading = true
		return m, m.cmdLoadConversations()
	}

	var cmd tea.Cmd
	m.voice, cmd = m.voice.update(keyMsg)
	return m, cmd
}

func (m mainLoopModel) updateSummary(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc, keys.enter):
		m.screen = screenList
		m.status = "Conversation saved"
		m.loading = true
		return m, m.cmdLoadConversations()
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopy("Summary", noteText(m.summary.result.Summary.Summary, m.summary.result.Summary.ActionItems))
	case key.Matches(keyMsg, keys.copyAll):
		return m, cmdCopy("Transcript", m.summary.result.Transcript)
	}
	return m, nil
}

func (m *mainLoopModel) openDetail(c models.Conversation) {
	m.detail.SetContent(c.Transcript)
	m.detail.GotoTop()
	m.screen = screenDetail
}

func (m *mainLoopModel) openRename(c models.Conversation) tea.Cmd {
	m.renameInput.SetValue(c.Title)
	m.renameInput.CursorEnd()
	m.screen = screenRename
	return m.renameInput.Focus()
}

func (m mainLoopModel) selected() (models.Conversation, bool) {
	if m.idx < 0 || m.idx >= len(m.conversations) {
		return models.Conversation{}, false
	}
	return m.conversations[m.idx], true
}

func (m mainLoopModel) View() string {
	if m.errMsg != "" {
		return errorOverlayModel{message: m.errMsg}.View()
	}
	if m.confirmDelete {
		c, _ := m.selected()
		return confirmModel{message: c.Title}.View()
	}

	switch m.screen {
	case screenDetail:
		return m.viewDetail()
	case screenRename:
		return m.viewRename()
	case screenNotes:
		return m.viewNotes()
	case screenVoice:
		return m.voice.view()
	case screenSummary:
		return m.summary.view(m.status)
	default:
		return m.viewList()
	}
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	if m.status != "" {
		b.WriteString(statusStyle.Render("OK: " + m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("Usage: %d min this month │ %d min total\n\n", m.usage.MonthMinutes, m.usage.TotalMinutes))

	switch {
	case m.loading:
		b.WriteString("Loading...")
	case len(m.conversations) == 0:
		b.WriteString("No conversations yet. Press n to start one.")
	default:
		b.WriteString(fmt.Sprintf("  %-*s │ %s\n", titleColWidth, "Title", "Created"))
		b.WriteString("──")
		b.WriteString(strings.Repeat("─", titleColWidth))
		b.WriteString("─┼─────────────────\n")
		for i, c := range m.conversations {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-*s │ %s\n", cursor, titleColWidth, fitText(singleLine(c.Title), titleColWidth), c.CreatedAt.Local().Format("2006-01-02 15:04")))
		}
	}

	return renderPage("CONVERSATIONS", strings.TrimRight(b.String(), "\n"),
		"n: new session │ enter: open │ e: rename │ d: delete │ o: notes │ g: reload │ l: logout │ q: quit")
}

func (m mainLoopModel) viewDetail() string {
	c, _ := m.selected()

	var b strings.Builder
	if m.status != "" {
		b.WriteString(statusStyle.Render("OK: " + m.status))
		b.WriteString("\n\n")
	}
	b.WriteString("Title:   ")
	b.WriteString(c.Title)
	b.WriteString("\nCreated: ")
	b.WriteString(c.CreatedAt.Local().Format("2006-01-02 15:04"))
	b.WriteString("\n\n")
	b.WriteString(m.detail.View())

	return renderPage("CONVERSATION", b.String(), "↑/↓: scroll │ c: copy transcript │ e: rename │ d: delete │ esc: back")
}

func (m mainLoopModel) viewRename() string {
	var b strings.Builder
	b.WriteString("New title │ [")
	b.WriteString(m.renameInput.View())
	b.WriteString("]")
	if m.renameSubmitting {
		b.WriteString("\n\n[Saving...]")
	}
	return renderPage("RENAME CONVERSATION", b.String(), "enter: save │ esc: cancel")
}

func (m mainLoopModel) viewNotes() string {
	var b strings.Builder

	if m.status != "" {
		b.WriteString(statusStyle.Render("OK: " + m.status))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString("Loading...")
	case len(m.notes) == 0:
		b.WriteString("No notes yet. Notes are created when a conversation is saved.")
	default:
		for i, n := range m.notes {
			cursor := " "
			if i == m.notesIdx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s │ %s\n", cursor, n.CreatedAt.Local().Format("2006-01-02 15:04"), fitText(singleLine(n.Content), 60)))
		}
		if m.notesIdx < len(m.notes) {
			selected := m.notes[m.notesIdx]
			b.WriteString("\n")
			b.WriteString(noteText(selected.Content, selected.ActionItems))
		}
	}

	return renderPage("NOTES", strings.TrimRight(b.String(), "\n"), "↑/↓: navigate │ c: copy note │ esc: back")
}

func (m mainLoopModel) cmdLoadConversations() tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		items, err := server.ListConversations(ctx)
		if err != nil {
			return conversationsLoadedMsg{err: err}
		}
		usage, err := server.GetUsage(ctx)
		if err != nil {
			return conversationsLoadedMsg{err: err}
		}
		return conversationsLoadedMsg{items: items, usage: usage}
	}
}

func (m mainLoopModel) cmdLoadNotes() tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		items, err := server.ListNotes(ctx)
		return notesLoadedMsg{items: items, err: err}
	}
}

func (m mainLoopModel) cmdRename(id, title string) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		return conversationRenamedMsg{err: server.RenameConversation(ctx, id, title)}
	}
}

func (m mainLoopModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		return conversationDeletedMsg{err: server.DeleteConversation(ctx, id)}
	}
}

func cmdCopy(what, text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return copiedMsg{what: what, err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{what: what}
	}
}

func noteText(summary, actionItems string) string {
	if strings.TrimSpace(actionItems) == "" {
		return summary
	}
	return summary + "\n\nAction items:\n" + actionItems
}

func clampIndex(idx, n int) int {
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
