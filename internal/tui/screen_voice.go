package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/voice"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	voiceTickInterval  = time.Second
	transcriptTailSize = 12
)

type voiceTickMsg struct {
	controller VoiceController
	at         time.Time
}

// voiceModel is the live conversation screen. All session state comes from
// the controller's snapshots; the model only keeps what the user triggered.
type voiceModel struct {
	ctx        context.Context
	controller VoiceController
	updates    <-chan voice.Session

	session voice.Session
	closed  bool
	saving  bool
	notice  string
	now     func() time.Time
}

func newVoiceModel(ctx context.Context, controller VoiceController) voiceModel {
	return voiceModel{
		ctx:        ctx,
		controller: controller,
		updates:    controller.Subscribe(),
		session:    controller.Snapshot(),
		now:        time.Now,
	}
}

func (m voiceModel) init() tea.Cmd {
	return tea.Batch(m.waitForUpdate(), m.cmdStart(), m.tick())
}

// owns reports whether msg was produced by this screen's controller.
func (m voiceModel) owns(msg tea.Msg) bool {
	var from VoiceController
	switch msg := msg.(type) {
	case sessionUpdateMsg:
		from = msg.controller
	case voiceStartedMsg:
		from = msg.controller
	case voiceSavedMsg:
		from = msg.controller
	case voiceTickMsg:
		from = msg.controller
	default:
		return true
	}
	return m.controller != nil && from == m.controller
}

func (m voiceModel) update(msg tea.Msg) (voiceModel, tea.Cmd) {
	if !m.owns(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case sessionUpdateMsg:
		if msg.closed {
			m.closed = true
			return m, nil
		}
		m.session = msg.session
		return m, m.waitForUpdate()

	case voiceStartedMsg:
		// Start failures also arrive as a session in StatusError.
		if msg.err != nil && errors.Is(msg.err, voice.ErrSessionBusy) {
			m.notice = "A connection attempt is already running"
		}
		return m, nil

	case voiceSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.notice = voiceErrorText(msg.err)
		}
		return m, nil

	case voiceTickMsg:
		if m.closed {
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m voiceModel) updateKeys(msg tea.KeyMsg) (voiceModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.retry):
		if m.canRetry() {
			m.notice = ""
			return m, m.cmdRetry()
		}
	case key.Matches(msg, keys.save):
		if m.saving || m.closed {
			return m, nil
		}
		m.saving = true
		m.notice = ""
		return m, m.cmdSave()
	}
	return m, nil
}

func (m voiceModel) canRetry() bool {
	if m.closed || m.saving {
		return false
	}
	switch m.session.Status {
	case voice.StatusError, voice.StatusDisconnected:
		return true
	default:
		return false
	}
}

// close releases the controller. It is safe to call more than once.
func (m *voiceModel) close() {
	if m.controller == nil || m.closed {
		return
	}
	m.controller.Close()
	m.closed = true
}

func (m voiceModel) view() string {
	s := m.session
	now := m.now()

	var b strings.Builder

	indicator := "○ offline"
	if s.Live() {
		indicator = liveStyle.Render("● live")
	}
	b.WriteString(fmt.Sprintf("%s │ status: %s\n", indicator, statusLabel(s)))
	b.WriteString(fmt.Sprintf("You %s │ AI %s │ Total %s\n",
		formatDuration(liveUserSeconds(s, now)),
		formatDuration(liveAssistantSeconds(s, now)),
		formatDuration(liveUserSeconds(s, now)+liveAssistantSeconds(s, now)),
	))

	if s.LastError != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(voiceErrorText(s.LastError)))
		b.WriteString("\n")
		if m.canRetry() {
			b.WriteString(helpStyle.Render("[r] Retry Connection"))
			b.WriteString("\n")
		}
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.saving {
		b.WriteString("\n[Saving...]\n")
	}

	b.WriteString("\n")
	b.WriteString(transcriptTail(voice.FormatTranscript(s.Messages), transcriptTailSize))
	if s.PartialAssistant != "" {
		b.WriteString("AI: ")
		b.WriteString(s.PartialAssistant)
		b.WriteString(" ▌")
	}

	hotKeys := "s: save │ esc: back"
	if m.canRetry() {
		hotKeys = "r: Retry Connection │ " + hotKeys
	}
	return renderPage("VOICE SESSION", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m voiceModel) waitForUpdate() tea.Cmd {
	updates, controller := m.updates, m.controller
	return func() tea.Msg {
		s, ok := <-updates
		return sessionUpdateMsg{controller: controller, session: s, closed: !ok}
	}
}

func (m voiceModel) cmdStart() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return voiceStartedMsg{controller: controller, err: controller.Start(ctx)}
	}
}

func (m voiceModel) cmdRetry() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return voiceStartedMsg{controller: controller, err: controller.Retry(ctx)}
	}
}

func (m voiceModel) cmdSave() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		result, err := controller.Save(ctx, "")
		return voiceSavedMsg{controller: controller, result: result, err: err}
	}
}

func (m voiceModel) tick() tea.Cmd {
	controller := m.controller
	return tea.Tick(voiceTickInterval, func(t time.Time) tea.Msg {
		return voiceTickMsg{controller: controller, at: t}
	})
}

func statusLabel(s voice.Session) string {
	switch s.Status {
	case voice.StatusIdle:
		if s.Connected {
			return "listening"
		}
		return "idle"
	case voice.StatusUserSpeaking:
		return "you are speaking"
	case voice.StatusAISpeaking:
		return "AI is speaking"
	default:
		return s.Status.String()
	}
}

// liveUserSeconds includes the interval that is still open.
func liveUserSeconds(s voice.Session, now time.Time) float64 {
	total := s.UserSeconds
	if s.UserSpeakingSince != nil && now.After(*s.UserSpeakingSince) {
		total += now.Sub(*s.UserSpeakingSince).Seconds()
	}
	return total
}

func liveAssistantSeconds(s voice.Session, now time.Time) float64 {
	total := s.AssistantSeconds
	if s.AssistantSpeakingSince != nil && now.After(*s.AssistantSpeakingSince) {
		total += now.Sub(*s.AssistantSpeakingSince).Seconds()
	}
	return total
}

// transcriptTail keeps the last n non-empty lines of a transcript.
func transcriptTail(transcript string, n int) string {
	var lines []string
	for _, line := range strings.Split(transcript, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	if len(lines) == 0 {
		return "Say something to start the conversation.\n"
	}
	return strings.Join(lines, "\n") + "\n"
}
