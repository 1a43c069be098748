package tui

import (
	"context"
	"sync"
	"testing"

	"github.com/MKhiriev/go-brainstorm/internal/mock"
	"github.com/MKhiriev/go-brainstorm/internal/voice"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeController struct {
	mu sync.Mutex

	updates  chan voice.Session
	snapshot voice.Session

	startErr   error
	retryErr   error
	saveResult *voice.SaveResult
	saveErr    error

	started    int
	retried    int
	torn       int
	closed     int
	saveTitles []string
}

func newFakeController() *fakeController {
	return &fakeController{updates: make(chan voice.Session, 1)}
}

func (f *fakeController) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	return f.startErr
}

func (f *fakeController) Retry(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retried++
	return f.retryErr
}

func (f *fakeController) Teardown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.torn++
}

func (f *fakeController) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed == 0 {
		close(f.updates)
	}
	f.closed++
}

func (f *fakeController) Save(_ context.Context, title string) (*voice.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveTitles = append(f.saveTitles, title)
	return f.saveResult, f.saveErr
}

func (f *fakeController) Subscribe() <-chan voice.Session {
	return f.updates
}

func (f *fakeController) Snapshot() voice.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

func newTestMainLoop(t *testing.T) (mainLoopModel, *mock.MockServerAdapter, *fakeController) {
	t.Helper()

	server := mock.NewMockServerAdapter(gomock.NewController(t))
	controller := newFakeController()
	m := newMainLoopModel(context.Background(), server, func() VoiceController { return controller })
	return m, server, controller
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// send feeds msg into the model and returns the updated main loop model.
func send(t *testing.T, m mainLoopModel, msg tea.Msg) (mainLoopModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	out, ok := next.(mainLoopModel)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m mainLoopModel, k string) (mainLoopModel, tea.Cmd) {
	t.Helper()
	return send(t, m, keyPress(k))
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m mainLoopModel, cmd tea.Cmd) (mainLoopModel, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return send(t, m, cmd())
}

func stubClipboard(t *testing.T) *[]string {
	t.Helper()

	var copied []string
	prev := writeClipboard
	writeClipboard = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	t.Cleanup(func() { writeClipboard = prev })
	return &copied
}
