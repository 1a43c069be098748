package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/mock"
	"github.com/MKhiriev/go-brainstorm/internal/voice"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func openVoice(t *testing.T) (mainLoopModel, *fakeController) {
	t.Helper()

	m, _, controller := loadedMainLoop(t)
	m, cmd := press(t, m, "n")
	require.Equal(t, screenVoice, m.screen)
	require.NotNil(t, cmd)
	return m, controller
}

func TestVoice_StartsController(t *testing.T) {
	m, controller := openVoice(t)

	msg := m.voice.cmdStart()()
	m, _ = send(t, m, msg)

	assert.Equal(t, 1, controller.started)
	assert.Contains(t, m.View(), "VOICE SESSION")
}

func TestVoice_RendersSessionSnapshot(t *testing.T) {
	m, controller := openVoice(t)

	m, cmd := send(t, m, sessionUpdateMsg{controller: controller, session: voice.Session{
		Status:           voice.StatusAISpeaking,
		Connected:        true,
		Messages:         []models.Message{{Role: models.RoleUser, Content: "Plan the launch"}},
		UserSeconds:      65,
		AssistantSeconds: 10,
		PartialAssistant: "Sure, first",
	}})
	assert.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "● live")
	assert.Contains(t, view, "AI is speaking")
	assert.Contains(t, view, "You 1:05 │ AI 0:10 │ Total 1:15")
	assert.Contains(t, view, "You: Plan the launch")
	assert.Contains(t, view, "AI: Sure, first")
	assert.NotContains(t, view, "Retry Connection")
}

func TestVoice_ErrorBannerAndRetry(t *testing.T) {
	m, controller := openVoice(t)

	m, _ = send(t, m, sessionUpdateMsg{controller: controller, session: voice.Session{
		Status:    voice.StatusError,
		LastError: fmt.Errorf("%w: token request failed", voice.ErrConnection),
	}})

	view := m.View()
	assert.Contains(t, view, "Could not connect to the voice service.")
	assert.Contains(t, view, "r: Retry Connection")

	m, cmd := press(t, m, "r")
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, 1, controller.retried)
}

func TestVoice_RetryIgnoredWhileConnected(t *testing.T) {
	m, controller := openVoice(t)

	m, _ = send(t, m, sessionUpdateMsg{controller: controller, session: voice.Session{Status: voice.StatusIdle, Connected: true}})
	_, cmd := press(t, m, "r")

	assert.Nil(t, cmd)
}

func TestVoice_SaveShowsSummary(t *testing.T) {
	copied := stubClipboard(t)
	m, controller := openVoice(t)
	controller.saveResult = &voice.SaveResult{
		ConversationID: "c9",
		Title:          "Brainstorm 2026-05-01 10:00",
		Transcript:     "You: plan\n\nAI: ok\n\n",
		Seconds:        120,
		Summary:        models.Summary{Summary: "Plan agreed", ActionItems: "- send invites"},
	}

	m, cmd := press(t, m, "s")
	require.NotNil(t, cmd)
	assert.True(t, m.voice.saving)
	assert.Contains(t, m.View(), "[Saving...]")

	m, _ = send(t, m, cmd())

	assert.Equal(t, []string{""}, controller.saveTitles)
	assert.Equal(t, 1, controller.closed)
	require.Equal(t, screenSummary, m.screen)

	view := m.View()
	assert.Contains(t, view, "Plan agreed")
	assert.Contains(t, view, "- send invites")
	assert.Contains(t, view, "2 min billed")

	m, cmd = press(t, m, "c")
	m, _ = run(t, m, cmd)
	m, cmd = press(t, m, "t")
	m, _ = run(t, m, cmd)
	assert.Equal(t, []string{"Plan agreed\n\nAction items:\n- send invites", "You: plan\n\nAI: ok\n\n"}, *copied)
}

func TestVoice_SaveFailureStaysOnScreen(t *testing.T) {
	m, controller := openVoice(t)
	controller.saveErr = fmt.Errorf("%w: http 500", voice.ErrPersistence)

	m, cmd := press(t, m, "s")
	m, _ = send(t, m, cmd())

	assert.Equal(t, screenVoice, m.screen)
	assert.False(t, m.voice.saving)
	assert.Equal(t, 0, controller.closed)
	assert.Contains(t, m.View(), "press s to try again")
}

func TestVoice_SaveIgnoredWhileSaving(t *testing.T) {
	m, _ := openVoice(t)

	m, _ = press(t, m, "s")
	_, cmd := press(t, m, "s")

	assert.Nil(t, cmd)
}

func TestVoice_EscClosesControllerAndReloads(t *testing.T) {
	m, server, controller := loadedMainLoop(t)
	m, _ = press(t, m, "n")

	server.EXPECT().ListConversations(gomock.Any()).Return(testConversations, nil)
	server.EXPECT().GetUsage(gomock.Any()).Return(models.UsageSummary{}, nil)

	m, cmd := press(t, m, "esc")

	assert.Equal(t, screenList, m.screen)
	assert.Equal(t, 1, controller.closed)

	m, _ = run(t, m, cmd)
	assert.False(t, m.loading)

	// A late snapshot from the closed subscription is dropped.
	m, cmd = send(t, m, sessionUpdateMsg{controller: controller, closed: true})
	assert.Nil(t, cmd)
	assert.Equal(t, screenList, m.screen)
}

func TestLiveSeconds_IncludeOpenInterval(t *testing.T) {
	since := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s := voice.Session{UserSeconds: 5, UserSpeakingSince: &since, AssistantSeconds: 3}

	now := since.Add(4 * time.Second)

	assert.InDelta(t, 9, liveUserSeconds(s, now), 0.001)
	assert.InDelta(t, 3, liveAssistantSeconds(s, now), 0.001)
}

func TestTranscriptTail(t *testing.T) {
	assert.Equal(t, "Say something to start the conversation.\n", transcriptTail("", 3))
	assert.Equal(t, "b\nc\n", transcriptTail("a\n\nb\n\nc\n\n", 2))
}

func TestVoiceErrorText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: fmt.Errorf("%w: ffmpeg exited", voice.ErrMicrophoneDenied), want: "Microphone is not available"},
		{err: voice.ErrConnectTimeout, want: "Timed out"},
		{err: fmt.Errorf("%w: closed", voice.ErrControlChannel), want: "interrupted"},
		{err: voice.ErrNothingToSave, want: "Nothing to save"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Contains(t, voiceErrorText(tt.err), tt.want)
		})
	}
}

func TestVoice_LateSaveAfterLeavingIsDropped(t *testing.T) {
	first, second := newFakeController(), newFakeController()
	first.saveResult = &voice.SaveResult{ConversationID: "c9", Summary: models.Summary{Summary: "old"}}
	controllers := []*fakeController{first, second}

	server := mock.NewMockServerAdapter(gomock.NewController(t))
	server.EXPECT().ListConversations(gomock.Any()).Return(testConversations, nil).AnyTimes()
	server.EXPECT().GetUsage(gomock.Any()).Return(models.UsageSummary{}, nil).AnyTimes()

	m := newMainLoopModel(context.Background(), server, func() VoiceController {
		next := controllers[0]
		controllers = controllers[1:]
		return next
	})

	m, _ = press(t, m, "n")
	m, saveCmd := press(t, m, "s")
	require.NotNil(t, saveCmd)

	m, _ = press(t, m, "esc")
	require.Equal(t, screenList, m.screen)

	late := saveCmd()

	// Leaving the screen: the result is not shown over the list.
	out, cmd := send(t, m, late)
	assert.Nil(t, cmd)
	assert.Equal(t, screenList, out.screen)

	// A new session: the old result must not touch it.
	m, _ = press(t, m, "n")
	require.Equal(t, screenVoice, m.screen)

	m, _ = send(t, m, late)
	assert.Equal(t, screenVoice, m.screen)
	assert.Equal(t, 0, second.closed)
	assert.False(t, m.voice.closed)

	// Nor do the old controller's snapshots and ticks.
	m, cmd = send(t, m, sessionUpdateMsg{controller: first, closed: true})
	assert.Nil(t, cmd)
	assert.False(t, m.voice.closed)

	_, cmd = send(t, m, voiceTickMsg{controller: first})
	assert.Nil(t, cmd)
}
