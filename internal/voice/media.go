// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package voice

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
)

// PCM format of the realtime API in both directions.
const (
	SampleRate     = 24000
	bytesPerSample = 2
	chunkDuration  = 100 // milliseconds
	chunkBytes     = SampleRate * bytesPerSample * chunkDuration / 1000
)

// FFmpegMicrophone captures the default input device with ffmpeg and emits
// mono s16le chunks at [SampleRate].
type FFmpegMicrophone struct {
	Path   string
	Device string
	log    *logger.Logger
}

// NewFFmpegMicrophone returns a microphone using the platform's default
// capture backend. device may be empty.
func NewFFmpegMicrophone(path, device string, log *logger.Logger) *FFmpegMicrophone {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpegMicrophone{Path: path, Device: device, log: log}
}

func (m *FFmpegMicrophone) args() []string {
	format, input := "pulse", "default"
	switch runtime.GOOS {
	case "darwin":
		format, input = "avfoundation", ":0"
	case "windows":
		format, input = "dshow", "audio=default"
	}
	if m.Device != "" {
		input = m.Device
	}

	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", format,
		"-i", input,
		"-ac", "1",
		"-ar", strconv.Itoa(SampleRate),
		"-f", "s16le",
		"-",
	}
}

// Start implements [MediaSource]. The capture process is killed when ctx is
// done, after which the returned channel is closed.
func (m *FFmpegMicrophone) Start(ctx context.Context) (<-chan []byte, error) {
	cmd := exec.CommandContext(ctx, m.Path, m.args()...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("error opening ffmpeg output: %w", err)
	}
	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("error starting ffmpeg: %w", err)
	}

	chunks := make(chan []byte, 16)
	go func() {
		defer close(chunks)
		defer func() { _ = cmd.Wait() }()

		buf := make([]byte, chunkBytes)
		for {
			if _, err := io.ReadFull(stdout, buf); err != nil {
				if ctx.Err() == nil {
					m.log.Warn().Err(err).Msg("microphone capture stopped")
				}
				return
			}
			chunk := append([]byte(nil), buf...)
			select {
			case chunks <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	return chunks, nil
}

// FFPlayPlayback plays PCM16 audio through an ffplay child process. The
// process is started lazily on the first write after a pause.
type FFPlayPlayback struct {
	path string
	log  *logger.Logger

	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
	queue chan []byte
	done  chan struct{}
}

func NewFFPlayPlayback(path string, log *logger.Logger) *FFPlayPlayback {
	if path == "" {
		path = "ffplay"
	}
	return &FFPlayPlayback{path: path, log: log}
}

// Write implements [Playback]. Audio is queued and dropped if the player
// falls too far behind.
func (p *FFPlayPlayback) Write(pcm []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd == nil {
		if err := p.startLocked(); err != nil {
			p.log.Err(err).Msg("error starting playback")
			return
		}
	}
	select {
	case p.queue <- pcm:
	default:
		p.log.Warn().Int("bytes", len(pcm)).Msg("playback queue full, dropping audio")
	}
}

// Pause implements [Playback]. It stops the player and drops queued audio.
func (p *FFPlayPlayback) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Close implements [Playback].
func (p *FFPlayPlayback) Close() error {
	p.Pause()
	return nil
}

func (p *FFPlayPlayback) startLocked() error {
	cmd := exec.Command(p.path,
		"-hide_banner",
		"-loglevel", "error",
		"-nodisp",
		"-autoexit",
		"-f", "s16le",
		"-ch_layout", "mono",
		"-ar", strconv.Itoa(SampleRate),
		"-i", "-",
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err = cmd.Start(); err != nil {
		_ = stdin.Close()
		return err
	}

	p.cmd = cmd
	p.stdin = stdin
	p.queue = make(chan []byte, 64)
	p.done = make(chan struct{})

	go func(queue <-chan []byte, done <-chan struct{}, w io.Writer) {
		for {
			select {
			case <-done:
				return
			case pcm := <-queue:
				if _, err := w.Write(pcm); err != nil {
					return
				}
			}
		}
	}(p.queue, p.done, stdin)

	return nil
}

func (p *FFPlayPlayback) stopLocked() {
	if p.cmd == nil {
		return
	}
	close(p.done)
	_ = p.stdin.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	go func(cmd *exec.Cmd) { _ = cmd.Wait() }(p.cmd)

	p.cmd = nil
	p.stdin = nil
	p.queue = nil
	p.done = nil
}

// NopPlayback discards audio. Used when no speaker is available.
type NopPlayback struct{}

func (NopPlayback) Write([]byte) {}
func (NopPlayback) Pause()       {}
func (NopPlayback) Close() error { return nil }
