package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-brainstorm/internal/adapter"
	"github.com/MKhiriev/go-brainstorm/internal/client"
	"github.com/MKhiriev/go-brainstorm/internal/config"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/tui"
	"github.com/MKhiriev/go-brainstorm/internal/voice"
	"github.com/MKhiriev/go-brainstorm/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// The terminal belongs to the UI, so logs go to a file.
	log := logger.NewFileLogger("brainstorm-client", "brainstorm-client.log")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ui, err := tui.New(serverAdapter, newControllerFactory(cfg.Voice, serverAdapter, log),
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(serverAdapter, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newControllerFactory(cfg config.ClientVoice, server adapter.ServerAdapter, log *logger.Logger) tui.ControllerFactory {
	return func() tui.VoiceController {
		var playback voice.Playback = voice.NopPlayback{}
		if path, err := exec.LookPath(ffplayPath(cfg.FFplayPath)); err == nil {
			playback = voice.NewFFPlayPlayback(path, log)
		} else {
			log.Warn().Err(err).Msg("ffplay not found, assistant audio is muted")
		}

		return voice.NewController(
			voice.Config{
				ConnectTimeout: cfg.ConnectTimeout,
				Instructions:   cfg.Instructions,
				Session: voice.SessionSettings{
					TranscriptionModel: cfg.TranscriptionModel,
					Voice:              cfg.Voice,
				},
			},
			voice.Dependencies{
				Tokens:     server,
				Dialer:     voice.NewWebsocketDialer(cfg.RealtimeURL, log),
				Microphone: voice.NewFFmpegMicrophone(cfg.FFmpegPath, cfg.InputDevice, log),
				Playback:   playback,
				Saver:      server,
				Usage:      server,
				Summarizer: server,
			},
			log,
		)
	}
}

func ffplayPath(path string) string {
	if path == "" {
		return "ffplay"
	}
	return path
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
