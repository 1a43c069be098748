package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/tui"
)

var (
	errNoSession = errors.New("client app: no server session given")
	errNoUI      = errors.New("client app: no ui given")
)

type App struct {
	session session
	ui      UI
	logger  *logger.Logger
}

func NewApp(session session, ui UI, log *logger.Logger) (*App, error) {
	if session == nil {
		return nil, errNoSession
	}
	if ui == nil {
		return nil, errNoUI
	}

	return &App{session: session, ui: ui, logger: log}, nil
}

// Run returns nil when the user quits.
func (a *App) Run(ctx context.Context) error {
	if version, err := a.session.ServerVersion(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("server version is unavailable")
	} else {
		a.logger.Info().Str("server_version", version).Msg("server reachable")
	}

	for {
		if err := a.ui.LoginFlow(ctx); err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return fmt.Errorf("login flow: %w", err)
		}

		logout, err := a.ui.MainLoop(ctx)
		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}
		if !logout {
			return nil
		}

		a.session.SetToken("")
		a.logger.Info().Msg("logged out")
	}
}
