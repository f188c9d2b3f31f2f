// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/service"
	"github.com/MKhiriev/wanderlust-offline/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI is the terminal dashboard of the offline client.
type TUI struct {
	offline service.OfflineService
	userID  string
	build   models.BuildInfo
	logger  *logger.Logger
}

func New(offline service.OfflineService, userID string, build models.BuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		offline: offline,
		userID:  userID,
		build:   build,
		logger:  log.WithComponent("tui"),
	}
}

// Run shows the dashboard until the user quits or ctx is cancelled.
// logout is true when the user cleared the local cache.
func (t *TUI) Run(ctx context.Context) (logout bool, err error) {
	model := newDashboardModel(ctx, t.offline, t.userID, t.build, t.logger)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
			return false, nil
		}
		return false, runErr
	}

	result, ok := finalModel.(dashboardModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if result.logout {
		return true, nil
	}
	return false, ErrUserQuit
}
