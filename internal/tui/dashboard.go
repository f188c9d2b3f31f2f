// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/service"
	"github.com/MKhiriev/wanderlust-offline/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	refreshInterval = 5 * time.Second
	noticeLifetime  = 3 * time.Second
	tableHeight     = 12
)

// replaced in tests, the real clipboard needs a display
var copyToClipboard = clipboard.WriteAll

var tripColumns = []table.Column{
	{Title: "Title", Width: 28},
	{Title: "Trip ID", Width: 24},
	{Title: "Synced", Width: 7},
	{Title: "Cached at", Width: 16},
}

type dashboardModel struct {
	ctx     context.Context
	offline service.OfflineService
	userID  string
	build   models.BuildInfo
	log     *logger.Logger

	table   table.Model
	spinner spinner.Model

	trips   []models.CachedTrip
	status  models.SyncStatus
	loading bool
	syncing bool
	notice  string
	err     error

	showConfirm bool
	showDetail  bool
	logout      bool

	now func() time.Time
}

func newDashboardModel(ctx context.Context, offline service.OfflineService, userID string, build models.BuildInfo, log *logger.Logger) dashboardModel {
	t := table.New(
		table.WithColumns(tripColumns),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
		table.WithWidth(90),
	)

	return dashboardModel{
		ctx:     ctx,
		offline: offline,
		userID:  userID,
		build:   build,
		log:     log,
		table:   t,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		loading: true,
		now:     time.Now,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoad(), cmdRefreshTick())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width - 4)
		if h := msg.Height - 14; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError("load dashboard", msg.err)
			return m, nil
		}
		m.trips = msg.trips
		m.status = msg.status
		m.table.SetRows(tripRows(msg.trips))
		if c := m.table.Cursor(); c >= len(msg.trips) && len(msg.trips) > 0 {
			m.table.SetCursor(len(msg.trips) - 1)
		}
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.setError("sync", msg.err)
		} else {
			m.err = nil
			m.notice = describeDrain(msg.result)
		}
		return m, tea.Batch(m.cmdLoad(), cmdClearStatus())

	case retryDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.setError("retry failed changes", msg.err)
		} else {
			m.err = nil
			m.notice = fmt.Sprintf("%d failed change(s) queued again", msg.reset)
		}
		return m, tea.Batch(m.cmdLoad(), cmdClearStatus())

	case clearedMsg:
		if msg.err != nil {
			m.setError("clear cache", msg.err)
			return m, nil
		}
		m.logout = true
		return m, tea.Quit

	case copiedMsg:
		if msg.err != nil {
			m.setError("copy to clipboard", msg.err)
			return m, nil
		}
		m.notice = "Copied " + msg.tripID
		return m, cmdClearStatus()

	case refreshTickMsg:
		return m, tea.Batch(m.cmdLoad(), cmdRefreshTick())

	case clearStatusMsg:
		m.notice = ""
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showConfirm {
		switch {
		case key.Matches(msg, keys.yes):
			m.showConfirm = false
			return m, m.cmdClear()
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.showConfirm = false
		}
		return m, nil
	}

	if m.showDetail {
		switch {
		case key.Matches(msg, keys.enter), key.Matches(msg, keys.esc):
			m.showDetail = false
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.sync):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.notice = "Syncing..."
		return m, tea.Batch(m.spinner.Tick, m.cmdSync())

	case key.Matches(msg, keys.retry):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.notice = "Retrying failed changes..."
		return m, tea.Batch(m.spinner.Tick, m.cmdRetry())

	case key.Matches(msg, keys.copy):
		trip, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, cmdCopy(trip.TripID)

	case key.Matches(msg, keys.clear):
		m.showConfirm = true
		return m, nil

	case key.Matches(msg, keys.refresh):
		return m, m.cmdLoad()

	case key.Matches(msg, keys.enter):
		if _, ok := m.selected(); ok {
			m.showDetail = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *dashboardModel) setError(action string, err error) {
	m.err = err
	m.notice = ""
	m.log.Err(err).Str("action", action).Msg("dashboard action failed")
}

func (m dashboardModel) selected() (models.CachedTrip, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.trips) {
		return models.CachedTrip{}, false
	}
	return m.trips[idx], true
}

func (m dashboardModel) View() string {
	if m.showConfirm {
		return appStyle.Render(overlayBoxStyle.Render(
			"Clear every cached trip and queued change?\n" +
				"Unsynced changes will be lost.\n\n" +
				"y yes    n no"))
	}
	if m.showDetail {
		return appStyle.Render(m.detailView())
	}

	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.status.QuotaExceeded {
		b.WriteString(warnStyle.Render("Local storage is full: new changes are not being saved"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.trips) == 0:
		b.WriteString("No trips cached for offline use\n")
	default:
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + humanizeError(m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("user " + valueOrDash(m.userID) + "  " + m.build.String()))

	title := "WanderLust offline"
	if m.syncing {
		title += "  " + m.spinner.View()
	}
	hotKeys := "s: sync  r: retry failed  c: copy id  enter: open  x: clear cache"

	return appStyle.Render(renderPage(title, b.String(), hotKeys))
}

func (m dashboardModel) statusLine() string {
	online := offlineStyle.Render("offline")
	if m.status.IsOnline {
		online = onlineStyle.Render("online")
	}

	failed := fmt.Sprintf("failed %d", m.status.FailedSyncs)
	if m.status.FailedSyncs > 0 {
		failed = warnStyle.Render(failed)
	}

	return fmt.Sprintf("%s  |  pending %d  |  %s  |  cached %d  |  last sync %s",
		online,
		m.status.PendingSyncs,
		failed,
		m.status.CachedTrips,
		formatAgo(m.status.LastSync, m.now()),
	)
}

func (m dashboardModel) detailView() string {
	trip, ok := m.selected()
	if !ok {
		return renderPage("Trip", "", "esc: back")
	}

	var body bytes.Buffer
	if err := json.Indent(&body, trip.Payload, "", "  "); err != nil {
		body.Reset()
		body.Write(trip.Payload)
	}

	synced := "yes"
	if !trip.IsSynced {
		synced = "no, waiting for sync"
	}

	data := fmt.Sprintf("ID: %s\nSynced: %s\nCached at: %s\nLast opened: %s\n\n%s",
		trip.TripID,
		synced,
		formatTime(trip.CachedAt),
		formatTime(trip.LastAccessed),
		body.String(),
	)

	return renderPage(trip.Title(), data, "esc: back  c: copy id")
}

func (m dashboardModel) cmdLoad() tea.Cmd {
	ctx, offline, userID := m.ctx, m.offline, m.userID
	return func() tea.Msg {
		status, err := offline.GetSyncStatus(ctx)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		trips, err := offline.GetOfflineTrips(ctx, userID)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{trips: trips, status: status}
	}
}

func (m dashboardModel) cmdSync() tea.Cmd {
	ctx, offline := m.ctx, m.offline
	return func() tea.Msg {
		result, err := offline.SyncNow(ctx)
		return syncDoneMsg{result: result, err: err}
	}
}

func (m dashboardModel) cmdRetry() tea.Cmd {
	ctx, offline := m.ctx, m.offline
	return func() tea.Msg {
		reset, err := offline.RetryFailed(ctx)
		return retryDoneMsg{reset: reset, err: err}
	}
}

func (m dashboardModel) cmdClear() tea.Cmd {
	ctx, offline := m.ctx, m.offline
	return func() tea.Msg {
		return clearedMsg{err: offline.ClearAll(ctx)}
	}
}

func cmdCopy(tripID string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{tripID: tripID, err: copyToClipboard(tripID)}
	}
}

func cmdRefreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(noticeLifetime, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func tripRows(trips []models.CachedTrip) []table.Row {
	rows := make([]table.Row, 0, len(trips))
	for _, trip := range trips {
		synced := "yes"
		if !trip.IsSynced {
			synced = "no"
		}
		rows = append(rows, table.Row{
			fitText(trip.Title(), tripColumns[0].Width),
			fitText(trip.TripID, tripColumns[1].Width),
			synced,
			formatTime(trip.CachedAt),
		})
	}
	return rows
}

func describeDrain(r models.DrainResult) string {
	switch {
	case r.Skipped:
		return "A sync is already running"
	case r.Deferred:
		return "Offline: changes stay queued until the connection is back"
	case r.QuotaExceeded:
		return "Sync stopped: local storage is full"
	case r.Attempted == 0:
		return "Nothing to sync"
	}

	s := fmt.Sprintf("Synced %d of %d change(s)", r.Succeeded, r.Attempted)
	if r.PermanentlyFailed > 0 {
		s += fmt.Sprintf(", %d gave up (press r to retry)", r.PermanentlyFailed)
	}
	return s
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
