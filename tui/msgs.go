// ABOUTME: Async messages and commands for the TUI
// ABOUTME: Every network call runs as a tea.Cmd and lands here as a message
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/outreach/analytics"
	"github.com/harperreed/outreach/client"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/radar"
)

type boardLoadedMsg struct{ board *db.TodayBoard }
type peopleLoadedMsg struct{ people []models.Person }
type companiesLoadedMsg struct{ companies []models.CompanySummary }
type waitlistLoadedMsg struct{ items []models.WaitlistItem }
type radarLoadedMsg struct{ items []radar.NewsItem }
type weeklyLoadedMsg struct{ report *analytics.WeeklyReport }
type invalidatedMsg struct{ resource client.Resource }
type actionDoneMsg struct{}
type errMsg struct{ err error }

func (m *Model) waitForInvalidation() tea.Cmd {
	return func() tea.Msg {
		return invalidatedMsg{resource: <-m.invalidations}
	}
}

func (m *Model) loadBoard() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		board, err := m.store.Client().DashboardToday(ctx)
		if err != nil {
			return errMsg{err}
		}
		return boardLoadedMsg{board}
	}
}

func (m *Model) loadPeople() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		people, err := m.store.Client().ListPeople(ctx)
		if err != nil {
			return errMsg{err}
		}
		return peopleLoadedMsg{people}
	}
}

func (m *Model) loadCompanies() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		companies, err := m.store.Client().ListCompanies(ctx)
		if err != nil {
			return errMsg{err}
		}
		return companiesLoadedMsg{companies}
	}
}

func (m *Model) loadWaitlist() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		items, err := m.store.Client().ListWaitlist(ctx)
		if err != nil {
			return errMsg{err}
		}
		return waitlistLoadedMsg{items}
	}
}

func (m *Model) loadRadar() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		items, err := m.store.Client().Radar(ctx, "")
		if err != nil {
			return errMsg{err}
		}
		return radarLoadedMsg{items}
	}
}

func (m *Model) loadWeekly() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		report, err := m.store.Client().WeeklyAnalytics(ctx, "")
		if err != nil {
			return errMsg{err}
		}
		return weeklyLoadedMsg{report}
	}
}

func (m *Model) completeTask(id ulid.ULID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if err := m.store.TaskDone(ctx, id); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{}
	}
}

func (m *Model) snoozeTask(id ulid.ULID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if err := m.store.TaskSnooze(ctx, id, 2); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{}
	}
}

func (m *Model) closeTask(id ulid.ULID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if err := m.store.TaskClose(ctx, id); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{}
	}
}
