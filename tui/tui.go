// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Full-screen client over the REST API with resource-driven refetching
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/outreach/analytics"
	"github.com/harperreed/outreach/client"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/query"
	"github.com/harperreed/outreach/radar"
)

// Tab is one of the top-level views.
type Tab int

const (
	TabToday Tab = iota
	TabPeople
	TabCompanies
	TabWaitlist
	TabRadar
	TabWeekly
)

var tabNames = []string{"Today", "People", "Companies", "Waitlist", "Radar", "Weekly"}

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewBrowse ViewMode = iota
	ViewAddPerson
	ViewConfirm
)

const requestTimeout = 10 * time.Second

// Model is the main bubbletea model
type Model struct {
	store    *client.Store
	tab      Tab
	viewMode ViewMode

	// Fetched state, one slot per tab
	board     *db.TodayBoard
	people    []models.Person
	companies []models.CompanySummary
	waitlist  []models.WaitlistItem
	news      []radar.NewsItem
	weekly    *analytics.WeeklyReport

	// People list state
	searchQuery  string
	searching    bool
	statusFilter string
	sortKey      string
	page         int

	selectedRow int

	form    *personFormState
	confirm *confirmState

	// Resources invalidated by mutations land here; the event loop
	// turns them into refetch commands.
	invalidations chan client.Resource

	width  int
	height int
	err    error
}

// NewModel builds the TUI over a store. Mutations anywhere in the app
// funnel through the store, and its invalidation notices drive refetches.
func NewModel(store *client.Store) *Model {
	m := &Model{
		store:         store,
		tab:           TabToday,
		statusFilter:  query.StatusAll,
		sortKey:       query.SortCreatedDesc,
		page:          1,
		invalidations: make(chan client.Resource, 16),
		width:         80,
		height:        24,
	}

	for _, resource := range []client.Resource{
		client.ResourceDashboard,
		client.ResourcePeople,
		client.ResourceCompanies,
		client.ResourceWaitlist,
	} {
		r := resource
		store.Subscribe(r, func() {
			select {
			case m.invalidations <- r:
			default:
			}
		})
	}
	return m
}

// Run starts the program in the alternate screen.
func Run(store *client.Store) error {
	p := tea.NewProgram(NewModel(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadBoard(), m.loadPeople(), m.waitForInvalidation())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardLoadedMsg:
		m.board = msg.board
		return m, nil
	case peopleLoadedMsg:
		m.people = msg.people
		return m, nil
	case companiesLoadedMsg:
		m.companies = msg.companies
		return m, nil
	case waitlistLoadedMsg:
		m.waitlist = msg.items
		return m, nil
	case radarLoadedMsg:
		m.news = msg.items
		return m, nil
	case weeklyLoadedMsg:
		m.weekly = msg.report
		return m, nil

	case invalidatedMsg:
		return m, tea.Batch(m.refetch(msg.resource), m.waitForInvalidation())

	case actionDoneMsg:
		m.err = nil
		return m, nil
	case personSavedMsg:
		m.form = nil
		m.err = nil
		m.viewMode = ViewBrowse
		return m, nil
	case errMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.viewMode {
	case ViewAddPerson:
		return m.renderPersonForm()
	case ViewConfirm:
		return m.renderConfirm()
	}
	return m.renderBrowse()
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewAddPerson:
		return m.handleFormKeys(msg)
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	}

	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.switchTab((m.tab + 1) % Tab(len(tabNames)))
		return m, m.loadTab()
	case "shift+tab":
		m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		return m, m.loadTab()
	case "1", "2", "3", "4", "5", "6":
		m.switchTab(Tab(msg.String()[0] - '1'))
		return m, m.loadTab()
	case "r":
		return m, m.loadTab()
	case "a":
		// The add-person capability is reachable from every tab.
		m.openAddPerson(nil)
		return m, nil
	}

	switch m.tab {
	case TabToday:
		return m.handleTodayKeys(msg)
	case TabPeople:
		return m.handlePeopleKeys(msg)
	case TabWaitlist:
		return m.handleWaitlistKeys(msg)
	}
	return m, nil
}

func (m *Model) switchTab(tab Tab) {
	m.tab = tab
	m.selectedRow = 0
	m.err = nil
}

func (m *Model) loadTab() tea.Cmd {
	switch m.tab {
	case TabToday:
		return m.loadBoard()
	case TabPeople:
		return m.loadPeople()
	case TabCompanies:
		return m.loadCompanies()
	case TabWaitlist:
		return m.loadWaitlist()
	case TabRadar:
		return m.loadRadar()
	case TabWeekly:
		return m.loadWeekly()
	}
	return nil
}

func (m *Model) refetch(resource client.Resource) tea.Cmd {
	switch resource {
	case client.ResourceDashboard:
		return m.loadBoard()
	case client.ResourcePeople:
		return m.loadPeople()
	case client.ResourceCompanies:
		return m.loadCompanies()
	case client.ResourceWaitlist:
		return m.loadWaitlist()
	}
	return nil
}

func reqContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)
