// ABOUTME: Browse-mode rendering and key handling for every tab
// ABOUTME: Tables for today, people, companies, waitlist, radar, and weekly views
package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/forms"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/query"
)

func (m *Model) renderBrowse() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("OUTREACH"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.tab {
	case TabToday:
		s.WriteString(m.renderTodayTab())
	case TabPeople:
		s.WriteString(m.renderPeopleTab())
	case TabCompanies:
		s.WriteString(m.renderCompaniesTab())
	case TabWaitlist:
		s.WriteString(m.renderWaitlistTab())
	case TabRadar:
		s.WriteString(m.renderRadarTab())
	case TabWeekly:
		s.WriteString(m.renderWeeklyTab())
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errStyle.Render("Error: " + m.err.Error()))
	}

	s.WriteString("\n")
	s.WriteString(m.renderHelp())
	return s.String()
}

func (m *Model) renderTabs() string {
	var rendered []string
	for i, tab := range tabNames {
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// todayTasks flattens the board in display order: overdue first.
func (m *Model) todayTasks() []db.Task {
	if m.board == nil {
		return nil
	}
	tasks := make([]db.Task, 0, len(m.board.Overdue)+len(m.board.DueToday)+len(m.board.Upcoming))
	tasks = append(tasks, m.board.Overdue...)
	tasks = append(tasks, m.board.DueToday...)
	tasks = append(tasks, m.board.Upcoming...)
	return tasks
}

func (m *Model) renderTodayTab() string {
	tasks := m.todayTasks()
	if len(tasks) == 0 {
		return "Nothing due. Go outside."
	}

	today := dates.Today()
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Who", Width: 24},
		{Title: "Company", Width: 20},
		{Title: "Action", Width: 30},
	}

	var rows []table.Row
	for _, task := range tasks {
		due := task.DueDate
		if due < today {
			due = overdueStyle.Render(due)
		}
		rows = append(rows, table.Row{due, task.Person.Name, task.CompanyName, task.Action})
	}
	return m.renderTable(columns, rows)
}

func (m *Model) renderPeopleTab() string {
	result := m.peoplePage()

	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Company", Width: 20},
		{Title: "Status", Width: 8},
		{Title: "Last Touch", Width: 14},
		{Title: "Next Follow-up", Width: 14},
	}

	var rows []table.Row
	for _, person := range result.Items {
		companyName := ""
		if person.Company != nil {
			companyName = person.Company.Name
		}
		lastTouch := "-"
		if touch := query.LastTouch(person); touch != nil {
			lastTouch = dates.FormatTime(touch.Date, dates.LayoutDate)
		}
		nextDue := "-"
		if next := query.NextFollowUp(person); next != nil {
			nextDue = next.DueDate
		}
		rows = append(rows, table.Row{person.Name, companyName, person.Status, lastTouch, nextDue})
	}

	var s strings.Builder
	if m.searching {
		s.WriteString("Search: " + m.searchQuery + "▌\n\n")
	} else if m.searchQuery != "" || m.statusFilter != query.StatusAll {
		s.WriteString(fmt.Sprintf("Filter: %q  status=%s\n\n", m.searchQuery, m.statusFilter))
	}
	s.WriteString(m.renderTable(columns, rows))
	s.WriteString(fmt.Sprintf("\nPage %d/%d (%d people)", result.Page, result.PageCount, result.Total))
	return s.String()
}

// peoplePage applies the current filter/sort/page state.
func (m *Model) peoplePage() query.Result {
	return query.Apply(m.people, query.Params{
		Query:   m.searchQuery,
		Status:  m.statusFilter,
		Sort:    m.sortKey,
		Page:    m.page,
		PerPage: query.DefaultPerPage,
	})
}

func (m *Model) renderCompaniesTab() string {
	columns := []table.Column{
		{Title: "Company", Width: 24},
		{Title: "Sponsor", Width: 8},
		{Title: "Contacts", Width: 8},
		{Title: "Last Touch", Width: 14},
		{Title: "Next Follow-up", Width: 14},
	}

	var rows []table.Row
	for _, company := range m.companies {
		lastTouch := "-"
		if company.LastTouchDate != nil {
			lastTouch = dates.FormatTime(*company.LastTouchDate, dates.LayoutDate)
		}
		nextDue := "-"
		if company.NextFollowUpDate != nil {
			nextDue = *company.NextFollowUpDate
		}
		rows = append(rows, table.Row{
			company.Name, company.SponsorStatus,
			fmt.Sprintf("%d", company.ContactCount), lastTouch, nextDue,
		})
	}
	return m.renderTable(columns, rows)
}

func (m *Model) renderWaitlistTab() string {
	columns := []table.Column{
		{Title: "Pri", Width: 4},
		{Title: "Company", Width: 22},
		{Title: "Name", Width: 18},
		{Title: "Reason", Width: 28},
		{Title: "Act On", Width: 12},
	}

	var rows []table.Row
	for _, item := range m.waitlist {
		rows = append(rows, table.Row{item.Priority, item.Company, item.Name, item.Reason, item.PlannedActionDate})
	}
	return m.renderTable(columns, rows)
}

func (m *Model) renderRadarTab() string {
	if len(m.news) == 0 {
		return "No news loaded. Press r to fetch."
	}
	var s strings.Builder
	for i, item := range m.news {
		if i >= 10 {
			break
		}
		s.WriteString(item.Title + "\n")
		s.WriteString(helpStyle.Render("  "+item.Source+"  "+item.Link) + "\n")
	}
	return s.String()
}

func (m *Model) renderWeeklyTab() string {
	if m.weekly == nil {
		return "Loading weekly report..."
	}
	var s strings.Builder
	s.WriteString(fmt.Sprintf("Week of %s\n\n", m.weekly.WeekStart))

	columns := []table.Column{
		{Title: "Day", Width: 12},
		{Title: "Sent", Width: 6},
		{Title: "Replies", Width: 8},
		{Title: "InMail", Width: 7},
		{Title: "Rate", Width: 6},
	}
	var rows []table.Row
	for _, day := range m.weekly.Days {
		rows = append(rows, table.Row{
			day.Date,
			fmt.Sprintf("%d", day.SentOutbound),
			fmt.Sprintf("%d", day.RepliesInbound),
			fmt.Sprintf("%d", day.RecruiterInmailInbound),
			fmt.Sprintf("%.0f%%", day.ResponseRateBySentDay*100),
		})
	}
	s.WriteString(m.renderTable(columns, rows))
	return s.String()
}

func (m *Model) renderTable(columns []table.Column, rows []table.Row) string {
	height := m.height - 10
	if height < 3 {
		height = 3
	}
	if height > len(rows)+1 {
		height = len(rows) + 1
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m *Model) renderHelp() string {
	common := "tab: switch  a: add person  r: refresh  q: quit"
	switch m.tab {
	case TabToday:
		return helpStyle.Render("j/k: move  d: done  s: snooze  c: close  " + common)
	case TabPeople:
		return helpStyle.Render("j/k: move  /: search  f: status  o: sort  n/p: page  x: delete  " + common)
	case TabWaitlist:
		return helpStyle.Render("j/k: move  enter: convert  " + common)
	}
	return helpStyle.Render(common)
}

func (m *Model) moveSelection(delta, max int) {
	m.selectedRow += delta
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
	if max > 0 && m.selectedRow >= max {
		m.selectedRow = max - 1
	}
}

func (m *Model) handleTodayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.todayTasks()
	switch msg.String() {
	case "j", "down":
		m.moveSelection(1, len(tasks))
	case "k", "up":
		m.moveSelection(-1, len(tasks))
	case "d":
		if m.selectedRow < len(tasks) {
			return m, m.completeTask(tasks[m.selectedRow].ID)
		}
	case "s":
		if m.selectedRow < len(tasks) {
			return m, m.snoozeTask(tasks[m.selectedRow].ID)
		}
	case "c":
		if m.selectedRow < len(tasks) {
			task := tasks[m.selectedRow]
			m.openConfirm(
				fmt.Sprintf("Close the %q task for %s?", task.Action, task.Person.Name),
				m.closeTask(task.ID),
			)
		}
	}
	return m, nil
}

func (m *Model) handlePeopleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.peoplePage()
	switch msg.String() {
	case "j", "down":
		m.moveSelection(1, len(page.Items))
	case "k", "up":
		m.moveSelection(-1, len(page.Items))
	case "/":
		m.searching = true
	case "f":
		m.cycleStatusFilter()
	case "o":
		m.cycleSort()
	case "n", "right":
		if m.page < page.PageCount {
			m.page++
			m.selectedRow = 0
		}
	case "p", "left":
		if m.page > 1 {
			m.page--
			m.selectedRow = 0
		}
	case "x":
		if m.selectedRow < len(page.Items) {
			person := page.Items[m.selectedRow]
			m.openConfirm(
				fmt.Sprintf("Delete %s and all their history?", person.Name),
				m.deletePerson(person.ID),
			)
		}
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
	case "backspace":
		if len(m.searchQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.searchQuery)
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-size]
			m.page = 1
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.searchQuery += string(msg.Runes)
			// A changed query invalidates the old page position.
			m.page = 1
			m.selectedRow = 0
		}
	}
	return m, nil
}

var statusCycle = []string{query.StatusAll, models.StatusOpen, models.StatusWaiting, models.StatusClosed}

func (m *Model) cycleStatusFilter() {
	for i, status := range statusCycle {
		if status == m.statusFilter {
			m.statusFilter = statusCycle[(i+1)%len(statusCycle)]
			m.page = 1
			m.selectedRow = 0
			return
		}
	}
	m.statusFilter = query.StatusAll
}

var sortCycle = []string{query.SortCreatedDesc, query.SortCreatedAsc, query.SortNameAsc}

func (m *Model) cycleSort() {
	for i, key := range sortCycle {
		if key == m.sortKey {
			m.sortKey = sortCycle[(i+1)%len(sortCycle)]
			m.page = 1
			m.selectedRow = 0
			return
		}
	}
	m.sortKey = query.SortCreatedDesc
}

func (m *Model) handleWaitlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveSelection(1, len(m.waitlist))
	case "k", "up":
		m.moveSelection(-1, len(m.waitlist))
	case "enter":
		if m.selectedRow < len(m.waitlist) {
			item := m.waitlist[m.selectedRow]
			// Conversion opens the person form pre-filled from the
			// parked lead; the item is marked converted only after
			// the person is actually created.
			m.openAddPerson(&item)
		}
	}
	return m, nil
}

func (m *Model) openAddPerson(fromWaitlist *models.WaitlistItem) {
	var form *forms.PersonForm
	if fromWaitlist != nil {
		form = forms.PrefillFromWaitlist(*fromWaitlist)
	} else {
		form = forms.NewPersonForm()
	}
	m.form = newPersonFormState(form, fromWaitlist)
	m.viewMode = ViewAddPerson
}
