// ABOUTME: Confirmation view for destructive actions
// ABOUTME: Deletions and closes require an explicit yes before the request fires
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type confirmState struct {
	message string
	action  tea.Cmd
}

func (m *Model) openConfirm(message string, action tea.Cmd) {
	m.confirm = &confirmState{message: message, action: action}
	m.viewMode = ViewConfirm
}

func (m *Model) renderConfirm() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("CONFIRM"))
	s.WriteString("\n\n")
	s.WriteString(m.confirm.message)
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("y: yes  n/esc: no"))
	return s.String()
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		action := m.confirm.action
		m.confirm = nil
		m.viewMode = ViewBrowse
		return m, action
	case "n", "N", "esc", "q":
		m.confirm = nil
		m.viewMode = ViewBrowse
	}
	return m, nil
}

func (m *Model) deletePerson(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if err := m.store.DeletePerson(ctx, id); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{}
	}
}
