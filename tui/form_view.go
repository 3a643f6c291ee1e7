// ABOUTME: Add-person form view
// ABOUTME: Collects fields, optional log-now touchpoint, and drives waitlist conversion
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/outreach/forms"
	"github.com/harperreed/outreach/models"
)

const (
	fieldName = iota
	fieldCompany
	fieldTitle
	fieldWhy
	fieldLink
	fieldChannel
	fieldCount
)

type personFormState struct {
	form         *forms.PersonForm
	fromWaitlist *models.WaitlistItem

	inputs     []textinput.Model
	focusIndex int
	logNow     bool
}

func newPersonFormState(form *forms.PersonForm, fromWaitlist *models.WaitlistItem) *personFormState {
	labels := []string{"Name", "Company", "Title", "Why reach out", "Link", "Channel"}
	values := []string{form.Name, form.CompanyName, form.Title, form.WhyReachedOut, "", form.TouchChannel}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = labels[i]
		input.SetValue(values[i])
		input.CharLimit = 200
		inputs[i] = input
	}
	inputs[0].Focus()

	return &personFormState{
		form:         form,
		fromWaitlist: fromWaitlist,
		inputs:       inputs,
	}
}

// collect copies input values back onto the form.
func (f *personFormState) collect() {
	f.form.Name = f.inputs[fieldName].Value()
	f.form.CompanyName = f.inputs[fieldCompany].Value()
	f.form.Title = f.inputs[fieldTitle].Value()
	f.form.WhyReachedOut = f.inputs[fieldWhy].Value()
	f.form.PendingLink = f.inputs[fieldLink].Value()
	f.form.LogNow = f.logNow
	f.form.TouchChannel = f.inputs[fieldChannel].Value()
}

func (m *Model) renderPersonForm() string {
	f := m.form
	var s strings.Builder

	title := "ADD PERSON"
	if f.fromWaitlist != nil {
		title = fmt.Sprintf("CONVERT %s", f.fromWaitlist.Company)
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")

	labels := []string{"Name", "Company", "Title", "Why", "Add link", "Channel"}
	for i, input := range f.inputs {
		cursor := "  "
		if i == f.focusIndex {
			cursor = "> "
		}
		s.WriteString(fmt.Sprintf("%s%-10s %s\n", cursor, labels[i]+":", input.View()))
	}

	if links := f.form.Links.Links(); len(links) > 0 {
		s.WriteString("\nLinks:\n")
		for _, link := range links {
			s.WriteString("  " + link + "\n")
		}
	}

	logNow := "[ ]"
	if f.logNow {
		logNow = "[x]"
	}
	cursor := "  "
	if f.focusIndex == fieldCount {
		cursor = "> "
	}
	s.WriteString(fmt.Sprintf("\n%s%s Log an outbound touchpoint now\n", cursor, logNow))

	if m.err != nil {
		s.WriteString("\n" + errStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	s.WriteString("\n" + helpStyle.Render("tab: next field  space: toggle  ctrl+l: add link  enter: save  esc: cancel"))
	return s.String()
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "esc":
		m.form = nil
		m.err = nil
		m.viewMode = ViewBrowse
		return m, nil

	case "tab", "down":
		f.setFocus((f.focusIndex + 1) % (fieldCount + 1))
		return m, nil
	case "shift+tab", "up":
		f.setFocus((f.focusIndex + fieldCount) % (fieldCount + 1))
		return m, nil

	case "ctrl+l":
		if pending := f.inputs[fieldLink].Value(); pending != "" {
			f.form.Links.Add(pending)
			f.inputs[fieldLink].SetValue("")
		}
		return m, nil

	case " ":
		if f.focusIndex == fieldCount {
			f.logNow = !f.logNow
			return m, nil
		}

	case "enter":
		f.collect()
		return m, m.submitPersonForm()
	}

	if f.focusIndex < fieldCount {
		var cmd tea.Cmd
		f.inputs[f.focusIndex], cmd = f.inputs[f.focusIndex].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (f *personFormState) setFocus(index int) {
	f.focusIndex = index
	for i := range f.inputs {
		if i == index {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

type personSavedMsg struct{}

func (m *Model) submitPersonForm() tea.Cmd {
	f := m.form
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()

		var err error
		if f.fromWaitlist != nil {
			_, err = forms.Convert(ctx, m.store, *f.fromWaitlist, f.form)
		} else {
			_, err = f.form.Submit(ctx, m.store)
		}
		if err != nil {
			return errMsg{err}
		}
		return personSavedMsg{}
	}
}
