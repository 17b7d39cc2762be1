package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aznadocs/docsuneed/internal/model"
	"github.com/aznadocs/docsuneed/internal/session"
	"github.com/aznadocs/docsuneed/internal/store"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	adminStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// svcRow is a service on the home list.
type svcRow struct {
	id    string
	name  string
	glyph string
	done  int
	total int
}

func (r svcRow) FilterValue() string { return r.name }

// checkRow is one line of a service checklist: a section header or an
// item beneath it.
type checkRow struct {
	isSection bool
	id        string
	sectionID string // owning section for item rows
	text      string
	desc      string
	glyph     string
	checked   bool
	mandatory bool
	offline   bool
}

func (r checkRow) FilterValue() string { return r.text }

type inputMode int

const (
	inputNone inputMode = iota
	inputPassword
	inputAddService
	inputEditService
	inputAddSection
	inputEditSection
	inputAddItem
)

// Model drives the interactive browser. It is a thin collaborator: all
// reads and mutations go through the store, all capability checks
// through the controller.
type Model struct {
	st   *store.Store
	ctrl *session.Controller

	list   list.Model
	width  int
	height int

	input     textinput.Model
	mode      inputMode
	inputErr  string
	targetSvc string // service context for edit/add
	targetSec string // section context for edit/add
}

// Run starts the browser and blocks until the user quits. Mutations
// persist as they happen through the store's hooks, so quitting never
// loses work.
func Run(st *store.Store, ctrl *session.Controller) error {
	m := New(st, ctrl)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func New(st *store.Store, ctrl *session.Controller) Model {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = mutedStyle
	l.Styles.PaginationStyle = mutedStyle
	l.FilterInput.Prompt = "/ "

	adminBind := key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "admin"))
	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check"))
	extra := func() []key.Binding {
		return []key.Binding{toggleBind, adminBind, addBind, editBind, delBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{st: st, ctrl: ctrl, list: l, input: ti}
	m.refresh()
	return m
}

// refresh rebuilds the visible list from store + controller state.
func (m *Model) refresh() {
	if svcID := m.ctrl.Selected(); svcID != "" {
		if svc, ok := m.st.Service(svcID); ok {
			m.setChecklist(svc)
			return
		}
		// stale selection, e.g. the service vanished underneath us
		m.ctrl.Deselect()
	}
	m.setHome()
}

func (m *Model) setHome() {
	services := m.st.Services()
	checked := m.st.Checked()
	rows := make([]list.Item, 0, len(services))
	for _, svc := range services {
		r := svcRow{id: svc.ID, name: svc.Name, glyph: svc.Icon.Glyph()}
		for _, sec := range svc.Sections {
			for _, it := range sec.Items {
				r.total++
				if checked[it.ID] {
					r.done++
				}
			}
		}
		rows = append(rows, r)
	}
	m.list.SetItems(rows)
	m.list.Title = titleStyle.Render("docsuneed") + mutedStyle.Render("  which documents do I need?")
}

func (m *Model) setChecklist(svc model.Service) {
	checked := m.st.Checked()
	var rows []list.Item
	for _, sec := range svc.Sections {
		glyph := "▢"
		switch sec.Hint.Kind {
		case model.HintIcon:
			glyph = sec.Hint.Icon.Glyph()
		case model.HintImage:
			glyph = "▣"
		}
		rows = append(rows, checkRow{
			isSection: true,
			id:        sec.ID,
			text:      sec.Title,
			desc:      sec.Description,
			glyph:     glyph,
		})
		for _, it := range sec.Items {
			rows = append(rows, checkRow{
				id:        it.ID,
				sectionID: sec.ID,
				text:      it.Name,
				checked:   checked[it.ID],
				mandatory: it.Mandatory,
				offline:   it.OfflineOnly,
			})
		}
	}
	m.list.SetItems(rows)
	m.list.Title = fmt.Sprintf("%s %s", svc.Icon.Glyph(), titleStyle.Render(svc.Name))
}

// rowDelegate renders both row kinds on a single line each.
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	var line string
	switch it := item.(type) {
	case svcRow:
		line = fmt.Sprintf("%s %s  %s", it.glyph, it.name,
			mutedStyle.Render(fmt.Sprintf("%d/%d", it.done, it.total)))
	case checkRow:
		if it.isSection {
			line = fmt.Sprintf("%s %s", it.glyph, accentStyle.Render(it.text))
			if it.desc != "" {
				line += "  " + mutedStyle.Render(it.desc)
			}
		} else {
			box := mutedStyle.Render(boxUnchecked)
			if it.checked {
				box = successStyle.Render(boxChecked)
			}
			line = fmt.Sprintf("  %s %s", box, it.text)
			if it.mandatory {
				line += " " + pendingStyle.Render("✱")
			}
			if it.offline {
				line += " " + accentStyle.Render("⊘")
			}
		}
	}
	fmt.Fprintln(w, prefix+line)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		return m, nil
	}

	if m.mode != inputNone {
		return m.updateInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			if m.ctrl.Selected() != "" {
				m.ctrl.Deselect()
				m.refresh()
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if r, ok := m.cursorSvc(); ok {
				m.ctrl.Select(r.id)
				m.refresh()
				return m, nil
			}
			return m, nil
		case " ":
			if r, ok := m.cursorRow(); ok && !r.isSection {
				m.st.ToggleItem(r.id)
				m.refreshKeepCursor()
			}
			return m, nil
		case "m":
			if m.ctrl.Mode() == session.ModeAdmin {
				m.ctrl.ExitAdmin()
				return m, nil
			}
			m.ctrl.RequestAdmin()
			return m.openInput(inputPassword, "", "Admin password..."), textinput.Blink
		case "a":
			if !m.ctrl.CanEdit() {
				return m, nil
			}
			if m.ctrl.Selected() == "" {
				return m.openInput(inputAddService, "", "New service name..."), textinput.Blink
			}
			if r, ok := m.cursorRow(); ok {
				sec := r.sectionID
				if r.isSection {
					sec = r.id
				}
				m.targetSvc = m.ctrl.Selected()
				m.targetSec = sec
				return m.openInput(inputAddItem, "", "New item name..."), textinput.Blink
			}
			return m, nil
		case "s":
			if !m.ctrl.CanEdit() || m.ctrl.Selected() == "" {
				return m, nil
			}
			m.targetSvc = m.ctrl.Selected()
			return m.openInput(inputAddSection, "", "New section title..."), textinput.Blink
		case "e":
			if !m.ctrl.CanEdit() {
				return m, nil
			}
			if r, ok := m.cursorSvc(); ok {
				m.targetSvc = r.id
				return m.openInput(inputEditService, r.name, "Service name..."), textinput.Blink
			}
			if r, ok := m.cursorRow(); ok && r.isSection {
				m.targetSvc = m.ctrl.Selected()
				m.targetSec = r.id
				return m.openInput(inputEditSection, r.text, "Section title..."), textinput.Blink
			}
			return m, nil
		case "d":
			if !m.ctrl.CanEdit() {
				return m, nil
			}
			if r, ok := m.cursorSvc(); ok {
				m.st.DeleteService(r.id)
				m.ctrl.ServiceDeleted(r.id)
				m.refresh()
				return m, nil
			}
			if r, ok := m.cursorRow(); ok {
				if r.isSection {
					m.st.DeleteSection(m.ctrl.Selected(), r.id)
				} else {
					m.st.DeleteItem(m.ctrl.Selected(), r.sectionID, r.id)
				}
				m.refreshKeepCursor()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) openInput(mode inputMode, value, placeholder string) Model {
	m.mode = mode
	m.inputErr = ""
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	if mode == inputPassword {
		m.input.EchoMode = textinput.EchoPassword
	} else {
		m.input.EchoMode = textinput.EchoNormal
	}
	m.input.Focus()
	return m
}

func (m Model) closeInput() Model {
	m.mode = inputNone
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			return m.submitInput()
		case "esc":
			if m.mode == inputPassword {
				m.ctrl.CancelLogin()
			}
			return m.closeInput(), nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.mode {
	case inputPassword:
		if err := m.ctrl.SubmitPassword(m.input.Value()); err != nil {
			m.inputErr = m.ctrl.LoginError()
			m.input.SetValue("")
			return m, nil
		}
		return m.closeInput(), nil

	case inputAddService:
		id, err := m.st.AddService(value, "")
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.ctrl.Select(id)

	case inputEditService:
		svc, _ := m.st.Service(m.targetSvc)
		if err := m.st.EditService(m.targetSvc, value, string(svc.Icon)); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}

	case inputAddSection:
		if _, err := m.st.AddSection(m.targetSvc, store.SectionData{Title: value}); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}

	case inputEditSection:
		// full-replace contract: carry the unchanged fields along
		data := store.SectionData{Title: value}
		if svc, ok := m.st.Service(m.targetSvc); ok {
			for _, sec := range svc.Sections {
				if sec.ID == m.targetSec {
					data.Description = sec.Description
					data.Hint = sec.Hint
				}
			}
		}
		if err := m.st.EditSection(m.targetSvc, m.targetSec, data); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}

	case inputAddItem:
		if _, err := m.st.AddItem(m.targetSvc, m.targetSec, store.ItemData{Name: value}); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
	}

	m = m.closeInput()
	m.refreshKeepCursor()
	return m, nil
}

func (m *Model) cursorSvc() (svcRow, bool) {
	if m.ctrl.Selected() != "" {
		return svcRow{}, false
	}
	r, ok := m.list.SelectedItem().(svcRow)
	return r, ok
}

func (m *Model) cursorRow() (checkRow, bool) {
	r, ok := m.list.SelectedItem().(checkRow)
	return r, ok
}

func (m *Model) refreshKeepCursor() {
	idx := m.list.Index()
	m.refresh()
	if idx >= len(m.list.Items()) {
		idx = len(m.list.Items()) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m Model) View() string {
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}
	listHeight := h - 5
	if m.mode != inputNone {
		listHeight = h - 8
	}
	m.list.SetSize(w-4, listHeight)

	content := m.list.View()

	status := mutedStyle.Render("viewer · press m for admin")
	if m.ctrl.Mode() == session.ModeAdmin {
		status = adminStyle.Render("ADMIN") + mutedStyle.Render(" · a add · s section · e edit · d delete · m exit")
	}
	content += "\n" + status

	if m.mode != inputNone {
		title := inputTitle(m.mode)
		if m.inputErr != "" {
			title += " " + errorStyle.Render(m.inputErr)
		}
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.input.View())
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(content)
}

func inputTitle(mode inputMode) string {
	switch mode {
	case inputPassword:
		return "Admin access"
	case inputAddService:
		return "Add service"
	case inputEditService:
		return "Edit service"
	case inputAddSection:
		return "Add section"
	case inputEditSection:
		return "Edit section"
	case inputAddItem:
		return "Add item"
	default:
		return ""
	}
}
