package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"tecnoAcademiaAdmin/internal/directory"
	"tecnoAcademiaAdmin/models"
)

type formField int

const (
	fieldName formField = iota
	fieldEmail
	fieldRole
	fieldCount
)

var fieldLabels = map[formField]string{
	fieldName:  "Nombre",
	fieldEmail: "Email",
	fieldRole:  "Rol",
}

var draftFieldToForm = map[string]formField{
	"name":  fieldName,
	"email": fieldEmail,
	"role":  fieldRole,
}

// App is the console: navigation bar plus the user management screen.
type App struct {
	dir    *directory.Manager
	log    logrus.FieldLogger
	active int
	cursor int
	focus  formField
	status string
	failed bool
	width  int
}

// New returns an App showing the user management screen. A nil log discards
// diagnostics.
func New(dir *directory.Manager, log logrus.FieldLogger) *App {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &App{dir: dir, log: log, active: usersScreen, width: 80}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.active == usersScreen && a.dir.Mode() != directory.Browsing {
			return a.handleFormKey(m)
		}
		return a.handleBrowseKey(m)
	}
	return a, nil
}

func (a *App) handleBrowseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k := m.String(); k {
	case "q":
		return a, tea.Quit
	case "tab":
		a.active = (a.active + 1) % len(destinations)
	case "shift+tab":
		a.active = (a.active + len(destinations) - 1) % len(destinations)
	case "1", "2", "3", "4":
		a.active = int(k[0] - '1')
	}
	if a.active != usersScreen {
		return a, nil
	}

	users := a.dir.List()
	switch m.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(users)-1 {
			a.cursor++
		}
	case "a":
		a.dir.BeginAdd()
		a.focus = fieldName
		a.setStatus("", false)
	case "e", "enter":
		if len(users) > 0 {
			a.dir.BeginEdit(users[a.cursor])
			a.focus = fieldName
			a.setStatus("", false)
		}
	case "d":
		if len(users) > 0 {
			u := users[a.cursor]
			a.dir.Delete(u.ID)
			a.clampCursor()
			a.setStatus(fmt.Sprintf("Usuario %s eliminado", u.Name), false)
		}
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.dir.Cancel()
		a.setStatus("", false)
		return a, nil
	case "enter":
		a.submit()
		return a, nil
	case "tab", "down":
		a.focus = (a.focus + 1) % fieldCount
		return a, nil
	case "shift+tab", "up":
		a.focus = (a.focus + fieldCount - 1) % fieldCount
		return a, nil
	}

	if a.focus == fieldRole {
		a.handleRoleKey(m)
		return a, nil
	}
	a.dir.UpdateDraft(func(d *directory.Draft) {
		target := &d.Name
		if a.focus == fieldEmail {
			target = &d.Email
		}
		switch m.Type {
		case tea.KeyBackspace:
			if r := []rune(*target); len(r) > 0 {
				*target = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			*target += " "
		case tea.KeyRunes:
			*target += string(m.Runes)
		}
	})
	return a, nil
}

// handleRoleKey cycles the role with left/right or picks it by its 1-based number.
func (a *App) handleRoleKey(m tea.KeyMsg) {
	roles := models.Roles()
	a.dir.UpdateDraft(func(d *directory.Draft) {
		idx := -1
		for i, r := range roles {
			if r == d.Role {
				idx = i
			}
		}
		switch k := m.String(); {
		case k == "right" || k == "l":
			d.Role = roles[(idx+1)%len(roles)]
		case k == "left" || k == "h":
			if idx <= 0 {
				idx = len(roles)
			}
			d.Role = roles[idx-1]
		case len(k) == 1 && k[0] >= '1' && int(k[0]-'0') <= len(roles):
			d.Role = roles[k[0]-'1']
		}
	})
}

func (a *App) submit() {
	d, ok := a.dir.Draft()
	if !ok {
		return
	}
	var err error
	switch a.dir.Mode() {
	case directory.Adding:
		var u models.User
		if u, err = a.dir.SubmitAdd(d); err == nil {
			a.cursor = a.dir.Len() - 1
			a.setStatus(fmt.Sprintf("Usuario %s agregado", u.Name), false)
		}
	case directory.Editing:
		var found bool
		if found, err = a.dir.SubmitEdit(d.User(d.ID)); err == nil {
			if found {
				a.setStatus("Usuario actualizado", false)
			} else {
				a.setStatus("El usuario ya no existe", true)
			}
		}
	}
	if err != nil {
		a.setStatus(validationMessage(err), true)
		var ve *directory.ValidationError
		if errors.As(err, &ve) {
			a.focus = draftFieldToForm[ve.Field]
		}
	}
}

func validationMessage(err error) string {
	var ve *directory.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	label := fieldLabels[draftFieldToForm[ve.Field]]
	if errors.Is(err, directory.ErrUnknownRole) {
		return "Seleccione un rol válido"
	}
	return fmt.Sprintf("Completa este campo: %s", label)
}

func (a *App) setStatus(s string, failed bool) {
	a.status = s
	a.failed = failed
	if s != "" {
		a.log.WithField("failed", failed).Debug(s)
	}
}

func (a *App) clampCursor() {
	if n := a.dir.Len(); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(renderNavbar(a.active, a.width))
	b.WriteString("\n\n")
	if a.active != usersScreen {
		d := destinations[a.active]
		b.WriteString(titleStyle.Render(d.Label))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%s no está disponible en la consola.", d.Path)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab/1-4 navegar · q salir"))
		return b.String()
	}

	b.WriteString(titleStyle.Render("Gestión de Usuarios"))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(a.renderTable()))
	if form := a.renderForm(); form != "" {
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(form))
	}
	if a.status != "" {
		b.WriteString("\n")
		if a.failed {
			b.WriteString(errorStyle.Render(a.status))
		} else {
			b.WriteString(okStyle.Render(a.status))
		}
	}
	b.WriteString("\n")
	if a.dir.Mode() == directory.Browsing {
		b.WriteString(helpStyle.Render("↑/↓ mover · a agregar · e editar · d eliminar · tab/1-4 navegar · q salir"))
	} else {
		b.WriteString(helpStyle.Render("tab campo · ←/→ rol · enter guardar · esc cancelar"))
	}
	return b.String()
}

func (a *App) renderTable() string {
	users := a.dir.List()
	header := []string{"Nombre", "Email", "Rol"}
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		row := []string{u.Name, u.Email, string(u.Role)}
		for i, c := range row {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString("Lista de Usuarios\n")
	b.WriteString("  " + headerStyle.Render(joinCells(header, widths)) + "\n")
	if len(rows) == 0 {
		b.WriteString(helpStyle.Render("  (sin usuarios)"))
		return b.String()
	}
	for i, row := range rows {
		line := joinCells(row, widths)
		if i == a.cursor && a.dir.Mode() == directory.Browsing {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
	}
	return strings.Join(padded, "  ")
}

func (a *App) renderForm() string {
	d, ok := a.dir.Draft()
	if !ok {
		return ""
	}
	title := "Agregar Nuevo Usuario"
	if a.dir.Mode() == directory.Editing {
		title = "Editar Usuario"
	}
	role := string(d.Role)
	if role == "" {
		role = "Seleccione un rol"
	}
	values := map[formField]string{fieldName: d.Name, fieldEmail: d.Email, fieldRole: "‹ " + role + " ›"}

	var b strings.Builder
	b.WriteString(title)
	for f := fieldName; f < fieldCount; f++ {
		line := fmt.Sprintf("%-7s %s", fieldLabels[f]+":", values[f])
		if f == a.focus {
			b.WriteString("\n" + focusStyle.Render("▸ "+line))
		} else {
			b.WriteString("\n  " + line)
		}
	}
	return b.String()
}
