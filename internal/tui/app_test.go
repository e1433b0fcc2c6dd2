package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tecnoAcademiaAdmin/internal/directory"
	"tecnoAcademiaAdmin/models"
)

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a *App, msgs ...tea.Msg) *App {
	t.Helper()
	for _, msg := range msgs {
		next, _ := a.Update(msg)
		got, ok := next.(*App)
		if !ok {
			t.Fatalf("Update returned %T, want *App", next)
		}
		a = got
	}
	return a
}

func typeText(t *testing.T, a *App, s string) *App {
	t.Helper()
	for _, r := range s {
		if r == ' ' {
			a = press(t, a, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		a = press(t, a, keyMsg(string(r)))
	}
	return a
}

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	right     = tea.KeyMsg{Type: tea.KeyRight}
	left      = tea.KeyMsg{Type: tea.KeyLeft}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func newApp() (*App, *directory.Manager) {
	dir := directory.New(models.SeedUsers())
	return New(dir, nil), dir
}

func TestView_ListsUsers(t *testing.T) {
	a, _ := newApp()
	v := a.View()
	for _, want := range []string{"Gestión de Usuarios", "Juan Pérez", "maria@example.com", "Psicopedagogo", "Usuarios"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
}

func TestAddFlow(t *testing.T) {
	a, dir := newApp()
	a = press(t, a, keyMsg("a"))
	if dir.Mode() != directory.Adding {
		t.Fatalf("mode = %v, want adding", dir.Mode())
	}
	if !strings.Contains(a.View(), "Agregar Nuevo Usuario") || !strings.Contains(a.View(), "Seleccione un rol") {
		t.Fatalf("add form not rendered:\n%s", a.View())
	}

	a = typeText(t, a, "Ana Ruiz")
	a = press(t, a, tab)
	a = typeText(t, a, "ana@x.com")
	a = press(t, a, tab)
	// left from no role wraps to the last role, right moves back to the first.
	a = press(t, a, left, right, right, right, right)
	a = press(t, a, enter)

	if dir.Mode() != directory.Browsing {
		t.Fatalf("mode = %v after submit, want browsing", dir.Mode())
	}
	users := dir.List()
	if len(users) != 4 {
		t.Fatalf("expected 4 users, got %d", len(users))
	}
	want := models.User{ID: 4, Name: "Ana Ruiz", Email: "ana@x.com", Role: models.RoleFacilitador}
	if users[3] != want {
		t.Fatalf("added %+v, want %+v", users[3], want)
	}
	if a.cursor != 3 {
		t.Fatalf("cursor should follow the new row, got %d", a.cursor)
	}
	if !strings.Contains(a.View(), "agregado") {
		t.Fatalf("missing confirmation:\n%s", a.View())
	}
}

func TestAddFlow_RequiredFieldBlocksSubmit(t *testing.T) {
	a, dir := newApp()
	a = press(t, a, keyMsg("a"))
	a = typeText(t, a, "Ana")
	a = press(t, a, enter)

	if dir.Mode() != directory.Adding {
		t.Fatalf("form should stay open, mode=%v", dir.Mode())
	}
	if dir.Len() != 3 {
		t.Fatalf("directory changed on invalid submit")
	}
	if !strings.Contains(a.View(), "Completa este campo: Email") {
		t.Fatalf("missing validation message:\n%s", a.View())
	}
	if a.focus != fieldEmail {
		t.Fatalf("focus should move to the missing field, got %v", a.focus)
	}
	d, _ := dir.Draft()
	if d.Name != "Ana" {
		t.Fatalf("draft lost: %+v", d)
	}
}

func TestRolePickByNumber(t *testing.T) {
	a, dir := newApp()
	a = press(t, a, keyMsg("a"), tab, tab, keyMsg("5"))
	d, _ := dir.Draft()
	if d.Role != models.RoleAprendiz {
		t.Fatalf("role = %q, want %q", d.Role, models.RoleAprendiz)
	}
	if d.Name != "" {
		t.Fatalf("digits on the role field must not reach text fields: %+v", d)
	}
}

func TestEditFlow(t *testing.T) {
	a, dir := newApp()
	a = press(t, a, keyMsg("j"), keyMsg("e"))
	if dir.Mode() != directory.Editing {
		t.Fatalf("mode = %v, want editing", dir.Mode())
	}
	if !strings.Contains(a.View(), "Editar Usuario") {
		t.Fatalf("edit form not rendered:\n%s", a.View())
	}
	for range "García" {
		a = press(t, a, backspace)
	}
	a = typeText(t, a, "Gómez")
	a = press(t, a, tab, tab, right, enter)

	got := dir.List()
	want := models.User{ID: 2, Name: "María Gómez", Email: "maria@example.com", Role: models.RolePsicopedagogo}
	if got[1] != want {
		t.Fatalf("edited %+v, want %+v", got[1], want)
	}
	if got[0] != models.SeedUsers()[0] || got[2] != models.SeedUsers()[2] {
		t.Fatalf("other rows changed: %+v", got)
	}
}

func TestEditFlow_RowDeletedMeanwhile(t *testing.T) {
	a, dir := newApp()
	a = press(t, a, keyMsg("e"))
	if !dir.Delete(1) {
		t.Fatalf("user 1 should exist")
	}
	a = press(t, a, enter)
	if dir.Mode() != directory.Browsing {
		t.Fatalf("mode = %v, want browsing", dir.Mode())
	}
	if dir.Len() != 2 {
		t.Fatalf("edit of a deleted row must not re-add it: %+v", dir.List())
	}
	if !a.failed || !strings.Contains(a.View(), "El usuario ya no existe") {
		t.Fatalf("missing row not reported:\n%s", a.View())
	}
}

func TestEscCancelsForm(t *testing.T) {
	a, dir := newApp()
	a = press(t, a, keyMsg("e"))
	a = typeText(t, a, "zzz")
	a = press(t, a, esc)
	if dir.Mode() != directory.Browsing {
		t.Fatalf("esc should return to browsing")
	}
	if dir.List()[0] != models.SeedUsers()[0] {
		t.Fatalf("cancel must not commit the draft")
	}
}

func TestDeleteSelected(t *testing.T) {
	a, dir := newApp()
	a = press(t, a, keyMsg("j"), keyMsg("j"), keyMsg("d"))
	if dir.Len() != 2 {
		t.Fatalf("expected 2 users, got %d", dir.Len())
	}
	for _, u := range dir.List() {
		if u.ID == 3 {
			t.Fatalf("user 3 should be deleted")
		}
	}
	if a.cursor != 1 {
		t.Fatalf("cursor should clamp to the last row, got %d", a.cursor)
	}
	a = press(t, a, keyMsg("d"), keyMsg("d"), keyMsg("d"))
	if dir.Len() != 0 {
		t.Fatalf("expected empty directory, got %d", dir.Len())
	}
	if !strings.Contains(a.View(), "sin usuarios") {
		t.Fatalf("empty table not rendered:\n%s", a.View())
	}
	// Adding into an empty directory starts at 1.
	a = press(t, a, keyMsg("a"))
	a = typeText(t, a, "Ana")
	a = press(t, a, tab)
	a = typeText(t, a, "ana@x.com")
	a = press(t, a, tab, right, enter)
	if got := dir.List(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected directory after add: %+v", got)
	}
}

func TestNavigation(t *testing.T) {
	a, dir := newApp()
	a = press(t, a, keyMsg("1"))
	if a.active != 0 || !strings.Contains(a.View(), "/dashboard") {
		t.Fatalf("expected Inicio screen:\n%s", a.View())
	}
	// Directory keys do nothing away from the users screen.
	a = press(t, a, keyMsg("d"), keyMsg("a"))
	if dir.Len() != 3 || dir.Mode() != directory.Browsing {
		t.Fatalf("users screen keys leaked to another destination")
	}
	a = press(t, a, tab, tab)
	if Destinations()[a.active].Path != "/portfolio" {
		t.Fatalf("tab should cycle destinations, at %d", a.active)
	}
	a = press(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	if Destinations()[a.active].Path != "/tasks" {
		t.Fatalf("shift+tab should go back, at %d", a.active)
	}
	a = press(t, a, keyMsg("4"))
	if !strings.Contains(a.View(), "Gestión de Usuarios") {
		t.Fatalf("expected users screen")
	}
}

func TestQuit(t *testing.T) {
	a, _ := newApp()
	_, cmd := a.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	// While a form is open, q is typed into the field instead.
	a = press(t, a, keyMsg("a"), keyMsg("q"))
	d, _ := a.dir.Draft()
	if d.Name != "q" {
		t.Fatalf("q should be typed, draft=%+v", d)
	}
}

func TestDestinations(t *testing.T) {
	got := Destinations()
	want := []string{"/dashboard", "/tasks", "/portfolio", "/users"}
	if len(got) != len(want) {
		t.Fatalf("got %d destinations", len(got))
	}
	for i, d := range got {
		if d.Path != want[i] {
			t.Fatalf("destination %d = %s, want %s", i, d.Path, want[i])
		}
	}
}
