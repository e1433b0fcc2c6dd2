// Package directory holds the in-memory user directory behind the user
// management screen: the ordered records plus the browse/add/edit mode.
package directory

import (
	"errors"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"tecnoAcademiaAdmin/models"
)

// Mode is the interaction mode of the user management screen.
type Mode int

const (
	Browsing Mode = iota
	Adding
	Editing
)

func (m Mode) String() string {
	switch m {
	case Adding:
		return "adding"
	case Editing:
		return "editing"
	default:
		return "browsing"
	}
}

// Op identifies a committed mutation.
type Op string

const (
	OpAdded   Op = "added"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change is delivered to subscribers after a mutation is committed.
// For OpDeleted, User holds the removed record.
type Change struct {
	Op   Op
	User models.User
}

// Manager owns the directory and the current interaction mode.
// It is not safe for concurrent use; a single UI loop drives it.
type Manager struct {
	users     []models.User
	mode      Mode
	draft     Draft
	observers []func(Change)
	log       logrus.FieldLogger
}

// ErrIDsExhausted is returned by SubmitAdd when the largest identifier in use
// is already math.MaxInt64.
var ErrIDsExhausted = errors.New("no identifier left after the largest one in use")

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New creates a Manager seeded with a copy of users. Identifiers must be
// unique: a record repeating an earlier identifier is dropped and logged.
func New(users []models.User, opts ...Option) *Manager {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	m := &Manager{log: discard}
	for _, o := range opts {
		o(m)
	}
	seen := make(map[int64]bool, len(users))
	m.users = make([]models.User, 0, len(users))
	for _, u := range users {
		if seen[u.ID] {
			m.log.WithField("id", u.ID).Warn("duplicate user id in seed dropped")
			continue
		}
		seen[u.ID] = true
		m.users = append(m.users, u)
	}
	return m
}

// List returns the records in display order.
func (m *Manager) List() []models.User {
	out := make([]models.User, len(m.users))
	copy(out, m.users)
	return out
}

// Len returns the number of records.
func (m *Manager) Len() int { return len(m.users) }

// Mode returns the current interaction mode.
func (m *Manager) Mode() Mode { return m.mode }

// Draft returns the open draft. ok is false while browsing.
func (m *Manager) Draft() (d Draft, ok bool) {
	if m.mode == Browsing {
		return Draft{}, false
	}
	return m.draft, true
}

// Subscribe registers fn to be called after every committed mutation.
func (m *Manager) Subscribe(fn func(Change)) {
	if fn != nil {
		m.observers = append(m.observers, fn)
	}
}

// BeginAdd opens an empty add draft, discarding any edit in progress.
func (m *Manager) BeginAdd() {
	m.mode = Adding
	m.draft = Draft{}
}

// BeginEdit opens an edit draft holding a copy of u, discarding any add in progress.
func (m *Manager) BeginEdit(u models.User) {
	m.mode = Editing
	m.draft = DraftOf(u)
}

// UpdateDraft applies fn to the open draft. The id of an edit draft cannot be
// changed. It returns false while browsing.
func (m *Manager) UpdateDraft(fn func(*Draft)) bool {
	if m.mode == Browsing {
		return false
	}
	id := m.draft.ID
	fn(&m.draft)
	m.draft.ID = id
	return true
}

// Cancel discards the open draft and returns to browsing.
func (m *Manager) Cancel() {
	m.mode = Browsing
	m.draft = Draft{}
}

// SubmitAdd validates d, appends it with the next identifier and returns to
// browsing. On a validation error nothing changes.
func (m *Manager) SubmitAdd(d Draft) (models.User, error) {
	if err := d.Validate(); err != nil {
		return models.User{}, err
	}
	id, err := m.nextID()
	if err != nil {
		return models.User{}, err
	}
	u := d.User(id)
	m.users = append(m.users, u)
	m.Cancel()
	m.notify(Change{Op: OpAdded, User: u})
	return u, nil
}

// SubmitEdit validates u and replaces the record with the same identifier.
// A missing identifier leaves the directory untouched and returns false.
// Either way the manager returns to browsing.
func (m *Manager) SubmitEdit(u models.User) (bool, error) {
	d := DraftOf(u)
	if err := d.Validate(); err != nil {
		return false, err
	}
	m.Cancel()
	i := m.indexOf(u.ID)
	if i < 0 {
		m.log.WithField("id", u.ID).Warn("edit of unknown user ignored")
		return false, nil
	}
	m.users[i] = d.User(u.ID)
	m.notify(Change{Op: OpUpdated, User: m.users[i]})
	return true, nil
}

// SubmitDraft submits the open draft according to the current mode.
// It is a no-op while browsing.
func (m *Manager) SubmitDraft() error {
	switch m.mode {
	case Adding:
		_, err := m.SubmitAdd(m.draft)
		return err
	case Editing:
		_, err := m.SubmitEdit(m.draft.User(m.draft.ID))
		return err
	}
	return nil
}

// Delete removes the record with the given identifier. It returns false if no
// such record exists.
func (m *Manager) Delete(id int64) bool {
	i := m.indexOf(id)
	if i < 0 {
		m.log.WithField("id", id).Debug("delete of unknown user ignored")
		return false
	}
	removed := m.users[i]
	m.users = append(m.users[:i], m.users[i+1:]...)
	m.notify(Change{Op: OpDeleted, User: removed})
	return true
}

// nextID is one past the largest identifier, or 1 for an empty directory.
func (m *Manager) nextID() (int64, error) {
	var max int64
	for _, u := range m.users {
		if u.ID > max {
			max = u.ID
		}
	}
	if max == math.MaxInt64 {
		return 0, ErrIDsExhausted
	}
	return max + 1, nil
}

func (m *Manager) indexOf(id int64) int {
	for i, u := range m.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) notify(c Change) {
	m.log.WithFields(logrus.Fields{"op": c.Op, "id": c.User.ID}).Debug("directory changed")
	for _, fn := range m.observers {
		fn(c)
	}
}
