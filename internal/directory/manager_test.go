package directory

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tecnoAcademiaAdmin/models"
)

func juanOnly() []models.User {
	return []models.User{{ID: 1, Name: "Juan", Email: "juan@x.com", Role: models.RoleDinamizador}}
}

func TestSubmitAdd_AssignsMaxPlusOne(t *testing.T) {
	m := New(juanOnly())
	m.BeginAdd()
	u, err := m.SubmitAdd(Draft{Name: "Ana", Email: "ana@x.com", Role: models.RoleFacilitador})
	require.NoError(t, err)

	want := []models.User{
		{ID: 1, Name: "Juan", Email: "juan@x.com", Role: models.RoleDinamizador},
		{ID: 2, Name: "Ana", Email: "ana@x.com", Role: models.RoleFacilitador},
	}
	assert.Equal(t, want, m.List())
	assert.Equal(t, int64(2), u.ID)
	assert.Equal(t, Browsing, m.Mode())
}

func TestSubmitAdd_UsesMaxNotLength(t *testing.T) {
	m := New([]models.User{
		{ID: 7, Name: "A", Email: "a@x.com", Role: models.RoleInfocenter},
		{ID: 3, Name: "B", Email: "b@x.com", Role: models.RoleInfocenter},
	})
	u, err := m.SubmitAdd(Draft{Name: "C", Email: "c@x.com", Role: models.RoleInfocenter})
	require.NoError(t, err)
	assert.Equal(t, int64(8), u.ID)
}

func TestSubmitAdd_EmptyDirectoryStartsAtOne(t *testing.T) {
	m := New(nil)
	u, err := m.SubmitAdd(Draft{Name: "Ana", Email: "ana@x.com", Role: models.RoleAprendiz})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, 1, m.Len())
}

func TestSubmitAdd_ValidationBlocksSubmit(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		field string
		err   error
	}{
		{"missing name", Draft{Email: "a@x.com", Role: models.RoleFacilitador}, "name", ErrMissingField},
		{"blank name", Draft{Name: "   ", Email: "a@x.com", Role: models.RoleFacilitador}, "name", ErrMissingField},
		{"missing email", Draft{Name: "Ana", Role: models.RoleFacilitador}, "email", ErrMissingField},
		{"missing role", Draft{Name: "Ana", Email: "a@x.com"}, "role", ErrMissingField},
		{"unknown role", Draft{Name: "Ana", Email: "a@x.com", Role: "admin"}, "role", ErrUnknownRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(juanOnly())
			m.BeginAdd()
			_, err := m.SubmitAdd(tc.draft)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, 1, m.Len())
			assert.Equal(t, Adding, m.Mode(), "form stays open on validation failure")
		})
	}
}

func TestDelete_RemovesOnlyTarget(t *testing.T) {
	m := New(models.SeedUsers())
	require.True(t, m.Delete(2))
	assert.Equal(t, []models.User{models.SeedUsers()[0], models.SeedUsers()[2]}, m.List())
}

func TestDelete_MissingIsNoop(t *testing.T) {
	m := New(models.SeedUsers())
	assert.False(t, m.Delete(42))
	assert.Equal(t, models.SeedUsers(), m.List())
}

func TestDelete_AfterAdd(t *testing.T) {
	m := New(juanOnly())
	_, err := m.SubmitAdd(Draft{Name: "Ana", Email: "ana@x.com", Role: models.RoleFacilitador})
	require.NoError(t, err)
	require.True(t, m.Delete(1))
	assert.Equal(t, []models.User{{ID: 2, Name: "Ana", Email: "ana@x.com", Role: models.RoleFacilitador}}, m.List())
}

func TestSubmitEdit_ReplacesOnlyTarget(t *testing.T) {
	seed := models.SeedUsers()
	m := New(seed)
	m.BeginEdit(seed[1])
	edited := seed[1]
	edited.Name = "María G."
	edited.Role = models.RoleFacilitador

	ok, err := m.SubmitEdit(edited)
	require.NoError(t, err)
	require.True(t, ok)

	got := m.List()
	assert.Equal(t, seed[0], got[0])
	assert.Equal(t, edited, got[1])
	assert.Equal(t, seed[2], got[2])
	assert.Equal(t, Browsing, m.Mode())
}

func TestSubmitEdit_MissingIDIsNoop(t *testing.T) {
	m := New(models.SeedUsers())
	m.BeginEdit(models.User{ID: 99, Name: "Ghost", Email: "g@x.com", Role: models.RoleInfocenter})
	ok, err := m.SubmitEdit(models.User{ID: 99, Name: "Ghost", Email: "g@x.com", Role: models.RoleInfocenter})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, models.SeedUsers(), m.List())
	assert.Equal(t, Browsing, m.Mode())
}

func TestSubmitEdit_Invalid(t *testing.T) {
	seed := models.SeedUsers()
	m := New(seed)
	m.BeginEdit(seed[0])
	bad := seed[0]
	bad.Email = ""
	_, err := m.SubmitEdit(bad)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, seed, m.List())
	assert.Equal(t, Editing, m.Mode())
}

func TestModes_MutuallyExclusive(t *testing.T) {
	seed := models.SeedUsers()
	m := New(seed)

	m.BeginEdit(seed[0])
	d, ok := m.Draft()
	require.True(t, ok)
	assert.Equal(t, seed[0].ID, d.ID)

	m.BeginAdd()
	assert.Equal(t, Adding, m.Mode())
	d, _ = m.Draft()
	assert.Equal(t, Draft{}, d, "add discards the edit draft")

	m.UpdateDraft(func(d *Draft) { d.Name = "half typed" })
	m.BeginEdit(seed[2])
	assert.Equal(t, Editing, m.Mode())
	d, _ = m.Draft()
	assert.Equal(t, DraftOf(seed[2]), d, "edit discards the add draft")

	m.BeginAdd()
	d, _ = m.Draft()
	assert.Empty(t, d.Name, "new add starts from an empty draft")
}

func TestUpdateDraft(t *testing.T) {
	seed := models.SeedUsers()
	m := New(seed)
	assert.False(t, m.UpdateDraft(func(d *Draft) { d.Name = "x" }), "no draft while browsing")

	m.BeginEdit(seed[0])
	require.True(t, m.UpdateDraft(func(d *Draft) {
		d.ID = 500
		d.Email = "juan.perez@example.com"
	}))
	d, _ := m.Draft()
	assert.Equal(t, seed[0].ID, d.ID, "edit draft keeps its identifier")
	assert.Equal(t, "juan.perez@example.com", d.Email)

	// The directory is untouched until submit.
	assert.Equal(t, seed, m.List())
	require.NoError(t, m.SubmitDraft())
	assert.Equal(t, "juan.perez@example.com", m.List()[0].Email)
}

func TestSubmitDraft_Add(t *testing.T) {
	m := New(juanOnly())
	assert.NoError(t, m.SubmitDraft(), "browsing submit is a no-op")

	m.BeginAdd()
	assert.ErrorIs(t, m.SubmitDraft(), ErrMissingField)
	m.UpdateDraft(func(d *Draft) {
		d.Name = "Ana"
		d.Email = "ana@x.com"
		d.Role = models.RoleFacilitador
	})
	require.NoError(t, m.SubmitDraft())
	assert.Equal(t, 2, m.Len())
	_, ok := m.Draft()
	assert.False(t, ok)
}

func TestCancel(t *testing.T) {
	m := New(juanOnly())
	m.BeginAdd()
	m.UpdateDraft(func(d *Draft) { d.Name = "Ana" })
	m.Cancel()
	assert.Equal(t, Browsing, m.Mode())
	assert.Equal(t, 1, m.Len())
}

func TestList_ReturnsCopy(t *testing.T) {
	m := New(juanOnly())
	l := m.List()
	l[0].Name = "changed"
	assert.Equal(t, "Juan", m.List()[0].Name)
}

func TestSubscribe_ReceivesCommittedChanges(t *testing.T) {
	m := New(juanOnly())
	var got []Change
	m.Subscribe(func(c Change) { got = append(got, c) })

	_, err := m.SubmitAdd(Draft{Name: "Ana", Email: "ana@x.com", Role: models.RoleFacilitador})
	require.NoError(t, err)
	_, _ = m.SubmitAdd(Draft{Name: "invalid"})
	_, err = m.SubmitEdit(models.User{ID: 1, Name: "Juan P", Email: "juan@x.com", Role: models.RoleDinamizador})
	require.NoError(t, err)
	_, _ = m.SubmitEdit(models.User{ID: 50, Name: "x", Email: "x@x.com", Role: models.RoleDinamizador})
	m.Delete(2)
	m.Delete(2)

	require.Len(t, got, 3)
	assert.Equal(t, OpAdded, got[0].Op)
	assert.Equal(t, int64(2), got[0].User.ID)
	assert.Equal(t, OpUpdated, got[1].Op)
	assert.Equal(t, "Juan P", got[1].User.Name)
	assert.Equal(t, OpDeleted, got[2].Op)
	assert.Equal(t, "Ana", got[2].User.Name)
}

func TestNew_DropsDuplicateIDs(t *testing.T) {
	m := New([]models.User{
		{ID: 1, Name: "Juan", Email: "juan@x.com", Role: models.RoleDinamizador},
		{ID: 1, Name: "Otro", Email: "otro@x.com", Role: models.RoleInfocenter},
		{ID: 2, Name: "Ana", Email: "ana@x.com", Role: models.RoleFacilitador},
	})
	require.Equal(t, 2, m.Len())
	assert.Equal(t, "Juan", m.List()[0].Name)
	assert.Equal(t, int64(2), m.List()[1].ID)
}

func TestSubmitAdd_LargestIDExhausted(t *testing.T) {
	m := New([]models.User{{ID: math.MaxInt64, Name: "Juan", Email: "juan@x.com", Role: models.RoleDinamizador}})
	m.BeginAdd()
	_, err := m.SubmitAdd(Draft{Name: "Ana", Email: "ana@x.com", Role: models.RoleFacilitador})
	require.ErrorIs(t, err, ErrIDsExhausted)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, Adding, m.Mode())
}
