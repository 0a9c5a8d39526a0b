package fieldedit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/frontdesk/internal/reference"
)

type commitRecorder struct {
	calls []string
	err   error
}

func (r *commitRecorder) commit(name, value string) error {
	r.calls = append(r.calls, name+"="+value)
	return r.err
}

func TestFieldBeginAndCommit(t *testing.T) {
	rec := &commitRecorder{}
	f := NewField("fullName", KindText, "Jane Doe", WithCommit(rec.commit))

	f.Input("ignored")
	assert.Equal(t, "Jane Doe", f.Draft(), "input while viewing is ignored")

	f.Begin()
	assert.Equal(t, Editing, f.State())
	f.Input("Jane Smith")
	require.NoError(t, f.Key(Key{Name: KeyEnter}))

	assert.Equal(t, Viewing, f.State())
	assert.Equal(t, "Jane Smith", f.Original())
	assert.Equal(t, []string{"fullName=Jane Smith"}, rec.calls)
}

func TestFieldUnchangedCommitSkipsCallback(t *testing.T) {
	rec := &commitRecorder{}
	f := NewField("phone", KindText, "+66 1", WithCommit(rec.commit))

	f.Begin()
	require.NoError(t, f.Blur())
	assert.Equal(t, Viewing, f.State())
	assert.Empty(t, rec.calls)
}

func TestFieldEscapeCancels(t *testing.T) {
	rec := &commitRecorder{}
	f := NewField("email", KindEmail, "a@example.com", WithCommit(rec.commit))

	f.Begin()
	f.Input("b@example.com")
	require.NoError(t, f.Key(Key{Name: KeyEscape}))

	assert.Equal(t, Viewing, f.State())
	assert.Equal(t, "a@example.com", f.Draft())
	assert.Empty(t, rec.calls)
}

func TestFieldEnterInViewingBegins(t *testing.T) {
	f := NewField("remarks", KindText, "x")
	require.NoError(t, f.Key(Key{Name: KeyEnter}))
	assert.Equal(t, Editing, f.State())
}

func TestFieldTextareaShiftEnter(t *testing.T) {
	rec := &commitRecorder{}
	f := NewField("remarks", KindTextarea, "line one", WithCommit(rec.commit))

	f.Begin()
	require.NoError(t, f.Key(Key{Name: KeyEnter, Shift: true}))
	assert.Equal(t, Editing, f.State())
	assert.Equal(t, "line one\n", f.Draft())

	f.Input(f.Draft() + "line two")
	require.NoError(t, f.Key(Key{Name: KeyEnter}))
	assert.Equal(t, []string{"remarks=line one\nline two"}, rec.calls)

	t.Run("shift enter commits outside textarea", func(t *testing.T) {
		g := NewField("name", KindText, "a", WithCommit(rec.commit))
		g.Begin()
		g.Input("b")
		require.NoError(t, g.Key(Key{Name: KeyEnter, Shift: true}))
		assert.Equal(t, Viewing, g.State())
	})
}

func TestFieldCommitFailureKeepsDraft(t *testing.T) {
	rec := &commitRecorder{err: errors.New("store unavailable")}
	f := NewField("occupation", KindText, "Engineer", WithCommit(rec.commit))

	f.Begin()
	f.Input("Teacher")
	err := f.Commit()
	require.Error(t, err)

	assert.Equal(t, Editing, f.State())
	assert.Equal(t, "Teacher", f.Draft())
	assert.Equal(t, "Engineer", f.Original())
	assert.ErrorIs(t, f.Err(), err)

	rec.err = nil
	require.NoError(t, f.Commit())
	assert.NoError(t, f.Err())
	assert.Equal(t, "Teacher", f.Original())
}

func TestFieldNumberCommit(t *testing.T) {
	rec := &commitRecorder{}
	f := NewField("price", KindNumber, "1000", WithCommit(rec.commit))

	f.Begin()
	f.Input(" 1250.50 ")
	require.NoError(t, f.Commit())
	assert.Equal(t, []string{"price=1250.5"}, rec.calls)

	f.Begin()
	f.Input("abc")
	err := f.Commit()
	require.ErrorIs(t, err, ErrInvalidNumber)
	assert.Equal(t, Editing, f.State())
	assert.Len(t, rec.calls, 1)

	f.Input("")
	require.NoError(t, f.Commit())
	assert.Equal(t, "price=0", rec.calls[1])
}

func TestFieldSelectOptions(t *testing.T) {
	f := NewField("status", KindSelect, "Unknown", WithOptions("Available", "Occupied"))

	opts := f.Options()
	require.Len(t, opts, 3)
	assert.Equal(t, Option{Value: "Unknown", Label: "Unknown", Disabled: true}, opts[0])

	f.Reset("Occupied")
	assert.Len(t, f.Options(), 2)

	empty := NewField("status", KindSelect, "")
	assert.Empty(t, empty.Options(), "no synthetic option without choices")

	blank := NewField("status", KindSelect, "", WithOptions("Available"))
	assert.Equal(t, "Select...", blank.Options()[0].Label)
}

func TestFieldSearchableSelect(t *testing.T) {
	groups := []reference.OptionGroup{
		{Label: "Airports", Options: []string{"Suvarnabhumi Airport", "Don Mueang Airport"}},
		{Label: "Land", Options: []string{"Nong Khai"}},
	}
	rec := &commitRecorder{}
	f := NewField("portOfEntry", KindSearchableSelect, "", WithGroups(groups), WithCommit(rec.commit))

	f.Begin()
	f.Filter("AIRPORT")
	got := f.Groups()
	require.Len(t, got, 1)
	assert.Equal(t, "Airports", got[0].Label)
	assert.Len(t, got[0].Options, 2)

	f.Filter("")
	assert.Len(t, f.Groups(), 2)

	require.NoError(t, f.Choose("Nong Khai"))
	assert.Equal(t, Viewing, f.State())
	assert.Equal(t, []string{"portOfEntry=Nong Khai"}, rec.calls)

	t.Run("outside click commits typed value", func(t *testing.T) {
		f.Begin()
		f.Input("Sadao")
		require.NoError(t, f.Blur())
		assert.Equal(t, "Sadao", f.Original())
	})
}

func TestFieldDisplay(t *testing.T) {
	assert.Equal(t, "15/03/2024", NewField("dob", KindDate, "2024-03-15").Display())
	assert.Equal(t, EmptyDisplay, NewField("dob", KindDate, "").Display())
	assert.Equal(t, EmptyDisplay, NewField("name", KindText, "").Display())
	assert.Equal(t, "-", EmptyDisplay)

	upper := NewField("code", KindText, "rm101", WithDisplay(func(v string) string { return "Room " + v }))
	assert.Equal(t, "Room rm101", upper.Display())
}

func TestFieldResetWhileEditing(t *testing.T) {
	f := NewField("name", KindText, "a")
	f.Begin()
	f.Input("draft")
	f.Reset("b")

	assert.Equal(t, "draft", f.Draft())
	assert.Equal(t, "b", f.Original())
}

func TestFormKeepsFieldsIndependent(t *testing.T) {
	rec := &commitRecorder{}
	form := NewForm(rec.commit)
	name := form.Add("fullName", KindText, "Jane")
	phone := form.Add("phone", KindText, "111")

	name.Begin()
	phone.Begin()
	name.Input("Janet")
	phone.Input("222")
	assert.Equal(t, []string{"fullName", "phone"}, form.Editing())

	phone.Cancel()
	require.NoError(t, name.Commit())
	assert.Equal(t, []string{"fullName=Janet"}, rec.calls)
	assert.Empty(t, form.Editing())

	form.Reset(map[string]string{"phone": "333", "missing": "x"})
	got, ok := form.Field("phone")
	require.True(t, ok)
	assert.Equal(t, "333", got.Draft())
	assert.Len(t, form.Fields(), 2)
}

func TestFieldNumberCommitComparesValues(t *testing.T) {
	rec := &commitRecorder{}
	f := NewField("adults", KindNumber, "5", WithCommit(rec.commit))

	f.Begin()
	f.Input("5.0")
	require.NoError(t, f.Commit())
	assert.Empty(t, rec.calls, "an equal number is not a change")
	assert.Equal(t, Viewing, f.State())
	assert.Equal(t, "5", f.Original())
	assert.Equal(t, "5", f.Draft())

	f.Begin()
	f.Input("6")
	require.NoError(t, f.Commit())
	assert.Equal(t, []string{"adults=6"}, rec.calls)
}

func TestFieldGroupsFoldCase(t *testing.T) {
	groups := []reference.OptionGroup{
		{Label: "Land", Options: []string{"Grenzstraße", "Sadao"}},
	}
	f := NewField("portOfEntry", KindSearchableSelect, "", WithGroups(groups))

	f.Begin()
	f.Filter("GRENZSTRASSE")
	got := f.Groups()
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Grenzstraße"}, got[0].Options)
}
