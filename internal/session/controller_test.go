package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"matchman/internal/catalog"
	"matchman/internal/errors"
	"matchman/internal/session"
	"matchman/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const baseYAML = `
matches:
  - trigger: ":hi"
    replace: "hello"
  - trigger: ":addr"
    replace: "12 Main Street"
  - trigger: ":shout"
    replace: "HELLO WORLD"
`

func newController(t *testing.T) (*session.Controller, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "base.yml", baseYAML)
	writeFile(t, dir, "work.yml", `matches: [{trigger: ":w", replace: "work"}]`+"\n")
	return session.New(catalog.New(dir, []string{"*.yml"})), dir
}

func triggers(entries []types.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Trigger
	}
	return out
}

func TestStartupSelectsFirstFile(t *testing.T) {
	c, _ := newController(t)
	assert.Equal(t, "base.yml", c.Selected())
	assert.Equal(t, []string{":hi", ":addr", ":shout"}, triggers(c.FilteredMatches()))
}

func TestStartupWithEmptyDir(t *testing.T) {
	c := session.New(catalog.New(t.TempDir(), []string{"*.yml"}))
	assert.Empty(t, c.Selected())
	assert.Empty(t, c.FilteredMatches())
	assert.Equal(t, types.LoadNotFound, c.Status())
}

func TestSelectFile(t *testing.T) {
	c, _ := newController(t)

	require.NoError(t, c.SelectFile("work.yml"))
	assert.Equal(t, "work.yml", c.Selected())
	assert.Equal(t, []string{":w"}, triggers(c.FilteredMatches()))

	t.Run("unknown name is rejected", func(t *testing.T) {
		err := c.SelectFile("ghost.yml")
		assert.ErrorIs(t, err, errors.ErrUnknownFile)
		assert.Equal(t, "work.yml", c.Selected(), "selection must be unchanged")
	})

	t.Run("keeps the filter, drops the draft", func(t *testing.T) {
		c, _ := newController(t)
		c.SetFilter("hello")
		require.NoError(t, c.BeginEdit(0))
		require.NoError(t, c.SelectFile("work.yml"))
		assert.Equal(t, "hello", c.Filter())
		assert.False(t, c.Draft().Editing)
	})
}

func TestFilterAndEditThroughFilteredView(t *testing.T) {
	c, _ := newController(t)

	// "hello" matches :hi and :shout; filtered index 1 is raw index 2.
	c.SetFilter("hello")
	view := c.FilteredMatches()
	require.Equal(t, []string{":hi", ":shout"}, triggers(view))

	require.NoError(t, c.BeginEdit(1))
	d := c.Draft()
	assert.True(t, d.Editing)
	assert.Equal(t, ":shout", d.Trigger)

	// Clearing the filter between BeginEdit and commit must not redirect
	// the edit to whatever now sits at that position.
	c.SetFilter("")
	require.NoError(t, c.CommitDraft(":quiet", "hello world"))
	assert.Equal(t, []string{":hi", ":addr", ":quiet"}, triggers(c.FilteredMatches()))
	assert.False(t, c.Draft().Editing, "draft should clear on acceptance")
}

func TestBeginEditOutOfBounds(t *testing.T) {
	c, _ := newController(t)
	err := c.BeginEdit(99)
	assert.True(t, errors.IsStaleTarget(err))
	assert.False(t, c.Draft().Editing)
}

func TestCommitDraftAppend(t *testing.T) {
	c, _ := newController(t)
	require.NoError(t, c.CommitDraft(":bye", "goodbye"))
	assert.Equal(t, []string{":hi", ":addr", ":shout", ":bye"}, triggers(c.FilteredMatches()))
}

func TestCommitDraftRejectionKeepsDraft(t *testing.T) {
	c, _ := newController(t)
	err := c.CommitDraft(":bye", "")
	assert.True(t, errors.IsInvalidInput(err))
	assert.Equal(t, ":bye", c.Draft().Trigger, "rejected draft must be kept for correction")
	assert.Len(t, c.FilteredMatches(), 3)
}

func TestCancelEdit(t *testing.T) {
	c, _ := newController(t)
	require.NoError(t, c.BeginEdit(0))
	c.CancelEdit()
	d := c.Draft()
	assert.False(t, d.Editing)
	assert.Empty(t, d.Trigger)
	assert.Len(t, c.FilteredMatches(), 3, "cancel must not touch the collection")
}

func TestDeleteAt(t *testing.T) {
	t.Run("through filtered view", func(t *testing.T) {
		c, _ := newController(t)
		c.SetFilter("hello")
		require.NoError(t, c.DeleteAt(1)) // :shout, raw index 2
		c.SetFilter("")
		assert.Equal(t, []string{":hi", ":addr"}, triggers(c.FilteredMatches()))
	})

	t.Run("out of bounds is a no-op", func(t *testing.T) {
		c, _ := newController(t)
		require.NoError(t, c.DeleteAt(17))
		assert.Len(t, c.FilteredMatches(), 3)
	})

	t.Run("clears an edit target pointing at the removed match", func(t *testing.T) {
		c, _ := newController(t)
		require.NoError(t, c.BeginEdit(1))
		require.NoError(t, c.DeleteAt(1))
		assert.False(t, c.Draft().Editing)

		// A commit now appends instead of resurrecting the deleted entry.
		require.NoError(t, c.CommitDraft(":new", "fresh"))
		assert.Equal(t, []string{":hi", ":shout", ":new"}, triggers(c.FilteredMatches()))
	})
}

func TestRefresh(t *testing.T) {
	t.Run("clears session state", func(t *testing.T) {
		c, _ := newController(t)
		c.SetFilter("hello")
		require.NoError(t, c.BeginEdit(0))
		c.Refresh()
		assert.Empty(t, c.Filter())
		assert.False(t, c.Draft().Editing)
	})

	t.Run("falls back when the selected file disappears", func(t *testing.T) {
		c, dir := newController(t)
		require.NoError(t, c.SelectFile("work.yml"))
		require.NoError(t, os.Remove(filepath.Join(dir, "work.yml")))
		c.Refresh()
		assert.Equal(t, "base.yml", c.Selected())
		assert.Len(t, c.FilteredMatches(), 3)
	})

	t.Run("empty catalog selects nothing", func(t *testing.T) {
		c, dir := newController(t)
		require.NoError(t, os.Remove(filepath.Join(dir, "base.yml")))
		require.NoError(t, os.Remove(filepath.Join(dir, "work.yml")))
		c.Refresh()
		assert.Empty(t, c.Selected())
		assert.Empty(t, c.FilteredMatches())
	})

	t.Run("picks up files created outside the session", func(t *testing.T) {
		c, dir := newController(t)
		writeFile(t, dir, "aaa.yml", "matches: []\n")
		c.Refresh()
		assert.Contains(t, c.Files(), "aaa.yml")
	})
}

func TestDuplicateTriggerWarning(t *testing.T) {
	c, _ := newController(t)
	assert.True(t, c.HasDuplicateTrigger(":hi"))
	assert.False(t, c.HasDuplicateTrigger(":nope"))

	// While editing :hi itself, its own trigger is not a duplicate.
	require.NoError(t, c.BeginEdit(0))
	assert.False(t, c.HasDuplicateTrigger(":hi"))
	c.CancelEdit()
}

func TestParseFailureSurfacesAndTruncateIsExplicit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yml", "matches: [unclosed\n")
	c := session.New(catalog.New(dir, []string{"*.yml"}))

	assert.Equal(t, types.LoadParseFailed, c.Status())

	err := c.CommitDraft(":hi", "hello")
	assert.True(t, errors.IsUnparsedContent(err))

	require.NoError(t, c.ConfirmTruncate())
	require.NoError(t, c.CommitDraft(":hi", "hello"))
	assert.Equal(t, []string{":hi"}, triggers(c.FilteredMatches()))
}
