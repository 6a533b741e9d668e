package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.exercises/pkg/challenge"
)

func def(
	id string, diff challenge.Difficulty,
) challenge.Definition {
	return challenge.Definition{
		ID:          challenge.ID(id),
		Title:       "Title " + id,
		Difficulty:  diff,
		Description: "desc",
		Files: map[string]string{
			"main.py": "starter\n",
		},
		TestCommand: "python -m pytest",
		Solution: map[string]string{
			"main.py": "solved\n",
		},
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(
		def("alpha", challenge.Medium),
		def("bravo", challenge.Hard),
		def("charlie", challenge.Expert),
	)
	require.NoError(t, err)
	return c
}

func TestCatalog_List_PreservesOrder(t *testing.T) {
	c := testCatalog(t)
	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, challenge.ID("alpha"), list[0].ID)
	assert.Equal(t, challenge.ID("bravo"), list[1].ID)
	assert.Equal(t, challenge.ID("charlie"), list[2].ID)
}

func TestCatalog_Get_ByIndex(t *testing.T) {
	c := testCatalog(t)

	got, err := c.Get("2")
	require.NoError(t, err)
	assert.Equal(t, challenge.ID("bravo"), got.ID)

	got, err = c.Get(" 1 ")
	require.NoError(t, err)
	assert.Equal(t, challenge.ID("alpha"), got.ID)
}

func TestCatalog_Get_ByID(t *testing.T) {
	c := testCatalog(t)
	got, err := c.Get("charlie")
	require.NoError(t, err)
	assert.Equal(t, challenge.ID("charlie"), got.ID)
}

func TestCatalog_Get_Idempotent(t *testing.T) {
	c := testCatalog(t)
	first, err := c.Get("bravo")
	require.NoError(t, err)
	second, err := c.Get("bravo")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestCatalog_Get_NotFound(t *testing.T) {
	c := testCatalog(t)

	for _, sel := range []string{"0", "4", "-1", "delta", ""} {
		_, err := c.Get(sel)
		require.Error(t, err, sel)
		var nf *NotFoundError
		assert.True(t, errors.As(err, &nf), sel)
	}
}

func TestCatalog_ByDifficulty(t *testing.T) {
	c := testCatalog(t)

	medium := c.ByDifficulty(challenge.Medium)
	require.Len(t, medium, 1)
	assert.Equal(t, challenge.ID("alpha"), medium[0].ID)

	assert.Empty(t, c.ByDifficulty(challenge.Difficulty("Easy")))
}

func TestCatalog_New_DuplicateID(t *testing.T) {
	_, err := New(
		def("alpha", challenge.Medium),
		def("alpha", challenge.Hard),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate challenge id")
}

func TestCatalog_New_InvalidDefinition(t *testing.T) {
	bad := def("alpha", challenge.Medium)
	bad.TestCommand = ""
	_, err := New(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test command")
}
