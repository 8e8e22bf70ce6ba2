package table_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/flatfile-library-go/codec"
	"github.com/AntonStoeckl/flatfile-library-go/core"
	"github.com/AntonStoeckl/flatfile-library-go/table"
)

func Test_Add_UpToCapacity_ThenCapacityExceeded(t *testing.T) {
	// arrange
	users := table.New[core.User](3)

	// act
	for _, id := range []string{"u1", "u2", "u3"} {
		require.NoError(t, users.Add(core.BuildUser(id, "name", "contact")))
	}
	err := users.Add(core.BuildUser("u4", "name", "contact"))

	// assert
	assert.ErrorIs(t, err, table.ErrCapacityExceeded)
	assert.Equal(t, 3, users.Len())
	assert.True(t, users.Full())
}

func Test_Add_Unbounded(t *testing.T) {
	books := table.New[core.Book](table.Unbounded)

	for i := 0; i < 1000; i++ {
		require.NoError(t, books.Add(core.BuildBook("T", "A", "I")))
	}

	assert.Equal(t, 1000, books.Len())
	assert.False(t, books.Full())
	assert.Equal(t, table.Unbounded, table.New[core.Book](-5).Cap())
}

func Test_FindFirst_ReturnsTheEarliestDuplicate(t *testing.T) {
	// arrange
	books := table.New[core.Book](table.Unbounded)
	require.NoError(t, books.Add(core.BuildBook("First", "A", "dup")))
	require.NoError(t, books.Add(core.BuildBook("Second", "A", "dup")))

	// act
	i, found := books.FindFirst(func(b core.Book) bool { return b.ISBN == "dup" })

	// assert
	assert.True(t, found)
	assert.Equal(t, 0, i)
	assert.Equal(t, "First", books.At(i).Title)
}

func Test_FindFirst_NotFound(t *testing.T) {
	books := table.New[core.Book](table.Unbounded)

	i, found := books.FindFirst(func(core.Book) bool { return true })

	assert.False(t, found)
	assert.Equal(t, -1, i)
}

func Test_FindAll_KeepsTableOrder(t *testing.T) {
	books := table.New[core.Book](table.Unbounded)
	require.NoError(t, books.Add(core.BuildBook("B", "Herbert", "1")))
	require.NoError(t, books.Add(core.BuildBook("C", "Other", "2")))
	require.NoError(t, books.Add(core.BuildBook("A", "Herbert", "3")))

	found := books.FindAll(func(b core.Book) bool { return b.Matches("Herbert") })

	require.Len(t, found, 2)
	assert.Equal(t, "B", found[0].Title)
	assert.Equal(t, "A", found[1].Title)
}

func Test_All_ReturnsACopy(t *testing.T) {
	books := table.New[core.Book](table.Unbounded)
	require.NoError(t, books.Add(core.BuildBook("T", "A", "I")))

	all := books.All()
	all[0].Title = "changed"

	assert.Equal(t, "T", books.At(0).Title)
}

func Test_SortStable_KeepsOrderOfEqualKeys(t *testing.T) {
	// arrange
	books := table.New[core.Book](table.Unbounded)
	for _, b := range []core.Book{
		core.BuildBook("Zed", "a", "1"),
		core.BuildBook("Ann", "a", "2"),
		core.BuildBook("Mid", "a", "3"),
		core.BuildBook("Ann", "a", "4"),
	} {
		require.NoError(t, books.Add(b))
	}

	// act
	books.SortStable(func(a, b core.Book) int { return strings.Compare(a.Title, b.Title) })

	// assert
	var isbns []string
	for _, b := range books.All() {
		isbns = append(isbns, b.ISBN)
	}
	assert.Equal(t, []string{"2", "4", "3", "1"}, isbns)
}

func Test_Reload_SkipsMalformedLines(t *testing.T) {
	// arrange
	books := table.New[core.Book](table.Unbounded)
	require.NoError(t, books.Add(core.BuildBook("stale", "stale", "stale")))
	lines := []string{"Dune|Frank Herbert|978-0441013593|1", "broken|line"}

	// act
	result := books.Reload(lines, codec.DecodeBook)

	// assert
	assert.Equal(t, 1, books.Len())
	assert.Equal(t, "Dune", books.At(0).Title)
	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, 1, result.Skipped)
	assert.ErrorIs(t, result.FirstErr, codec.ErrMalformedLine)
	assert.False(t, result.Truncated)
}

func Test_Reload_StopsSilentlyAtCapacity(t *testing.T) {
	users := table.New[core.User](2)
	lines := []string{"u1|a|c", "u2|b|c", "u3|c|c"}

	result := users.Reload(lines, codec.DecodeUser)

	assert.Equal(t, 2, users.Len())
	assert.True(t, result.Truncated)
	assert.NoError(t, result.FirstErr)
}

func Test_Reload_EmptyInputEmptiesTheTable(t *testing.T) {
	users := table.New[core.User](table.Unbounded)
	require.NoError(t, users.Add(core.BuildUser("u1", "a", "c")))

	result := users.Reload(nil, codec.DecodeUser)

	assert.Equal(t, 0, users.Len())
	assert.Equal(t, 0, result.Loaded)
}
