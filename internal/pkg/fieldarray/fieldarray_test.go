package fieldarray

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Key      string
	Name     string
	Position int
}

func (e *entry) SetKey(key string) { e.Key = key }
func (e *entry) SetPosition(position int) { e.Position = position }

func names(list []entry) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.Name)
	}
	return out
}

func assertContiguous(t *testing.T, list []entry) {
	t.Helper()
	for i, e := range list {
		assert.Equal(t, i, e.Position, "position of %q should equal its index", e.Name)
	}
}

func TestAppend(t *testing.T) {
	t.Run("Assigns Key And Position", func(t *testing.T) {
		var list []entry
		list = Append(list, entry{Name: "a"})
		list = Append(list, entry{Name: "b"})

		require.Len(t, list, 2)
		assert.NotEmpty(t, list[0].Key)
		assert.NotEmpty(t, list[1].Key)
		assert.NotEqual(t, list[0].Key, list[1].Key, "keys must be unique")
		assertContiguous(t, list)
	})

	t.Run("Plain Values", func(t *testing.T) {
		tags := Append([]string{"acne"}, "")
		assert.Equal(t, []string{"acne", ""}, tags, "empty values are appended without validation")
	})
}

func TestRemove(t *testing.T) {
	t.Run("Out Of Range Fails Fast", func(t *testing.T) {
		list := []entry{{Name: "a"}}
		_, err := Remove(list, 1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = Remove(list, -1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = Remove([]entry{}, 0)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("Append Then Remove Leaves No Gaps", func(t *testing.T) {
		var list []entry
		for _, name := range []string{"a", "b", "c", "d"} {
			list = Append(list, entry{Name: name})
		}

		list, err := Remove(list, 1)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "c", "d"}, names(list))
		assertContiguous(t, list)
	})

	t.Run("Does Not Mutate Input", func(t *testing.T) {
		list := []entry{{Name: "a"}, {Name: "b"}, {Name: "c"}}
		_, err := Remove(list, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, names(list))
	})
}

func TestMove(t *testing.T) {
	build := func() []entry {
		var list []entry
		for _, name := range []string{"a", "b", "c", "d", "e"} {
			list = Append(list, entry{Name: name})
		}
		return list
	}

	t.Run("Forward And Backward", func(t *testing.T) {
		list := build()
		require.NoError(t, Move(list, 0, 3))
		assert.Equal(t, []string{"b", "c", "d", "a", "e"}, names(list))
		assertContiguous(t, list)

		require.NoError(t, Move(list, 4, 1))
		assert.Equal(t, []string{"b", "e", "c", "d", "a"}, names(list))
		assertContiguous(t, list)
	})

	t.Run("Inverse Move Restores Order", func(t *testing.T) {
		for from := 0; from < 5; from++ {
			for to := 0; to < 5; to++ {
				list := build()
				keys := make([]string, len(list))
				for i, e := range list {
					keys[i] = e.Key
				}

				require.NoError(t, Move(list, from, to))
				require.NoError(t, Move(list, to, from))

				assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names(list), "move(%d,%d) then back", from, to)
				for i, e := range list {
					assert.Equal(t, keys[i], e.Key)
				}
			}
		}
	})

	t.Run("Beyond Ends Is Rejected", func(t *testing.T) {
		list := build()
		assert.ErrorIs(t, Move(list, 0, -1), ErrIndexOutOfRange)
		assert.ErrorIs(t, Move(list, 4, 5), ErrIndexOutOfRange)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names(list), "rejected moves leave the list untouched")
	})
}

func TestInsertAndReplace(t *testing.T) {
	list := []entry{{Name: "a"}, {Name: "c"}}

	list, err := Insert(list, 1, entry{Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(list))
	assertContiguous(t, list)

	_, err = Insert(list, 4, entry{Name: "z"})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, Replace(list, 2, entry{Name: "d"}))
	assert.Equal(t, []string{"a", "b", "d"}, names(list))
	assert.Equal(t, 2, list[2].Position)
	assert.ErrorIs(t, Replace(list, 3, entry{}), ErrIndexOutOfRange)
}

func TestMoveAffordances(t *testing.T) {
	assert.False(t, CanMoveUp(0))
	assert.True(t, CanMoveUp(1))
	assert.False(t, CanMoveDown(3, 2))
	assert.True(t, CanMoveDown(3, 1))
	assert.False(t, CanMoveDown(0, 0))
}

func TestOperationsMatchSimulation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	var list []entry
	var model []string
	next := 0

	for i := 0; i < 500; i++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(model) == 0:
			name := string(rune('A'+next%26)) + string(rune('a'+next/26%26))
			next++
			list = Append(list, entry{Name: name})
			model = append(model, name)
		case op == 1:
			index := rng.Intn(len(model))
			var err error
			list, err = Remove(list, index)
			require.NoError(t, err)
			model = append(model[:index:index], model[index+1:]...)
		default:
			from, to := rng.Intn(len(model)), rng.Intn(len(model))
			require.NoError(t, Move(list, from, to))
			item := model[from]
			model = append(model[:from:from], model[from+1:]...)
			model = append(model[:to:to], append([]string{item}, model[to:]...)...)
		}

		require.Equal(t, model, names(list), "step %d diverged from simulation", i)
		assertContiguous(t, list)
	}
}
