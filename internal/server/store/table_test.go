package store

import (
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	t.Run("new table is empty", func(t *testing.T) {
		tbl := NewTable[models.Task]()
		assert.Equal(t, 0, tbl.Len())
		assert.Empty(t, tbl.GetAll())

		_, ok := tbl.Get(1)
		assert.False(t, ok)
	})

	t.Run("insert then get returns the value unchanged", func(t *testing.T) {
		tbl := NewTable[models.Task]()
		for _, id := range []uint64{0, 1, 42, ^uint64(0)} {
			want := models.Task{ID: id, Name: "task", Completed: id%2 == 0}
			tbl.Insert(want)

			got, ok := tbl.Get(id)
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
	})

	t.Run("insert overwrites", func(t *testing.T) {
		tbl := NewTable[models.Service]()
		tbl.Insert(models.Service{ID: 1, Name: "old", Price: 1, Duration: 10})
		tbl.Insert(models.Service{ID: 1, Name: "new", Price: 2, Duration: 20})

		got, _ := tbl.Get(1)
		assert.Equal(t, "new", got.Name)
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("update replaces existing", func(t *testing.T) {
		tbl := NewTable[models.Task]()
		tbl.Insert(models.Task{ID: 1, Name: "a"})

		existed := tbl.Update(models.Task{ID: 1, Name: "b", Completed: true})
		assert.True(t, existed)

		got, _ := tbl.Get(1)
		assert.Equal(t, models.Task{ID: 1, Name: "b", Completed: true}, got)
	})

	t.Run("update of absent id creates it", func(t *testing.T) {
		tbl := NewTable[models.Task]()
		existed := tbl.Update(models.Task{ID: 9, Name: "fresh"})
		assert.False(t, existed)

		got, ok := tbl.Get(9)
		require.True(t, ok)
		assert.Equal(t, "fresh", got.Name)
	})

	t.Run("delete removes and absent delete is a no-op", func(t *testing.T) {
		tbl := NewTable[models.Task]()
		tbl.Insert(models.Task{ID: 1})

		assert.True(t, tbl.Delete(1))
		_, ok := tbl.Get(1)
		assert.False(t, ok)

		assert.False(t, tbl.Delete(1))
		assert.False(t, tbl.Delete(12345))
		assert.Equal(t, 0, tbl.Len())
	})

	t.Run("get all cardinality equals live records", func(t *testing.T) {
		tbl := NewTable[models.Task]()
		for i := uint64(1); i <= 10; i++ {
			tbl.Insert(models.Task{ID: i})
		}
		tbl.Delete(3)
		tbl.Delete(7)
		tbl.Delete(100)

		all := tbl.GetAll()
		assert.Len(t, all, 8)
		assert.Equal(t, tbl.Len(), len(all))
	})

	t.Run("get all returns a copy", func(t *testing.T) {
		tbl := NewTable[models.Task]()
		tbl.Insert(models.Task{ID: 1, Name: "orig"})

		all := tbl.GetAll()
		all[0].Name = "mutated"

		got, _ := tbl.Get(1)
		assert.Equal(t, "orig", got.Name)
	})

	t.Run("export is detached from the table", func(t *testing.T) {
		tbl := NewTable[models.Task]()
		tbl.Insert(models.Task{ID: 1})

		rows := tbl.export()
		delete(rows, 1)
		assert.True(t, tbl.Has(1))
	})
}
