package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	d := NewDocument()
	d.Tasks[1] = models.Task{ID: 1, Name: "write docs", Completed: false}
	d.Tasks[42] = models.Task{ID: 42, Name: "ship", Completed: true}
	d.Services[7] = models.Service{ID: 7, Name: "haircut", Price: 25.5, Duration: 30}
	d.Users[3] = models.User{ID: 3, UserName: "alice", Password: "$2a$04$hash"}
	return d
}

func TestEncode_UsesStringKeyedCollections(t *testing.T) {
	b, err := Encode(sampleDocument())
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, `"tasks":{"1":{"id":1,"name":"write docs","completed":false}`)
	assert.Contains(t, s, `"services":{"7":{"id":7,"name":"haircut","price":25.5,"duration":30}}`)
	assert.Contains(t, s, `"users":{"3":{"id":3,"username":"alice","password":"$2a$04$hash"}}`)
}

func TestEncode_NilDocumentIsEmpty(t *testing.T) {
	b, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":{},"services":{},"users":{}}`, string(b))
}

func TestDecode(t *testing.T) {
	t.Run("missing collections become empty", func(t *testing.T) {
		d, err := Decode([]byte(`{"tasks":{"5":{"id":5,"name":"x","completed":true}}}`))
		require.NoError(t, err)
		assert.Len(t, d.Tasks, 1)
		assert.NotNil(t, d.Services)
		assert.NotNil(t, d.Users)
	})

	t.Run("legacy document from the task server", func(t *testing.T) {
		d, err := Decode([]byte(`{"tasks":{},"users":{"1":{"id":1,"username":"bob","password":"$2b$12$x"}}}`))
		require.NoError(t, err)
		assert.Equal(t, "bob", d.Users[1].UserName)
	})

	t.Run("non-numeric key is malformed", func(t *testing.T) {
		_, err := Decode([]byte(`{"tasks":{"abc":{"id":1}}}`))
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Decode([]byte(`{not json`))
		require.Error(t, err)
	})
}

func TestFileSnapshotter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "database.json")
	fs := NewFileSnapshotter(path)
	assert.Equal(t, path, fs.Path())

	want := sampleDocument()
	require.NoError(t, fs.Save(context.Background(), want))

	got, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileSnapshotter_SaveReplacesPreviousContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	fs := NewFileSnapshotter(path)

	require.NoError(t, fs.Save(context.Background(), sampleDocument()))
	require.NoError(t, fs.Save(context.Background(), NewDocument()))

	got, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)
	assert.Empty(t, got.Users)
}

func TestFileSnapshotter_LoadMissing(t *testing.T) {
	fs := NewFileSnapshotter(filepath.Join(t.TempDir(), "nope.json"))
	_, err := fs.Load(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFileSnapshotter_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks":`), 0o600))

	_, err := NewFileSnapshotter(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestFileSnapshotter_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := NewFileSnapshotter(filepath.Join(blocker, "database.json")).Save(context.Background(), NewDocument())
	require.Error(t, err)
}

func TestNew_SelectsBackend(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{SnapshotBackend: BackendFile, SnapshotPath: "x.json"}
		s, err := New(context.Background(), cfg)
		require.NoError(t, err)
		fs, ok := s.(*FileSnapshotter)
		require.True(t, ok)
		assert.Equal(t, "x.json", fs.Path())
	})

	t.Run("empty defaults to file", func(t *testing.T) {
		s, err := New(context.Background(), &config.Config{SnapshotPath: "y.json"})
		require.NoError(t, err)
		assert.IsType(t, &FileSnapshotter{}, s)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(context.Background(), &config.Config{SnapshotBackend: "tape"})
		require.Error(t, err)
	})
}
