package runcounter

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCounter(t *testing.T) *Counter {
	t.Helper()

	return New(filepath.Join(t.TempDir(), "logs"))
}

func TestRead_MissingStore(t *testing.T) {
	counter := newTestCounter(t)

	assert.Equal(t, 0, counter.Read())
	assert.NoFileExists(t, counter.Path(), "read must not create the file")
}

func TestRead_CorruptContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: 0},
		{name: "whitespace only", content: "  \n", want: 0},
		{name: "not a number", content: "seven", want: 0},
		{name: "negative", content: "-4", want: 0},
		{name: "trailing newline", content: "12\n", want: 12},
		{name: "surrounding spaces", content: "  3  ", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := newTestCounter(t)
			require.NoError(t, os.MkdirAll(counter.Dir(), 0o755))
			require.NoError(t, os.WriteFile(counter.Path(), []byte(tt.content), 0o600))

			assert.Equal(t, tt.want, counter.Read())
		})
	}
}

func TestWriteThenRead(t *testing.T) {
	for _, run := range []int{0, 1, 5, 1 << 20, math.MaxInt32, math.MaxInt} {
		counter := newTestCounter(t)

		require.NoError(t, counter.Write(run))
		assert.Equal(t, run, counter.Read())
	}
}

func TestWrite_ReplacesContent(t *testing.T) {
	counter := newTestCounter(t)

	require.NoError(t, counter.Write(12345))
	require.NoError(t, counter.Write(7))

	data, err := os.ReadFile(counter.Path())
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))
}

func TestWrite_RejectsNegative(t *testing.T) {
	counter := newTestCounter(t)

	err := counter.Write(-1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestWrite_FailurePropagates(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "logs")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o600))

	counter := New(blocker)

	require.Error(t, counter.Write(1))

	_, err := counter.Increment()
	require.Error(t, err)

	_, err = counter.Setup()
	require.Error(t, err)
}

func TestIncrement(t *testing.T) {
	counter := newTestCounter(t)
	require.NoError(t, counter.Write(5))

	for k := 1; k <= 4; k++ {
		got, err := counter.Increment()
		require.NoError(t, err)
		assert.Equal(t, 5+k, got)
		assert.Equal(t, got, counter.Read(), "return value must equal the stored value")
	}
}

func TestIncrement_FromMissingStore(t *testing.T) {
	counter := newTestCounter(t)

	got, err := counter.Increment()
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestSetup(t *testing.T) {
	counter := newTestCounter(t)

	run, err := counter.Setup()
	require.NoError(t, err)
	assert.Equal(t, 0, run)
	assert.DirExists(t, counter.Dir())
	assert.FileExists(t, counter.Path())

	require.NoError(t, counter.Write(9))

	run, err = counter.Setup()
	require.NoError(t, err)
	assert.Equal(t, 9, run, "setup must not reset or increment an existing counter")
}

func TestSnapshot_IsStale(t *testing.T) {
	counter := newTestCounter(t)
	require.NoError(t, counter.Write(5))

	snapshot, err := counter.Snapshot()
	require.NoError(t, err)

	_, err = counter.Increment()
	require.NoError(t, err)

	assert.Equal(t, 5, snapshot.Value)
	assert.Equal(t, 6, counter.Read())
}

func TestSnapshotLabel(t *testing.T) {
	assert.Equal(t, "Run 0", Fixed(0).Label())
	assert.Equal(t, "Run 42", Fixed(42).Label())
	assert.Empty(t, Untracked().Label())
}

func TestNew_DefaultDir(t *testing.T) {
	counter := New("")

	assert.Equal(t, "logs", counter.Dir())
	assert.Equal(t, filepath.Join("logs", "run.txt"), counter.Path())
}
