package datafile

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Plain(t *testing.T) {
	p := filepath.Join(t.TempDir(), "w.dat")
	require.NoError(t, os.WriteFile(p, []byte("1 -5.0 0.2\n"), 0o644))

	rc, err := Open(p)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "1 -5.0 0.2\n", string(b))
}

func TestOpen_Empty(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.dat")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	rc, err := Open(p)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestOpen_GzipBySignature(t *testing.T) {
	// no .gz suffix: detection uses the magic bytes
	p := filepath.Join(t.TempDir(), "System.unfold_orbup")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := pgzip.NewWriter(f)
	_, err = zw.Write([]byte("1 0.0 1.0\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	rc, err := Open(p)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "1 0.0 1.0\n", string(b))
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCreate_TruncatesAndReleasesLock(t *testing.T) {
	p := filepath.Join(t.TempDir(), "output.dat")
	require.NoError(t, os.WriteFile(p, []byte("old contents that are longer\n"), 0o644))

	out, err := Create(p, time.Second)
	require.NoError(t, err)
	assert.Equal(t, p, out.Path())
	_, err = out.Write([]byte("1 -5.0 0.500000\n"))
	require.NoError(t, err)
	require.NoError(t, out.Close())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "1 -5.0 0.500000\n", string(b))

	_, err = os.Stat(p + ".lock")
	assert.True(t, os.IsNotExist(err), "lock file should be removed")
}

func TestCreate_GzipOutput(t *testing.T) {
	p := filepath.Join(t.TempDir(), "output.dat.gz")
	out, err := Create(p, time.Second)
	require.NoError(t, err)
	_, err = out.Write([]byte("1 0 0.100000\n"))
	require.NoError(t, err)
	require.NoError(t, out.Close())

	rc, err := Open(p)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "1 0 0.100000\n", string(b))
}

func TestCreate_LockHeldElsewhere(t *testing.T) {
	p := filepath.Join(t.TempDir(), "output.dat")
	other := flock.New(p + ".lock")
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer other.Unlock()

	_, err = Create(p, 150*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another run")

	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err), "output must not be created while locked")
}
