package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/beezly/specdocs/internal/discovery"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "specdocs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func discoverSpecs(t *testing.T, names ...string) discovery.Collection {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
	specs, err := discovery.Discover(dir)
	require.NoError(t, err)
	return specs
}

func TestRecordVersions_reportsOnlyNewVersions(t *testing.T) {
	c := openTestCatalog(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh, err := c.RecordVersions("network", discoverSpecs(t, "1.0.0.json", "2.0.0.json"), now)
	require.NoError(t, err)
	require.Equal(t, []string{"2.0.0", "1.0.0"}, fresh)

	// Re-recording the same versions reports nothing new.
	fresh, err = c.RecordVersions("network", discoverSpecs(t, "1.0.0.json", "2.0.0.json"), now.Add(time.Hour))
	require.NoError(t, err)
	require.Empty(t, fresh)

	// A later scan with one extra file reports only the extra version.
	fresh, err = c.RecordVersions("network", discoverSpecs(t, "1.0.0.json", "2.0.0.json", "2.1.0.json"), now.Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, []string{"2.1.0"}, fresh)
}

func TestRecordVersions_familiesAreIndependent(t *testing.T) {
	c := openTestCatalog(t)
	now := time.Now()

	_, err := c.RecordVersions("network", discoverSpecs(t, "1.0.0.json"), now)
	require.NoError(t, err)

	fresh, err := c.RecordVersions("protect", discoverSpecs(t, "1.0.0.json"), now)
	require.NoError(t, err)
	require.Equal(t, []string{"1.0.0"}, fresh)
}

func TestFirstSeen(t *testing.T) {
	c := openTestCatalog(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := c.RecordVersions("network", discoverSpecs(t, "1.0.0.json"), now)
	require.NoError(t, err)

	seen, ok, err := c.FirstSeen("network", "1.0.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2026-03-01T12:00:00Z", seen)

	// First-seen sticks even when re-recorded later.
	_, err = c.RecordVersions("network", discoverSpecs(t, "1.0.0.json"), now.AddDate(0, 0, 7))
	require.NoError(t, err)
	seen, ok, err = c.FirstSeen("network", "1.0.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2026-03-01T12:00:00Z", seen)

	_, ok, err = c.FirstSeen("network", "9.9.9")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKnownVersions(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.RecordVersions("network", discoverSpecs(t, "1.0.0.json"), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = c.RecordVersions("network", discoverSpecs(t, "1.0.0.json", "2.0.0.json"), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	known, err := c.KnownVersions("network")
	require.NoError(t, err)
	require.Len(t, known, 2)
	require.Equal(t, "2.0.0", known[0].Version)
	require.Equal(t, "2.0.0.json", known[0].Filename)
	require.Equal(t, "1.0.0", known[1].Version)

	known, err = c.KnownVersions("protect")
	require.NoError(t, err)
	require.Empty(t, known)
}

func TestRecordAndListRuns(t *testing.T) {
	c := openTestCatalog(t)

	require.NoError(t, c.RecordRun(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), 2, 5, 5))
	require.NoError(t, c.RecordRun(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), 2, 6, 1))

	runs, err := c.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "2026-03-02T10:00:00Z", runs[0].StartedAt)
	require.Equal(t, 6, runs[0].Specs)
	require.Equal(t, 1, runs[0].NewSpecs)
	require.Equal(t, 2, runs[1].Families)

	runs, err = c.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestOpen_reopenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specdocs.db")

	c, err := Open(path)
	require.NoError(t, err)
	_, err = c.RecordVersions("network", discoverSpecs(t, "1.0.0.json"), time.Now())
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = Open(path)
	require.NoError(t, err)
	defer c.Close() //nolint:errcheck

	known, err := c.KnownVersions("network")
	require.NoError(t, err)
	require.Len(t, known, 1)
}
