// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package lostfiles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-content/internal/refindex"
	"github.com/olegiv/ocms-content/internal/store"
	"github.com/olegiv/ocms-content/internal/testutil"
)

// staticRefs treats the listed paths as hard-referenced.
type staticRefs map[string]bool

func (s staticRefs) HasHardFileReference(_ context.Context, path string) (bool, error) {
	return s[path], nil
}

type failingRefs struct{}

func (failingRefs) HasHardFileReference(context.Context, string) (bool, error) {
	return false, errors.New("index unavailable")
}

func newDetector(t *testing.T, root string, refs ReferenceChecker, opts ...Option) *Detector {
	t.Helper()
	opts = append([]Option{WithLogger(testutil.TestLoggerSilent())}, opts...)
	d, err := NewDetector(root, "uploads", refs, opts...)
	require.NoError(t, err)
	return d
}

func sorted(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}

func TestFindOrphans(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "uploads/media/used.jpg", "x")
	testutil.WriteFile(t, root, "uploads/media/lost.jpg", "x")
	testutil.WriteFile(t, root, "uploads/pics/deep/lost.png", "x")
	testutil.WriteFile(t, root, "outside/lost.txt", "x")

	d := newDetector(t, root, staticRefs{"uploads/media/used.jpg": true})
	got, err := d.FindOrphans(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/media/lost.jpg", "uploads/pics/deep/lost.png"}, sorted(got))
}

func TestExemptFilesNeverReported(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"uploads/index.html",
		"uploads/media/.htaccess",
		"uploads/pics/RTEmagicC_photo.jpg",
		"uploads/pics/RTEmagicP_photo.jpg",
		"uploads/pics/RTEmagic|_odd.jpg",
	} {
		testutil.WriteFile(t, root, rel, "x")
	}
	testutil.WriteFile(t, root, "uploads/pics/RTEmagicX_photo.jpg", "x")

	got, err := newDetector(t, root, staticRefs{}).FindOrphans(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/pics/RTEmagicX_photo.jpg"}, got)
}

func TestIsExempt(t *testing.T) {
	tests := map[string]bool{
		"index.html":         true,
		".htaccess":          true,
		"RTEmagicC_a.png":    true,
		"RTEmagicP_a.png":    true,
		"RTEmagic|_a.png":    true,
		"RTEmagicX_a.png":    false,
		"xRTEmagicC_a.png":   false,
		"index.htm":          false,
		"my-index.html":      false,
		"photo.jpg":          false,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsExempt(name), name)
	}
}

func TestExcludedPrefixes(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "uploads/tmp/a.txt", "x")
	testutil.WriteFile(t, root, "uploads/tmp_old/b.txt", "x")
	testutil.WriteFile(t, root, "uploads/keep/c.txt", "x")
	testutil.WriteFile(t, root, "uploads/media/d.txt", "x")

	d := newDetector(t, root, staticRefs{})
	got, err := d.FindOrphans(context.Background(), []string{" uploads/tmp", "/uploads/keep/", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/media/d.txt"}, got)
}

func TestSoftReferenceDoesNotProtect(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	root := t.TempDir()
	testutil.WriteFile(t, root, "uploads/media/hard.jpg", "x")
	testutil.WriteFile(t, root, "uploads/pics/soft.png", "x")

	page := testutil.CreatePage(t, db, "Home")
	testutil.CreateRecord(t, db, page.ID, 0, 256, "A", func(p *store.CreateRecordParams) {
		p.Media = "uploads/media/hard.jpg"
		p.Bodytext = `<img src="uploads/pics/soft.png">`
	})
	_, err := refindex.NewUpdater(db, "uploads", testutil.TestLoggerSilent()).UpdateAll(ctx)
	require.NoError(t, err)

	got, err := newDetector(t, root, refindex.NewIndex(db)).FindOrphans(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/pics/soft.png"}, got)
}

func TestNonCanonicalMediaProtectsFiles(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	root := t.TempDir()
	testutil.WriteFile(t, root, "uploads/pics/a.png", "x")
	testutil.WriteFile(t, root, "uploads/pics/b.png", "x")
	testutil.WriteFile(t, root, "uploads/pics/c.png", "x")
	testutil.WriteFile(t, root, "uploads/pics/lost.png", "x")

	page := testutil.CreatePage(t, db, "Home")
	testutil.CreateRecord(t, db, page.ID, 0, 256, "A", func(p *store.CreateRecordParams) {
		p.Media = "uploads//pics/a.png, uploads/tmp/../pics/b.png, ./uploads/./pics/c.png"
	})
	_, err := refindex.NewUpdater(db, "uploads", testutil.TestLoggerSilent()).UpdateAll(ctx)
	require.NoError(t, err)

	d := newDetector(t, root, refindex.NewIndex(db))
	got, err := d.FindOrphans(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/pics/lost.png"}, got)

	report, err := d.DeleteOrphans(ctx, got, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/pics/lost.png"}, report.Deleted)
	for _, kept := range []string{"a.png", "b.png", "c.png"} {
		assert.FileExists(t, filepath.Join(root, "uploads", "pics", kept))
	}
}

func TestOrphansStopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"uploads/a", "uploads/b", "uploads/c"} {
		testutil.WriteFile(t, root, rel, "x")
	}

	n := 0
	for _, err := range newDetector(t, root, staticRefs{}).Orphans(context.Background(), nil) {
		require.NoError(t, err)
		n++
		if n == 1 {
			break
		}
	}
	assert.Equal(t, 1, n)
}

func TestOrphansReferenceError(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "uploads/a.txt", "x")

	_, err := newDetector(t, root, failingRefs{}).FindOrphans(context.Background(), nil)
	assert.ErrorContains(t, err, "index unavailable")
}

func TestOrphansCanceled(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "uploads/a.txt", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newDetector(t, root, staticRefs{}).FindOrphans(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMissingScanPathIsEmpty(t *testing.T) {
	got, err := newDetector(t, t.TempDir(), staticRefs{}).FindOrphans(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCustomScanPath(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "uploads/a.txt", "x")
	testutil.WriteFile(t, root, "fileadmin/b.txt", "x")

	d, err := NewDetector(root, "fileadmin", staticRefs{}, WithLogger(testutil.TestLoggerSilent()))
	require.NoError(t, err)
	assert.Equal(t, "fileadmin", d.ScanPath())

	got, err := d.FindOrphans(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"fileadmin/b.txt"}, got)

	_, err = NewDetector(root, "../elsewhere", staticRefs{})
	assert.Error(t, err)
}

func TestDeleteOrphansDryRun(t *testing.T) {
	root := t.TempDir()
	a := testutil.WriteFile(t, root, "uploads/a.txt", "hello")
	b := testutil.WriteFile(t, root, "uploads/b.txt", "hi")

	d := newDetector(t, root, staticRefs{})
	report, err := d.DeleteOrphans(context.Background(), []string{"uploads/a.txt", "uploads/b.txt", "uploads/gone.txt"}, true)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, []string{"uploads/a.txt", "uploads/b.txt"}, report.Planned)
	assert.Equal(t, []string{"uploads/gone.txt"}, report.NotFound)
	assert.Empty(t, report.Deleted)
	assert.Equal(t, int64(7), report.Bytes)

	assert.FileExists(t, a)
	assert.FileExists(t, b)
}

func TestDeleteOrphans(t *testing.T) {
	root := t.TempDir()
	a := testutil.WriteFile(t, root, "uploads/a.txt", "hello")
	outside := testutil.WriteFile(t, filepath.Dir(root), "victim.txt", "x")
	t.Cleanup(func() { _ = os.Remove(outside) })
	require.NoError(t, os.MkdirAll(filepath.Join(root, "uploads", "dir"), 0o755))

	d := newDetector(t, root, staticRefs{}, WithLockFile(filepath.Join(t.TempDir(), "lostfiles.lock")))
	report, err := d.DeleteOrphans(context.Background(), []string{
		"uploads/a.txt",
		"uploads/missing.txt",
		"../victim.txt",
		"uploads/dir",
	}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"uploads/a.txt"}, report.Deleted)
	assert.Equal(t, []string{"uploads/missing.txt"}, report.NotFound)
	require.Len(t, report.Failed, 2)
	assert.Equal(t, "../victim.txt", report.Failed[0].Path)
	assert.Equal(t, "uploads/dir", report.Failed[1].Path)
	assert.Equal(t, int64(5), report.Bytes)

	assert.NoFileExists(t, a)
	assert.FileExists(t, outside)
}

func TestDeleteOrphansLocked(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "uploads/a.txt", "x")
	lockPath := filepath.Join(t.TempDir(), "lostfiles.lock")

	held := flock.New(lockPath)
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer func() { _ = held.Unlock() }()

	d := newDetector(t, root, staticRefs{}, WithLockFile(lockPath))
	_, err = d.DeleteOrphans(context.Background(), []string{"uploads/a.txt"}, false)
	assert.ErrorIs(t, err, ErrLocked)

	// Dry runs do not need the lock.
	_, err = d.DeleteOrphans(context.Background(), []string{"uploads/a.txt"}, true)
	assert.NoError(t, err)
}
