// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-content/internal/store"
	"github.com/olegiv/ocms-content/internal/testutil"
)

type cliEnv struct {
	root   string
	dbPath string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	root := t.TempDir()
	env := cliEnv{root: root, dbPath: filepath.Join(t.TempDir(), "data", "ocms.db")}
	t.Setenv("OCMS_DB_PATH", env.dbPath)
	t.Setenv("OCMS_SITE_ROOT", root)
	t.Setenv("OCMS_UPLOADS_DIR", "uploads")
	t.Setenv("OCMS_LOG_LEVEL", "error")
	t.Setenv("OCMS_ADMIN_LANGUAGE", "en")
	return env
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ocms-content "))
}

func TestMigrateAndSeed(t *testing.T) {
	env := newCLIEnv(t)

	out, err := runCLI(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "at version")
	assert.FileExists(t, env.dbPath)

	_, err = runCLI(t, "seed")
	require.NoError(t, err)
	// Seeding twice is harmless.
	_, err = runCLI(t, "seed")
	require.NoError(t, err)
}

func TestLocalizeCommand(t *testing.T) {
	newCLIEnv(t)
	_, err := runCLI(t, "seed")
	require.NoError(t, err)

	out, err := runCLI(t, "localize", "--page", "1", "--from", "0", "--to", "1", "--records", "1,2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "2 record(s) processed on page 1")

	out, err = runCLI(t, "localize", "--page", "1", "--to", "1", "--records", "1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "already localized")

	_, err = runCLI(t, "localize", "--page", "1", "--to", "1", "--records", "999")
	assert.Error(t, err)

	_, err = runCLI(t, "localize", "--page", "1", "--records", "1")
	assert.Error(t, err, "--to is required")
}

func TestLostFilesCommand(t *testing.T) {
	env := newCLIEnv(t)
	used := testutil.WriteFile(t, env.root, "uploads/media/used.jpg", "x")
	lost := testutil.WriteFile(t, env.root, "uploads/media/lost.jpg", "lost")
	skipped := testutil.WriteFile(t, env.root, "uploads/tmp/scratch.jpg", "x")

	_, err := runCLI(t, "migrate")
	require.NoError(t, err)
	db, err := store.NewDB(env.dbPath)
	require.NoError(t, err)
	page := testutil.CreatePage(t, db, "Home")
	testutil.CreateRecord(t, db, page.ID, 0, 256, "A", func(p *store.CreateRecordParams) {
		p.Media = "uploads/media/used.jpg"
	})
	require.NoError(t, db.Close())

	out, err := runCLI(t, "lostfiles", "--update-refindex", "--dry-run", "--exclude", "uploads/tmp")
	require.NoError(t, err, out)
	assert.Contains(t, out, "uploads/media/lost.jpg")
	assert.NotContains(t, out, "uploads/media/used.jpg")
	assert.NotContains(t, out, "scratch.jpg")
	assert.Contains(t, out, "Dry run")
	assert.FileExists(t, lost)

	out, err = runCLI(t, "lostfiles", "--exclude", "uploads/tmp")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Deleted 1 file(s)")
	assert.NoFileExists(t, lost)
	assert.FileExists(t, used)
	assert.FileExists(t, skipped)

	out, err = runCLI(t, "lostfiles", "--exclude", "uploads/tmp")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to do")
}

func TestLostFilesCustomPath(t *testing.T) {
	env := newCLIEnv(t)
	testutil.WriteFile(t, env.root, "fileadmin/old.pdf", "x")

	out, err := runCLI(t, "lostfiles", "--dry-run", "--custom-path", filepath.Join(env.root, "fileadmin"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "fileadmin/old.pdf")

	_, err = runCLI(t, "lostfiles", "--dry-run", "--custom-path", t.TempDir())
	assert.Error(t, err)
}

func TestRelativeScanPath(t *testing.T) {
	root := t.TempDir()

	got, err := relativeScanPath(root, "")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = relativeScanPath(root, "uploads/pics")
	require.NoError(t, err)
	assert.Equal(t, "uploads/pics", got)

	got, err = relativeScanPath(root, filepath.Join(root, "fileadmin"))
	require.NoError(t, err)
	assert.Equal(t, "fileadmin", got)
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false}
	for input, want := range tests {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(input), &out, "Rebuild? ")
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
		assert.Equal(t, "Rebuild? ", out.String())
	}
	assert.False(t, isInteractive(strings.NewReader("")))
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"File", "Size"}, [][]string{{"uploads/a.jpg", "1 kB"}, {"uploads/b.jpg"}}, []columnAlignment{alignLeft, alignRight})
	assert.Contains(t, out, "uploads/a.jpg")
	assert.Contains(t, out, "FILE")
	assert.Equal(t, "", renderTable(nil, nil, nil))
}
