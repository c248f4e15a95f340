// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package refindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-content/internal/model"
	"github.com/olegiv/ocms-content/internal/store"
	"github.com/olegiv/ocms-content/internal/testutil"
)

func TestSoftFileReferences(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []softRef
	}{
		{"plain text", "no markup here", nil},
		{
			name: "image and link",
			body: `<p><img src="uploads/pics/a.png"> <a href="/uploads/docs/b.pdf?x=1#top">b</a></p>`,
			want: []softRef{
				{"uploads/pics/a.png", model.SoftRefKeyImages},
				{"uploads/docs/b.pdf", model.SoftRefKeyTypolink},
			},
		},
		{
			name: "escaped path",
			body: `<img src="uploads/pics/my%20photo.jpg">`,
			want: []softRef{{"uploads/pics/my photo.jpg", model.SoftRefKeyImages}},
		},
		{
			name: "external and foreign paths ignored",
			body: `<img src="https://cdn.example.com/uploads/a.png"><a href="/about">x</a><img src="assets/logo.svg">`,
			want: nil,
		},
		{
			name: "traversal ignored",
			body: `<a href="uploads/../secret.txt">x</a>`,
			want: nil,
		},
		{
			name: "duplicates collapsed",
			body: `<img src="uploads/a.png"><img src="uploads/a.png"><a href="uploads/a.png">a</a>`,
			want: []softRef{
				{"uploads/a.png", model.SoftRefKeyImages},
				{"uploads/a.png", model.SoftRefKeyTypolink},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, softFileReferences(tt.body, "uploads"))
		})
	}
}

func TestEntries(t *testing.T) {
	rec := store.Record{
		ID:       7,
		ParentID: 3,
		Media:    "uploads/media/a.jpg, ./uploads/media/b.jpg",
		Bodytext: `<img src="uploads/pics/c.png">`,
	}
	entries := Entries(rec, "uploads")
	require.Len(t, entries, 4)

	assert.Equal(t, model.FieldMedia, entries[0].FromField)
	assert.Equal(t, "uploads/media/a.jpg", entries[0].RefString)
	assert.Equal(t, "uploads/media/b.jpg", entries[1].RefString)
	assert.Empty(t, entries[1].SoftRefKey)

	assert.Equal(t, model.FieldBodytext, entries[2].FromField)
	assert.Equal(t, model.SoftRefKeyImages, entries[2].SoftRefKey)

	assert.Equal(t, model.RefTableRecords, entries[3].RefTable)
	assert.Equal(t, int64(3), entries[3].RefRecordID)
}

func TestUpdateAll(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	page := testutil.CreatePage(t, db, "Home")
	testutil.CreateRecord(t, db, page.ID, 0, 256, "A", func(p *store.CreateRecordParams) {
		p.Media = "uploads/media/hard.jpg"
		p.Bodytext = `<img src="uploads/pics/soft.png">`
	})

	u := NewUpdater(db, "uploads", testutil.TestLoggerSilent())
	stats, err := u.UpdateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Records)
	assert.Equal(t, 1, stats.Hard)
	assert.Equal(t, 1, stats.Soft)

	idx := NewIndex(db)
	hard, err := idx.HasHardFileReference(ctx, "uploads/media/hard.jpg")
	require.NoError(t, err)
	assert.True(t, hard)

	soft, err := idx.HasHardFileReference(ctx, "uploads/pics/soft.png")
	require.NoError(t, err)
	assert.False(t, soft, "soft references do not count")

	// Rebuilding is idempotent.
	_, err = u.UpdateAll(ctx)
	require.NoError(t, err)
	n, err := store.New(db).CountRefIndexEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestUpdateRecord(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	page := testutil.CreatePage(t, db, "Home")
	rec := testutil.CreateRecord(t, db, page.ID, 0, 256, "A", func(p *store.CreateRecordParams) {
		p.Media = "uploads/media/a.jpg,uploads/media/b.jpg"
	})

	u := NewUpdater(db, "uploads", testutil.TestLoggerSilent())
	stats, err := u.UpdateRecord(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Hard)

	// Running again replaces rather than duplicates.
	_, err = u.UpdateRecord(ctx, rec.ID)
	require.NoError(t, err)
	rows, err := store.New(db).ListRefIndexEntriesFrom(ctx, store.ListRefIndexEntriesFromParams{
		FromTable:    model.RefTableRecords,
		FromRecordID: rec.ID,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = u.UpdateRecord(ctx, 9999)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
