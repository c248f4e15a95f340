// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package refindex

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/olegiv/ocms-content/internal/model"
	"github.com/olegiv/ocms-content/internal/store"
)

// Entries returns the reference index rows for one record.
func Entries(rec store.Record, uploadsDir string) []store.CreateRefIndexEntryParams {
	var out []store.CreateRefIndexEntryParams

	for i, p := range model.SplitMedia(rec.Media) {
		out = append(out, store.CreateRefIndexEntryParams{
			FromTable:    model.RefTableRecords,
			FromField:    model.FieldMedia,
			FromRecordID: rec.ID,
			RefTable:     model.RefTableFile,
			RefString:    p,
			Sorting:      int64(i),
		})
	}

	for i, ref := range softFileReferences(rec.Bodytext, uploadsDir) {
		out = append(out, store.CreateRefIndexEntryParams{
			FromTable:    model.RefTableRecords,
			FromField:    model.FieldBodytext,
			FromRecordID: rec.ID,
			RefTable:     model.RefTableFile,
			RefString:    ref.path,
			SoftRefKey:   ref.key,
			Sorting:      int64(i),
		})
	}

	if rec.ParentID > 0 {
		out = append(out, store.CreateRefIndexEntryParams{
			FromTable:    model.RefTableRecords,
			FromField:    model.FieldParentID,
			FromRecordID: rec.ID,
			RefTable:     model.RefTableRecords,
			RefRecordID:  rec.ParentID,
		})
	}
	return out
}

type softRef struct {
	path string
	key  string
}

// softFileReferences finds <img src> and <a href> targets below uploadsDir.
func softFileReferences(bodytext, uploadsDir string) []softRef {
	if !strings.Contains(bodytext, "<") {
		return nil
	}
	doc, err := html.Parse(strings.NewReader(bodytext))
	if err != nil {
		return nil
	}

	prefix := model.NormalizeFilePath(uploadsDir)
	prefix = strings.TrimSuffix(prefix, "/") + "/"

	var refs []softRef
	seen := make(map[softRef]bool)

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var attr, key string
			switch n.Data {
			case "img":
				attr, key = "src", model.SoftRefKeyImages
			case "a":
				attr, key = "href", model.SoftRefKeyTypolink
			}
			if attr != "" {
				if p, ok := uploadPath(attrValue(n, attr), prefix); ok {
					ref := softRef{path: p, key: key}
					if !seen[ref] {
						seen[ref] = true
						refs = append(refs, ref)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return refs
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// uploadPath turns a link target into a site-relative upload path. External
// URLs and paths outside the upload directory are rejected.
func uploadPath(raw, prefix string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	p, err := url.PathUnescape(u.Path)
	if err != nil {
		return "", false
	}
	p = model.NormalizeFilePath(p)
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	return p, true
}
