// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package lostfiles

import (
	"regexp"
	"strings"

	"github.com/olegiv/ocms-content/internal/model"
)

// exemptNames are never reported, wherever they live.
var exemptNames = map[string]bool{
	"index.html": true,
	".htaccess":  true,
}

// rteMagic matches legacy generated-image files. The class includes a
// literal "|" and is kept as is.
var rteMagic = regexp.MustCompile(`^RTEmagic[P|C]_`)

// IsExempt reports whether a file name is protected from orphan detection.
func IsExempt(name string) bool {
	return exemptNames[name] || rteMagic.MatchString(name)
}

// NormalizeExcludes cleans exclusion prefixes into site-relative form.
func NormalizeExcludes(excludes []string) []string {
	out := make([]string, 0, len(excludes))
	for _, raw := range excludes {
		e := model.NormalizeFilePath(raw)
		if e == "" {
			continue
		}
		// A trailing slash limits the prefix to a directory.
		if strings.HasSuffix(strings.TrimSpace(raw), "/") {
			e += "/"
		}
		out = append(out, e)
	}
	return out
}

// IsExcluded reports whether rel starts with one of the prefixes.
func IsExcluded(rel string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(rel, p) {
			return true
		}
	}
	return false
}
