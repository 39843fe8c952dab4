// Package langdetect provides language detection for source content.
// It uses go-enry to confirm that discovered files are actually PHP before
// they are tokenized, so a stray .php file holding something else is skipped
// rather than mangled.
package langdetect

import (
	"bytes"

	"github.com/go-enry/go-enry/v2"
)

const langPHP = "PHP"

// phpOpenTags are the byte patterns that positively identify PHP content.
var phpOpenTags = [][]byte{
	[]byte("<?php"),
	[]byte("<?="),
}

// IsPHP reports whether the content at path should be treated as PHP.
//
// An explicit open tag anywhere in the content is decisive: mixed HTML/PHP
// template files routinely start with markup. Without an open tag the file
// cannot contain PHP code regions, so enry only gets a veto on ambiguous
// extensions.
func IsPHP(path string, content []byte) bool {
	for _, tag := range phpOpenTags {
		if bytes.Contains(content, tag) {
			return true
		}
	}

	lang := enry.GetLanguage(path, content)
	return lang == langPHP
}

// Detect returns the detected language name for the content, or "" when
// detection fails.
func Detect(path string, content []byte) string {
	return enry.GetLanguage(path, content)
}
