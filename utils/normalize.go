package utils

import (
    "regexp"
    "strings"
)

// Package-level compiled patterns for the key normalizer.
var (
    nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
    whitespaceRunRegex   = regexp.MustCompile(`\s+`)
)

// NormalizeFoodKey maps arbitrary display text to the canonical key used to
// index the food catalog: lowercase, strip everything outside [a-z0-9] and
// whitespace, trim, then join internal whitespace runs with underscores.
// Total and idempotent; garbage input yields an empty key.
func NormalizeFoodKey(text string) string {
    s := strings.ToLower(text)
    s = strings.ReplaceAll(s, "_", " ")
    s = nonAlphanumericRegex.ReplaceAllString(s, "")
    s = strings.TrimSpace(s)
    return whitespaceRunRegex.ReplaceAllString(s, "_")
}
