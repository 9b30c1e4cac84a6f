// Copyright (c) 2026 MADR contributors. All rights reserved.

// Package sanitize canonicalizes free-text names before they are stored or compared.
//
// # Usage
//
// Usernames, author names and book titles all go through [Text], so
// "Machado  de Assis!" and "machado de assis" collide on the same unique key.
package sanitize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Punctuation is the set of ASCII punctuation characters removed by [Text].
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Text converts s to its canonical form.
//
// # Transformation Pipeline
//
// 1. Lowercases with Unicode rules (É → é).
// 2. Drops every ASCII punctuation character; accented letters are kept.
// 3. Composes to NFC so visually equal names compare equal.
// 4. Splits on whitespace and rejoins the words with a single space.
//
// Text is idempotent and may return an empty string.
func Text(s string) string {
	// cases.Caser keeps state and is not safe for concurrent use.
	result := cases.Lower(language.Und).String(s)

	result = strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}, result)

	result = norm.NFC.String(result)

	return strings.Join(strings.Fields(result), " ")
}
