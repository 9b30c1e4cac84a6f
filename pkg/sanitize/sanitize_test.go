// Copyright (c) 2026 MADR contributors. All rights reserved.

package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduardoklosowski/madr/pkg/sanitize"
)

/*
TestText covers the canonical examples for names and titles.
*/
func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation_and_case", "Androides Sonham Com Ovelhas Elétricas?", "androides sonham com ovelhas elétricas"},
		{"proper_name", "Machado de Assis", "machado de assis"},
		{"inner_spaces", "Manuel        Bandeira", "manuel bandeira"},
		{"outer_spaces", "  breve  história  do tempo ", "breve história do tempo"},
		{"accented_upper", "ÉRICO VERÍSSIMO", "érico veríssimo"},
		{"tabs_and_newlines", "o\tcortiço\n", "o cortiço"},
		{"only_punctuation", "?!...", ""},
		{"empty", "", ""},
		{"hyphen_removed", "Guimarães-Rosa", "guimarãesrosa"},
		{"decomposed_input", "Jose\u0301", "jos\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.Text(tt.input))
		})
	}
}

/*
TestText_Idempotent ensures applying the sanitizer twice changes nothing.
*/
func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"Androides Sonham Com Ovelhas Elétricas?",
		"  A   Hora  da   Estrela!! ",
		"José de Alencar",
		"___",
	}

	for _, input := range inputs {
		once := sanitize.Text(input)
		assert.Equal(t, once, sanitize.Text(once), input)
	}
}
