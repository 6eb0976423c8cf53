package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLanguageCode(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"malayalam", "ml-IN"},
		{"Malayalam", "ml-IN"},
		{"MALAYALAM", "ml-IN"},
		{"hindi", "hi-IN"},
		{"HiNdI", "hi-IN"},
		{"arabic", "ar-SA"},
		{"Arabic", "ar-SA"},
		{"english", "en-US"},
		{"ENGLISH", "en-US"},
		{" hindi ", "hi-IN"},
		{"", "en-US"},
		{"tamil", "en-US"},
		{"ml-IN", "en-US"},
		{"français", "en-US"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveLanguageCode(tc.label), "label %q", tc.label)
	}
}
