package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRelPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "a.png", expected: "a.png"},
		{name: "nested path", input: "photos/sub/b.png", expected: "photos/sub/b.png"},
		{name: "leading slash", input: "/photos/a.png", expected: "photos/a.png"},
		{name: "trailing slash", input: "photos/", expected: "photos"},
		{name: "backslashes", input: "photos\\sub\\b.png", expected: "photos/sub/b.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRelPath(tt.input))
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single segment", input: "a.png", expected: []string{"a.png"}},
		{name: "nested", input: "photos/sub/b.png", expected: []string{"photos", "sub", "b.png"}},
		{name: "empty segments dropped", input: "photos//b.png", expected: []string{"photos", "b.png"}},
		{name: "dot segments dropped", input: "./photos/a.png", expected: []string{"photos", "a.png"}},
		{name: "empty path", input: "", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitPath(tt.input))
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "b.png", BaseName("photos/sub/b.png"))
	assert.Equal(t, "a.png", BaseName("a.png"))
	assert.Equal(t, "", BaseName(""))
}
