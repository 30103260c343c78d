package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateChunk(t *testing.T) {
	t.Run("valid chunk", func(t *testing.T) {
		chunk := &Chunk{
			Id:      IDFromContent("revenue grew 12% in Q3"),
			Content: "revenue grew 12% in Q3",
		}
		require.NoError(t, ValidateChunk(chunk))
	})

	t.Run("nil chunk", func(t *testing.T) {
		err := ValidateChunk(nil)
		assert.ErrorIs(t, err, ErrInvalidChunk)
	})

	t.Run("empty content", func(t *testing.T) {
		chunk := &Chunk{Id: 1, Content: "   "}
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrInvalidChunk)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("zero id", func(t *testing.T) {
		chunk := &Chunk{Content: "has content"}
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrInvalidChunk)
	})
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory(CategoryVolatile))
	assert.NoError(t, ValidateCategory(CategoryStable))
	assert.ErrorIs(t, ValidateCategory(Category(0)), ErrInvalidCategory)
	assert.ErrorIs(t, ValidateCategory(Category(7)), ErrInvalidCategory)
}

func TestCanonicalQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "latest tesla earnings", "latest tesla earnings"},
		{"mixed case", "Latest Tesla Earnings", "latest tesla earnings"},
		{"extra whitespace", "  latest   tesla\tearnings\n", "latest tesla earnings"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalQuery(tt.input))
		})
	}
}
