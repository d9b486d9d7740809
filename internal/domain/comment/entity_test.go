//go:build unit

package comment_test

import (
	"strings"
	"testing"
	"time"

	"lendshare/internal/domain/comment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	itemID := uuid.New()
	authorID := uuid.New()
	now := time.Now()

	t.Run("basic success case", func(t *testing.T) {
		actual, err := comment.NewComment(itemID, authorID, "Great drill, well maintained", now)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, itemID, actual.ItemID())
		assert.Equal(t, authorID, actual.AuthorID())
		assert.Equal(t, "Great drill, well maintained", actual.Text().String())
		assert.Equal(t, now, actual.CreatedAt())
	})

	t.Run("text is trimmed", func(t *testing.T) {
		actual, err := comment.NewComment(itemID, authorID, "  padded  ", now)
		require.NoError(t, err)
		assert.Equal(t, "padded", actual.Text().String())
	})

	t.Run("text validation", func(t *testing.T) {
		cases := []struct {
			name  string
			text  string
			errIs error
		}{
			{name: "empty text", text: "", errIs: comment.ErrEmptyText},
			{name: "whitespace only text", text: "   ", errIs: comment.ErrEmptyText},
			{name: "maximum length text", text: strings.Repeat("a", comment.MaxTextLength)},
			{name: "text exceeds maximum length", text: strings.Repeat("a", comment.MaxTextLength+1), errIs: comment.ErrTextTooLong},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := comment.NewComment(itemID, authorID, tc.text, now)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
					return
				}
				assert.NoError(t, err)
			})
		}
	})
}
