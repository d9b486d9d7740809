//go:build unit

package item_test

import (
	"testing"

	"lendshare/internal/domain/item"
	"lendshare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewItemBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Cordless Drill", actual.Name())
		assert.True(t, actual.Available())
		assert.Nil(t, actual.RequestID())
	})

	t.Run("name and description are trimmed", func(t *testing.T) {
		b := builder.NewItemBuilder().With(func(b *builder.ItemBuilder) {
			b.Name = "  Ladder  "
			b.Description = "  3m aluminium ladder  "
		})
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Ladder", actual.Name())
		assert.Equal(t, "3m aluminium ladder", actual.Description())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.ItemBuilder)
			errIs  error
		}{
			{
				name:   "empty name",
				mutate: func(b *builder.ItemBuilder) { b.Name = "" },
				errIs:  item.ErrEmptyName,
			},
			{
				name:   "whitespace only name",
				mutate: func(b *builder.ItemBuilder) { b.Name = "   " },
				errIs:  item.ErrEmptyName,
			},
			{
				name:   "empty description",
				mutate: func(b *builder.ItemBuilder) { b.Description = "" },
				errIs:  item.ErrEmptyDescription,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				b := builder.NewItemBuilder()
				tc.mutate(b)
				_, err := b.BuildDomain()
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestApplyPatch(t *testing.T) {
	newItem := func(t *testing.T) *item.Item {
		t.Helper()
		it, err := builder.NewItemBuilder().BuildDomain()
		require.NoError(t, err)
		return it
	}

	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("nil fields keep stored values", func(t *testing.T) {
		it := newItem(t)

		require.NoError(t, it.ApplyPatch(nil, nil, nil))
		assert.Equal(t, "Cordless Drill", it.Name())
		assert.True(t, it.Available())
	})

	t.Run("partial update", func(t *testing.T) {
		it := newItem(t)

		require.NoError(t, it.ApplyPatch(strPtr("Impact Driver"), nil, boolPtr(false)))
		assert.Equal(t, "Impact Driver", it.Name())
		assert.Equal(t, "18V cordless drill with two batteries", it.Description())
		assert.False(t, it.Available())
	})

	t.Run("blank patch value is rejected", func(t *testing.T) {
		it := newItem(t)

		assert.ErrorIs(t, it.ApplyPatch(strPtr("  "), nil, nil), item.ErrEmptyName)
		assert.ErrorIs(t, it.ApplyPatch(nil, strPtr(""), nil), item.ErrEmptyDescription)
		// Failed patch leaves the item untouched.
		assert.Equal(t, "Cordless Drill", it.Name())
	})
}

func TestIsOwnedBy(t *testing.T) {
	b := builder.NewItemBuilder()
	it, err := b.BuildDomain()
	require.NoError(t, err)

	assert.True(t, it.IsOwnedBy(b.OwnerID))
	assert.False(t, it.IsOwnedBy(uuid.New()))
}
