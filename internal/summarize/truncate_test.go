package summarize

import (
	"context"
	"strings"
	"testing"

	"github.com/orgviz/orgviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncatorSummarize(t *testing.T) {
	tr := &Truncator{}
	ctx := context.Background()

	t.Run("joins fields into sentences", func(t *testing.T) {
		slot := &schema.SummarySlot{
			Description: "Rebuild the search index. Serve queries from it.",
			IntentionPI: "Ship v2 this increment.",
			MaxLines:    5,
		}
		lines, err := tr.Summarize(ctx, slot)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Rebuild the search index.",
			"Serve queries from it.",
			"Ship v2 this increment.",
		}, lines)
	})

	t.Run("caps at max lines", func(t *testing.T) {
		slot := &schema.SummarySlot{
			Description: "One. Two. Three. Four.",
			MaxLines:    2,
		}
		lines, err := tr.Summarize(ctx, slot)
		require.NoError(t, err)
		assert.Equal(t, []string{"One.", "Two."}, lines)
	})

	t.Run("drops duplicate sentences", func(t *testing.T) {
		slot := &schema.SummarySlot{
			Description: "Ship it.",
			IntentionPI: "ship it.",
			MaxLines:    5,
		}
		lines, err := tr.Summarize(ctx, slot)
		require.NoError(t, err)
		assert.Len(t, lines, 1)
	})

	t.Run("truncates long sentences", func(t *testing.T) {
		slot := &schema.SummarySlot{
			Description: strings.Repeat("long ", 60),
			MaxLines:    5,
		}
		lines, err := tr.Summarize(ctx, slot)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.LessOrEqual(t, len([]rune(lines[0])), maxLineChars)
		assert.True(t, strings.HasSuffix(lines[0], "..."))
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		slot := &schema.SummarySlot{Description: "spread \n  out \t text", MaxLines: 5}
		lines, err := tr.Summarize(ctx, slot)
		require.NoError(t, err)
		assert.Equal(t, []string{"spread out text"}, lines)
	})

	t.Run("empty slot gets a placeholder", func(t *testing.T) {
		lines, err := tr.Summarize(ctx, &schema.SummarySlot{MaxLines: 5})
		require.NoError(t, err)
		assert.Equal(t, []string{"No description or intention provided."}, lines)
	})
}

func TestSplitSentences(t *testing.T) {
	assert.Equal(t, []string{"One.", "Two!", "Three"}, splitSentences("One. Two! Three"))
	assert.Equal(t, []string{"Just one line"}, splitSentences("Just one line"))
	assert.Nil(t, splitSentences("   "))
}
