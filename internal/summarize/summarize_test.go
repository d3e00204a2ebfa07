package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSummarizer struct{}

func (failingSummarizer) Summarize(context.Context, *schema.SummarySlot) ([]string, error) {
	return nil, errors.New("boom")
}

func TestNew(t *testing.T) {
	t.Run("default is the truncator", func(t *testing.T) {
		s := New(&contract.Config{})
		assert.IsType(t, &Truncator{}, s)
	})

	t.Run("llm flag without env falls back", func(t *testing.T) {
		t.Setenv("ORGVIZ_LLM_BASE_URL", "")
		t.Setenv("ORGVIZ_LLM_API_KEY", "")
		t.Setenv("ORGVIZ_LLM_MODEL", "")
		s := New(&contract.Config{LLMEnabled: true})
		assert.IsType(t, &Truncator{}, s)
	})

	t.Run("llm flag with complete env", func(t *testing.T) {
		t.Setenv("ORGVIZ_LLM_BASE_URL", "https://llm.example.org")
		t.Setenv("ORGVIZ_LLM_API_KEY", "k")
		t.Setenv("ORGVIZ_LLM_MODEL", "m")
		s := New(&contract.Config{LLMEnabled: true})
		assert.IsType(t, &LLMSummarizer{}, s)
	})
}

func TestFill(t *testing.T) {
	newLayout := func() *schema.Layout {
		return &schema.Layout{Blocks: []*schema.LayoutBlock{
			{Kind: schema.TeamContainerBlock, Name: "Alpha"},
			{
				Kind:    schema.SeparatedEpicBlock,
				Name:    "Search",
				Summary: &schema.SummarySlot{Description: "Rebuild search.", MaxLines: 5},
			},
		}}
	}

	t.Run("resolves every slot", func(t *testing.T) {
		lay := newLayout()
		require.NoError(t, Fill(context.Background(), &Truncator{}, lay))
		assert.Nil(t, lay.Blocks[0].Summary)
		assert.Equal(t, []string{"Rebuild search."}, lay.Blocks[1].Summary.Lines)
	})

	t.Run("failing summarizer downgrades to truncation", func(t *testing.T) {
		lay := newLayout()
		require.NoError(t, Fill(context.Background(), failingSummarizer{}, lay))
		assert.Equal(t, []string{"Rebuild search."}, lay.Blocks[1].Summary.Lines)
	})
}
