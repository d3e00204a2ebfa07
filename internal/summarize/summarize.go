// Package summarize produces the short intention summaries shown on
// separated epic blocks. The default implementation is a local sentence
// truncator; an OpenAI-compatible endpoint can be enabled per run.
package summarize

import (
	"context"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/schema"
)

// Summarizer shortens the raw text of a summary slot to at most
// slot.MaxLines display lines.
type Summarizer interface {
	Summarize(ctx context.Context, slot *schema.SummarySlot) ([]string, error)
}

// New selects the summarizer for a run. The LLM path needs both the flag
// and complete environment configuration; anything less means the local
// truncator, never an error.
func New(cfg *contract.Config) Summarizer {
	if cfg.LLMEnabled {
		llmCfg, missing := LLMConfigFromEnv()
		if len(missing) == 0 {
			return NewLLMSummarizer(llmCfg)
		}
		contract.LogWarning("LLM summaries requested but " + missingList(missing) + " not set, using local truncation")
	}
	return &Truncator{}
}

// Fill resolves every summary slot of the layout in place. A failing
// summarizer downgrades that slot to the truncator instead of failing
// the render.
func Fill(ctx context.Context, s Summarizer, lay *schema.Layout) error {
	fallback := &Truncator{}
	for _, block := range lay.Blocks {
		if block.Summary == nil {
			continue
		}
		lines, err := s.Summarize(ctx, block.Summary)
		if err != nil {
			contract.LogWarning("summary failed for " + block.Name + ": " + err.Error())
			lines, err = fallback.Summarize(ctx, block.Summary)
			if err != nil {
				return err
			}
		}
		block.Summary.Lines = lines
	}
	return nil
}

func missingList(missing []string) string {
	out := ""
	for i, m := range missing {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}
