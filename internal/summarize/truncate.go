package summarize

import (
	"context"
	"regexp"
	"strings"

	"github.com/orgviz/orgviz/schema"
)

const maxLineChars = 105

var (
	spaceRe    = regexp.MustCompile(`\s+`)
	sentenceRe = regexp.MustCompile(`(?:[.!?;:])\s+`)
)

// Truncator is the offline summarizer: it joins the slot's raw fields,
// splits into sentences, drops duplicates and truncates each line. It
// never errors.
type Truncator struct{}

func (t *Truncator) Summarize(_ context.Context, slot *schema.SummarySlot) ([]string, error) {
	var parts []string
	for _, p := range []string{slot.Description, slot.IntentionPI, slot.IntentionNext} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return []string{"No description or intention provided."}, nil
	}

	src := spaceRe.ReplaceAllString(strings.Join(parts, " "), " ")
	sentences := splitSentences(src)

	maxLines := slot.MaxLines
	if maxLines <= 0 {
		maxLines = schema.SummaryMaxLines
	}

	var out []string
	seen := make(map[string]bool)
	for _, s := range sentences {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		if len([]rune(s)) > maxLineChars {
			s = strings.TrimRight(string([]rune(s)[:maxLineChars-3]), " ") + "..."
		}
		out = append(out, s)
		if len(out) >= maxLines {
			break
		}
	}
	return out, nil
}

func splitSentences(text string) []string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil
	}
	// Keep the terminal punctuation with its sentence.
	var sentences []string
	last := 0
	for _, loc := range sentenceRe.FindAllStringIndex(cleaned, -1) {
		s := strings.Trim(cleaned[last:loc[0]+1], " -")
		if s != "" {
			sentences = append(sentences, s)
		}
		last = loc[1]
	}
	if s := strings.Trim(cleaned[last:], " -"); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
