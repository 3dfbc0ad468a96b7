// Package llm generates an optional natural-language narrative comparing
// the models' predictions. The narrative is presentation only: it never
// affects classification results or metrics.
package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/baitcheck/internal/model"
)

// Provider defines the interface for narrative generators
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a completion for the given prompt
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Explainer turns a comparison summary into a short narrative
type Explainer struct {
	provider  Provider
	maxTokens int
}

// NewExplainer builds an explainer from config. Returns nil (disabled)
// when no provider is configured.
func NewExplainer(cfg model.LLMConfig) (*Explainer, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		p, err := NewOpenAIProvider(cfg)
		if err != nil {
			return nil, err
		}
		return &Explainer{provider: p, maxTokens: cfg.MaxTokens}, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

// Narrative generates a comparative explanation of the models' outputs
func (e *Explainer) Narrative(ctx context.Context, text string, summary *model.ComparisonSummary, results []*model.ClassificationResult) (string, error) {
	if e == nil || e.provider == nil {
		return "", nil
	}
	out, err := e.provider.Complete(ctx, buildPrompt(text, summary, results), e.maxTokens)
	if err != nil {
		return "", fmt.Errorf("%s narrative: %w", e.provider.Name(), err)
	}
	return strings.TrimSpace(out), nil
}

// buildPrompt renders the comparison facts the narrative may draw on. The
// LLM only rephrases what the models already decided; it is told not to
// re-judge the text.
func buildPrompt(text string, summary *model.ComparisonSummary, results []*model.ClassificationResult) string {
	var b strings.Builder
	b.WriteString("You are explaining the output of a teaching tool that compares four classic text classifiers ")
	b.WriteString("(naive Bayes, decision forest, logistic regression, a toy CNN) on clickbait detection.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("1. Describe only the model outputs listed below. Do not judge the text yourself.\n")
	b.WriteString("2. Do not invent numbers; use only the figures given.\n")
	b.WriteString("3. Keep it to 3-4 sentences, aimed at a learner.\n\n")
	fmt.Fprintf(&b, "Text under classification: %q\n\n", text)

	sorted := make([]*model.ClassificationResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Model < sorted[j].Model })
	for _, r := range sorted {
		fmt.Fprintf(&b, "- %s: %s (confidence %.0f%%)\n", r.Model, r.Prediction, r.Confidence*100)
	}
	if summary != nil && summary.Consensus != nil {
		fmt.Fprintf(&b, "\nConsensus: %s with %.0f%% agreement.\n",
			summary.Consensus.Prediction, summary.Consensus.Agreement*100)
	}
	if summary != nil && summary.BestModel != "" {
		fmt.Fprintf(&b, "Best training accuracy: %s at %.0f%%.\n",
			summary.BestModel, summary.BestAccuracy*100)
	}
	b.WriteString("\nExplain why the models may disagree, referencing their different feature views.")
	return b.String()
}
