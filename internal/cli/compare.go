package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/baitcheck/internal/compare"
	"github.com/ppiankov/baitcheck/internal/dataset"
	"github.com/ppiankov/baitcheck/internal/llm"
	"github.com/ppiankov/baitcheck/internal/model"
)

var (
	compareTexts []string
	seed         int64
	cnnTimeout   time.Duration
	noCache      bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <dataset>",
	Short: "Train all four models on a dataset and compare them",
	Long: `Compare loads a labeled dataset, trains all four models sequentially
(cheapest first, each under its own timeout), and prints per-model metrics
plus a comparison summary. Models that time out or fail get neutral
metrics and the run continues.

Dataset formats: YAML ([{text, label}]), CSV (label,text), or
tab-separated "label<TAB>text" lines. Labels are "normal" or "clickbait".

Example:
  baitcheck compare headlines.yaml
  baitcheck compare headlines.csv --text "震惊！这个方法让你月入十万！"
  baitcheck compare headlines.yaml --seed 42 --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringArrayVar(&compareTexts, "text", nil, "text(s) to classify after training (repeatable)")
	compareCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = non-deterministic)")
	compareCmd.Flags().DurationVar(&cnnTimeout, "cnn-timeout", 30*time.Second, "wall-clock budget for CNN training")
	compareCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the prediction cache")

	compareCmd.Flags().BoolVar(&llmEnabled, "llm", false, "append an LLM-generated narrative explanation")
	compareCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider")
	compareCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runCompare(cmd *cobra.Command, args []string) error {
	samples, err := dataset.Load(args[0])
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	normal, clickbait := model.CountLabels(samples)
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d samples (%d normal, %d clickbait)\n\n",
			len(samples), normal, clickbait)
	}

	cfg := model.DefaultConfig()
	cfg.Seed = seed
	cfg.CNN.Timeout = cnnTimeout
	cfg.Orchestrator.CNNTimeout = cnnTimeout + 5*time.Second
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	orch, err := compare.New(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var onProgress compare.ProgressFunc
	if verbose {
		onProgress = func(t model.ModelType, p model.TrainingProgress) {
			fmt.Fprintf(os.Stderr, "  [%s] %-10s %5.1f%%  %s\n", t, p.Stage, p.Progress, p.Message)
		}
	}

	metrics, err := orch.TrainAll(ctx, samples, onProgress)
	if err != nil {
		return fmt.Errorf("train models: %w", err)
	}
	printMetrics(metrics)

	for _, text := range compareTexts {
		if err := printPrediction(ctx, orch, cfg, text); err != nil {
			return err
		}
	}
	if len(compareTexts) == 0 {
		summary, err := orch.Summary(ctx, "")
		if err != nil {
			return err
		}
		printSummaryHeader(summary)
	}
	return nil
}

func printMetrics(metrics map[model.ModelType]*model.TrainingMetrics) {
	fmt.Println("Model metrics")
	fmt.Println("-------------")
	for _, t := range model.AllModelTypes() {
		m := metrics[t]
		if m == nil {
			continue
		}
		fmt.Printf("%-20s acc %.0f%%  prec %.0f%%  rec %.0f%%  f1 %.0f%%  (%v)\n",
			t, m.Accuracy*100, m.Precision*100, m.Recall*100, m.F1*100, m.Duration.Round(time.Millisecond))
		if m.Split != nil && m.Split.IsOverfitting {
			fmt.Printf("%-20s overfitting: train/test accuracy gap %.2f\n", "", m.Split.AccuracyGap)
		}
	}
	fmt.Println()
}

func printPrediction(ctx context.Context, orch *compare.Orchestrator, cfg *model.Config, text string) error {
	summary, err := orch.Summary(ctx, text)
	if err != nil {
		return err
	}
	results, err := orch.PredictAll(ctx, text)
	if err != nil {
		return err
	}

	fmt.Printf("Text: %q\n", text)
	for _, r := range results {
		fmt.Printf("  %-20s %-10s (confidence %.0f%%, %v)\n",
			r.Model, r.Prediction, r.Confidence*100, r.ProcessingTime.Round(time.Microsecond))
		for _, reason := range r.Reasoning {
			fmt.Printf("    - %s\n", reason)
		}
	}
	if c := summary.Consensus; c != nil {
		fmt.Printf("  consensus: %s (%.0f%% agreement, mean confidence %.0f%%)\n",
			c.Prediction, c.Agreement*100, c.Confidence*100)
	}
	printSummaryHeader(summary)

	if cfg.LLM.Provider != "" {
		explainer, err := llm.NewExplainer(cfg.LLM)
		if err != nil {
			return err
		}
		narrative, err := explainer.Narrative(ctx, text, summary, results)
		if err != nil {
			// The narrative never blocks the comparison.
			fmt.Fprintf(os.Stderr, "Warning: narrative generation failed: %v\n", err)
		} else if narrative != "" {
			fmt.Printf("\nNarrative:\n%s\n", narrative)
		}
	}
	fmt.Println()
	return nil
}

func printSummaryHeader(summary *model.ComparisonSummary) {
	fmt.Printf("Trained models: %d\n", summary.TrainedModels)
	if summary.BestModel != "" {
		fmt.Printf("Best accuracy: %s (%.0f%%)\n", summary.BestModel, summary.BestAccuracy*100)
	}
	if summary.FastestTrain != "" {
		fmt.Printf("Fastest training: %s (%v)\n", summary.FastestTrain, summary.FastestTrainT.Round(time.Millisecond))
	}
	if summary.FastestPred != "" {
		fmt.Printf("Fastest prediction: %s (%v)\n", summary.FastestPred, summary.FastestPredT.Round(time.Microsecond))
	}
}
