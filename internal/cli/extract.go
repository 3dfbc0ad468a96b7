package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/baitcheck/internal/feature"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <text>",
	Short: "Print the feature breakdown for a text",
	Long: `Extract shows the scalar features the models see for a given text:
length, word/sentence counts, punctuation and capital ratios, and hits
against the curated clickbait/urgency/emotional keyword lists.

The TF-IDF embedding component is corpus-dependent and reads all zeros
here, since no training corpus is loaded.

Example:
  baitcheck extract "You won't believe what happened next!"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	f := feature.NewExtractor().Extract(text)

	fmt.Printf("Text: %q\n\n", text)
	fmt.Printf("%-20s %d\n", "length (runes)", f.Length)
	fmt.Printf("%-20s %d\n", "words", f.WordCount)
	fmt.Printf("%-20s %d\n", "sentences", f.SentenceCount)
	fmt.Printf("%-20s %d\n", "exclamations", f.ExclamationCount)
	fmt.Printf("%-20s %d\n", "questions", f.QuestionCount)
	fmt.Printf("%-20s %.3f\n", "punctuation ratio", f.PunctuationRatio)
	fmt.Printf("%-20s %.3f\n", "capital ratio", f.CapitalRatio)
	fmt.Printf("%-20s %.2f\n", "avg word length", f.AvgWordLength)
	fmt.Printf("%-20s %d\n", "clickbait keywords", f.ClickbaitWords)
	fmt.Printf("%-20s %d\n", "urgency keywords", f.UrgencyWords)
	fmt.Printf("%-20s %d\n", "emotional keywords", f.EmotionalWords)

	clickbait, urgency, emotional := feature.KeywordHits(text)
	if len(clickbait)+len(urgency)+len(emotional) > 0 {
		fmt.Println()
		if len(clickbait) > 0 {
			fmt.Printf("%-20s %v\n", "clickbait hits", clickbait)
		}
		if len(urgency) > 0 {
			fmt.Printf("%-20s %v\n", "urgency hits", urgency)
		}
		if len(emotional) > 0 {
			fmt.Printf("%-20s %v\n", "emotional hits", emotional)
		}
	}
	return nil
}
