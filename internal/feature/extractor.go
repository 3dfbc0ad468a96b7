package feature

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ppiankov/baitcheck/internal/model"
)

// Curated keyword lists, mixed Chinese/English, matched case-insensitively
// as substrings.
var (
	clickbaitKeywords = []string{
		"震惊", "惊呆", "揭秘", "内幕", "真相", "疯传", "速看", "必看",
		"删前", "月入", "暴富", "秘诀",
		"shocking", "unbelievable", "secret", "exposed", "revealed",
		"you won't believe", "miracle", "trick", "doctors hate",
	}
	urgencyKeywords = []string{
		"赶紧", "马上", "立即", "最后", "限时", "错过", "仅剩", "今天",
		"hurry", "urgent", "now", "last chance", "don't miss",
		"before it's too late", "act fast", "limited",
	}
	emotionalKeywords = []string{
		"愤怒", "泪目", "感动", "崩溃", "怒了", "哭了", "心疼", "后悔",
		"heartbreaking", "outrageous", "terrifying", "incredible",
		"insane", "jaw-dropping", "amazing",
	}
)

// Extractor turns raw text into TextFeatures and numeric feature vectors.
// Extraction is pure and deterministic; only FitCorpus mutates state.
type Extractor struct {
	tfidf *TFIDF
}

// NewExtractor creates an extractor with an unfitted term index
func NewExtractor() *Extractor {
	return &Extractor{tfidf: NewTFIDF(model.EmbeddingDim)}
}

// FitCorpus builds the term-weight index over all training documents.
// Must be called once before embeddings carry signal; until then the
// embedding component of every feature vector is all zeros.
func (e *Extractor) FitCorpus(docs []string) {
	e.tfidf.Fit(docs)
}

// CorpusFitted reports whether the term index has been built
func (e *Extractor) CorpusFitted() bool {
	return e.tfidf.Fitted()
}

// Extract computes the full feature breakdown for a text in a single scan.
// Malformed or empty text yields all-zero features rather than an error.
func (e *Extractor) Extract(text string) model.TextFeatures {
	f := model.TextFeatures{Embedding: make([]float64, model.EmbeddingDim)}
	if strings.TrimSpace(text) == "" {
		return f
	}

	var total, punct, letters, uppers int
	for _, r := range text {
		total++
		switch {
		case r == '!' || r == '！':
			f.ExclamationCount++
			punct++
		case r == '?' || r == '？':
			f.QuestionCount++
			punct++
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			punct++
		}
		if unicode.IsLetter(r) && !isCJK(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	f.Length = total
	if total > 0 {
		f.PunctuationRatio = float64(punct) / float64(total)
	}
	if letters > 0 {
		f.CapitalRatio = float64(uppers) / float64(letters)
	}

	words := Words(text)
	f.WordCount = len(words)
	if len(words) > 0 {
		runes := 0
		for _, w := range words {
			runes += len([]rune(w))
		}
		f.AvgWordLength = float64(runes) / float64(len(words))
	}
	f.SentenceCount = SentenceCount(text)

	lower := strings.ToLower(text)
	f.ClickbaitWords = countKeywords(lower, clickbaitKeywords)
	f.UrgencyWords = countKeywords(lower, urgencyKeywords)
	f.EmotionalWords = countKeywords(lower, emotionalKeywords)

	f.Embedding = e.tfidf.Vector(text)
	return f
}

// Vector assembles the flat numeric array consumed by the Bayes and forest
// models: normalized scalars first, then the embedding, in VectorNames order.
func (e *Extractor) Vector(f model.TextFeatures) []float64 {
	v := make([]float64, 0, len(scalarNames)+model.EmbeddingDim)
	v = append(v,
		clamp(float64(f.Length)/200.0),
		clamp(float64(f.WordCount)/50.0),
		clamp(float64(f.SentenceCount)/10.0),
		clamp(float64(f.ExclamationCount)/5.0),
		clamp(float64(f.QuestionCount)/5.0),
		f.PunctuationRatio,
		f.CapitalRatio,
		clamp(float64(f.ClickbaitWords)/5.0),
		clamp(float64(f.UrgencyWords)/5.0),
		clamp(float64(f.EmotionalWords)/5.0),
		clamp(f.AvgWordLength/10.0),
	)
	if len(f.Embedding) == model.EmbeddingDim {
		v = append(v, f.Embedding...)
	} else {
		v = append(v, make([]float64, model.EmbeddingDim)...)
	}
	return v
}

var scalarNames = []string{
	"length", "word_count", "sentence_count", "exclamation_count",
	"question_count", "punctuation_ratio", "capital_ratio",
	"clickbait_words", "urgency_words", "emotional_words", "avg_word_length",
}

// VectorNames returns one name per feature-vector dimension, matching the
// order produced by Vector.
func VectorNames() []string {
	names := make([]string, 0, len(scalarNames)+model.EmbeddingDim)
	names = append(names, scalarNames...)
	for i := 0; i < model.EmbeddingDim; i++ {
		names = append(names, "tfidf_"+strconv.Itoa(i))
	}
	return names
}

// VectorDim is the dimensionality of the shared feature vector
func VectorDim() int {
	return len(scalarNames) + model.EmbeddingDim
}

// KeywordHits returns the curated keywords actually present in the text,
// per list. Used to build human-readable reasoning strings.
func KeywordHits(text string) (clickbait, urgency, emotional []string) {
	lower := strings.ToLower(text)
	for _, k := range clickbaitKeywords {
		if strings.Contains(lower, k) {
			clickbait = append(clickbait, k)
		}
	}
	for _, k := range urgencyKeywords {
		if strings.Contains(lower, k) {
			urgency = append(urgency, k)
		}
	}
	for _, k := range emotionalKeywords {
		if strings.Contains(lower, k) {
			emotional = append(emotional, k)
		}
	}
	return clickbait, urgency, emotional
}

func countKeywords(lower string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		n += strings.Count(lower, k)
	}
	return n
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

