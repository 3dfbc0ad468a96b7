package model

// EmbeddingDim is the fixed width of the TF-IDF embedding component of
// every feature vector. Shorter term vectors are zero-padded to this size.
const EmbeddingDim = 20

// TextFeatures is the human-readable feature breakdown for a text sample.
// Derived deterministically from the text; recomputed on every extraction.
type TextFeatures struct {
	Length           int     `json:"length"`            // rune count
	WordCount        int     `json:"word_count"`        // CJK-aware word count
	SentenceCount    int     `json:"sentence_count"`    // terminator-delimited segments
	ExclamationCount int     `json:"exclamation_count"` // '!' and '！'
	QuestionCount    int     `json:"question_count"`    // '?' and '？'
	PunctuationRatio float64 `json:"punctuation_ratio"` // punctuation runes / total runes
	CapitalRatio     float64 `json:"capital_ratio"`     // uppercase letters / letters
	ClickbaitWords   int     `json:"clickbait_words"`   // curated clickbait keyword hits
	UrgencyWords     int     `json:"urgency_words"`     // curated urgency keyword hits
	EmotionalWords   int     `json:"emotional_words"`   // curated emotional keyword hits
	AvgWordLength    float64 `json:"avg_word_length"`

	// Embedding is the simplified term-weight vector, exactly EmbeddingDim
	// wide. All zeros when the corpus index has not been fitted.
	Embedding []float64 `json:"embedding"`
}
