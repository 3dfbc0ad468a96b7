package feature

import (
	"strings"
	"unicode"
)

// Stop-word lists for the term-weight index. Chinese single characters are
// filtered before bigram construction, so only multi-rune zh terms appear.
var (
	stopEnglish = map[string]struct{}{
		"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
		"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
		"it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {},
		"to": {}, "was": {}, "we": {}, "were": {}, "will": {}, "with": {},
		"you": {}, "your": {}, "this": {}, "they": {}, "have": {}, "not": {},
	}
	stopChinese = map[rune]struct{}{
		'的': {}, '了': {}, '是': {}, '在': {}, '和': {}, '有': {}, '我': {},
		'他': {}, '她': {}, '它': {}, '们': {}, '就': {}, '都': {}, '而': {},
		'及': {}, '与': {}, '着': {}, '或': {}, '一': {}, '个': {},
	}
)

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Words segments text into countable words. Latin/digit runs count as one
// word each; every CJK character counts as its own word. Used for word
// counts and average word length, not for the term index.
func Words(text string) []string {
	var words []string
	var run []rune
	flush := func() {
		if len(run) > 0 {
			words = append(words, string(run))
			run = run[:0]
		}
	}
	for _, r := range text {
		switch {
		case isCJK(r):
			flush()
			words = append(words, string(r))
		case isWordRune(r):
			run = append(run, r)
		default:
			flush()
		}
	}
	flush()
	return words
}

// Tokenize produces index terms for the TF-IDF embedding and the CNN
// vocabulary: lowercased Latin runs (length >= 2, stop-worded) and
// overlapping CJK character bigrams (single-character runs kept as-is).
func Tokenize(text string) []string {
	var tokens []string
	var latin []rune
	var cjk []rune

	flushLatin := func() {
		if len(latin) >= 2 {
			tok := strings.ToLower(string(latin))
			if _, stop := stopEnglish[tok]; !stop {
				tokens = append(tokens, tok)
			}
		}
		latin = latin[:0]
	}
	flushCJK := func() {
		defer func() { cjk = cjk[:0] }()
		var kept []rune
		for _, r := range cjk {
			if _, stop := stopChinese[r]; !stop {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			return
		}
		if len(kept) == 1 {
			tokens = append(tokens, string(kept))
			return
		}
		for i := 0; i+1 < len(kept); i++ {
			tokens = append(tokens, string(kept[i:i+2]))
		}
	}

	for _, r := range text {
		switch {
		case isCJK(r):
			flushLatin()
			cjk = append(cjk, r)
		case isWordRune(r):
			flushCJK()
			latin = append(latin, r)
		default:
			flushLatin()
			flushCJK()
		}
	}
	flushLatin()
	flushCJK()
	return tokens
}

// SentenceCount counts terminator-delimited segments that contain at least
// one word rune.
func SentenceCount(text string) int {
	count := 0
	hasContent := false
	for _, r := range text {
		switch r {
		case '.', '!', '?', ';', '。', '！', '？', '；', '\n':
			if hasContent {
				count++
				hasContent = false
			}
		default:
			if isWordRune(r) {
				hasContent = true
			}
		}
	}
	if hasContent {
		count++
	}
	return count
}
