package feature

import (
	"reflect"
	"testing"
)

func TestWords_MixedScripts(t *testing.T) {
	words := Words("Breaking news 震惊了")
	// Each CJK character counts as its own word.
	want := []string{"Breaking", "news", "震", "惊", "了"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("expected %v, got %v", want, words)
	}
}

func TestWords_Empty(t *testing.T) {
	if words := Words(""); len(words) != 0 {
		t.Errorf("expected no words for empty text, got %v", words)
	}
	if words := Words("!!! ... ???"); len(words) != 0 {
		t.Errorf("expected no words for punctuation-only text, got %v", words)
	}
}

func TestTokenize_LatinStopwordsAndCase(t *testing.T) {
	tokens := Tokenize("The Secret IS out")
	// "the"/"is" are stop-words, single letters are dropped, rest lowercased.
	want := []string{"secret", "out"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("expected %v, got %v", want, tokens)
	}
}

func TestTokenize_CJKBigrams(t *testing.T) {
	tokens := Tokenize("震惊内幕")
	want := []string{"震惊", "惊内", "内幕"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("expected %v, got %v", want, tokens)
	}
}

func TestTokenize_CJKStopCharsFiltered(t *testing.T) {
	// '的' and '了' are stop characters; the surviving run is bigrammed.
	tokens := Tokenize("他的真相了")
	want := []string{"真相"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("expected %v, got %v", want, tokens)
	}
}

func TestTokenize_SingleCJKCharKept(t *testing.T) {
	tokens := Tokenize("钱")
	want := []string{"钱"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("expected %v, got %v", want, tokens)
	}
}

func TestSentenceCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"no terminator", 1},
		{"One. Two! Three?", 3},
		{"第一句。第二句！", 2},
		{"...!!!", 0},
		{"trailing terminator only.", 1},
	}
	for _, c := range cases {
		if got := SentenceCount(c.text); got != c.want {
			t.Errorf("SentenceCount(%q): expected %d, got %d", c.text, c.want, got)
		}
	}
}
