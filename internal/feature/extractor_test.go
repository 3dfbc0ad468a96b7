package feature

import (
	"reflect"
	"testing"

	"github.com/ppiankov/baitcheck/internal/model"
)

func TestExtractor_EmptyText(t *testing.T) {
	e := NewExtractor()
	for _, text := range []string{"", "   ", "\n\t"} {
		f := e.Extract(text)
		if f.Length != 0 || f.WordCount != 0 || f.SentenceCount != 0 {
			t.Errorf("expected zero counts for %q, got %+v", text, f)
		}
		if len(f.Embedding) != model.EmbeddingDim {
			t.Errorf("expected %d-dim embedding, got %d", model.EmbeddingDim, len(f.Embedding))
		}
		for i, v := range f.Embedding {
			if v != 0 {
				t.Errorf("expected zero embedding for %q, dim %d is %f", text, i, v)
			}
		}
	}
}

func TestExtractor_KeywordCounts(t *testing.T) {
	e := NewExtractor()
	f := e.Extract("震惊！SHOCKING secret exposed! Act fast, don't miss it!")

	// 震惊 + shocking + secret + exposed
	if f.ClickbaitWords != 4 {
		t.Errorf("expected 4 clickbait keywords, got %d", f.ClickbaitWords)
	}
	// act fast + don't miss
	if f.UrgencyWords != 2 {
		t.Errorf("expected 2 urgency keywords, got %d", f.UrgencyWords)
	}
	if f.ExclamationCount != 3 {
		t.Errorf("expected 3 exclamations (incl. fullwidth), got %d", f.ExclamationCount)
	}
}

func TestExtractor_Counts(t *testing.T) {
	e := NewExtractor()
	f := e.Extract("One sentence here. Another one?")

	if f.SentenceCount != 2 {
		t.Errorf("expected 2 sentences, got %d", f.SentenceCount)
	}
	if f.WordCount != 5 {
		t.Errorf("expected 5 words, got %d", f.WordCount)
	}
	if f.QuestionCount != 1 {
		t.Errorf("expected 1 question mark, got %d", f.QuestionCount)
	}
	if f.CapitalRatio <= 0 || f.CapitalRatio > 1 {
		t.Errorf("capital ratio out of range: %f", f.CapitalRatio)
	}
}

func TestExtractor_Deterministic(t *testing.T) {
	e := NewExtractor()
	e.FitCorpus([]string{"shocking secret revealed", "quiet normal report"})

	text := "shocking report about a secret"
	a := e.Extract(text)
	b := e.Extract(text)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("extraction not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestExtractor_VectorShape(t *testing.T) {
	e := NewExtractor()
	f := e.Extract("You won't believe this! Amazing!")
	v := e.Vector(f)

	if len(v) != VectorDim() {
		t.Fatalf("expected %d-dim vector, got %d", VectorDim(), len(v))
	}
	names := VectorNames()
	if len(names) != VectorDim() {
		t.Fatalf("expected %d names, got %d", VectorDim(), len(names))
	}
	// Scalar components are normalized into [0,1].
	for i := 0; i < len(scalarNames); i++ {
		if v[i] < 0 || v[i] > 1 {
			t.Errorf("scalar %s = %f out of [0,1]", names[i], v[i])
		}
	}
}

func TestExtractor_EmbeddingZeroBeforeFit(t *testing.T) {
	e := NewExtractor()
	if e.CorpusFitted() {
		t.Fatal("expected unfitted extractor")
	}
	f := e.Extract("shocking secret")
	for i, v := range f.Embedding {
		if v != 0 {
			t.Errorf("expected zero embedding before FitCorpus, dim %d is %f", i, v)
		}
	}

	e.FitCorpus([]string{"shocking secret revealed", "shocking trick exposed"})
	if !e.CorpusFitted() {
		t.Fatal("expected fitted extractor after FitCorpus")
	}
	f = e.Extract("shocking secret")
	nonzero := false
	for _, v := range f.Embedding {
		if v != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Error("expected non-zero embedding after FitCorpus")
	}
}

func TestKeywordHits(t *testing.T) {
	clickbait, urgency, emotional := KeywordHits("震惊！Last chance to see this amazing trick")
	if len(clickbait) == 0 {
		t.Error("expected clickbait hits (震惊, trick)")
	}
	if len(urgency) == 0 {
		t.Error("expected urgency hits (last chance)")
	}
	if len(emotional) == 0 {
		t.Error("expected emotional hits (amazing)")
	}

	clickbait, urgency, emotional = KeywordHits("quarterly earnings were flat")
	if len(clickbait)+len(urgency)+len(emotional) != 0 {
		t.Errorf("expected no hits for plain text, got %v %v %v", clickbait, urgency, emotional)
	}
}
