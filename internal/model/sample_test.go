package model

import "testing"

func TestParseLabel(t *testing.T) {
	for _, s := range []string{"normal", "clickbait"} {
		label, err := ParseLabel(s)
		if err != nil {
			t.Errorf("ParseLabel(%q) failed: %v", s, err)
		}
		if string(label) != s || !label.Valid() {
			t.Errorf("ParseLabel(%q) = %q", s, label)
		}
	}
	for _, s := range []string{"", "spam", "Normal", "CLICKBAIT"} {
		if _, err := ParseLabel(s); err == nil {
			t.Errorf("ParseLabel(%q) should fail", s)
		}
	}
}

func TestCountAndSplitByLabel(t *testing.T) {
	samples := []TrainingSample{
		{Text: "a", Label: LabelNormal},
		{Text: "b", Label: LabelClickbait},
		{Text: "c", Label: LabelNormal},
	}
	normal, clickbait := CountLabels(samples)
	if normal != 2 || clickbait != 1 {
		t.Errorf("expected 2 normal, 1 clickbait; got %d, %d", normal, clickbait)
	}

	normals, clickbaits := SplitByLabel(samples)
	if len(normals) != 2 || len(clickbaits) != 1 {
		t.Fatalf("split sizes wrong: %d, %d", len(normals), len(clickbaits))
	}
	// Order within each class is preserved.
	if normals[0].Text != "a" || normals[1].Text != "c" {
		t.Errorf("normal order not preserved: %v", normals)
	}
}

func TestAllModelTypes_Order(t *testing.T) {
	types := AllModelTypes()
	if len(types) != 4 {
		t.Fatalf("expected 4 model types, got %d", len(types))
	}
	// Cheapest-first ordering that TrainAll depends on.
	if types[0] != ModelNaiveBayes || types[len(types)-1] != ModelCNN {
		t.Errorf("unexpected ordering: %v", types)
	}
}
