package model

import "fmt"

// Label is one of the two mutually exclusive text classes.
type Label string

const (
	LabelNormal    Label = "normal"
	LabelClickbait Label = "clickbait"
)

// ParseLabel converts a string into a Label
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case LabelNormal, LabelClickbait:
		return Label(s), nil
	}
	return "", fmt.Errorf("unknown label %q (want %q or %q)", s, LabelNormal, LabelClickbait)
}

// Valid reports whether the label is one of the known classes
func (l Label) Valid() bool {
	return l == LabelNormal || l == LabelClickbait
}

// TrainingSample is a single labeled text. Immutable once created;
// supplied in bulk to train calls.
type TrainingSample struct {
	Text  string `json:"text" yaml:"text"`
	Label Label  `json:"label" yaml:"label"`
}

// CountLabels returns the number of samples per class
func CountLabels(samples []TrainingSample) (normal, clickbait int) {
	for _, s := range samples {
		switch s.Label {
		case LabelNormal:
			normal++
		case LabelClickbait:
			clickbait++
		}
	}
	return normal, clickbait
}

// SplitByLabel partitions samples into the two classes, preserving order
func SplitByLabel(samples []TrainingSample) (normal, clickbait []TrainingSample) {
	for _, s := range samples {
		switch s.Label {
		case LabelNormal:
			normal = append(normal, s)
		case LabelClickbait:
			clickbait = append(clickbait, s)
		}
	}
	return normal, clickbait
}
