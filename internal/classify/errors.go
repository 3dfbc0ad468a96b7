package classify

import (
	"errors"
	"fmt"
)

// Error taxonomy. All errors are local to one model instance; callers match
// with errors.Is.
var (
	// ErrInsufficientData - too few samples or classes for a training call.
	// Recoverable by resubmitting more data.
	ErrInsufficientData = errors.New("insufficient training data")

	// ErrModelNotTrained - prediction requested before training.
	ErrModelNotTrained = errors.New("model not trained")

	// ErrAlreadyTraining - a training operation is already in flight for
	// this model. Callers should retry later.
	ErrAlreadyTraining = errors.New("model already training")

	// ErrTrainingTimeout - a bounded-effort model exceeded its wall-clock
	// budget.
	ErrTrainingTimeout = errors.New("training timed out")
)

func insufficientData(need, got int) error {
	return fmt.Errorf("%w: need at least %d samples, got %d", ErrInsufficientData, need, got)
}

func insufficientClass(label string, need, got int) error {
	return fmt.Errorf("%w: need at least %d %q samples, got %d", ErrInsufficientData, need, label, got)
}
