package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrOutput indicates an output destination could not be created or written.
	ErrOutput = errors.New("dynamo: output failure")

	// ErrConfig indicates a simulation parameter record is unusable.
	ErrConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownCircuit indicates a circuit kind with no registered model.
	ErrUnknownCircuit = errors.New("dynamo: unknown circuit")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Name    string
	Step    int
	Time    float32
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("%s: step %d (t=%s): %v", e.Name, e.Step, FormatFloat(e.Time), e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// OutputError marks err as an output failure while keeping it inspectable.
func OutputError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrOutput, err)
}
