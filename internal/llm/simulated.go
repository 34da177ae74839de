package llm

import "context"

// Simulated is the null-object Generator used when no backend is configured.
// It deterministically returns Sentinel for every prompt, which makes offline
// runs and tests behave identically to a real pipeline minus the text quality.
type Simulated struct{}

// Generate returns Sentinel. The only error condition is a cancelled context,
// mirroring real backends so callers exercise the same paths.
func (Simulated) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Sentinel, nil
}

func (Simulated) Name() string { return "simulated" }
