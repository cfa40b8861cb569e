package diagnostic

import (
	"context"
	"time"
)

// Phase is one step of the searching interstitial.
type Phase struct {
	Label    string
	Duration time.Duration
}

// Phases play in order. They cannot be skipped.
type Phases []Phase

//nolint:mnd // phase durations
var SearchPhases = Phases{
	{Label: "Analyzing your responses", Duration: 1000 * time.Millisecond},
	{Label: "Scanning the advisor network", Duration: 1000 * time.Millisecond},
	{Label: "Matching sector expertise", Duration: 1000 * time.Millisecond},
	{Label: "Preparing your results", Duration: 600 * time.Millisecond},
}

// Scaled multiplies every duration by factor. Non-positive factors keep the phases as they are.
func (p Phases) Scaled(factor float64) Phases {
	if factor <= 0 {
		return p
	}
	scaled := make(Phases, len(p))
	for i, phase := range p {
		scaled[i] = Phase{Label: phase.Label, Duration: time.Duration(float64(phase.Duration) * factor)}
	}
	return scaled
}

// Total is the sum of all durations.
func (p Phases) Total() time.Duration {
	var total time.Duration
	for _, phase := range p {
		total += phase.Duration
	}
	return total
}

// From returns what is left to play after elapsed. offset is the index of the first remaining phase in p and its
// duration is shortened by the part that already passed.
func (p Phases) From(elapsed time.Duration) (int, Phases) {
	if elapsed <= 0 {
		return 0, p
	}
	var start time.Duration
	for i, phase := range p {
		if elapsed < start+phase.Duration {
			rest := append(Phases{{Label: phase.Label, Duration: start + phase.Duration - elapsed}}, p[i+1:]...)
			return i, rest
		}
		start += phase.Duration
	}
	return len(p), nil
}

// Play announces each phase with onPhase and waits for its duration.
//
// Play returns ctx.Err() as soon as ctx is done, stopping the pending timer, and the error of onPhase if it fails.
// A nil return means every phase ran to completion.
func (p Phases) Play(ctx context.Context, onPhase func(i int, phase Phase) error) error {
	for i, phase := range p {
		if err := onPhase(i, phase); err != nil {
			return err
		}
		timer := time.NewTimer(phase.Duration)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
