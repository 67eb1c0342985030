// Package breathing holds the paced-breathing techniques and a coach that
// follows a running session against a clock.
package breathing

import (
	"fmt"
	"time"
)

type PhaseKind string

const (
	Inhale PhaseKind = "inhale"
	Hold   PhaseKind = "hold"
	Exhale PhaseKind = "exhale"
)

// Phase is one segment of a breathing cycle. Scale is the size the guide
// circle reaches by the end of the phase.
type Phase struct {
	Label    string
	Duration time.Duration
	Scale    float64
	Kind     PhaseKind
}

type Technique struct {
	ID          string
	Name        string
	Summary     string
	Description string
	Phases      []Phase
}

// CycleLength is the duration of one full pass through the phases.
func (t Technique) CycleLength() time.Duration {
	var d time.Duration
	for _, p := range t.Phases {
		d += p.Duration
	}
	return d
}

func inhale(ms int, scale float64) Phase {
	return Phase{Label: "Inhale", Duration: time.Duration(ms) * time.Millisecond, Scale: scale, Kind: Inhale}
}

func hold(ms int, scale float64) Phase {
	return Phase{Label: "Hold", Duration: time.Duration(ms) * time.Millisecond, Scale: scale, Kind: Hold}
}

func exhale(ms int, scale float64) Phase {
	return Phase{Label: "Exhale", Duration: time.Duration(ms) * time.Millisecond, Scale: scale, Kind: Exhale}
}

var Techniques = []Technique{
	{
		ID:          "box",
		Name:        "Box Breathing",
		Summary:     "Inhale 4s, Hold 4s, Exhale 4s, Hold 4s",
		Description: "Inhale 4s, Hold 4s, Exhale 4s, Hold 4s. Used by Navy SEALs for focus and stress regulation.",
		Phases:      []Phase{inhale(4000, 1.5), hold(4000, 1.5), exhale(4000, 1.0), hold(4000, 1.0)},
	},
	{
		ID:          "4-7-8",
		Name:        "4-7-8 Relax",
		Summary:     "Inhale 4s, Hold 7s, Exhale 8s",
		Description: "Inhale 4s, Hold 7s, Exhale 8s. A natural tranquilizer for the nervous system, great for sleep.",
		Phases:      []Phase{inhale(4000, 1.5), hold(7000, 1.5), exhale(8000, 1.0)},
	},
	{
		ID:          "cyclic",
		Name:        "Cyclic Sighing",
		Summary:     "Double inhale, long exhale",
		Description: "Double inhale, long exhale. Proven to be the fastest way to reduce physiological arousal.",
		Phases:      []Phase{inhale(1500, 1.3), inhale(1500, 1.6), exhale(6000, 1.0)},
	},
	{
		ID:          "resonance",
		Name:        "Coherent Breathing",
		Summary:     "Inhale 6s, Exhale 6s",
		Description: "Inhale 6s, Exhale 6s. Maximizes Heart Rate Variability (HRV) to balance the nervous system.",
		Phases:      []Phase{inhale(6000, 1.5), exhale(6000, 1.0)},
	},
	{
		ID:          "panic",
		Name:        "Panic SOS",
		Summary:     "Inhale 4s, Exhale 8s",
		Description: "Inhale 4s, Exhale 8s. Double-length exhales trigger the parasympathetic brake to stop panic attacks.",
		Phases:      []Phase{inhale(4000, 1.4), exhale(8000, 1.0)},
	},
	{
		ID:          "deep",
		Name:        "Deep Calm",
		Summary:     "Inhale 4s, Hold 2s, Exhale 6s",
		Description: "Inhale 4s, Hold 2s, Exhale 6s. A gentle rhythm to settle a racing mind and reduce tension.",
		Phases:      []Phase{inhale(4000, 1.4), hold(2000, 1.4), exhale(6000, 1.0)},
	},
}

// Lookup finds a technique by id.
func Lookup(id string) (Technique, error) {
	for _, t := range Techniques {
		if t.ID == id {
			return t, nil
		}
	}
	return Technique{}, fmt.Errorf("unknown breathing technique %q", id)
}
