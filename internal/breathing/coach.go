package breathing

import (
	"errors"
	"time"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

var ErrNotStopped = errors.New("breathing session has not been stopped")

const defaultAnxiety = 5

// State is a snapshot of a session for rendering.
type State struct {
	Running       bool
	PhaseIndex    int
	Instruction   string
	Scale         float64
	PhaseProgress float64
	Elapsed       int // whole seconds
}

// Coach follows one session of a technique. The phase is derived from the
// elapsed time, so callers can sample State at any rate.
type Coach struct {
	Technique     Technique
	AnxietyBefore int

	now      func() time.Time
	start    time.Time
	running  bool
	duration int
}

// NewCoach prepares a session. A zero anxiety rating uses the default of 5.
// now may be nil for time.Now.
func NewCoach(t Technique, anxietyBefore int, now func() time.Time) *Coach {
	if now == nil {
		now = time.Now
	}
	if anxietyBefore == 0 {
		anxietyBefore = defaultAnxiety
	}
	return &Coach{Technique: t, AnxietyBefore: anxietyBefore, now: now}
}

func (c *Coach) Start() {
	c.start = c.now()
	c.running = true
	c.duration = 0
}

func (c *Coach) Running() bool { return c.running }

func (c *Coach) State() State {
	if !c.running {
		return State{Instruction: "Get Ready", Scale: 1}
	}

	elapsed := c.now().Sub(c.start)
	phases := c.Technique.Phases
	pos := elapsed % c.Technique.CycleLength()

	i := 0
	for pos >= phases[i].Duration {
		pos -= phases[i].Duration
		i = (i + 1) % len(phases)
	}
	phase := phases[i]
	prev := phases[(i+len(phases)-1)%len(phases)].Scale
	progress := float64(pos) / float64(phase.Duration)

	return State{
		Running:       true,
		PhaseIndex:    i,
		Instruction:   phase.Label,
		Scale:         prev + (phase.Scale-prev)*progress,
		PhaseProgress: progress,
		Elapsed:       int(elapsed / time.Second),
	}
}

// Stop ends the session and returns its length in seconds. ok is false when
// the session was too short to keep.
func (c *Coach) Stop() (seconds int, ok bool) {
	if !c.running {
		return 0, false
	}
	c.running = false
	c.duration = int(c.now().Sub(c.start) / time.Second)
	return c.duration, c.duration >= constants.MinBreathingSeconds
}

// Session builds the record for a stopped session. A zero after-rating
// repeats the before-rating.
func (c *Coach) Session(anxietyAfter int) (models.BreathingSession, error) {
	if c.running || c.start.IsZero() {
		return models.BreathingSession{}, ErrNotStopped
	}
	if anxietyAfter == 0 {
		anxietyAfter = c.AnxietyBefore
	}
	return models.BreathingSession{
		Date:            c.now(),
		Technique:       c.Technique.ID,
		DurationSeconds: c.duration,
		Completed:       true,
		AnxietyBefore:   c.AnxietyBefore,
		AnxietyAfter:    anxietyAfter,
	}, nil
}
