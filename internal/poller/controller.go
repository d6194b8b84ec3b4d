package poller

import (
	"context"
	"sync"
	"time"

	"surveysynth/internal/api"
	"surveysynth/internal/stats"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// State is the lifecycle position of the controller for its selected survey.
type State int

const (
	// Idle means no survey is selected and no timer is armed.
	Idle State = iota
	// Polling means a timer re-fetches the snapshot until the selected
	// survey reaches a terminal status.
	Polling
	// Stopped means the selected survey was observed analyzed; its data is
	// final and no further cycles are scheduled.
	Stopped
)

func (s State) String() string {
	switch s {
	case Polling:
		return "polling"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Snapshot is the immutable result of one fetch cycle. Handlers receive it
// by value; the controller never mutates a snapshot after handing it off.
type Snapshot struct {
	Surveys  []api.Survey
	Insights []api.Insight
	Charts   map[string][]string
	Stats    stats.DashboardStats
	Views    map[string]*stats.SurveyView

	// Target is the freshly fetched record for the selected survey, nil if
	// the backend no longer lists it.
	Target *api.Survey
}

// Handler consumes the snapshot produced by a completed fetch cycle.
type Handler func(Snapshot)

// Controller drives repeated backend fetches for one selected survey until
// its status reaches analyzed. A generation counter guards against a slow
// cycle from a previous selection overwriting newer state.
type Controller struct {
	client   api.Client
	userID   string
	interval time.Duration
	handler  Handler

	mu         sync.Mutex
	state      State
	selected   string
	generation uint64
	cancel     context.CancelFunc
}

// New creates a controller for the given user. The handler is invoked once
// per completed cycle; failed cycles invoke nothing and the next tick
// retries.
func New(client api.Client, userID string, interval time.Duration, handler Handler) *Controller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Controller{
		client:   client,
		userID:   userID,
		interval: interval,
		handler:  handler,
	}
}

// State returns the controller's current rest or polling state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Select targets a survey and decides whether to poll. It always performs one
// fresh fetch first: deciding from a stale cached status could skip polling
// a survey that is still processing. If the fresh status is already terminal
// the controller rests at Stopped without arming the timer; otherwise it
// polls on the configured interval until the status becomes analyzed.
//
// Selecting a new survey while already polling restarts evaluation against
// the new target and invalidates any in-flight cycle for the old one.
func (c *Controller) Select(ctx context.Context, uploadID string) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	gen := c.generation
	c.selected = uploadID

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = Polling
	c.mu.Unlock()

	log.Info().Str("upload", uploadID).Uint64("generation", gen).Msg("Survey selected")

	go c.run(loopCtx, gen, uploadID)
}

// Deselect cancels any armed timer and in-flight cycle and returns to Idle.
func (c *Controller) Deselect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.selected = ""
	c.state = Idle

	log.Debug().Msg("Survey deselected, polling cancelled")
}

// Close tears the controller down. Equivalent to Deselect.
func (c *Controller) Close() {
	c.Deselect()
}

func (c *Controller) run(ctx context.Context, gen uint64, uploadID string) {
	// Fresh check on selection: one immediate cycle before any timer fires.
	if done := c.cycle(ctx, gen, uploadID); done {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := c.cycle(ctx, gen, uploadID); done {
				return
			}
		}
	}
}

// cycle performs one fetch-and-reconcile round. It returns true when the
// loop should stop scheduling further cycles: either the target reached a
// terminal status or this generation was superseded.
func (c *Controller) cycle(ctx context.Context, gen uint64, uploadID string) bool {
	cycleID := uuid.NewString()
	logger := log.With().Str("cycle", cycleID).Str("upload", uploadID).Logger()

	snapshot, err := FetchSnapshot(ctx, c.client, c.userID)
	if err != nil {
		// Transient failure: state stays unchanged, the next tick retries.
		logger.Warn().Err(err).Msg("Fetch cycle failed, keeping previous snapshot")
		return false
	}

	c.mu.Lock()
	if c.generation != gen {
		// A newer selection (or deselect) happened while this cycle was in
		// flight; its results must not overwrite newer state.
		c.mu.Unlock()
		logger.Debug().Uint64("generation", gen).Msg("Discarding stale cycle result")
		return true
	}

	terminal := false
	for i := range snapshot.Surveys {
		if snapshot.Surveys[i].UploadID == uploadID {
			snapshot.Target = &snapshot.Surveys[i]
			terminal = snapshot.Surveys[i].Status.Terminal()
			break
		}
	}

	if terminal {
		c.state = Stopped
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
	}
	handler := c.handler
	c.mu.Unlock()

	if handler != nil {
		handler(snapshot)
	}

	if terminal {
		logger.Info().Msg("Survey analyzed, polling stopped")
	}
	return terminal
}
