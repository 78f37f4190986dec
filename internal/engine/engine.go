// Package engine drives a quiz run: it scores selections, shows feedback,
// advances after a delay and keeps the persisted progress in step.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mindreset/internal/bank"
	"github.com/abhisek/mindreset/internal/cue"
	"github.com/abhisek/mindreset/internal/progress"
)

// DefaultAdvanceDelay is how long feedback stays on screen.
const DefaultAdvanceDelay = 2 * time.Second

// Points per option key.
const (
	PointsC = 10
	PointsB = 5
)

// ErrNoBank is returned by New when Options.Bank is nil.
var ErrNoBank = errors.New("engine: bank is required")

// Points returns the XP awarded for an option key.
func Points(key string) int {
	switch key {
	case "C":
		return PointsC
	case "B":
		return PointsB
	default:
		return 0
	}
}

// Recorder receives every scored selection.
type Recorder interface {
	Append(ctx context.Context, rec progress.AnswerRecord) error
}

// Options configures an Engine. Only Bank is required.
type Options struct {
	Bank         *bank.Bank
	Store        progress.KV
	Cues         cue.Player
	Scheduler    Scheduler
	Milestones   MilestonePolicy
	AdvanceDelay time.Duration
	Recorder     Recorder
	Logger       *zap.Logger

	// OnAdvance is called after a scheduled advance has been applied. It is
	// not called for Skip or Restart, whose callers already hold the result.
	OnAdvance func(View)
}

// View is a consistent copy of everything a screen needs.
type View struct {
	Loaded   bool
	Position int
	Total    int
	Score    int
	Percent  int
	Finished bool
	RunID    string

	Question    bank.Question
	HasQuestion bool
	LevelIndex  int
	LevelTitle  string
	LevelSizes  []int

	SelectedKey     string
	FeedbackVisible bool
	Milestone       bool // the current selection completed a milestone
}

// Engine is safe for concurrent use by a UI goroutine and its own timer.
type Engine struct {
	bank       *bank.Bank
	kv         progress.KV
	cues       cue.Player
	sched      Scheduler
	milestones MilestonePolicy
	delay      time.Duration
	rec        Recorder
	log        *zap.Logger
	onAdvance  func(View)

	mu        sync.Mutex
	state     progress.State
	selected  string
	feedback  bool
	milestone bool
	pending   *pendingAdvance
	closed    bool
	loaded    bool
	runID     string
}

type pendingAdvance struct {
	task Task
}

// New creates an engine positioned at the start. Call Load to restore the
// persisted progress.
func New(opts Options) (*Engine, error) {
	if opts.Bank == nil {
		return nil, ErrNoBank
	}
	e := &Engine{
		bank:       opts.Bank,
		kv:         opts.Store,
		cues:       opts.Cues,
		sched:      opts.Scheduler,
		milestones: opts.Milestones,
		delay:      opts.AdvanceDelay,
		rec:        opts.Recorder,
		log:        opts.Logger,
		onAdvance:  opts.OnAdvance,
		runID:      uuid.NewString(),
	}
	if e.kv == nil {
		e.kv = progress.NewMemoryStore()
	}
	if e.cues == nil {
		e.cues = cue.Nop{}
	}
	if e.sched == nil {
		e.sched = TimerScheduler{}
	}
	if e.milestones == nil {
		e.milestones = EveryN(DefaultMilestoneInterval)
	}
	if e.delay <= 0 {
		e.delay = DefaultAdvanceDelay
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e, nil
}

// Load reads the persisted progress. Missing or malformed values fall back
// to zero; read failures are logged and the run starts fresh.
func (e *Engine) Load(ctx context.Context) View {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := progress.Load(ctx, e.kv, e.bank.Len())
	if err != nil {
		e.log.Warn("failed to load progress", zap.Error(err))
	}
	e.state = st
	e.loaded = true
	e.log.Info("progress loaded",
		zap.Int("position", st.Position),
		zap.Int("score", st.Score),
		zap.Int("total", e.bank.Len()))
	return e.viewLocked()
}

// SelectAnswer scores key for the active question. It returns false without
// changing anything when a selection is already showing, the run is
// finished, or the engine is closed.
func (e *Engine) SelectAnswer(ctx context.Context, key string) bool {
	e.mu.Lock()

	q, ok := e.bank.At(e.state.Position)
	if e.closed || key == "" || e.selected != "" || !ok {
		e.mu.Unlock()
		return false
	}

	pos := e.state.Position
	points := Points(key)
	e.selected = key
	e.feedback = true
	e.state.Score += points
	e.milestone = e.milestones.IsMilestone(pos)
	e.persistLocked(ctx)
	e.recordLocked(ctx, progress.AnswerRecord{
		RunID:      e.runID,
		Position:   pos,
		QuestionID: q.ID,
		Key:        key,
		Points:     points,
	})

	p := &pendingAdvance{}
	e.pending = p
	p.task = e.sched.AfterFunc(e.delay, func() { e.fire(p) })
	milestone := e.milestone
	e.mu.Unlock()

	e.log.Debug("answer selected",
		zap.Int("position", pos),
		zap.Int("question", q.ID),
		zap.String("key", key),
		zap.Int("points", points),
		zap.Bool("milestone", milestone))

	e.play(ctx, cue.ForKey(key))
	if milestone {
		e.play(ctx, cue.Milestone)
	}
	return true
}

// Skip applies a pending advance immediately. It reports false when nothing
// is pending.
func (e *Engine) Skip() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.pending == nil {
		return false
	}
	e.pending.task.Cancel()
	e.advanceLocked(context.Background())
	return true
}

// Restart cancels any pending advance, wipes the store and starts a new run
// from position 0 with no score.
func (e *Engine) Restart(ctx context.Context) View {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelLocked()
	if err := e.kv.Clear(ctx); err != nil {
		e.log.Warn("failed to clear progress", zap.Error(err))
	}
	e.state = progress.State{}
	e.selected = ""
	e.feedback = false
	e.milestone = false
	e.runID = uuid.NewString()
	e.persistLocked(ctx)
	e.log.Info("run restarted", zap.String("run_id", e.runID))
	return e.viewLocked()
}

// Close cancels any pending advance. Later selections are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelLocked()
	e.closed = true
}

// Snapshot returns the current view.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// IsFinished reports whether every question has been answered.
func (e *Engine) IsFinished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Position >= e.bank.Len()
}

// ProgressPercent returns completion as an integer percentage.
func (e *Engine) ProgressPercent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return percent(e.state.Position, e.bank.Len())
}

// Current returns the active question, or false once finished.
func (e *Engine) Current() (bank.Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bank.At(e.state.Position)
}

// fire runs on the scheduler's goroutine. A task that is no longer the
// pending one was cancelled or superseded and must not touch state.
func (e *Engine) fire(p *pendingAdvance) {
	e.mu.Lock()
	if e.closed || e.pending != p {
		e.mu.Unlock()
		return
	}
	e.advanceLocked(context.Background())
	v := e.viewLocked()
	onAdvance := e.onAdvance
	e.mu.Unlock()

	if onAdvance != nil {
		onAdvance(v)
	}
}

func (e *Engine) advanceLocked(ctx context.Context) {
	e.pending = nil
	e.selected = ""
	e.feedback = false
	e.milestone = false
	e.state.Position = min(e.state.Position+1, e.bank.Len())
	e.persistLocked(ctx)
}

func (e *Engine) cancelLocked() {
	if e.pending != nil {
		e.pending.task.Cancel()
		e.pending = nil
	}
}

func (e *Engine) persistLocked(ctx context.Context) {
	if err := progress.Save(ctx, e.kv, e.state); err != nil {
		e.log.Warn("failed to persist progress",
			zap.Int("position", e.state.Position),
			zap.Int("score", e.state.Score),
			zap.Error(err))
	}
}

func (e *Engine) recordLocked(ctx context.Context, rec progress.AnswerRecord) {
	if e.rec == nil {
		return
	}
	rec.AnsweredAt = time.Now()
	if err := e.rec.Append(ctx, rec); err != nil {
		e.log.Warn("failed to record answer", zap.Int("question", rec.QuestionID), zap.Error(err))
	}
}

func (e *Engine) play(ctx context.Context, c cue.Cue) {
	if err := e.cues.Play(ctx, c); err != nil {
		e.log.Debug("cue failed", zap.String("cue", string(c)), zap.Error(err))
	}
}

func (e *Engine) viewLocked() View {
	total := e.bank.Len()
	v := View{
		Loaded:          e.loaded,
		Position:        e.state.Position,
		Total:           total,
		Score:           e.state.Score,
		Percent:         percent(e.state.Position, total),
		Finished:        e.state.Position >= total,
		RunID:           e.runID,
		SelectedKey:     e.selected,
		FeedbackVisible: e.feedback,
		Milestone:       e.milestone,
	}
	v.Question, v.HasQuestion = e.bank.At(e.state.Position)
	v.LevelSizes = e.bank.LevelSizes()
	if levels := e.bank.Levels(); len(levels) > 0 {
		v.LevelIndex = e.bank.LevelAt(e.state.Position)
		v.LevelTitle = levels[v.LevelIndex].Title
	}
	return v
}

func percent(position, total int) int {
	if total <= 0 {
		return 0
	}
	return 100 * position / total
}
