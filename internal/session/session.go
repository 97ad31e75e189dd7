package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/gofive-backend/internal/apperror"
	"github.com/rocketscienceinc/gofive-backend/internal/entity"
	"github.com/rocketscienceinc/gofive-backend/internal/gomoku"
)

type Mode string

const (
	ModeHuman Mode = "human"
	ModeAI    Mode = "ai"
)

type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateDraw       State = "draw"
)

const (
	defaultAIDelayMin = 500 * time.Millisecond
	defaultAIDelayMax = 1500 * time.Millisecond

	reportTimeout = 5 * time.Second
)

type scoreReporter interface {
	Report(ctx context.Context, identity string, steps, timeSeconds int) error
}

type identityProvider interface {
	CurrentIdentity(ctx context.Context) (string, error)
}

type Settings struct {
	BoardSize  int
	Mode       Mode
	AIDelayMin time.Duration
	AIDelayMax time.Duration
}

type Dependencies struct {
	Reporter  scoreReporter
	Identity  identityProvider
	Scheduler Scheduler
	Rand      *rand.Rand
	// Runner executes score reports, a new goroutine per report when nil.
	Runner func(func())
}

// Snapshot is a read-only view of the session at its current ply.
type Snapshot struct {
	Board     entity.Board `json:"board"`
	Ply       int          `json:"ply"`
	Moves     int          `json:"moves"`
	Next      entity.Mark  `json:"next"`
	State     State        `json:"state"`
	Winner    entity.Mark  `json:"winner"`
	Elapsed   int          `json:"elapsed"`
	AIPending bool         `json:"ai_pending"`
	Mode      Mode         `json:"mode"`
}

// GameSession owns one game: its move history, ply pointer, timer and terminal state.
// All transitions are serialised by mu; observers are called after it is released.
type GameSession struct {
	logger    *slog.Logger
	settings  Settings
	aiMark    entity.Mark
	reporter  scoreReporter
	identity  identityProvider
	scheduler Scheduler
	rnd       *rand.Rand
	run       func(func())

	mu         sync.Mutex
	history    []entity.Board
	ply        int
	elapsed    int
	state      State
	winner     entity.Mark
	reported   bool
	generation uint64
	pending    Task
	closed     bool

	onChange func(Snapshot)
	onNotice func(error)
}

func New(logger *slog.Logger, settings Settings, deps Dependencies) *GameSession {
	if settings.BoardSize <= 0 {
		settings.BoardSize = entity.DefaultBoardSize
	}

	if settings.Mode == "" {
		settings.Mode = ModeHuman
	}

	if settings.AIDelayMin <= 0 && settings.AIDelayMax <= 0 {
		settings.AIDelayMin, settings.AIDelayMax = defaultAIDelayMin, defaultAIDelayMax
	}

	if deps.Scheduler == nil {
		deps.Scheduler = TimerScheduler{}
	}

	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // game pacing only
	}

	if deps.Runner == nil {
		deps.Runner = func(job func()) { go job() }
	}

	session := &GameSession{
		logger:    logger.With("component", "session", "mode", settings.Mode),
		settings:  settings,
		aiMark:    entity.PlayerB,
		reporter:  deps.Reporter,
		identity:  deps.Identity,
		scheduler: deps.Scheduler,
		rnd:       deps.Rand,
		run:       deps.Runner,
	}
	session.resetLocked()

	return session
}

// OnChange - registers the observer called after every state change, including AI moves and ticks.
func (that *GameSession) OnChange(observer func(Snapshot)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onChange = observer
}

// OnNotice - registers the observer for recoverable collaborator failures.
func (that *GameSession) OnNotice(observer func(error)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onNotice = observer
}

func (that *GameSession) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// ApplyMove - places the mark of the side to move at index.
func (that *GameSession) ApplyMove(index int) (Snapshot, error) {
	that.mu.Lock()

	if that.pending != nil {
		that.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrAIMovePending)
	}

	report, err := that.applyLocked(index)
	if err != nil {
		that.mu.Unlock()
		return Snapshot{}, err
	}

	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	that.dispatch(report)
	that.notifyChange(snapshot)

	return snapshot, nil
}

// NavigateTo - moves the ply pointer to a past snapshot. History is kept until the next move.
func (that *GameSession) NavigateTo(ply int) (Snapshot, error) {
	that.mu.Lock()

	if that.closed {
		that.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)
	}

	if ply < 0 || ply >= len(that.history) {
		that.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %w: %d of %d", apperror.ErrInvalidMove, apperror.ErrInvalidPly, ply, len(that.history)-1)
	}

	that.cancelPendingLocked()
	that.ply = ply
	report := that.evaluateLocked()
	that.scheduleAILocked()

	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	that.dispatch(report)
	that.notifyChange(snapshot)

	return snapshot, nil
}

// Reset - starts a new game on the same session.
func (that *GameSession) Reset() Snapshot {
	that.mu.Lock()

	that.cancelPendingLocked()
	that.resetLocked()
	that.scheduleAILocked()

	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	that.notifyChange(snapshot)

	return snapshot
}

// Tick - advances the elapsed-time counter by one second while the game is in progress.
func (that *GameSession) Tick() bool {
	that.mu.Lock()

	if that.closed || that.state != StateInProgress {
		that.mu.Unlock()
		return false
	}

	that.elapsed++
	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	that.notifyChange(snapshot)

	return true
}

// Close - cancels pending AI work, the session accepts no moves afterwards.
func (that *GameSession) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	that.cancelPendingLocked()
}

func (that *GameSession) resetLocked() {
	that.history = []entity.Board{entity.NewBoard(that.settings.BoardSize)}
	that.ply = 0
	that.elapsed = 0
	that.state = StateInProgress
	that.winner = entity.Empty
	that.reported = false
}

func (that *GameSession) applyLocked(index int) (func(), error) {
	if that.closed || that.state != StateInProgress {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)
	}

	next, err := that.history[that.ply].CloneWith(index, entity.MarkForPly(that.ply))
	if err != nil {
		return nil, err
	}

	// a move after navigating back drops the abandoned branch
	that.history = append(that.history[:that.ply+1], next)
	that.ply++

	report := that.evaluateLocked()
	that.scheduleAILocked()

	return report, nil
}

// evaluateLocked - derives the state from the board at the current ply.
// Returns the score report job when the game has just been won for the first time.
func (that *GameSession) evaluateLocked() func() {
	board := that.history[that.ply]

	switch winner := gomoku.FindWinner(board); {
	case winner != entity.Empty:
		that.state = StateWon
		that.winner = winner
	case board.IsFull():
		that.state = StateDraw
		that.winner = entity.Empty
	default:
		that.state = StateInProgress
		that.winner = entity.Empty
	}

	if that.state != StateWon || that.reported {
		return nil
	}

	that.reported = true
	that.logger.Info("game won", "winner", that.winner, "steps", that.ply, "time", that.elapsed)

	return that.reportJob(that.ply, that.elapsed)
}

func (that *GameSession) reportJob(steps, seconds int) func() {
	if that.reporter == nil || that.identity == nil {
		return nil
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		log := that.logger.With("method", "report", "steps", steps, "time", seconds)

		identity, err := that.identity.CurrentIdentity(ctx)
		if err != nil {
			log.Error("failed to resolve identity", "error", err)
			that.notifyNotice(fmt.Errorf("%w: failed to resolve identity: %w", apperror.ErrCollaboratorUnavailable, err))
			return
		}

		if identity == "" {
			log.Info("anonymous player, score is not reported")
			return
		}

		if err = that.reporter.Report(ctx, identity, steps, seconds); err != nil {
			log.Error("failed to report score", "identity", identity, "error", err)
			that.notifyNotice(fmt.Errorf("%w: failed to report score: %w", apperror.ErrCollaboratorUnavailable, err))
			return
		}

		log.Info("score reported", "identity", identity)
	}
}

func (that *GameSession) scheduleAILocked() {
	if that.closed || that.settings.Mode != ModeAI || that.state != StateInProgress {
		return
	}

	if entity.MarkForPly(that.ply) != that.aiMark {
		return
	}

	that.cancelPendingLocked()

	generation, ply := that.generation, that.ply
	that.pending = that.scheduler.AfterFunc(that.aiDelay(), func() {
		that.runAIMove(generation, ply)
	})
}

// runAIMove - applies the heuristic move scheduled at (generation, ply); stale callbacks do nothing.
func (that *GameSession) runAIMove(generation uint64, ply int) {
	that.mu.Lock()

	if that.closed || that.pending == nil || generation != that.generation || ply != that.ply {
		that.mu.Unlock()
		return
	}

	that.pending = nil
	log := that.logger.With("method", "runAIMove", "ply", ply)

	cell, err := gomoku.ChooseMove(that.history[ply], that.aiMark, that.aiMark.Opponent(), that.rnd)
	if err != nil {
		that.mu.Unlock()
		log.Error("failed to choose move", "error", err)
		return
	}

	report, err := that.applyLocked(cell)
	if err != nil {
		that.mu.Unlock()
		log.Error("failed to apply ai move", "cell", cell, "error", err)
		return
	}

	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	log.Debug("ai moved", "cell", cell)

	that.dispatch(report)
	that.notifyChange(snapshot)
}

func (that *GameSession) cancelPendingLocked() {
	that.generation++

	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}
}

func (that *GameSession) aiDelay() time.Duration {
	minDelay, maxDelay := that.settings.AIDelayMin, that.settings.AIDelayMax
	if maxDelay <= minDelay {
		return minDelay
	}

	return minDelay + time.Duration(that.rnd.Int63n(int64(maxDelay-minDelay)))
}

func (that *GameSession) snapshotLocked() Snapshot {
	next := entity.Empty
	if that.state == StateInProgress {
		next = entity.MarkForPly(that.ply)
	}

	return Snapshot{
		Board:     that.history[that.ply],
		Ply:       that.ply,
		Moves:     len(that.history) - 1,
		Next:      next,
		State:     that.state,
		Winner:    that.winner,
		Elapsed:   that.elapsed,
		AIPending: that.pending != nil,
		Mode:      that.settings.Mode,
	}
}

func (that *GameSession) dispatch(job func()) {
	if job != nil {
		that.run(job)
	}
}

func (that *GameSession) notifyChange(snapshot Snapshot) {
	that.mu.Lock()
	observer := that.onChange
	that.mu.Unlock()

	if observer != nil {
		observer(snapshot)
	}
}

func (that *GameSession) notifyNotice(err error) {
	that.mu.Lock()
	observer := that.onNotice
	that.mu.Unlock()

	if observer != nil {
		observer(err)
	}
}
