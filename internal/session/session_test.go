package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/rocketscienceinc/gofive-backend/internal/apperror"
	"github.com/rocketscienceinc/gofive-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errStorageDown = errors.New("storage down")

// winningMoves - X completes row 7 cols 7-11 on the ninth ply.
var winningMoves = []int{112, 127, 113, 128, 114, 129, 115, 130, 116}

type fakeTask struct {
	callback func()
	delay    time.Duration
	stopped  bool
}

func (that *fakeTask) Stop() bool {
	wasActive := !that.stopped
	that.stopped = true
	return wasActive
}

// fakeScheduler never fires on its own; tests fire tasks explicitly, including stopped ones.
type fakeScheduler struct {
	tasks []*fakeTask
}

func (that *fakeScheduler) AfterFunc(delay time.Duration, callback func()) Task {
	task := &fakeTask{callback: callback, delay: delay}
	that.tasks = append(that.tasks, task)
	return task
}

func (that *fakeScheduler) last(t *testing.T) *fakeTask {
	t.Helper()
	require.NotEmpty(t, that.tasks)
	return that.tasks[len(that.tasks)-1]
}

type mockReporter struct {
	mock.Mock
}

func (that *mockReporter) Report(ctx context.Context, identity string, steps, timeSeconds int) error {
	args := that.Called(ctx, identity, steps, timeSeconds)
	return args.Error(0)
}

type mockIdentity struct {
	mock.Mock
}

func (that *mockIdentity) CurrentIdentity(ctx context.Context) (string, error) {
	args := that.Called(ctx)
	return args.String(0), args.Error(1)
}

type fixture struct {
	session   *GameSession
	scheduler *fakeScheduler
	reporter  *mockReporter
	identity  *mockIdentity
	notices   []error
}

func newFixture(t *testing.T, settings Settings) *fixture {
	t.Helper()

	f := &fixture{
		scheduler: &fakeScheduler{},
		reporter:  &mockReporter{},
		identity:  &mockIdentity{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.session = New(logger, settings, Dependencies{
		Reporter:  f.reporter,
		Identity:  f.identity,
		Scheduler: f.scheduler,
		Rand:      rand.New(rand.NewSource(1)),
		Runner:    func(job func()) { job() },
	})
	f.session.OnNotice(func(err error) { f.notices = append(f.notices, err) })

	t.Cleanup(func() {
		f.reporter.AssertExpectations(t)
		f.identity.AssertExpectations(t)
	})

	return f
}

func (that *fixture) play(t *testing.T, cells ...int) Snapshot {
	t.Helper()

	var snapshot Snapshot
	for _, cell := range cells {
		var err error
		snapshot, err = that.session.ApplyMove(cell)
		require.NoError(t, err)
	}

	return snapshot
}

func TestNew(t *testing.T) {
	// When: a new session is created
	f := newFixture(t, Settings{BoardSize: 15})

	// Then: it starts on an empty board with X to move
	snapshot := f.session.Snapshot()
	assert.Equal(t, 0, snapshot.Ply)
	assert.Equal(t, 0, snapshot.Moves)
	assert.Equal(t, entity.PlayerA, snapshot.Next)
	assert.Equal(t, StateInProgress, snapshot.State)
	assert.Equal(t, 0, snapshot.Elapsed)
	assert.Equal(t, ModeHuman, snapshot.Mode)
	assert.Len(t, snapshot.Board.EmptyCells(), 225)
}

func TestGameSession_ApplyMove(t *testing.T) {
	t.Run("Marks alternate starting with X", func(t *testing.T) {
		// Given: a human vs human session
		f := newFixture(t, Settings{BoardSize: 15})
		cells := []int{0, 20, 40, 60, 80, 100}

		for ply, cell := range cells {
			// When: the next move is applied
			snapshot, err := f.session.ApplyMove(cell)
			require.NoError(t, err)

			// Then: the mark matches the ply parity
			assert.Equal(t, entity.MarkForPly(ply), snapshot.Board.At(cell))
			assert.Equal(t, entity.MarkForPly(ply+1), snapshot.Next)
			assert.Equal(t, ply+1, snapshot.Ply)
		}
	})

	t.Run("Error on occupied cell leaves the session unchanged", func(t *testing.T) {
		// Given: X at 5
		f := newFixture(t, Settings{BoardSize: 15})
		before := f.play(t, 5)

		// When: O plays 5
		_, err := f.session.ApplyMove(5)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, f.session.Snapshot())
	})

	t.Run("Error on out of range cell", func(t *testing.T) {
		f := newFixture(t, Settings{BoardSize: 15})

		_, err := f.session.ApplyMove(225)
		require.ErrorIs(t, err, apperror.ErrInvalidCell)

		_, err = f.session.ApplyMove(-1)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)

		assert.Equal(t, 0, f.session.Snapshot().Moves)
	})
}

func TestGameSession_Win(t *testing.T) {
	t.Run("Five in a row wins and reports once", func(t *testing.T) {
		// Given: a signed in player and three seconds on the clock
		f := newFixture(t, Settings{BoardSize: 15})
		f.identity.On("CurrentIdentity", mock.Anything).Return("alice", nil).Once()
		f.reporter.On("Report", mock.Anything, "alice", 9, 3).Return(nil).Once()

		for i := 0; i < 3; i++ {
			require.True(t, f.session.Tick())
		}

		// When: X completes five
		snapshot := f.play(t, winningMoves...)

		// Then: the game is won by X
		assert.Equal(t, StateWon, snapshot.State)
		assert.Equal(t, entity.PlayerA, snapshot.Winner)
		assert.Equal(t, entity.Empty, snapshot.Next)

		// And: no further moves are accepted
		_, err := f.session.ApplyMove(0)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrGameFinished)

		// And: the timer is frozen
		assert.False(t, f.session.Tick())
		assert.Equal(t, 3, f.session.Snapshot().Elapsed)
	})

	t.Run("Winning again on another branch does not report twice", func(t *testing.T) {
		// Given: a won game
		f := newFixture(t, Settings{BoardSize: 15})
		f.identity.On("CurrentIdentity", mock.Anything).Return("alice", nil).Once()
		f.reporter.On("Report", mock.Anything, "alice", 9, 0).Return(nil).Once()
		f.play(t, winningMoves...)

		// When: the last move is taken back and the win is replayed from the other end
		snapshot, err := f.session.NavigateTo(8)
		require.NoError(t, err)
		assert.Equal(t, StateInProgress, snapshot.State)

		snapshot = f.play(t, 111)

		// Then: the game is won again but Report was called only once
		assert.Equal(t, StateWon, snapshot.State)
		f.reporter.AssertNumberOfCalls(t, "Report", 1)
	})

	t.Run("Anonymous players are not reported", func(t *testing.T) {
		f := newFixture(t, Settings{BoardSize: 15})
		f.identity.On("CurrentIdentity", mock.Anything).Return("", nil).Once()

		snapshot := f.play(t, winningMoves...)

		assert.Equal(t, StateWon, snapshot.State)
		f.reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.notices)
	})

	t.Run("Identity failure is a notice", func(t *testing.T) {
		f := newFixture(t, Settings{BoardSize: 15})
		f.identity.On("CurrentIdentity", mock.Anything).Return("", errStorageDown).Once()

		snapshot := f.play(t, winningMoves...)

		assert.Equal(t, StateWon, snapshot.State)
		require.Len(t, f.notices, 1)
		assert.ErrorIs(t, f.notices[0], apperror.ErrCollaboratorUnavailable)
		assert.ErrorIs(t, f.notices[0], errStorageDown)
	})

	t.Run("Report failure keeps the game won", func(t *testing.T) {
		f := newFixture(t, Settings{BoardSize: 15})
		f.identity.On("CurrentIdentity", mock.Anything).Return("alice", nil).Once()
		f.reporter.On("Report", mock.Anything, "alice", 9, 0).Return(errStorageDown).Once()

		snapshot := f.play(t, winningMoves...)

		assert.Equal(t, StateWon, snapshot.State)
		assert.Equal(t, StateWon, f.session.Snapshot().State)
		require.Len(t, f.notices, 1)
		assert.ErrorIs(t, f.notices[0], apperror.ErrCollaboratorUnavailable)
	})
}

func TestGameSession_Draw(t *testing.T) {
	// Given: a 2x2 board, which can never hold five in a row
	f := newFixture(t, Settings{BoardSize: 2})

	// When: every cell is filled
	snapshot := f.play(t, 0, 1, 2, 3)

	// Then: the game is a draw and is closed for moves and time
	assert.Equal(t, StateDraw, snapshot.State)
	assert.Equal(t, entity.Empty, snapshot.Winner)
	assert.False(t, f.session.Tick())

	_, err := f.session.ApplyMove(0)
	require.ErrorIs(t, err, apperror.ErrGameFinished)
}

func TestGameSession_NavigateTo(t *testing.T) {
	t.Run("Keeps history until the next move", func(t *testing.T) {
		// Given: three moves
		f := newFixture(t, Settings{BoardSize: 15})
		f.play(t, 0, 1, 2)

		// When: navigating back to ply 1
		snapshot, err := f.session.NavigateTo(1)

		// Then: the board shows ply 1 and the later plies are kept
		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.Ply)
		assert.Equal(t, 3, snapshot.Moves)
		assert.Equal(t, entity.PlayerB, snapshot.Next)
		assert.Equal(t, entity.Empty, snapshot.Board.At(1))

		// And: navigating forward again is possible
		snapshot, err = f.session.NavigateTo(3)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerA, snapshot.Board.At(2))
	})

	t.Run("A move after navigating back truncates forward history", func(t *testing.T) {
		// Given: three moves and a step back to ply 1
		f := newFixture(t, Settings{BoardSize: 15})
		f.play(t, 0, 1, 2)
		_, err := f.session.NavigateTo(1)
		require.NoError(t, err)

		// When: O plays somewhere else
		snapshot := f.play(t, 50)

		// Then: the abandoned plies are gone
		assert.Equal(t, 2, snapshot.Ply)
		assert.Equal(t, 2, snapshot.Moves)
		assert.Equal(t, entity.PlayerB, snapshot.Board.At(50))
		assert.Equal(t, entity.Empty, snapshot.Board.At(1))
		assert.Equal(t, entity.Empty, snapshot.Board.At(2))

		_, err = f.session.NavigateTo(3)
		require.ErrorIs(t, err, apperror.ErrInvalidPly)
	})

	t.Run("Error on invalid ply", func(t *testing.T) {
		f := newFixture(t, Settings{BoardSize: 15})

		_, err := f.session.NavigateTo(-1)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)

		_, err = f.session.NavigateTo(1)
		require.ErrorIs(t, err, apperror.ErrInvalidPly)
	})
}

func TestGameSession_Reset(t *testing.T) {
	// Given: a session mid-game with time on the clock
	f := newFixture(t, Settings{BoardSize: 15})
	f.play(t, 0, 1, 2, 3)
	f.session.Tick()
	f.session.Tick()

	// When: the session is reset
	snapshot := f.session.Reset()

	// Then: it is back to the initial state
	assert.Equal(t, 0, snapshot.Ply)
	assert.Equal(t, 0, snapshot.Moves)
	assert.Equal(t, 0, snapshot.Elapsed)
	assert.Equal(t, StateInProgress, snapshot.State)
	assert.Len(t, snapshot.Board.EmptyCells(), 225)
}

func TestGameSession_AI(t *testing.T) {
	aiSettings := Settings{BoardSize: 15, Mode: ModeAI, AIDelayMin: 500 * time.Millisecond, AIDelayMax: 1500 * time.Millisecond}

	t.Run("Schedules one move after the human and applies it", func(t *testing.T) {
		// Given: an AI session
		f := newFixture(t, aiSettings)

		// When: the human plays 0
		snapshot := f.play(t, 0)

		// Then: exactly one AI move is pending within the delay bounds
		require.Len(t, f.scheduler.tasks, 1)
		assert.True(t, snapshot.AIPending)
		delay := f.scheduler.tasks[0].delay
		assert.GreaterOrEqual(t, delay, 500*time.Millisecond)
		assert.Less(t, delay, 1500*time.Millisecond)

		// And: the human cannot move meanwhile
		_, err := f.session.ApplyMove(1)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrAIMovePending)

		// When: the delay elapses
		f.scheduler.tasks[0].callback()

		// Then: the AI has taken the center
		snapshot = f.session.Snapshot()
		assert.Equal(t, 2, snapshot.Ply)
		assert.Equal(t, entity.PlayerB, snapshot.Board.At(112))
		assert.False(t, snapshot.AIPending)
		assert.Equal(t, entity.PlayerA, snapshot.Next)
		assert.Len(t, f.scheduler.tasks, 1)
	})

	t.Run("AI blocks a three", func(t *testing.T) {
		// Given: X at 10, the AI answered in the center
		f := newFixture(t, aiSettings)
		f.play(t, 10)
		f.scheduler.last(t).callback()

		// When: X plays 11
		f.play(t, 11)
		f.scheduler.last(t).callback()

		// Then: the AI takes the lowest cell that would give X three
		snapshot := f.session.Snapshot()
		assert.Equal(t, entity.PlayerB, snapshot.Board.At(112))
		assert.Equal(t, entity.PlayerB, snapshot.Board.At(9))
	})

	t.Run("Reset cancels the pending move", func(t *testing.T) {
		// Given: an AI move pending after the human played
		f := newFixture(t, aiSettings)
		f.play(t, 0)
		task := f.scheduler.last(t)

		// When: the session is reset and the old timer still fires
		f.session.Reset()
		task.callback()

		// Then: the task was stopped and the stale callback changed nothing
		assert.True(t, task.stopped)
		snapshot := f.session.Snapshot()
		assert.Equal(t, 0, snapshot.Moves)
		assert.False(t, snapshot.AIPending)
	})

	t.Run("Navigating cancels and reschedules on the AI turn", func(t *testing.T) {
		// Given: X at 0, O answered, X at 1 with the AI pending again
		f := newFixture(t, aiSettings)
		f.play(t, 0)
		f.scheduler.last(t).callback()
		f.play(t, 1)
		stale := f.scheduler.last(t)

		// When: the player navigates back to ply 1, which is the AI's turn
		snapshot, err := f.session.NavigateTo(1)
		require.NoError(t, err)

		// Then: the old task is cancelled and a new one is scheduled
		assert.True(t, stale.stopped)
		assert.True(t, snapshot.AIPending)
		require.Len(t, f.scheduler.tasks, 3)

		// And: the stale callback is a no-op
		stale.callback()
		assert.Equal(t, 1, f.session.Snapshot().Ply)

		// When: the fresh task fires
		f.scheduler.last(t).callback()

		// Then: the AI move truncated the old branch
		snapshot = f.session.Snapshot()
		assert.Equal(t, 2, snapshot.Ply)
		assert.Equal(t, 2, snapshot.Moves)
		assert.Equal(t, entity.Empty, snapshot.Board.At(1))
	})

	t.Run("Closed sessions ignore pending moves", func(t *testing.T) {
		f := newFixture(t, aiSettings)
		f.play(t, 0)
		task := f.scheduler.last(t)

		f.session.Close()
		task.callback()

		assert.Equal(t, 1, f.session.Snapshot().Ply)
		_, err := f.session.ApplyMove(5)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})
}

func TestGameSession_OnChange(t *testing.T) {
	// Given: an observer on a session
	f := newFixture(t, Settings{BoardSize: 15})

	var seen []Snapshot
	f.session.OnChange(func(snapshot Snapshot) { seen = append(seen, snapshot) })

	// When: a move, a tick and a reset happen
	f.play(t, 0)
	f.session.Tick()
	f.session.Reset()

	// Then: each one is observed in order
	require.Len(t, seen, 3)
	assert.Equal(t, 1, seen[0].Ply)
	assert.Equal(t, 1, seen[1].Elapsed)
	assert.Equal(t, 0, seen[2].Moves)
}
