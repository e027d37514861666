package tictactoe

import (
	"errors"
	"testing"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errBotBroken = errors.New("bot is broken")

type mockBot struct {
	mock.Mock
}

func (that *mockBot) MakeTurn(board *entity.Board) (entity.Move, error) {
	args := that.Called(board)
	return args.Get(0).(entity.Move), args.Error(1)
}

func newController() *GameController {
	return NewGameController(service.NewBotService())
}

func TestGameController_Start(t *testing.T) {
	t.Run("Human starts", func(t *testing.T) {
		// Given: a new session
		session := entity.NewSession("s1")

		// When: the human is chosen to start
		err := newController().Start(session, entity.Human)

		// Then: the board is empty and it is the human's turn
		require.NoError(t, err)
		assert.Equal(t, entity.StatusInProgress, session.Status)
		assert.Equal(t, entity.Human, session.Turn)
		assert.Equal(t, entity.Human, session.FirstPlayer)
		assert.Equal(t, entity.Board{}, session.Board)
		assert.Nil(t, session.LastComputerMove)
	})

	t.Run("Computer starts and moves at once", func(t *testing.T) {
		// Given: a new session
		session := entity.NewSession("s1")

		// When: the computer is chosen to start
		err := newController().Start(session, entity.Computer)

		// Then: the computer has placed exactly one mark and the human is to move
		require.NoError(t, err)
		assert.Equal(t, entity.StatusInProgress, session.Status)
		assert.Equal(t, entity.Human, session.Turn)
		require.NotNil(t, session.LastComputerMove)
		assert.Len(t, session.Board.EmptyCells(), 8)

		move := *session.LastComputerMove
		assert.Equal(t, entity.ComputerMark, session.Board[move.Row][move.Col])
	})

	t.Run("Error on invalid player", func(t *testing.T) {
		session := entity.NewSession("s1")

		err := newController().Start(session, entity.Player(9))

		require.ErrorIs(t, err, apperror.ErrInvalidPlayer)
		assert.Equal(t, entity.StatusNotStarted, session.Status)
	})

	t.Run("Error when a game is already running", func(t *testing.T) {
		// Given: a session with a game in progress
		session := entity.NewSession("s1")
		controller := newController()
		require.NoError(t, controller.Start(session, entity.Human))
		require.NoError(t, controller.MakeTurn(session, 1, 1))
		before := *session

		// When: the game is started again
		err := controller.Start(session, entity.Computer)

		// Then: ErrGameAlreadyStarted is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrGameAlreadyStarted)
		assert.Equal(t, before, *session)
	})

	t.Run("Error when the bot fails", func(t *testing.T) {
		// Given: a bot that cannot move
		bot := &mockBot{}
		bot.On("MakeTurn", mock.Anything).Return(entity.Move{}, errBotBroken).Once()
		session := entity.NewSession("s1")

		// When: the computer is chosen to start
		err := NewGameController(bot).Start(session, entity.Computer)

		// Then: the bot error is returned
		require.ErrorIs(t, err, errBotBroken)
		bot.AssertExpectations(t)
	})
}

func TestGameController_MakeTurn(t *testing.T) {
	t.Run("Human move is answered by the computer", func(t *testing.T) {
		// Given: a game where the human starts
		session := entity.NewSession("s1")
		controller := newController()
		require.NoError(t, controller.Start(session, entity.Human))

		// When: the human takes the center
		err := controller.MakeTurn(session, 1, 1)

		// Then: the computer replied and it is the human's turn again
		require.NoError(t, err)
		assert.Equal(t, entity.HumanMark, session.Board[1][1])
		require.NotNil(t, session.LastComputerMove)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, *session.LastComputerMove)
		assert.Equal(t, entity.ComputerMark, session.Board[0][0])
		assert.Equal(t, entity.Human, session.Turn)
		assert.Equal(t, entity.StatusInProgress, session.Status)
	})

	t.Run("Error on cell already occupied leaves the session unchanged", func(t *testing.T) {
		// Given: a game after one exchange
		session := entity.NewSession("s1")
		controller := newController()
		require.NoError(t, controller.Start(session, entity.Human))
		require.NoError(t, controller.MakeTurn(session, 1, 1))
		before := *session

		// When: the human plays on the computer's cell
		err := controller.MakeTurn(session, 0, 0)

		// Then: ErrCellOccupied is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, *session)
	})

	t.Run("Error on invalid coordinate", func(t *testing.T) {
		session := entity.NewSession("s1")
		controller := newController()
		require.NoError(t, controller.Start(session, entity.Human))

		err := controller.MakeTurn(session, -1, 4)

		require.ErrorIs(t, err, apperror.ErrInvalidCoordinate)
		assert.Equal(t, entity.Board{}, session.Board)
	})

	t.Run("Error when the game is not started", func(t *testing.T) {
		session := entity.NewSession("s1")

		err := newController().MakeTurn(session, 0, 0)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Error when it is not the human's turn", func(t *testing.T) {
		session := entity.NewSession("s1")
		session.Status = entity.StatusInProgress
		session.Turn = entity.Computer

		err := newController().MakeTurn(session, 0, 0)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Computer wins and the result is recorded once", func(t *testing.T) {
		// Given: a position where the computer completes the middle row next
		session := entity.NewSession("s1")
		session.Status = entity.StatusInProgress
		session.Turn = entity.Human
		session.Board = entity.Board{
			{entity.HumanMark, entity.EmptyCell, entity.EmptyCell},
			{entity.ComputerMark, entity.ComputerMark, entity.EmptyCell},
			{entity.HumanMark, entity.EmptyCell, entity.EmptyCell},
		}
		controller := newController()

		// When: the human fails to block
		err := controller.MakeTurn(session, 0, 1)

		// Then: the computer wins and the stats count it
		require.NoError(t, err)
		assert.Equal(t, entity.StatusComputerWon, session.Status)
		assert.Equal(t, entity.Move{Row: 1, Col: 2}, *session.LastComputerMove)
		assert.Equal(t, entity.Player(0), session.Turn)
		assert.Equal(t, entity.Stats{ComputerWins: 1, TotalGames: 1}, session.Stats)

		// When: the human tries to continue
		err = controller.MakeTurn(session, 2, 2)

		// Then: ErrGameFinished is returned and stats are not counted again
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, 1, session.Stats.TotalGames)
	})

	t.Run("Human win is recorded", func(t *testing.T) {
		// Given: a hand-made position where the human completes the top row
		session := entity.NewSession("s1")
		session.Status = entity.StatusInProgress
		session.Turn = entity.Human
		session.Board = entity.Board{
			{entity.HumanMark, entity.HumanMark, entity.EmptyCell},
			{entity.ComputerMark, entity.EmptyCell, entity.EmptyCell},
			{entity.ComputerMark, entity.EmptyCell, entity.EmptyCell},
		}
		bot := &mockBot{}

		// When: the human completes the line
		err := NewGameController(bot).MakeTurn(session, 0, 2)

		// Then: the human wins and the bot was never asked to move
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPlayerWon, session.Status)
		assert.Equal(t, entity.Stats{PlayerWins: 1, TotalGames: 1}, session.Stats)
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything)
	})

	t.Run("Human filling the last cell ends in a draw", func(t *testing.T) {
		session := entity.NewSession("s1")
		session.Status = entity.StatusInProgress
		session.Turn = entity.Human
		session.Board = entity.Board{
			{entity.HumanMark, entity.ComputerMark, entity.HumanMark},
			{entity.HumanMark, entity.ComputerMark, entity.ComputerMark},
			{entity.ComputerMark, entity.HumanMark, entity.EmptyCell},
		}

		err := newController().MakeTurn(session, 2, 2)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusDraw, session.Status)
		assert.Equal(t, entity.Stats{Draws: 1, TotalGames: 1}, session.Stats)
	})
}

func TestGameController_Restart(t *testing.T) {
	// Given: a finished game with recorded stats
	session := entity.NewSession("s1")
	session.Status = entity.StatusComputerWon
	session.Board[0][0] = entity.ComputerMark
	session.Stats = entity.Stats{ComputerWins: 2, Draws: 1, TotalGames: 3}
	controller := newController()

	// When: the player asks to play again
	controller.Restart(session)

	// Then: the board is fresh, the game waits for setup and the stats remain
	assert.Equal(t, entity.Board{}, session.Board)
	assert.Equal(t, entity.StatusNotStarted, session.Status)
	assert.Equal(t, 3, session.Stats.TotalGames)

	// When: the stats are reset
	controller.ResetStats(session)

	// Then: the counters are cleared
	assert.Equal(t, entity.Stats{}, session.Stats)
}

func TestGameController_FullGameAgainstOptimalBot(t *testing.T) {
	// Given: a human who always plays the first free cell
	session := entity.NewSession("s1")
	controller := newController()
	require.NoError(t, controller.Start(session, entity.Human))

	// When: the game is played out
	for session.IsOngoing() {
		free := session.Board.EmptyCells()
		require.NotEmpty(t, free)
		require.NoError(t, controller.MakeTurn(session, free[0].Row, free[0].Col))
	}

	// Then: the human never wins
	assert.NotEqual(t, entity.StatusPlayerWon, session.Status)
	assert.Equal(t, 1, session.Stats.TotalGames)
}
