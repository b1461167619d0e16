package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewGameState(t *testing.T) {
	t.Run("setting up players with all pieces at home", func(t *testing.T) {
		gs := newTestState(t, Yellow, Red, Blue)

		require.Len(t, gs.Players, 3)
		require.Equal(t, Yellow, gs.Active().Color, "Turn order follows the given identities")
		for _, p := range gs.Players {
			require.Equal(t, BucketCounts{Player: p.Color, NotInGame: 3}, p.Counts())
		}
		require.Equal(t, AwaitingRoll, gs.Phase)
		require.NoError(t, gs.CheckInvariants())
	})

	t.Run("rejecting duplicate identities", func(t *testing.T) {
		_, err := NewGameState([]Color{Red, Green, Red}, NewStandardRules())
		require.ErrorIs(t, err, ErrDuplicatePlayer)
	})

	t.Run("rejecting too few or too many players", func(t *testing.T) {
		_, err := NewGameState([]Color{Red}, NewStandardRules())
		require.ErrorIs(t, err, ErrPlayerCount)

		_, err = NewGameState([]Color{Red, Green, Yellow, Blue, Red}, NewStandardRules())
		require.ErrorIs(t, err, ErrPlayerCount)
	})
}

func TestTwoPlayerCapture(t *testing.T) {
	gs := newTestState(t, Red, Green)
	red := put(t, gs, Red, 0, "r6") // track slot 5
	green := put(t, gs, Green, 0, "r3") // track slot 2
	gs.Current = 1

	require.NoError(t, gs.Roll(3))
	moves := gs.LegalMoves()
	require.Len(t, moves, 1)

	event, err := gs.Apply(&moves[0])

	require.NoError(t, err)
	require.Equal(t, SlotLocation(Slot(5)), green.Location, "Green should occupy slot 5")
	require.Equal(t, HomeLocation(), red.Location, "Red's piece should be back home")
	require.Contains(t, gs.Player(Red).NotInGame, red)
	require.NotNil(t, event.Captured)
	require.Equal(t, PieceRef{Owner: Red, ID: 0}, event.Captured.Victim)
	require.Equal(t, BucketCounts{Player: Red, NotInGame: 3}, event.Buckets[0])
	require.False(t, event.ExtraTurn)
	require.NoError(t, gs.CheckInvariants())

	require.NoError(t, gs.EndTurn())
	require.Equal(t, Red, gs.Active().Color, "Turn should pass back to red")
}

func TestEnteringPlay(t *testing.T) {
	t.Run("entering on the start slot with an extra turn", func(t *testing.T) {
		gs := newTestState(t, Blue, Green)

		require.NoError(t, gs.Roll(6))
		moves := gs.LegalMoves()
		require.Len(t, moves, 1)
		event, err := gs.Apply(&moves[0])

		require.NoError(t, err)
		piece := gs.Player(Blue).Pieces[0]
		require.Equal(t, SlotLocation(StartSlot(Blue)), piece.Location)
		occupant, _ := gs.Board.Occupant(StartSlot(Blue))
		require.Equal(t, Blue, occupant.Owner)
		require.True(t, event.ExtraTurn)

		require.NoError(t, gs.EndTurn())
		require.Equal(t, Blue, gs.Active().Color, "A six keeps the turn")
		require.Equal(t, 1, gs.Turns)
	})

	t.Run("entering captures an opponent on the start slot", func(t *testing.T) {
		gs := newTestState(t, Red, Green)
		victim := put(t, gs, Green, 2, "r1")

		require.NoError(t, gs.Roll(6))
		moves := gs.LegalMoves()
		event, err := gs.Apply(&moves[0])

		require.NoError(t, err)
		require.Equal(t, HomeLocation(), victim.Location)
		require.Equal(t, &Capture{Victim: PieceRef{Owner: Green, ID: 2}, Slot: StartSlot(Red)}, event.Captured)
		require.NoError(t, gs.CheckInvariants())
	})
}

func TestWinCondition(t *testing.T) {
	gs := newTestState(t, Red, Yellow)
	finish(t, gs, Red, 0)
	finish(t, gs, Red, 1)
	last := put(t, gs, Red, 2, "R4")

	require.NoError(t, gs.Roll(2))
	moves := gs.LegalMoves()
	require.Len(t, moves, 1)
	event, err := gs.Apply(&moves[0])

	require.NoError(t, err)
	require.True(t, event.Completed)
	require.True(t, event.Won)
	require.Equal(t, Red, event.Winner)
	require.Equal(t, CompleteLocation(), last.Location)
	require.Len(t, gs.Player(Red).Complete, 3)
	occupant, _ := gs.Board.Occupant(slot(t, "R4"))
	require.Nil(t, occupant, "Completed pieces leave the board")

	require.NoError(t, gs.EndTurn())
	require.Equal(t, GameOver, gs.Phase)
	winner, ok := gs.Winner()
	require.True(t, ok)
	require.Equal(t, Red, winner)

	require.ErrorIs(t, gs.Roll(1), ErrGameOver, "No further turns after game over")
	require.NoError(t, gs.CheckInvariants())
}

func TestForcedForfeit(t *testing.T) {
	t.Run("forfeiting with every piece at home", func(t *testing.T) {
		gs := newTestState(t, Green, Blue)
		before := gs.Hash()

		require.NoError(t, gs.Roll(4))
		require.Empty(t, gs.LegalMoves())
		event, err := gs.Apply(nil)

		require.NoError(t, err)
		require.True(t, event.Forfeit())
		require.Equal(t, 0, gs.Board.Count(), "Board should not change")

		require.NoError(t, gs.EndTurn())
		require.Equal(t, Blue, gs.Active().Color)
		require.NotEqual(t, before, gs.Hash())
	})

	t.Run("a forfeited roll-again value does not grant another turn", func(t *testing.T) {
		rules := &StandardRules{MinRoll: 1, MaxRoll: 6, EntryRolls: []int{1}, AgainRolls: []int{6}}
		gs, err := NewGameState([]Color{Green, Blue}, rules)
		require.NoError(t, err)

		require.NoError(t, gs.Roll(6))
		event, err := gs.Apply(nil)

		require.NoError(t, err)
		require.False(t, event.ExtraTurn)
		require.NoError(t, gs.EndTurn())
		require.Equal(t, Blue, gs.Active().Color)
	})

	t.Run("forfeiting while a move exists is illegal", func(t *testing.T) {
		gs := newTestState(t, Green, Blue)

		require.NoError(t, gs.Roll(6))
		_, err := gs.Apply(nil)

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, RollResolved, gs.Phase)
	})
}

func TestIllegalMoves(t *testing.T) {
	t.Run("rejecting a move onto an own piece", func(t *testing.T) {
		gs := newTestState(t, Red, Green)
		put(t, gs, Red, 0, "r2")
		put(t, gs, Red, 1, "r5")
		require.NoError(t, gs.Roll(3))
		before := gs.Hash()

		_, err := gs.Apply(&Move{Kind: AdvanceMove, Player: Red, PieceID: 0, Roll: 3})

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, before, gs.Hash(), "State should not change")
		require.NoError(t, gs.CheckInvariants())
	})

	t.Run("rejecting a move for another player", func(t *testing.T) {
		gs := newTestState(t, Red, Green)
		put(t, gs, Green, 0, "g1")
		require.NoError(t, gs.Roll(2))

		_, err := gs.Apply(&Move{Kind: AdvanceMove, Player: Green, PieceID: 0, Roll: 2})

		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("rejecting out of range rolls", func(t *testing.T) {
		gs := newTestState(t, Red, Green)

		require.ErrorIs(t, gs.Roll(0), ErrRollOutOfRange)
		require.ErrorIs(t, gs.Roll(7), ErrRollOutOfRange)
		require.Equal(t, AwaitingRoll, gs.Phase)
	})

	t.Run("rejecting operations out of order", func(t *testing.T) {
		gs := newTestState(t, Red, Green)

		_, err := gs.Apply(nil)
		require.ErrorIs(t, err, ErrPhase)
		require.ErrorIs(t, gs.EndTurn(), ErrPhase)

		require.NoError(t, gs.Roll(3))
		require.ErrorIs(t, gs.Roll(3), ErrPhase)
	})
}

func TestCloneIsIndependent(t *testing.T) {
	gs := newTestState(t, Red, Green)
	put(t, gs, Red, 0, "r4")

	c := gs.Clone()
	require.Equal(t, gs.Hash(), c.Hash())
	require.NoError(t, c.CheckInvariants())

	require.NoError(t, c.Roll(2))
	moves := c.LegalMoves()
	_, err := c.Apply(&moves[0])
	require.NoError(t, err)

	require.Equal(t, SlotLocation(slot(t, "r4")), gs.Player(Red).Pieces[0].Location, "Original should not change")
	require.NotEqual(t, gs.Hash(), c.Hash())
}

// Random legal play must conserve pieces, keep single occupancy and never
// un-complete a piece.
func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 50; game++ {
		colors := AllColors[:2+game%3]
		gs, err := NewGameState(colors, NewStandardRules())
		require.NoError(t, err)

		completed := map[PieceRef]bool{}
		for turn := 0; turn < 5000 && gs.Phase != GameOver; turn++ {
			require.NoError(t, gs.Roll(1+rng.Intn(6)))

			var move *Move
			if moves := gs.LegalMoves(); len(moves) > 0 {
				move = &moves[rng.Intn(len(moves))]
			}
			_, err := gs.Apply(move)
			require.NoError(t, err)
			require.NoError(t, gs.EndTurn())
			require.NoError(t, gs.CheckInvariants())

			for _, p := range gs.Players {
				for _, piece := range p.Complete {
					completed[piece.Ref()] = true
				}
			}
			for ref := range completed {
				require.Equal(t, Complete, gs.Player(ref.Owner).Pieces[ref.ID].Location.Kind, "Completed pieces stay complete")
			}
		}
		require.Equal(t, GameOver, gs.Phase, "Random play should finish a game")
	}
}

func TestSetup(t *testing.T) {
	gs := newTestState(t, Red, Blue)

	require.NoError(t, gs.Setup(PieceRef{Owner: Blue, ID: 1}, slot(t, "y2")))
	require.NoError(t, gs.Setup(PieceRef{Owner: Red, ID: 0}, NoSlot))

	require.Equal(t, BucketCounts{Player: Blue, NotInGame: 2, InGame: 1}, gs.Player(Blue).Counts())
	require.Equal(t, BucketCounts{Player: Red, NotInGame: 2, Complete: 1}, gs.Player(Red).Counts())
	require.NoError(t, gs.CheckInvariants())

	require.ErrorIs(t, gs.Setup(PieceRef{Owner: Red, ID: 1}, slot(t, "y2")), ErrIllegalMove, "Occupied slots are rejected")
	require.ErrorIs(t, gs.Setup(PieceRef{Owner: Blue, ID: 1}, slot(t, "y3")), ErrIllegalMove, "Pieces in play are rejected")
	require.ErrorIs(t, gs.Setup(PieceRef{Owner: Red, ID: 2}, Slot(60)), ErrBoardIndex)
	require.Error(t, gs.Setup(PieceRef{Owner: Green, ID: 0}, slot(t, "g1")))
}
