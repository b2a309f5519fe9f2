package arenales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecards/internal/game/card"
	"gamecards/internal/game/player"
)

// newTestGame cria uma sala com seed fixa para os rngs dos jogadores.
func newTestGame(t *testing.T, owner string, maxPlayers int) *Game {
	t.Helper()
	require.NoError(t, card.InitLibrary())

	g := NewGame(owner, true, maxPlayers)
	g.seedFn = func() uint64 { return 42 }

	require.NoError(t, g.AddPlayer(owner, "Owner"))
	return g
}

func startedGame(t *testing.T, playerIDs ...string) *Game {
	t.Helper()

	g := newTestGame(t, playerIDs[0], len(playerIDs))
	for _, id := range playerIDs[1:] {
		require.NoError(t, g.AddPlayer(id, "Player "+id))
	}
	require.NoError(t, g.StartGame())
	return g
}

// advance avança fases exigindo sucesso, para encurtar os testes de ciclo.
func advance(t *testing.T, g *Game, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		require.NoError(t, g.AdvanceTurnPhase())
	}
}

func TestAddPlayerRespectsCapacity(t *testing.T) {
	g := newTestGame(t, "p1", 2)

	require.NoError(t, g.AddPlayer("p2", "Bob"))
	err := g.AddPlayer("p3", "Carol")

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 2, g.PlayerCount())
}

func TestAddPlayerAfterStartFails(t *testing.T) {
	g := startedGame(t, "p1", "p2")

	err := g.AddPlayer("p3", "Carol")

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, g.HasPlayer("p3"))
}

func TestStartGameNeedsTwoPlayers(t *testing.T) {
	g := newTestGame(t, "p1", 4)

	assert.ErrorIs(t, g.StartGame(), ErrInvalidState)
	assert.False(t, g.IsStarted())
}

func TestStartGameTwiceFails(t *testing.T) {
	g := startedGame(t, "p1", "p2")

	assert.ErrorIs(t, g.StartGame(), ErrInvalidState)
}

func TestStartGameDealsInitialState(t *testing.T) {
	g := startedGame(t, "p1", "p2")

	state := g.GetPublicState()
	assert.Equal(t, PhaseInProgress, state.GamePhase)
	assert.Equal(t, TurnAction, state.CurrentTurnPhase)
	assert.Equal(t, 1, state.TurnNumber)
	assert.Equal(t, 0, state.CurrentTurnIndex)
	assert.Equal(t, "p1", state.PlayerPlayingID)

	for _, p := range state.Players {
		assert.Len(t, p.HandCards, player.HandSize)
		assert.Len(t, p.DeckCards, 5)
		assert.Empty(t, p.DiscardPile)
	}
}

func TestAdvanceTurnPhaseBeforeStartFails(t *testing.T) {
	g := newTestGame(t, "p1", 2)

	assert.ErrorIs(t, g.AdvanceTurnPhase(), ErrInvalidState)
}

func TestAdvanceTurnPhaseCyclesWithinTurn(t *testing.T) {
	g := startedGame(t, "p1", "p2")

	advance(t, g, 1)
	assert.Equal(t, TurnBuy, g.GetPublicState().CurrentTurnPhase)

	advance(t, g, 1)
	assert.Equal(t, TurnCleanup, g.GetPublicState().CurrentTurnPhase)

	// O jogador ativo não muda no meio do próprio turno.
	assert.Equal(t, "p1", g.PlayerPlaying())
}

func TestCleanupPassesTurnToNextPlayer(t *testing.T) {
	g := startedGame(t, "p1", "p2")

	advance(t, g, 3) // action -> buy -> cleanup -> próximo

	state := g.GetPublicState()
	assert.Equal(t, "p2", state.PlayerPlayingID)
	assert.Equal(t, 1, state.CurrentTurnIndex)
	assert.Equal(t, TurnAction, state.CurrentTurnPhase)
	// Rodada só fecha quando a rotação dá a volta completa.
	assert.Equal(t, 1, state.TurnNumber)

	// O jogador que terminou descartou a mão e comprou 5 novas.
	p1 := state.Players[0]
	assert.Len(t, p1.HandCards, player.HandSize)
	assert.Len(t, p1.DiscardPile, player.HandSize)
	assert.Empty(t, p1.DeckCards)
}

func TestFullRoundIncrementsTurnNumber(t *testing.T) {
	g := startedGame(t, "p1", "p2")

	advance(t, g, 6) // dois turnos completos, a rotação deu a volta

	state := g.GetPublicState()
	assert.Equal(t, "p1", state.PlayerPlayingID)
	assert.Equal(t, 0, state.CurrentTurnIndex)
	assert.Equal(t, 2, state.TurnNumber)
}

func TestRemovePlayerUnknownIsNoop(t *testing.T) {
	g := newTestGame(t, "p1", 2)

	removed, empty := g.RemovePlayer("ghost")

	assert.Nil(t, removed)
	assert.False(t, empty)
	assert.Equal(t, 1, g.PlayerCount())
}

func TestRemovePlayerTransfersOwnership(t *testing.T) {
	g := newTestGame(t, "p1", 3)
	require.NoError(t, g.AddPlayer("p2", "Bob"))
	require.NoError(t, g.AddPlayer("p3", "Carol"))

	removed, empty := g.RemovePlayer("p1")

	require.NotNil(t, removed)
	assert.Equal(t, "p1", removed.PlayerID)
	assert.False(t, empty)
	assert.Equal(t, "p2", g.OwnerPlayerID())
}

func TestRemoveLastPlayerReportsEmpty(t *testing.T) {
	g := newTestGame(t, "p1", 2)

	_, empty := g.RemovePlayer("p1")

	assert.True(t, empty)
	assert.Equal(t, 0, g.PlayerCount())
}

func TestRemoveEarlierPlayerKeepsActivePlayer(t *testing.T) {
	g := startedGame(t, "p1", "p2", "p3")

	advance(t, g, 3) // vez do p2, índice 1
	require.Equal(t, "p2", g.PlayerPlaying())

	g.RemovePlayer("p1")

	// O índice acompanha o roster encolhido: p2 continua na vez.
	state := g.GetPublicState()
	assert.Equal(t, "p2", state.PlayerPlayingID)
	assert.Equal(t, 0, state.CurrentTurnIndex)
}

func TestRemoveActiveLastPlayerWrapsIndex(t *testing.T) {
	g := startedGame(t, "p1", "p2", "p3")

	advance(t, g, 6) // vez do p3, índice 2
	require.Equal(t, "p3", g.PlayerPlaying())

	g.RemovePlayer("p3")

	// O índice apontava para fora do roster novo e volta para o início.
	state := g.GetPublicState()
	assert.Equal(t, "p1", state.PlayerPlayingID)
	assert.Equal(t, 0, state.CurrentTurnIndex)
}

func TestRemoveLaterPlayerKeepsIndex(t *testing.T) {
	g := startedGame(t, "p1", "p2", "p3")

	require.Equal(t, "p1", g.PlayerPlaying())

	g.RemovePlayer("p3")

	state := g.GetPublicState()
	assert.Equal(t, "p1", state.PlayerPlayingID)
	assert.Equal(t, 0, state.CurrentTurnIndex)
}

func TestSetPublicOnlyBeforeStart(t *testing.T) {
	g := newTestGame(t, "p1", 2)

	require.NoError(t, g.SetPublic(false))
	assert.False(t, g.IsPublic())

	require.NoError(t, g.AddPlayer("p2", "Bob"))
	require.NoError(t, g.StartGame())

	assert.ErrorIs(t, g.SetPublic(true), ErrInvalidState)
}

func TestSetMaxPlayersRules(t *testing.T) {
	g := newTestGame(t, "p1", 4)
	require.NoError(t, g.AddPlayer("p2", "Bob"))
	require.NoError(t, g.AddPlayer("p3", "Carol"))

	// Nunca abaixo de 2 nem abaixo do roster atual.
	assert.ErrorIs(t, g.SetMaxPlayers(1), ErrInvalidState)
	assert.ErrorIs(t, g.SetMaxPlayers(2), ErrInvalidState)

	require.NoError(t, g.SetMaxPlayers(3))
	assert.Equal(t, 3, g.MaxPlayers())

	require.NoError(t, g.StartGame())
	assert.ErrorIs(t, g.SetMaxPlayers(4), ErrInvalidState)
}

func TestInfoSummarizesLobby(t *testing.T) {
	g := newTestGame(t, "p1", 3)
	require.NoError(t, g.AddPlayer("p2", "Bob"))

	info := g.Info()

	assert.Equal(t, g.GameID(), info.GameID)
	assert.Equal(t, "p1", info.OwnerPlayerID)
	assert.False(t, info.IsStarted)
	assert.Equal(t, 3, info.MaxPlayers)
	require.Len(t, info.Players, 2)
	assert.Equal(t, "Bob", info.Players[1].DisplayName)
}
