package arenales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecards/internal/game/card"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager()

	g := m.CreateGame("p1", true, 4)

	got, err := m.GetGame(g.GameID())
	require.NoError(t, err)
	assert.Same(t, g, got)
	assert.Equal(t, 1, m.Count())
}

func TestManagerGetUnknownGame(t *testing.T) {
	m := NewManager()

	_, err := m.GetGame(uuid.New())

	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestManagerRemoveIsIdempotent(t *testing.T) {
	m := NewManager()
	g := m.CreateGame("p1", true, 4)

	m.RemoveGame(g.GameID())
	m.RemoveGame(g.GameID())

	assert.Equal(t, 0, m.Count())
	_, err := m.GetGame(g.GameID())
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestFindFirstPublicWaitingGameSkipsPrivateAndStarted(t *testing.T) {
	require.NoError(t, card.InitLibrary())
	m := NewManager()

	m.CreateGame("p1", false, 4) // privada

	started := m.CreateGame("p2", true, 4)
	started.seedFn = func() uint64 { return 42 }
	require.NoError(t, started.AddPlayer("p2", "Bob"))
	require.NoError(t, started.AddPlayer("p3", "Carol"))
	require.NoError(t, started.StartGame())

	open := m.CreateGame("p4", true, 4)

	found := m.FindFirstPublicWaitingGame()
	require.NotNil(t, found)
	assert.Equal(t, open.GameID(), found.GameID())
}

func TestFindFirstPublicWaitingGameNone(t *testing.T) {
	m := NewManager()

	assert.Nil(t, m.FindFirstPublicWaitingGame())
}

func TestFindGameByOwnerIgnoresStartedGames(t *testing.T) {
	require.NoError(t, card.InitLibrary())
	m := NewManager()

	g := m.CreateGame("p1", true, 4)
	g.seedFn = func() uint64 { return 42 }

	found := m.FindGameByOwner("p1")
	require.NotNil(t, found)
	assert.Equal(t, g.GameID(), found.GameID())

	require.NoError(t, g.AddPlayer("p1", "Alice"))
	require.NoError(t, g.AddPlayer("p2", "Bob"))
	require.NoError(t, g.StartGame())

	assert.Nil(t, m.FindGameByOwner("p1"))
}
