package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLibraryLoadsBaseSet(t *testing.T) {
	require.NoError(t, InitLibrary())

	copper, err := Get("Copper")
	require.NoError(t, err)
	assert.True(t, copper.HasType(TypeTreasure))
	assert.Equal(t, 0, copper.Cost)

	estate, err := Get("Estate")
	require.NoError(t, err)
	assert.True(t, estate.HasType(TypeVictory))
	assert.Equal(t, 1, estate.WinningPoints)
}

func TestGetUnknownCardFails(t *testing.T) {
	require.NoError(t, InitLibrary())

	_, err := Get("Platinum")
	assert.Error(t, err)
}

func TestMustGetPanicsOnUnknownCard(t *testing.T) {
	require.NoError(t, InitLibrary())

	assert.Panics(t, func() { MustGet("Platinum") })
}
