package directory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetUnknownPlayer(t *testing.T) {
	d := NewMemory()

	profile, ok := d.Get("ghost")

	assert.Nil(t, profile)
	assert.False(t, ok)
}

func TestMemorySetAndGet(t *testing.T) {
	d := NewMemory()

	d.Set("p1", &Profile{PlayerID: "p1", DisplayName: "Alice"})

	profile, ok := d.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Alice", profile.DisplayName)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	d := NewMemory()
	gameID := uuid.New()
	d.Set("p1", &Profile{PlayerID: "p1", DisplayName: "Alice", CurrentGameID: &gameID})

	first, ok := d.Get("p1")
	require.True(t, ok)
	first.DisplayName = "Hacked"
	first.CurrentGameID = nil

	second, ok := d.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Alice", second.DisplayName)
	require.NotNil(t, second.CurrentGameID)
	assert.Equal(t, gameID, *second.CurrentGameID)
}

func TestMemorySetStoresCopy(t *testing.T) {
	d := NewMemory()

	p := &Profile{PlayerID: "p1", DisplayName: "Alice"}
	d.Set("p1", p)
	p.DisplayName = "Changed"

	stored, ok := d.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Alice", stored.DisplayName)
}

func TestProfileIsGuest(t *testing.T) {
	assert.True(t, (&Profile{PlayerID: "p1"}).IsGuest())
	assert.False(t, (&Profile{PlayerID: "p1", Email: "a@b.com"}).IsGuest())
}
