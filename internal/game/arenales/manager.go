package arenales

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Manager é o registro de salas ativas do processo, indexado pelo id da
// partida. Entradas nascem em CreateGame e morrem em RemoveGame, quando o
// último jogador sai ou é expulso.
//
// O mapa é estado compartilhado alcançável por qualquer conexão, então todo
// acesso passa pelo RWMutex. O lock do Manager protege só a estrutura do
// mapa; o estado interno de cada sala tem o próprio lock.
type Manager struct {
	mu          sync.RWMutex
	activeGames map[uuid.UUID]*Game
}

func NewManager() *Manager {
	return &Manager{
		activeGames: make(map[uuid.UUID]*Game),
	}
}

// CreateGame cria uma sala nova, registra e devolve o handle.
// O dono ainda não está no roster; o chamador faz o AddPlayer em seguida.
func (m *Manager) CreateGame(ownerPlayerID string, isPublic bool, maxPlayers int) *Game {
	game := NewGame(ownerPlayerID, isPublic, maxPlayers)

	m.mu.Lock()
	m.activeGames[game.GameID()] = game
	m.mu.Unlock()

	return game
}

// GetGame resolve um id para a sala, ou ErrGameNotFound.
func (m *Manager) GetGame(gameID uuid.UUID) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	game, ok := m.activeGames[gameID]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	return game, nil
}

// RemoveGame descarta a sala do registro. Remover um id ausente é no-op.
func (m *Manager) RemoveGame(gameID uuid.UUID) {
	m.mu.Lock()
	delete(m.activeGames, gameID)
	m.mu.Unlock()
}

// FindFirstPublicWaitingGame devolve alguma sala {pública E não iniciada},
// ou nil. É a consulta do quick-join; não há garantia de ordem além da
// iteração do mapa.
func (m *Manager) FindFirstPublicWaitingGame() *Game {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, g := range m.activeGames {
		if g.IsPublic() && !g.IsStarted() {
			return g
		}
	}
	return nil
}

// FindGameByOwner devolve a sala não iniciada cujo dono é o jogador, ou nil.
func (m *Manager) FindGameByOwner(ownerPlayerID string) *Game {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, g := range m.activeGames {
		if g.OwnerPlayerID() == ownerPlayerID && !g.IsStarted() {
			return g
		}
	}
	return nil
}

// ListGames devolve um snapshot de todas as salas ativas.
func (m *Manager) ListGames() []*Game {
	m.mu.RLock()
	defer m.mu.RUnlock()

	games := make([]*Game, 0, len(m.activeGames))
	for _, g := range m.activeGames {
		games = append(games, g)
	}
	return games
}

// Count retorna o número de salas ativas.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.activeGames)
}
