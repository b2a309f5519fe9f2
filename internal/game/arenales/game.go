// Package arenales contém o núcleo de uma partida: a máquina de estados de
// fases e turnos de uma sala, e o registro de salas ativas do processo.
package arenales

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamecards/internal/game/player"
)

// Fases do ciclo de vida da partida. Transição linear, sem voltas:
// waiting_for_players -> setup -> in_progress -> game_over.
const (
	PhaseWaitingForPlayers = "waiting_for_players"
	PhaseSetup             = "setup"
	PhaseInProgress        = "in_progress"
	PhaseGameOver          = "game_over"
)

// Fases internas do turno de um jogador. Ciclam enquanto a partida roda:
// action -> buy -> cleanup -> action -> ...
const (
	TurnAction  = "action"
	TurnBuy     = "buy"
	TurnCleanup = "cleanup"
)

// Game é uma sala: roster ordenado de jogadores mais a máquina de estados de
// fase e turno. A ordem do slice players define a rotação dos turnos.
//
// Todo método exportado adquire o mutex da partida. Operações sobre salas
// diferentes rodam em paralelo; sobre a mesma sala, estritamente em série.
type Game struct {
	mu sync.Mutex

	gameID     uuid.UUID
	owner      string
	players    []*player.State
	isPublic   bool
	maxPlayers int

	gamePhase string
	turnPhase string

	currentTurnIndex int
	turnNumber       int

	// playerPlayingID é derivado: sempre recalculado a partir de
	// players[currentTurnIndex], nunca atribuído de fora. Vazio quando o
	// roster está vazio.
	playerPlayingID string

	// seedFn produz a seed do rng de cada jogador que entra.
	// Os testes trocam por uma função determinística.
	seedFn func() uint64
}

// NewGame cria uma sala vazia em waiting_for_players com um id novo.
// O dono ainda não está no roster; quem cria a sala também dá o AddPlayer.
func NewGame(ownerPlayerID string, isPublic bool, maxPlayers int) *Game {
	return &Game{
		gameID:     uuid.New(),
		owner:      ownerPlayerID,
		isPublic:   isPublic,
		maxPlayers: maxPlayers,
		gamePhase:  PhaseWaitingForPlayers,
		turnPhase:  TurnAction,
		seedFn:     func() uint64 { return uint64(time.Now().UnixNano()) },
	}
}

// ---- Leitura ----

func (g *Game) GameID() uuid.UUID {
	return g.gameID // imutável, não precisa de lock
}

func (g *Game) OwnerPlayerID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.owner
}

func (g *Game) IsPublic() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPublic
}

func (g *Game) MaxPlayers() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.maxPlayers
}

// IsStarted: qualquer fase depois de waiting_for_players conta como iniciada.
func (g *Game) IsStarted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.started()
}

func (g *Game) started() bool {
	return g.gamePhase != PhaseWaitingForPlayers
}

// PlayerPlaying devolve o id do jogador da vez; vazio enquanto a partida
// não começou ou quando o roster esvaziou.
func (g *Game) PlayerPlaying() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerPlayingID
}

// PlayerCount retorna o tamanho atual do roster.
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// HasPlayer verifica se o jogador está no roster.
func (g *Game) HasPlayer(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.indexOf(playerID) >= 0
}

func (g *Game) indexOf(playerID string) int {
	for i, p := range g.players {
		if p.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// ---- Mutação ----

// AddPlayer anexa um jogador novo ao fim do roster.
// Falha com ErrInvalidState se a partida já começou ou está cheia.
// Uma falha não toca o roster.
func (g *Game) AddPlayer(playerID, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started() || len(g.players) >= g.maxPlayers {
		return fmt.Errorf("cannot join, game already started or max players: %w", ErrInvalidState)
	}

	g.players = append(g.players, player.NewState(playerID, name, g.seedFn()))
	return nil
}

// StartGame: exige pelo menos 2 jogadores. Passa por setup (deck inicial de
// todo mundo), zera a rotação (turno 1, índice 0, fase action) e entra em
// in_progress.
func (g *Game) StartGame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.players) < 2 {
		return fmt.Errorf("cannot start, need at least 2 players: %w", ErrInvalidState)
	}
	if g.started() {
		return fmt.Errorf("cannot start, game already started: %w", ErrInvalidState)
	}

	g.gamePhase = PhaseSetup

	for _, p := range g.players {
		p.GainStartingDeck()
	}

	g.turnNumber = 1
	g.currentTurnIndex = 0
	g.playerPlayingID = g.players[0].PlayerID
	g.turnPhase = TurnAction

	g.gamePhase = PhaseInProgress
	return nil
}

// AdvanceTurnPhase avança a máquina de fases do turno. A transição depende
// só da fase atual:
//
//	action  -> buy      (jogador ativo não muda)
//	buy     -> cleanup  (idem)
//	cleanup -> action do próximo jogador: descarta a mão do jogador ativo,
//	           compra 5, incrementa o índice módulo N e soma 1 ao número do
//	           turno quando o índice dá a volta para 0.
//
// Fora de in_progress a chamada é rejeitada com ErrInvalidState.
func (g *Game) AdvanceTurnPhase() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gamePhase != PhaseInProgress {
		return fmt.Errorf("cannot advance turn, game is not in progress: %w", ErrInvalidState)
	}

	switch g.turnPhase {
	case TurnAction:
		g.turnPhase = TurnBuy

	case TurnBuy:
		g.turnPhase = TurnCleanup

	case TurnCleanup:
		if len(g.players) > 0 {
			g.endOfTurnCleanup()
		}

		g.moveToNextPlayer()

		if len(g.players) == 0 {
			g.gamePhase = PhaseGameOver
			g.playerPlayingID = ""
			return nil
		}

		g.turnPhase = TurnAction
	}

	g.recomputePlayerPlaying()
	return nil
}

// endOfTurnCleanup roda a limpeza de fim de turno do jogador ativo:
// mão inteira para o descarte e compra de 5 cartas novas.
func (g *Game) endOfTurnCleanup() {
	current := g.players[g.currentTurnIndex]
	current.DiscardHand()
	current.DrawCards(player.HandSize)
}

func (g *Game) moveToNextPlayer() {
	if len(g.players) == 0 {
		return
	}

	g.currentTurnIndex++
	if g.currentTurnIndex >= len(g.players) {
		g.currentTurnIndex = 0
		g.turnNumber++ // fechou uma rodada completa
	}
}

// recomputePlayerPlaying mantém o campo derivado coerente com o índice.
func (g *Game) recomputePlayerPlaying() {
	if len(g.players) > 0 && g.currentTurnIndex < len(g.players) {
		g.playerPlayingID = g.players[g.currentTurnIndex].PlayerID
	} else {
		g.playerPlayingID = ""
	}
}

// RemovePlayer tira o jogador do roster e devolve (estado removido, sala
// ficou vazia). Se o jogador não está na sala, retorna (nil, false) e não
// muda nada. A sala NÃO se autodestrói: quem chama decide remover do
// registro quando empty é true.
//
// Regras pós-remoção:
//   - dono saiu -> o jogador da posição 0 herda a posse;
//   - o índice de turno é grampeado de volta para dentro do roster
//     encolhido e o jogador ativo é recalculado.
func (g *Game) RemovePlayer(playerID string) (*player.State, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.indexOf(playerID)
	if i < 0 {
		return nil, false
	}

	removed := g.players[i]
	g.players = append(g.players[:i], g.players[i+1:]...)

	if len(g.players) == 0 {
		g.playerPlayingID = ""
		return removed, true
	}

	if g.owner == playerID {
		g.owner = g.players[0].PlayerID
	}

	// Grampeia o índice no roster encolhido. Sem isso, remover o último da
	// rotação deixaria o índice apontando para fora do slice.
	if i < g.currentTurnIndex {
		g.currentTurnIndex--
	}
	if g.currentTurnIndex >= len(g.players) {
		g.currentTurnIndex = 0
	}
	g.recomputePlayerPlaying()

	return removed, false
}

// SetPublic muda a visibilidade da sala. Só faz sentido antes de começar.
func (g *Game) SetPublic(isPublic bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started() {
		return fmt.Errorf("cannot change privacy after start: %w", ErrInvalidState)
	}
	g.isPublic = isPublic
	return nil
}

// SetMaxPlayers ajusta a capacidade. Nunca abaixo do roster atual nem de 2.
func (g *Game) SetMaxPlayers(n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started() {
		return fmt.Errorf("cannot change capacity after start: %w", ErrInvalidState)
	}
	if n < 2 || n < len(g.players) {
		return fmt.Errorf("invalid capacity %d for %d players: %w", n, len(g.players), ErrInvalidState)
	}
	g.maxPlayers = n
	return nil
}

// ---- Projeções ----

// PublicState é o snapshot imutável que vai nos broadcasts.
type PublicState struct {
	GameID           uuid.UUID           `json:"gameId"`
	OwnerPlayerID    string              `json:"ownerPlayerId"`
	GamePhase        string              `json:"gamePhase"`
	CurrentTurnPhase string              `json:"currentTurnPhase"`
	PlayerPlayingID  string              `json:"playerPlayingId"`
	Players          []player.PublicView `json:"players"`
	CurrentTurnIndex int                 `json:"currentTurnIndex"`
	TurnNumber       int                 `json:"turnNumber"`
	IsPublic         bool                `json:"isPublic"`
	MaxPlayers       int                 `json:"maxPlayers"`
}

// GetPublicState é uma projeção pura: monta o snapshot e não muda nada.
func (g *Game) GetPublicState() PublicState {
	g.mu.Lock()
	defer g.mu.Unlock()

	views := make([]player.PublicView, len(g.players))
	for i, p := range g.players {
		views[i] = p.ToPublicView()
	}

	return PublicState{
		GameID:           g.gameID,
		OwnerPlayerID:    g.owner,
		GamePhase:        g.gamePhase,
		CurrentTurnPhase: g.turnPhase,
		PlayerPlayingID:  g.playerPlayingID,
		Players:          views,
		CurrentTurnIndex: g.currentTurnIndex,
		TurnNumber:       g.turnNumber,
		IsPublic:         g.isPublic,
		MaxPlayers:       g.maxPlayers,
	}
}

// LobbyPlayer é a entrada resumida de um jogador para listagens de lobby.
type LobbyPlayer struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
}

// GameInfo é o resumo de uma sala para o navegador de salas do lobby.
type GameInfo struct {
	GameID        uuid.UUID     `json:"gameId"`
	OwnerPlayerID string        `json:"ownerPlayerId"`
	IsPublic      bool          `json:"isPublic"`
	IsStarted     bool          `json:"isStarted"`
	MaxPlayers    int           `json:"maxPlayers"`
	Players       []LobbyPlayer `json:"players"`
}

// Info monta o resumo de lobby da sala.
func (g *Game) Info() GameInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	players := make([]LobbyPlayer, len(g.players))
	for i, p := range g.players {
		players[i] = LobbyPlayer{PlayerID: p.PlayerID, DisplayName: p.Name}
	}

	return GameInfo{
		GameID:        g.gameID,
		OwnerPlayerID: g.owner,
		IsPublic:      g.isPublic,
		IsStarted:     g.started(),
		MaxPlayers:    g.maxPlayers,
		Players:       players,
	}
}
