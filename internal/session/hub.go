// Package session é a camada de presença e broadcast: liga conexões a
// jogadores, serializa as operações que mudam salas, invoca o núcleo
// (arenales) e emite as notificações para os inscritos de cada sala.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"gamecards/internal/directory"
	"gamecards/internal/game/arenales"
	"gamecards/internal/network"
	"gamecards/internal/session/message"
)

// Nomes das operações cliente -> servidor. São os nomes dos métodos do hub
// que o cliente invoca; contrato, não renomeie.
const (
	cmdCreateGame       = "CreateGame"
	cmdJoinGame         = "JoinGame"
	cmdJoinAnyAvailable = "JoinAnyAvailableGame"
	cmdStartGame        = "StartGame"
	cmdAdvanceTurn      = "AdvanceTurn"
	cmdLeaveGame        = "LeaveGame"
	cmdKickPlayer       = "KickPlayer"
	cmdListGames        = "ListGames"
	cmdUpdatePrivacy    = "UpdatePrivacy"
	cmdUpdateMaxPlayers = "UpdateMaxPlayers"
)

// commandHandlerFunc é a assinatura de todos os handlers de comando.
type commandHandlerFunc func(h *GameHub, conn message.Sender, payload json.RawMessage)

// GameHub implementa network.EventHandler. Guarda os três mapas
// compartilhados da camada de presença:
//
//   - presence: jogador -> conexão autoritativa (sobrescrita em re-join,
//     removida em saída/queda);
//   - connPlayers: o reverso, para resolver quedas de conexão;
//   - rooms: sala -> canal de broadcast.
//
// Os mapas são protegidos pelo mutex do hub. O estado de cada sala tem o
// próprio lock (room.mu, adquirido antes do mutex do hub quando os dois são
// necessários, nunca na ordem inversa).
type GameHub struct {
	manager *arenales.Manager
	dir     directory.Directory
	log     hclog.Logger

	mu          sync.Mutex
	presence    map[string]message.Sender
	connPlayers map[message.Sender]string
	rooms       map[uuid.UUID]*room

	router map[string]commandHandlerFunc
}

// NewGameHub cria o hub com o registro de salas e o diretório injetados.
func NewGameHub(manager *arenales.Manager, dir directory.Directory, log hclog.Logger) *GameHub {
	h := &GameHub{
		manager:     manager,
		dir:         dir,
		log:         log,
		presence:    make(map[string]message.Sender),
		connPlayers: make(map[message.Sender]string),
		rooms:       make(map[uuid.UUID]*room),
	}
	h.router = map[string]commandHandlerFunc{
		cmdCreateGame:       (*GameHub).handleCreateGame,
		cmdJoinGame:         (*GameHub).handleJoinGame,
		cmdJoinAnyAvailable: (*GameHub).handleJoinAnyAvailableGame,
		cmdStartGame:        (*GameHub).handleStartGame,
		cmdAdvanceTurn:      (*GameHub).handleAdvanceTurn,
		cmdLeaveGame:        (*GameHub).handleLeaveGame,
		cmdKickPlayer:       (*GameHub).handleKickPlayer,
		cmdListGames:        (*GameHub).handleListGames,
		cmdUpdatePrivacy:    (*GameHub).handleUpdatePrivacy,
		cmdUpdateMaxPlayers: (*GameHub).handleUpdateMaxPlayers,
	}
	return h
}

// ---- network.EventHandler ----

func (h *GameHub) OnConnect(c *network.Client) {
	h.log.Info("client connected", "remote", c.Conn().RemoteAddr())
}

func (h *GameHub) OnDisconnect(c *network.Client) {
	h.log.Info("client disconnected", "remote", c.Conn().RemoteAddr())
	h.handleDisconnect(c)
}

func (h *GameHub) OnMessage(c *network.Client, msg network.Message) {
	h.dispatch(c, msg)
}

// dispatch roteia o comando. Separado do OnMessage para os testes poderem
// injetar conexões falsas.
func (h *GameHub) dispatch(conn message.Sender, msg network.Message) {
	handler, found := h.router[msg.Type]
	if !found {
		sendTo(conn, message.Error(fmt.Sprintf("unknown command: %s", msg.Type)), h.log)
		return
	}
	handler(h, conn, msg.Payload)
}

// handleDisconnect é o caminho das quedas de conexão. Não há pedido do
// cliente: descobrimos quem era pelo mapa de presença e executamos a mesma
// lógica do LeaveGame. A entrada de presença sai SEMPRE, ache ou não uma
// sala; por fim a conexão é varrida de todos os canais de broadcast (ela
// pode estar inscrita sem presença, ex: criador que nunca deu join).
func (h *GameHub) handleDisconnect(conn message.Sender) {
	h.mu.Lock()
	playerID, known := h.connPlayers[conn]
	h.mu.Unlock()

	if known {
		if profile, ok := h.dir.Get(playerID); ok && profile.CurrentGameID != nil {
			h.log.Info("removing player from game due to disconnect",
				"player", playerID, "game", *profile.CurrentGameID)
			h.leaveGame(conn, *profile.CurrentGameID, playerID)
		}

		h.mu.Lock()
		if h.presence[playerID] == conn {
			delete(h.presence, playerID)
		}
		delete(h.connPlayers, conn)
		h.mu.Unlock()
	}

	h.scrubConn(conn)
}

// ---- Mapas de presença e salas ----

// getRoom devolve o canal de broadcast da sala, criando se preciso.
func (h *GameHub) getRoom(gameID uuid.UUID) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[gameID]
	if !ok {
		r = newRoom()
		h.rooms[gameID] = r
	}
	return r
}

// deleteRoom descarta o canal de broadcast de uma sala destruída. Quem já
// tem a referência ainda pode emitir um último evento para os inscritos
// remanescentes; novas buscas não encontram mais a sala.
func (h *GameHub) deleteRoom(gameID uuid.UUID) {
	h.mu.Lock()
	delete(h.rooms, gameID)
	h.mu.Unlock()
}

// lockGameRoom resolve a partida e adquire o lock da sala dela. A resolução
// é revalidada já com o lock na mão: entre a primeira busca e a aquisição do
// lock, uma saída concorrente pode ter destruído a sala, e operar nessa
// referência fantasma inscreveria jogadores em uma partida que não existe
// mais. Em caso de sucesso, quem chama solta r.mu.
func (h *GameHub) lockGameRoom(gameID uuid.UUID) (*arenales.Game, *room, error) {
	if _, err := h.manager.GetGame(gameID); err != nil {
		return nil, nil, err
	}

	r := h.getRoom(gameID)
	r.mu.Lock()

	game, err := h.manager.GetGame(gameID)
	if err != nil {
		r.mu.Unlock()
		// O getRoom acima recriou a entrada de uma sala morta; não fica.
		h.deleteRoom(gameID)
		return nil, nil, err
	}
	return game, r, nil
}

// recordPresence grava a conexão autoritativa do jogador. Um segundo join
// da mesma identidade sobrescreve em silêncio: a conexão antiga continua
// viva, só deixa de representar o jogador.
func (h *GameHub) recordPresence(playerID string, conn message.Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.presence[playerID]; ok && old != conn {
		delete(h.connPlayers, old)
	}
	h.presence[playerID] = conn
	h.connPlayers[conn] = playerID
}

// presenceConn resolve jogador -> conexão, ou nil se não rastreado.
func (h *GameHub) presenceConn(playerID string) message.Sender {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presence[playerID]
}

// scrubConn tira a conexão de todos os canais de broadcast. Roda antes do
// canal send fechar, então nenhum broadcast posterior pode tocar a conexão.
func (h *GameHub) scrubConn(conn message.Sender) {
	h.mu.Lock()
	rooms := make([]*room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.Unlock()

	for _, r := range rooms {
		r.mu.Lock()
		r.unsubscribeLocked(conn)
		r.mu.Unlock()
	}
}

// ---- Sincronização com o diretório de perfis ----

// setDirectoryGame aponta o perfil do jogador para a sala. Jogador sem
// perfil no diretório segue como convidado, sem registro.
func (h *GameHub) setDirectoryGame(playerID string, gameID uuid.UUID) {
	if profile, ok := h.dir.Get(playerID); ok {
		profile.CurrentGameID = &gameID
		h.dir.Set(playerID, profile)
	}
}

// clearDirectoryGame limpa a referência de sala do perfil.
func (h *GameHub) clearDirectoryGame(playerID string) {
	if profile, ok := h.dir.Get(playerID); ok {
		profile.CurrentGameID = nil
		h.dir.Set(playerID, profile)
	}
}

// displayName resolve o nome de exibição do jogador pelo diretório.
func (h *GameHub) displayName(playerID string) string {
	if profile, ok := h.dir.Get(playerID); ok && profile.DisplayName != "" {
		return profile.DisplayName
	}
	return "Guest"
}
