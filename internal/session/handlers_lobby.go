package session

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"gamecards/internal/game/arenales"
	"gamecards/internal/session/message"
)

// handleCreateGame cria uma sala nova com o solicitante como dono.
// Se ele já estava em alguma sala, sai dela primeiro, de forma transparente
// (mesma lógica do Leave). O criador entra direto no canal de broadcast da
// sala nova e recebe o resumo de criação como resposta.
func (h *GameHub) handleCreateGame(conn message.Sender, payload json.RawMessage) {
	var req struct {
		PlayerID   *string `json:"playerId"`
		IsPublic   *bool   `json:"isPublic"`
		MaxPlayers *int    `json:"maxPlayers"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.PlayerID == nil || req.IsPublic == nil || req.MaxPlayers == nil {
		sendTo(conn, message.Error("invalid payload: 'playerId', 'isPublic' and 'maxPlayers' are required"), h.log)
		return
	}
	playerID := *req.PlayerID

	if *req.MaxPlayers < 2 {
		sendTo(conn, message.Error("invalid payload: 'maxPlayers' must be at least 2"), h.log)
		return
	}

	// Já está em uma sala? Sai primeiro.
	if profile, ok := h.dir.Get(playerID); ok && profile.CurrentGameID != nil {
		h.leaveGame(conn, *profile.CurrentGameID, playerID)
	}

	game := h.manager.CreateGame(playerID, *req.IsPublic, *req.MaxPlayers)
	gameID := game.GameID()

	r := h.getRoom(gameID)
	r.mu.Lock()

	// O dono entra no próprio roster na hora. Com a sala recém-criada e
	// capacidade >= 2 isso não falha; se falhar, é bug e a sala não fica
	// meio-criada para trás.
	if err := game.AddPlayer(playerID, h.displayName(playerID)); err != nil {
		r.mu.Unlock()
		h.manager.RemoveGame(gameID)
		h.deleteRoom(gameID)
		sendTo(conn, message.Error(fmt.Sprintf("failed to create game: %v", err)), h.log)
		return
	}
	r.subscribeLocked(conn)
	r.mu.Unlock()

	h.setDirectoryGame(playerID, gameID)

	h.log.Info("game created", "game", gameID, "owner", playerID)

	info := game.Info()
	sendTo(conn, message.GameCreated(message.GameCreatedPayload{
		GameID:        info.GameID,
		OwnerPlayerID: info.OwnerPlayerID,
		IsPublic:      info.IsPublic,
		MaxPlayers:    info.MaxPlayers,
		Players:       info.Players,
	}), h.log)
}

// handleJoinGame coloca o jogador em uma sala específica.
// Sala desconhecida e sala cheia/iniciada são falhas barulhentas: o
// chamador pediu algo que não dá para atender.
func (h *GameHub) handleJoinGame(conn message.Sender, payload json.RawMessage) {
	var req struct {
		GameID     *uuid.UUID `json:"gameId"`
		PlayerID   *string    `json:"playerId"`
		PlayerName *string    `json:"playerName"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == nil || req.PlayerID == nil || req.PlayerName == nil {
		sendTo(conn, message.Error("invalid payload: 'gameId', 'playerId' and 'playerName' are required"), h.log)
		return
	}

	if err := h.joinGame(conn, *req.GameID, *req.PlayerID, *req.PlayerName); err != nil {
		sendTo(conn, message.Error(err.Error()), h.log)
	}
}

// joinGame é o núcleo do join, compartilhado com o quick-join.
// Sob o lock da sala: adiciona ao roster (se ainda não é membro), liga o
// perfil à sala, registra a conexão como a autoritativa do jogador,
// inscreve no canal e emite o estado completo ao chamador seguido do
// PlayerJoined para a sala inteira.
func (h *GameHub) joinGame(conn message.Sender, gameID uuid.UUID, playerID, playerName string) error {
	game, r, err := h.lockGameRoom(gameID)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	if !game.HasPlayer(playerID) {
		if err := game.AddPlayer(playerID, playerName); err != nil {
			return err
		}
	}

	h.setDirectoryGame(playerID, gameID)
	h.recordPresence(playerID, conn)
	r.subscribeLocked(conn)

	state := game.GetPublicState()
	sendTo(conn, message.GameStateUpdated(state), h.log)
	r.broadcastLocked(message.PlayerJoined(playerName, state), h.log)

	h.log.Info("player joined", "player", playerName, "game", gameID, "players", len(state.Players))
	return nil
}

// handleJoinAnyAvailableGame é o quick-join. Se o jogador já tem uma sala
// registrada no perfil, devolve essa sala sem efeito colateral nenhum.
// Senão procura uma sala pública não iniciada e entra nela; sem sala
// disponível, devolve id nulo.
func (h *GameHub) handleJoinAnyAvailableGame(conn message.Sender, payload json.RawMessage) {
	var req struct {
		PlayerID   *string `json:"playerId"`
		PlayerName *string `json:"playerName"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.PlayerID == nil || req.PlayerName == nil {
		sendTo(conn, message.Error("invalid payload: 'playerId' and 'playerName' are required"), h.log)
		return
	}

	if profile, ok := h.dir.Get(*req.PlayerID); ok && profile.CurrentGameID != nil {
		sendTo(conn, message.JoinAnyResult(profile.CurrentGameID), h.log)
		return
	}

	game := h.manager.FindFirstPublicWaitingGame()
	if game == nil {
		sendTo(conn, message.JoinAnyResult(nil), h.log)
		return
	}

	gameID := game.GameID()
	if err := h.joinGame(conn, gameID, *req.PlayerID, *req.PlayerName); err != nil {
		// A sala pode ter enchido ou começado entre a busca e o join.
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}
	sendTo(conn, message.JoinAnyResult(&gameID), h.log)
}

// handleListGames devolve o resumo de todas as salas ativas, para o
// navegador de salas do lobby.
func (h *GameHub) handleListGames(conn message.Sender, payload json.RawMessage) {
	games := h.manager.ListGames()

	infos := make([]arenales.GameInfo, 0, len(games))
	for _, g := range games {
		infos = append(infos, g.Info())
	}
	sendTo(conn, message.GameList(infos), h.log)
}
