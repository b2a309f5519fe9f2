package session

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"gamecards/internal/game/arenales"
	"gamecards/internal/session/message"
)

// handleStartGame arranca a partida. Sala desconhecida e roster pequeno
// demais voltam como Error; partida já em andamento é retorno silencioso,
// o pedido chegou atrasado e não há nada a corrigir.
func (h *GameHub) handleStartGame(conn message.Sender, payload json.RawMessage) {
	var req struct {
		GameID *uuid.UUID `json:"gameId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == nil {
		sendTo(conn, message.Error("invalid payload: 'gameId' is required"), h.log)
		return
	}

	game, r, err := h.lockGameRoom(*req.GameID)
	if err != nil {
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}
	defer r.mu.Unlock()

	if game.IsStarted() {
		return
	}

	if err := game.StartGame(); err != nil {
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}

	h.log.Info("game started", "game", *req.GameID, "players", game.PlayerCount())

	r.broadcastLocked(message.GameStateUpdated(game.GetPublicState()), h.log)
	r.broadcastLocked(message.GameStarted(*req.GameID), h.log)
}

// handleAdvanceTurn empurra a máquina de fases do turno e devolve o estado
// novo para a sala inteira. Fora de in_progress o núcleo recusa e a recusa
// volta como Error para o chamador.
func (h *GameHub) handleAdvanceTurn(conn message.Sender, payload json.RawMessage) {
	var req struct {
		GameID *uuid.UUID `json:"gameId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == nil {
		sendTo(conn, message.Error("invalid payload: 'gameId' is required"), h.log)
		return
	}

	game, r, err := h.lockGameRoom(*req.GameID)
	if err != nil {
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}
	defer r.mu.Unlock()

	if err := game.AdvanceTurnPhase(); err != nil {
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}

	r.broadcastLocked(message.GameStateUpdated(game.GetPublicState()), h.log)
}

// handleLeaveGame tira o próprio jogador da sala. Saída é sempre
// silenciosa para quem sai: sala inexistente ou jogador que não estava lá
// não rendem erro nenhum, o cliente só quer ir embora.
func (h *GameHub) handleLeaveGame(conn message.Sender, payload json.RawMessage) {
	var req struct {
		GameID   *uuid.UUID `json:"gameId"`
		PlayerID *string    `json:"playerId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == nil || req.PlayerID == nil {
		sendTo(conn, message.Error("invalid payload: 'gameId' and 'playerId' are required"), h.log)
		return
	}

	h.leaveGame(conn, *req.GameID, *req.PlayerID)
}

// leaveGame é o núcleo da saída, compartilhado pelo LeaveGame explícito e
// pela queda de conexão. Sob o lock da sala: remove do roster, desliga a
// conexão do canal de broadcast e avisa quem ficou. Sala que esvazia é
// destruída aqui mesmo.
func (h *GameHub) leaveGame(conn message.Sender, gameID uuid.UUID, playerID string) {
	game, r, err := h.lockGameRoom(gameID)
	if err != nil {
		return
	}

	removed, empty := game.RemovePlayer(playerID)
	if removed == nil {
		r.unsubscribeLocked(conn)
		r.mu.Unlock()
		return
	}

	// A presença não é mexida aqui: sair de uma sala não desconecta o
	// jogador. A queda de conexão limpa a presença no caminho dela.
	r.unsubscribeLocked(conn)
	h.clearDirectoryGame(playerID)

	if empty {
		// Destruição com o lock ainda seguro: um join concorrente na mesma
		// sala revalida o registro sob este lock e já não encontra a partida.
		h.manager.RemoveGame(gameID)
		h.deleteRoom(gameID)
		r.mu.Unlock()
		h.log.Info("game removed, last player left", "game", gameID)
		return
	}

	r.broadcastLocked(message.PlayerLeft(removed.Name, game.GetPublicState()), h.log)
	r.mu.Unlock()

	h.log.Info("player left", "player", playerID, "game", gameID)
}

// handleKickPlayer expulsa um jogador a mando do dono. Payload quebrado é
// barulhento; o resto é silencioso: sala inexistente, solicitante que não
// é o dono ou alvo que já saiu viram no-op, do jeito que um kick atrasado
// deve virar.
//
// Ordem dos avisos, contrato com o cliente: o PlayerKicked vai para a sala
// com o expulso AINDA inscrito (ele também vê o evento), depois o
// YouWereKicked vai direto para ele e só então a conexão dele sai do
// canal. A entrada de presença do expulso fica: ele continua conectado, só
// não está mais em sala nenhuma.
func (h *GameHub) handleKickPlayer(conn message.Sender, payload json.RawMessage) {
	var req struct {
		GameID         *uuid.UUID `json:"gameId"`
		PlayerID       *string    `json:"playerId"`
		TargetPlayerID *string    `json:"targetPlayerId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == nil || req.PlayerID == nil || req.TargetPlayerID == nil {
		sendTo(conn, message.Error("invalid payload: 'gameId', 'playerId' and 'targetPlayerId' are required"), h.log)
		return
	}

	game, r, err := h.lockGameRoom(*req.GameID)
	if err != nil {
		return
	}
	if game.OwnerPlayerID() != *req.PlayerID {
		r.mu.Unlock()
		h.log.Warn("kick denied, requester is not the owner",
			"requester", *req.PlayerID, "game", *req.GameID)
		return
	}

	// A conexão do alvo é resolvida com o lock da sala na mão. Uma queda
	// concorrente só fecha o canal send do alvo depois de varrer a conexão
	// de todos os canais de broadcast, e a varredura precisa deste lock:
	// presença ainda registrada aqui significa canal ainda aberto.
	targetID := *req.TargetPlayerID
	targetConn := h.presenceConn(targetID)

	removed, empty := game.RemovePlayer(targetID)
	if removed == nil {
		r.mu.Unlock()
		return
	}

	h.clearDirectoryGame(targetID)

	if empty {
		h.manager.RemoveGame(*req.GameID)
	}

	// Mesmo com a sala recém-destruída o evento sai para quem ainda está
	// inscrito no canal.
	r.broadcastLocked(message.PlayerKicked(targetID, game.GetPublicState()), h.log)

	if targetConn != nil {
		sendTo(targetConn, message.YouWereKicked(*req.GameID), h.log)
		r.unsubscribeLocked(targetConn)
	}

	if empty {
		h.deleteRoom(*req.GameID)
	}
	r.mu.Unlock()

	if empty {
		h.log.Info("game removed, last player kicked", "game", *req.GameID)
	}
	h.log.Info("player kicked", "player", targetID, "game", *req.GameID, "by", *req.PlayerID)
}

// handleUpdatePrivacy alterna a sala entre pública e privada. Só o dono,
// só antes de começar.
func (h *GameHub) handleUpdatePrivacy(conn message.Sender, payload json.RawMessage) {
	var req struct {
		GameID   *uuid.UUID `json:"gameId"`
		PlayerID *string    `json:"playerId"`
		IsPublic *bool      `json:"isPublic"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == nil || req.PlayerID == nil || req.IsPublic == nil {
		sendTo(conn, message.Error("invalid payload: 'gameId', 'playerId' and 'isPublic' are required"), h.log)
		return
	}

	game, r, err := h.lockGameRoom(*req.GameID)
	if err != nil {
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}
	defer r.mu.Unlock()

	if game.OwnerPlayerID() != *req.PlayerID {
		err := fmt.Errorf("only the owner can change game settings: %w", arenales.ErrUnauthorized)
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}

	if err := game.SetPublic(*req.IsPublic); err != nil {
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}

	r.broadcastLocked(message.GameStateUpdated(game.GetPublicState()), h.log)
}

// handleUpdateMaxPlayers redimensiona a sala. Mesmas regras do privacy:
// dono, antes de começar, e nunca abaixo do roster atual.
func (h *GameHub) handleUpdateMaxPlayers(conn message.Sender, payload json.RawMessage) {
	var req struct {
		GameID     *uuid.UUID `json:"gameId"`
		PlayerID   *string    `json:"playerId"`
		MaxPlayers *int       `json:"maxPlayers"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == nil || req.PlayerID == nil || req.MaxPlayers == nil {
		sendTo(conn, message.Error("invalid payload: 'gameId', 'playerId' and 'maxPlayers' are required"), h.log)
		return
	}

	game, r, err := h.lockGameRoom(*req.GameID)
	if err != nil {
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}
	defer r.mu.Unlock()

	if game.OwnerPlayerID() != *req.PlayerID {
		err := fmt.Errorf("only the owner can change game settings: %w", arenales.ErrUnauthorized)
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}

	if err := game.SetMaxPlayers(*req.MaxPlayers); err != nil {
		sendTo(conn, message.Error(err.Error()), h.log)
		return
	}

	r.broadcastLocked(message.GameStateUpdated(game.GetPublicState()), h.log)
}
