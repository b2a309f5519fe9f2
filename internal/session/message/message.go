// Package message constrói as mensagens servidor -> cliente. Os nomes dos
// eventos ("GameStateUpdated", "PlayerJoined", ...) são contrato com o
// cliente existente: não renomeie.
package message

import (
	"encoding/json"

	"github.com/google/uuid"

	"gamecards/internal/game/arenales"
	"gamecards/internal/network"
)

// Sender é qualquer coisa capaz de receber uma mensagem. Desacopla este
// pacote (e os testes do hub) do *network.Client concreto.
type Sender interface {
	Send() chan<- network.Message
}

// Nomes dos eventos emitidos pelo servidor.
const (
	TypeGameCreated      = "GameCreated"
	TypeGameStateUpdated = "GameStateUpdated"
	TypeGameStarted      = "GameStarted"
	TypePlayerJoined     = "PlayerJoined"
	TypePlayerLeft       = "PlayerLeft"
	TypePlayerKicked     = "PlayerKicked"
	TypeYouWereKicked    = "YouWereKicked"
	TypeGameList         = "GameList"
	TypeJoinAnyResult    = "JoinAnyResult"
	TypeError            = "Error"
)

// GameCreatedPayload é a resposta do CreateGame.
type GameCreatedPayload struct {
	GameID        uuid.UUID              `json:"gameId"`
	OwnerPlayerID string                 `json:"ownerPlayerId"`
	IsPublic      bool                   `json:"isPublic"`
	MaxPlayers    int                    `json:"maxPlayers"`
	Players       []arenales.LobbyPlayer `json:"players"`
}

// PlayerEventPayload acompanha PlayerJoined e PlayerLeft.
type PlayerEventPayload struct {
	PlayerName string               `json:"playerName"`
	State      arenales.PublicState `json:"state"`
}

// PlayerKickedPayload vai para a sala quando alguém é expulso.
type PlayerKickedPayload struct {
	PlayerID string               `json:"playerId"`
	State    arenales.PublicState `json:"state"`
}

// GameIDPayload acompanha GameStarted e YouWereKicked.
type GameIDPayload struct {
	GameID uuid.UUID `json:"gameId"`
}

// JoinAnyResultPayload responde o JoinAnyAvailableGame. GameID nulo
// significa "nenhuma sala pública esperando".
type JoinAnyResultPayload struct {
	GameID *uuid.UUID `json:"gameId"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// mustMessage embrulha NewMessage para os payloads deste pacote, que são
// todos serializáveis por construção.
func mustMessage(msgType string, payload any) network.Message {
	msg, err := network.NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

func GameCreated(p GameCreatedPayload) network.Message {
	return mustMessage(TypeGameCreated, p)
}

func GameStateUpdated(state arenales.PublicState) network.Message {
	return mustMessage(TypeGameStateUpdated, state)
}

func GameStarted(gameID uuid.UUID) network.Message {
	return mustMessage(TypeGameStarted, GameIDPayload{GameID: gameID})
}

func PlayerJoined(playerName string, state arenales.PublicState) network.Message {
	return mustMessage(TypePlayerJoined, PlayerEventPayload{PlayerName: playerName, State: state})
}

func PlayerLeft(playerName string, state arenales.PublicState) network.Message {
	return mustMessage(TypePlayerLeft, PlayerEventPayload{PlayerName: playerName, State: state})
}

func PlayerKicked(playerID string, state arenales.PublicState) network.Message {
	return mustMessage(TypePlayerKicked, PlayerKickedPayload{PlayerID: playerID, State: state})
}

func YouWereKicked(gameID uuid.UUID) network.Message {
	return mustMessage(TypeYouWereKicked, GameIDPayload{GameID: gameID})
}

func GameList(games []arenales.GameInfo) network.Message {
	return mustMessage(TypeGameList, games)
}

func JoinAnyResult(gameID *uuid.UUID) network.Message {
	return mustMessage(TypeJoinAnyResult, JoinAnyResultPayload{GameID: gameID})
}

func Error(errorMsg string) network.Message {
	payload, _ := json.Marshal(errorPayload{Error: errorMsg})
	return network.Message{Type: TypeError, Payload: payload}
}
