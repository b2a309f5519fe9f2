package arenales

import "errors"

// Erros sentinela do núcleo. A camada de presença decide com errors.Is
// o que vira falha para o cliente e o que é ignorado em silêncio.
var (
	// ErrGameNotFound: a operação referenciou um id de partida desconhecido.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidState: a operação não é válida na fase atual da partida
	// (entrar em partida cheia ou já iniciada, iniciar com menos de dois
	// jogadores, avançar turno fora de in_progress).
	ErrInvalidState = errors.New("invalid game state")

	// ErrUnauthorized: o solicitante não tem o papel exigido pela operação
	// (ex: kick por quem não é dono).
	ErrUnauthorized = errors.New("unauthorized")
)
