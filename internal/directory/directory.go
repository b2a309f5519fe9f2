// Package directory consome o serviço de perfis de jogadores. O diretório é
// uma tabela lateral compartilhada: o núcleo das partidas nunca toca nele,
// só a camada de presença, para manter o CurrentGameID sincronizado a cada
// join/leave/kick/disconnect.
package directory

import "github.com/google/uuid"

// Profile é o perfil de um jogador no diretório. Um perfil sem email é de
// convidado; com email, de conta verificada.
type Profile struct {
	PlayerID      string     `json:"playerId"`
	DisplayName   string     `json:"displayName"`
	Email         string     `json:"email,omitempty"`
	AvatarURL     string     `json:"avatarUrl,omitempty"`
	CurrentGameID *uuid.UUID `json:"currentGameId,omitempty"`
}

// IsGuest distingue convidado de conta verificada pela presença do email.
func (p *Profile) IsGuest() bool {
	return p.Email == ""
}

// Directory é o contrato com o serviço de perfis.
//
// Get devolve (nil, false) tanto para jogador desconhecido quanto para
// diretório indisponível: para a camada de presença os dois casos são o
// mesmo "sem perfil, siga como convidado".
type Directory interface {
	Get(playerID string) (*Profile, bool)
	Set(playerID string, profile *Profile)
}
