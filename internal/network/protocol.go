package network

import "encoding/json"

// Message é o envelope padrão de toda a comunicação, nos dois sentidos.
// Type roteia ("JoinGame", "GameStateUpdated", ...); Payload fica em JSON
// bruto para ser decodificado por quem conhece o comando.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage monta um envelope serializando o payload. Um payload que não
// serializa é erro de programação, então o erro sobe para o chamador tratar
// no ponto de construção, não no de envio.
func NewMessage(msgType string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Payload: raw}, nil
}
