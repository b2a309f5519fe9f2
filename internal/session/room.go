package session

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"gamecards/internal/network"
	"gamecards/internal/session/message"
)

// room é o canal de broadcast de uma sala: o conjunto de conexões inscritas
// para receber os eventos daquela partida.
//
// O mutex da room é o lock por sessão da casa: cada operação do hub sobre
// uma sala segura este lock do início ao fim (mutação + broadcast), o que
// serializa operações concorrentes na mesma sala e garante que todos os
// inscritos observam os eventos na ordem em que foram emitidos. Salas
// diferentes não compartilham lock e andam em paralelo.
type room struct {
	mu          sync.Mutex
	subscribers map[message.Sender]bool
}

func newRoom() *room {
	return &room{
		subscribers: make(map[message.Sender]bool),
	}
}

// subscribeLocked inscreve a conexão. Chamar com r.mu seguro.
func (r *room) subscribeLocked(conn message.Sender) {
	r.subscribers[conn] = true
}

// unsubscribeLocked remove a conexão. Chamar com r.mu seguro.
func (r *room) unsubscribeLocked(conn message.Sender) {
	delete(r.subscribers, conn)
}

// broadcastLocked envia a mensagem para todos os inscritos. Chamar com r.mu
// seguro; é o lock que dá a ordem FIFO por sala.
func (r *room) broadcastLocked(msg network.Message, log hclog.Logger) {
	for conn := range r.subscribers {
		sendTo(conn, msg, log)
	}
}

// sendTo entrega sem bloquear. Se o buffer do cliente está cheio, a conexão
// está lenta ou morta: derrubar o evento aqui é melhor do que travar a sala
// inteira atrás de um cliente.
func sendTo(conn message.Sender, msg network.Message, log hclog.Logger) {
	select {
	case conn.Send() <- msg:
	default:
		log.Warn("dropping message to slow client", "type", msg.Type)
	}
}
