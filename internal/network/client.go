package network

import (
	"net"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
)

const (
	// Tempo máximo para uma escrita na conexão completar.
	writeWait = 10 * time.Second

	// Tempo máximo esperando o pong do cliente.
	pongWait = 60 * time.Second

	// Frequência dos pings. Precisa ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Buffer do canal de saída. O buffer evita que um broadcast bloqueie
	// atrás de um cliente lento.
	sendBufferSize = 256
)

// Client representa um jogador conectado, do ponto de vista do servidor.
// Agrupa a conexão WebSocket e o canal de saída.
type Client struct {
	conn *websocket.Conn
	hub  *Hub
	log  hclog.Logger

	// Canal bufferizado de mensagens de saída. A lógica do jogo escreve
	// aqui; a goroutine writeLoop drena para a conexão.
	send chan Message
}

// Conn expõe a net.Conn subjacente, útil para o handler logar o endereço.
func (c *Client) Conn() net.Conn {
	return c.conn.UnderlyingConn()
}

// Send é o único jeito seguro de mandar uma mensagem para este cliente.
// Nunca escreva na conexão diretamente fora do writeLoop.
func (c *Client) Send() chan<- Message {
	return c.send
}

// readLoop bombeia mensagens da conexão para o handler.
// Cada cliente tem a sua, então mensagens do mesmo cliente são processadas
// em ordem e clientes diferentes não se bloqueiam.
func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	// Cada pong recebido renova o deadline de leitura, mantendo a conexão viva.
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("unexpected close", "remote", c.conn.RemoteAddr(), "error", err)
			}
			// Qualquer erro de leitura, normal ou não, encerra o loop e
			// dispara o unregister do defer.
			break
		}

		c.hub.handler.OnMessage(c, msg)
	}
}

// writeLoop bombeia mensagens do canal send para a conexão, intercalando os
// pings periódicos.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			// O canal send fechado é o sinal do Hub de que este cliente
			// foi desregistrado.
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Warn("write failed", "remote", c.conn.RemoteAddr(), "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return // ping falhou, a conexão está morta
			}
		}
	}
}
