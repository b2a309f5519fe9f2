package network

import "github.com/hashicorp/go-hclog"

// Hub mantém o conjunto de clientes vivos e cuida do ciclo de vida das
// conexões. O roteamento de mensagens NÃO passa por aqui: cada readLoop
// entrega direto ao handler, para que salas diferentes avancem em paralelo.
type Hub struct {
	// Clientes registrados. Acessado SOMENTE pela goroutine do Hub.
	clients map[*Client]bool

	// Canal para registrar clientes novos.
	register chan *Client

	// Canal para desregistrar clientes.
	unregister chan *Client

	// O handler da lógica do jogo.
	handler EventHandler

	log hclog.Logger
}

// NewHub cria e inicializa um Hub ligado ao handler.
func NewHub(handler EventHandler, log hclog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		handler:    handler,
		log:        log,
	}
}

// Run é o loop do Hub. Roda em uma goroutine própria pela vida do servidor.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// O handler é avisado ANTES do canal send fechar: ele
				// precisa tirar o cliente de todos os canais de broadcast
				// enquanto ainda é seguro enviar. Fechar o send é o sinal
				// para o writeLoop parar, e só o Hub fecha este canal, uma
				// única vez. OnDisconnect dispara exatamente uma vez por
				// conexão.
				h.handler.OnDisconnect(client)
				close(client.send)
			}
		}
	}
}
