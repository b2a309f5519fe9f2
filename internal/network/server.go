package network

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
)

const maxMessageSize = 64 * 1024

// Server promove requisições HTTP para conexões WebSocket e as entrega ao Hub.
type Server struct {
	hub *Hub
	log hclog.Logger
}

var upgrader = websocket.Upgrader{
	// Em desenvolvimento aceitamos qualquer origem. O gateway na frente é
	// quem restringe em produção.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServer cria o servidor com a lógica do jogo injetada via EventHandler.
func NewServer(handler EventHandler, log hclog.Logger) *Server {
	return &Server{
		hub: NewHub(handler, log),
		log: log,
	}
}

// WSHandler é o ponto de entrada das conexões de clientes.
func (s *Server) WSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		conn: conn,
		hub:  s.hub,
		log:  s.log,
		send: make(chan Message, sendBufferSize),
	}

	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}

// Listen sobe o Hub e o servidor HTTP na rota /ws. Bloqueia até o servidor
// cair. O mux é recebido de fora para o main poder pendurar o /health e
// outras rotas no mesmo listener.
func (s *Server) Listen(address string, mux *http.ServeMux) error {
	go s.hub.Run()

	mux.HandleFunc("/ws", s.WSHandler)

	s.log.Info("websocket server listening", "address", address, "path", "/ws")
	return http.ListenAndServe(address, mux)
}
