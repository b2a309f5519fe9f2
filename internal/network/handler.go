package network

// EventHandler é a interface que liga a rede à lógica do jogo.
// O código de jogo (fora deste pacote) implementa esta interface.
//
// OnConnect e OnDisconnect chegam da goroutine do Hub. OnMessage chega da
// goroutine de leitura do próprio cliente: mensagens de UM cliente são
// entregues em ordem, mas clientes diferentes entregam em paralelo; o
// handler é responsável pela própria disciplina de locks.
type EventHandler interface {
	// OnConnect é chamado quando um cliente novo completa o handshake.
	OnConnect(c *Client)

	// OnDisconnect é chamado exatamente uma vez quando a conexão cai,
	// não importa o motivo.
	OnDisconnect(c *Client)

	// OnMessage é chamado para cada mensagem recebida do cliente.
	OnMessage(c *Client, msg Message)
}
