package directory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/nats-io/nats.go"
)

// Assuntos do serviço de perfis no barramento NATS. O serviço de perfis é
// outro processo; aqui só existe o cliente.
const (
	subjectGet = "gamecards.directory.get"
	subjectSet = "gamecards.directory.set"

	requestTimeout = 2 * time.Second
)

type getRequest struct {
	PlayerID string `json:"playerId"`
}

type getResponse struct {
	Found   bool     `json:"found"`
	Profile *Profile `json:"profile,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type setRequest struct {
	PlayerID string   `json:"playerId"`
	Profile  *Profile `json:"profile"`
}

// NATS é o cliente do serviço de perfis via request/reply.
type NATS struct {
	nc  *nats.Conn
	log hclog.Logger
}

// NewNATS conecta no broker e devolve o cliente. A conexão reconecta
// sozinha; uma queda temporária do broker degrada o Get para "sem perfil"
// em vez de derrubar o servidor de sessões.
func NewNATS(url string, log hclog.Logger) (*NATS, error) {
	nc, err := nats.Connect(url,
		nats.Name("gamecards-session"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATS{nc: nc, log: log}, nil
}

func (d *NATS) Get(playerID string) (*Profile, bool) {
	reqBytes, _ := json.Marshal(getRequest{PlayerID: playerID})

	msg, err := d.nc.Request(subjectGet, reqBytes, requestTimeout)
	if err != nil {
		d.log.Warn("directory get failed", "player", playerID, "error", err)
		return nil, false
	}

	var resp getResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		d.log.Warn("directory get: bad response", "player", playerID, "error", err)
		return nil, false
	}
	if resp.Error != "" {
		d.log.Warn("directory get: service error", "player", playerID, "error", resp.Error)
		return nil, false
	}
	if !resp.Found {
		return nil, false
	}
	return resp.Profile, true
}

func (d *NATS) Set(playerID string, profile *Profile) {
	reqBytes, err := json.Marshal(setRequest{PlayerID: playerID, Profile: profile})
	if err != nil {
		d.log.Error("directory set: marshal failed", "player", playerID, "error", err)
		return
	}

	// Publish basta: o diretório é uma tabela lateral, uma escrita perdida
	// durante uma queda do broker não corrompe o estado das partidas.
	if err := d.nc.Publish(subjectSet, reqBytes); err != nil {
		d.log.Warn("directory set failed", "player", playerID, "error", err)
	}
}

// HealthCheck informa se a conexão com o broker está de pé, para o
// agregador de saúde do processo.
func (d *NATS) HealthCheck() error {
	if !d.nc.IsConnected() {
		return fmt.Errorf("nats not connected, status: %v", d.nc.Status())
	}
	return nil
}

// Close encerra a conexão com o broker, drenando o que estiver pendente.
func (d *NATS) Close() {
	d.nc.Drain()
}
