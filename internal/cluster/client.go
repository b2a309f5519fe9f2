// Package cluster cuida da vida do processo dentro do cluster: registro no
// Consul, health check HTTP e descoberta de serviços vizinhos.
package cluster

import (
	"fmt"
	"strings"

	consul "github.com/hashicorp/consul/api"
	"github.com/hashicorp/go-hclog"
)

// NewConsulClient conecta em uma lista de endereços de agentes Consul
// (separados por vírgula), tentando um por um até achar um agente com
// líder eleito. Assim a subida não depende de um nó específico estar vivo.
func NewConsulClient(addrs string, log hclog.Logger) (*consul.Client, error) {
	for _, node := range strings.Split(addrs, ",") {
		node = strings.TrimSpace(node)
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			log.Warn("failed to create consul client", "node", node, "error", err)
			continue
		}

		// Teste rápido de saúde antes de aceitar o nó.
		if _, err := client.Status().Leader(); err != nil {
			log.Warn("consul node did not answer health check", "node", node, "error", err)
			continue
		}

		log.Info("connected to consul", "node", node)
		return client, nil
	}

	return nil, fmt.Errorf("no consul node available in: %s", addrs)
}
