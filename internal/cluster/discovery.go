package cluster

import (
	"fmt"
	"math/rand"

	consul "github.com/hashicorp/consul/api"
	"github.com/hashicorp/go-hclog"
)

// DiscoverService devolve o endereço host:port de uma instância saudável do
// serviço, sorteada entre as disponíveis para espalhar a carga. String
// vazia quando nenhuma instância saudável existe.
func DiscoverService(client *consul.Client, serviceName string, log hclog.Logger) string {
	services, _, err := client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		log.Error("failed to query consul for service", "service", serviceName, "error", err)
		return ""
	}
	if len(services) == 0 {
		log.Warn("no healthy instance found", "service", serviceName)
		return ""
	}

	chosen := services[rand.Intn(len(services))]
	addr := chosen.Service.Address
	if addr == "" {
		addr = chosen.Node.Address
	}
	return fmt.Sprintf("%s:%d", addr, chosen.Service.Port)
}
