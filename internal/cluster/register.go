package cluster

import (
	"fmt"
	"os"

	consul "github.com/hashicorp/consul/api"
	"github.com/hashicorp/go-hclog"
)

// RegisterService registra este processo no catálogo do Consul com um
// health check HTTP apontando para o /health local. O id do serviço leva o
// hostname para que várias réplicas do mesmo serviço convivam no catálogo.
func RegisterService(client *consul.Client, serviceName string, servicePort, healthPort int, log hclog.Logger) error {
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	serviceID := fmt.Sprintf("%s-%s", serviceName, hostname)

	registration := &consul.AgentServiceRegistration{
		ID:   serviceID,
		Name: serviceName,
		Port: servicePort,

		// Sem Address: o agente usa o IP de quem registra, que em rede de
		// contêineres é o endereço certo.

		Check: &consul.AgentServiceCheck{
			// O hostname do contêiner resolve por DNS dentro da rede do
			// compose, então o check consegue alcançar o serviço por ele.
			HTTP:     fmt.Sprintf("http://%s:%d/health", hostname, healthPort),
			Timeout:  "5s",
			Interval: "10s",
			// Serviço crítico por mais de 1 minuto sai sozinho do catálogo.
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service in consul: %w", err)
	}

	log.Info("service registered in consul", "service", serviceName, "id", serviceID)
	return nil
}
