package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"gamecards/internal/cluster"
	"gamecards/internal/directory"
	"gamecards/internal/game/arenales"
	"gamecards/internal/game/card"
	"gamecards/internal/network"
	"gamecards/internal/session"
)

const serviceName = "gamecards-session"

// config do processo inteiro, vinda do ambiente. Os padrões servem para
// rodar localmente, sem Consul e sem NATS.
type config struct {
	port       int
	consulAddr string // vazio = não registra no cluster
	natsURL    string // vazio = diretório de perfis em memória
	logLevel   string
}

func loadConfig() config {
	cfg := config{
		port:       8080,
		consulAddr: os.Getenv("CONSUL_HTTP_ADDR"),
		natsURL:    os.Getenv("NATS_URL"),
		logLevel:   os.Getenv("LOG_LEVEL"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.port = port
		}
	}
	if cfg.logLevel == "" {
		cfg.logLevel = "info"
	}
	return cfg
}

func main() {
	cfg := loadConfig()

	log := hclog.New(&hclog.LoggerOptions{
		Name:  serviceName,
		Level: hclog.LevelFromString(cfg.logLevel),
	})

	log.Info("starting game session server", "port", cfg.port)

	if err := card.InitLibrary(); err != nil {
		log.Error("failed to initialize card library", "error", err)
		os.Exit(1)
	}

	health := cluster.NewHealthAggregator()

	// Com Consul configurado, entra no cluster; sem ele, roda standalone.
	natsURL := cfg.natsURL
	if cfg.consulAddr != "" {
		client, err := cluster.NewConsulClient(cfg.consulAddr, log)
		if err != nil {
			log.Error("failed to connect to consul", "error", err)
			os.Exit(1)
		}
		if err := cluster.RegisterService(client, serviceName, cfg.port, cfg.port, log); err != nil {
			log.Error("failed to register in consul", "error", err)
			os.Exit(1)
		}

		// Sem NATS_URL explícita, procura um broker pelo catálogo.
		if natsURL == "" {
			if addr := cluster.DiscoverService(client, "nats", log); addr != "" {
				natsURL = "nats://" + addr
			}
		}
	}

	// Diretório de perfis: serviço remoto via NATS quando há broker,
	// tabela em memória quando não há.
	var dir directory.Directory
	if natsURL != "" {
		natsDir, err := directory.NewNATS(natsURL, log)
		if err != nil {
			log.Error("failed to connect to nats", "url", natsURL, "error", err)
			os.Exit(1)
		}
		defer natsDir.Close()
		health.AddCheck("nats", natsDir.HealthCheck)
		dir = natsDir
		log.Info("player directory connected via nats", "url", natsURL)
	} else {
		dir = directory.NewMemory()
		log.Info("player directory running in memory")
	}

	manager := arenales.NewManager()
	hub := session.NewGameHub(manager, dir, log)
	server := network.NewServer(hub, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", health.Handler())

	address := fmt.Sprintf(":%d", cfg.port)
	if err := server.Listen(address, mux); err != nil {
		log.Error("http server stopped", "error", err)
		os.Exit(1)
	}
}
