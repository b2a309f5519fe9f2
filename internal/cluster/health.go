package cluster

import (
	"encoding/json"
	"net/http"
	"sync"
)

// CheckFunc é uma verificação de saúde individual. Erro = não saudável.
type CheckFunc func() error

// HealthAggregator junta várias verificações atrás de um único endpoint.
// O Consul bate em um /health só; aqui decidimos o que esse /health
// realmente significa.
type HealthAggregator struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
}

func NewHealthAggregator() *HealthAggregator {
	return &HealthAggregator{
		checks: make(map[string]CheckFunc),
	}
}

// AddCheck registra uma verificação sob um nome, para aparecer no corpo da
// resposta quando falhar.
func (h *HealthAggregator) AddCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Handler roda todas as verificações registradas: 200 com {"status":
// "healthy"} quando todas passam, 503 com o mapa nome -> erro quando não.
func (h *HealthAggregator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.RLock()
		defer h.mu.RUnlock()

		failures := make(map[string]string)
		for name, check := range h.checks {
			if err := check(); err != nil {
				failures[name] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if len(failures) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(failures)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}
}
