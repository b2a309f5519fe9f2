package directory

import "sync"

// Memory é o diretório em memória do próprio processo. É o padrão quando
// nenhum serviço de perfis externo está configurado, e o dublê dos testes.
type Memory struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]*Profile),
	}
}

func (m *Memory) Get(playerID string) (*Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[playerID]
	if !ok {
		return nil, false
	}
	// Cópia defensiva: quem recebe pode mexer no perfil antes do Set de
	// volta, e leitores concorrentes não podem ver o meio da edição.
	clone := *p
	return &clone, true
}

func (m *Memory) Set(playerID string, profile *Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *profile
	m.profiles[playerID] = &clone
}
