package provider

import (
	"fmt"
	"sync"

	"perform-assistant/internal/logger"
)

// Registry is the host application's ordered list of OAuth providers.
// Registration is expected once at startup; the mutex only keeps a stray
// concurrent call from corrupting the list.
type Registry struct {
	mu        sync.RWMutex
	providers []OAuthProvider
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends p unless the provider is not configured or id is
// already registered. It reports whether p was added, so repeated calls
// are harmless.
func (r *Registry) Register(id string, p OAuthProvider, configured bool) bool {
	if !configured {
		logger.Warn("oauth provider not configured, skipping", map[string]any{
			"provider": id,
		})
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(id) >= 0 {
		logger.Info("oauth provider already registered", map[string]any{
			"provider": id,
		})
		return false
	}

	r.providers = append(r.providers, p)

	logger.Info("oauth provider registered", map[string]any{
		"provider": id,
	})
	return true
}

// Has reports whether a provider with id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexLocked(id) >= 0
}

// Get returns the OAuth provider by id or an error if not registered.
func (r *Registry) Get(id string) (OAuthProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("unknown oauth provider: %s", id)
	}
	return r.providers[i], nil
}

// List returns the registered providers in registration order.
func (r *Registry) List() []OAuthProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]OAuthProvider, len(r.providers))
	copy(out, r.providers)
	return out
}

func (r *Registry) indexLocked(id string) int {
	for i, p := range r.providers {
		if p.ID() == id {
			return i
		}
	}
	return -1
}
