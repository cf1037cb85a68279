package router

import "sync"

// Config holds the score-fusion tunables.
// VectorWeight and KeywordWeight are scaling factors, not a probability
// simplex: they are applied as-is and never renormalized, so callers may
// deliberately boost one signal past 1.0.
type Config struct {
	VectorWeight  float64
	KeywordWeight float64
	MaxResults    int
	MinScore      float64
}

// DefaultConfig returns the startup fusion tunables.
func DefaultConfig() Config {
	return Config{
		VectorWeight:  0.7,
		KeywordWeight: 0.3,
		MaxResults:    10,
		MinScore:      0.3,
	}
}

// ConfigPatch holds optional updates for the fusion tunables.
type ConfigPatch struct {
	VectorWeight  *float64
	KeywordWeight *float64
	MaxResults    *int
	MinScore      *float64
}

// Tunables is the mutex-guarded holder of the live Config.
// Snapshot is safe to call concurrently with Update.
type Tunables struct {
	mu  sync.RWMutex
	cfg Config
}

// NewTunables creates a holder initialized with the given config.
func NewTunables(cfg Config) *Tunables {
	return &Tunables{cfg: cfg}
}

// Snapshot returns a copy of the current config.
func (t *Tunables) Snapshot() Config {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cfg
}

// Update applies a partial hot-reload of the tunables.
func (t *Tunables) Update(p ConfigPatch) Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p.VectorWeight != nil {
		t.cfg.VectorWeight = *p.VectorWeight
	}
	if p.KeywordWeight != nil {
		t.cfg.KeywordWeight = *p.KeywordWeight
	}
	if p.MaxResults != nil && *p.MaxResults > 0 {
		t.cfg.MaxResults = *p.MaxResults
	}
	if p.MinScore != nil {
		t.cfg.MinScore = *p.MinScore
	}
	return t.cfg
}
