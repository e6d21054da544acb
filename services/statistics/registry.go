package statistics

import (
	"context"
	"fmt"
	"sort"
)

// Tier is one scraping strategy attempt in a fallback sequence. Tiers
// share a uniform fetch contract so the orchestrator can walk an
// ordered list instead of cascading catch blocks.
type Tier struct {
	// Name is "fast", "slow" or "browser", used in logs and failure
	// records.
	Name  string
	Fetch func(ctx context.Context, username string) (RawProfile, error)
}

// Platform is one registered scraping target.
type Platform struct {
	Name              string
	DisplayName       string
	BaseUrl           string
	ProfileUrlPattern string
	// Tiers are tried in order, cheapest first.
	Tiers []Tier
	// AcceptZeroSolved exempts the platform from the all-zero payload
	// rejection. Some platforms legitimately report zero solved for
	// valid low-activity accounts.
	AcceptZeroSolved bool
}

// Registry maps platform names to their scraping strategies. Adding a
// platform means registering here, the orchestrator never changes.
type Registry struct {
	platforms map[string]Platform
}

func NewRegistry() *Registry {
	return &Registry{platforms: map[string]Platform{}}
}

func (r *Registry) Register(p Platform) error {
	if p.Name == "" {
		return fmt.Errorf("platform name is required")
	}
	if len(p.Tiers) == 0 {
		return fmt.Errorf("platform %q has no tiers", p.Name)
	}
	if _, exists := r.platforms[p.Name]; exists {
		return fmt.Errorf("platform %q is already registered", p.Name)
	}
	r.platforms[p.Name] = p
	return nil
}

func (r *Registry) Get(name string) (Platform, bool) {
	p, ok := r.platforms[name]
	return p, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
