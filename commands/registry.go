// Package commands holds the administrative "!!" commands and the registry
// that dispatches them.
package commands

import (
	"context"
	"strings"
	"sync"

	"github.com/elliotchance/orderedmap/v3"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/sirupsen/logrus"
)

// Handler runs a command with the raw text that followed its name.
type Handler func(ctx context.Context, args string) domainSearch.Outcome

type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Usage       string `json:"usage"`
}

// Registered describes one command for listings and suggestions.
type Registered struct {
	Bang string `json:"bang"`
	Metadata
}

type registration struct {
	handler Handler
	meta    Metadata
}

// Registry maps case-insensitive command names to handlers, keeping
// registration order for listings.
type Registry struct {
	mu      sync.RWMutex
	entries *orderedmap.OrderedMap[string, registration]
}

func NewRegistry() *Registry {
	return &Registry{entries: orderedmap.NewOrderedMap[string, registration]()}
}

// Register adds or replaces a command. A replaced command keeps its position.
func (r *Registry) Register(name string, handler Handler, meta Metadata) {
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries.Get(key); exists {
		logrus.Debugf("[COMMAND] Overwriting command %q", key)
	}
	r.entries.Set(key, registration{handler: handler, meta: meta})
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries.Get(strings.ToLower(name))
	return ok
}

// Dispatch runs the named command. ok is false when nothing is registered
// under that name.
func (r *Registry) Dispatch(ctx context.Context, name, args string) (domainSearch.Outcome, bool) {
	key := strings.ToLower(name)

	r.mu.RLock()
	reg, ok := r.entries.Get(key)
	r.mu.RUnlock()
	if !ok {
		return domainSearch.Outcome{}, false
	}

	logrus.WithField("command", key).Debug("[COMMAND] Dispatching")
	return reg.handler(ctx, args), true
}

// List returns every command in registration order.
func (r *Registry) List() []Registered {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Registered, 0, r.entries.Len())
	for el := r.entries.Front(); el != nil; el = el.Next() {
		list = append(list, Registered{Bang: el.Key, Metadata: el.Value.meta})
	}
	return list
}
