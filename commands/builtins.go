package commands

import (
	"context"

	"github.com/kabang/kabang/core/database"
	domainBookmark "github.com/kabang/kabang/domains/bookmark"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/kabang/kabang/pkg/bangcache"
)

// Command enumerates the built-in commands.
type Command int

const (
	CommandDashboard Command = iota
	CommandSync
	CommandAdd
	CommandMark
)

var commandNames = map[Command]string{
	CommandDashboard: "kabang",
	CommandSync:      "sync",
	CommandAdd:       "add",
	CommandMark:      "mark",
}

func (c Command) String() string {
	return commandNames[c]
}

// TriggerLookup resolves a trigger through the cache and then the store.
type TriggerLookup interface {
	LookupTrigger(ctx context.Context, bang string) (domainKabang.Kabang, bool)
}

type Deps struct {
	Cache     *bangcache.Cache
	Failover  database.Failover
	Kabangs   domainKabang.IKabangRepository
	Bookmarks domainBookmark.IBookmarkRepository
	// Snapshot is optional; successful syncs are published to it.
	Snapshot domainKabang.ISnapshotStore
	Lookup   TriggerLookup

	DashboardPath    string
	DashboardCommand string
}

type builtins struct {
	Deps
}

type builtin struct {
	handler func(b *builtins) Handler
	meta    Metadata
}

var builtinTable = map[Command]builtin{
	CommandDashboard: {
		handler: func(b *builtins) Handler { return b.dashboard },
		meta: Metadata{
			Name:        "Kabang Dashboard",
			Description: "Open the Kabang dashboard",
			Category:    "System",
			Usage:       "!!kabang",
		},
	},
	CommandSync: {
		handler: func(b *builtins) Handler { return b.sync },
		meta: Metadata{
			Name:        "Sync Cache",
			Description: "Refresh cache from database",
			Category:    "System",
			Usage:       "!!sync",
		},
	},
	CommandAdd: {
		handler: func(b *builtins) Handler { return b.add },
		meta: Metadata{
			Name:        "Add Bookmark",
			Description: "Add a new bang (format: !!add <name> <url>)",
			Category:    "System",
			Usage:       "!!add <bookmark-name> <url>",
		},
	},
	CommandMark: {
		handler: func(b *builtins) Handler { return b.mark },
		meta: Metadata{
			Name:        "Bookmark",
			Description: `Save a bookmark with notes (format: !!mark "notes" <url>)`,
			Category:    "Bookmarks",
			Usage:       `!!mark "meeting notes about project" https://example.com`,
		},
	},
}

var builtinOrder = []Command{CommandDashboard, CommandSync, CommandAdd, CommandMark}

// RegisterBuiltins wires the built-in commands into r.
func RegisterBuiltins(r *Registry, deps Deps) {
	if deps.DashboardPath == "" {
		deps.DashboardPath = "/dashboard"
	}
	b := &builtins{Deps: deps}

	for _, cmd := range builtinOrder {
		entry := builtinTable[cmd]
		name := cmd.String()
		meta := entry.meta
		if cmd == CommandDashboard && deps.DashboardCommand != "" {
			name = deps.DashboardCommand
			meta.Usage = "!!" + deps.DashboardCommand
		}
		r.Register(name, entry.handler(b), meta)
	}
}

func (b *builtins) dashboard(_ context.Context, _ string) domainSearch.Outcome {
	return domainSearch.RedirectOutcome(b.DashboardPath)
}
