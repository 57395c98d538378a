package catalog

import (
	"context"
	"log/slog"
	"sync"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/resolver"
)

// Linker answers name lookups for one library from the catalog. Symbols of
// the library's declared dependencies are preferred; other indexed
// libraries are used when no dependency declares the name. The library's
// own catalog entry is never used.
//
// Linker implements resolver.Lookup, and Known has the shape of
// validator.ExternalFunc.
type Linker struct {
	ctx     context.Context
	store   Store
	library string
	deps    map[string]int
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]*Symbol
}

// NewLinker returns a linker for lib. ctx bounds every store query.
func NewLinker(ctx context.Context, store Store, lib *ast.Library, logger *slog.Logger) *Linker {
	if logger == nil {
		logger = slog.Default()
	}
	deps := make(map[string]int, len(lib.Dependencies))
	for i, d := range lib.Dependencies {
		deps[d.ObjectName] = i
	}
	return &Linker{
		ctx:     ctx,
		store:   store,
		library: lib.Name,
		deps:    deps,
		logger:  logger,
		cache:   make(map[string]*Symbol),
	}
}

// Lookup implements resolver.Lookup.
func (l *Linker) Lookup(name string) (resolver.Reference, bool) {
	sym := l.find(name)
	if sym == nil {
		return resolver.Reference{}, false
	}
	return resolver.Reference{Kind: sym.Kind, Name: sym.Name, Library: sym.Library}, true
}

// Known reports whether some other indexed library declares name.
func (l *Linker) Known(name string) bool {
	return l.find(name) != nil
}

func (l *Linker) find(name string) *Symbol {
	l.mu.Lock()
	defer l.mu.Unlock()

	if sym, ok := l.cache[name]; ok {
		return sym
	}

	symbols, err := l.store.Lookup(l.ctx, name)
	if err != nil {
		l.logger.Debug("catalog lookup failed", "name", name, "error", err)
		return nil
	}

	var best *Symbol
	bestRank := -1
	for _, sym := range symbols {
		if sym.Library == l.library {
			continue
		}
		rank := len(l.deps)
		if i, ok := l.deps[sym.Library]; ok {
			rank = i
		}
		if best == nil || rank < bestRank {
			best, bestRank = sym, rank
		}
	}
	l.cache[name] = best
	return best
}
