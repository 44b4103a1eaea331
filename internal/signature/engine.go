package signature

import (
	"github.com/Sunkar2710/sigkit/internal/errors"
	"github.com/Sunkar2710/sigkit/internal/utils"
)

// Engine parses one signature line
type Engine interface {
	Parse(sig string) (*MethodSignature, error)
}

// Engine kinds accepted by NewEngine
const (
	ScannerEngine = "scanner"
	GrammarEngine = "grammar"
)

// EngineKinds lists the accepted engine kinds, default first
func EngineKinds() []string {
	return []string{ScannerEngine, GrammarEngine}
}

// NewEngine creates an engine by kind. An empty kind selects the scanner.
func NewEngine(kind string) (Engine, error) {
	switch kind {
	case "", ScannerEngine:
		return NewScanner(), nil
	case GrammarEngine:
		return NewGrammarParser(), nil
	default:
		return nil, errors.NewConfigurationError("engine", kind, EngineKinds()...)
	}
}

// CachedEngine memoizes successful parses of another engine.
// Failures are not cached. Callers receive copies and may modify them freely.
type CachedEngine struct {
	engine Engine
	cache  *utils.Cache[string, *MethodSignature]
}

// NewCachedEngine wraps engine with a cache of at most capacity entries
func NewCachedEngine(engine Engine, capacity int) *CachedEngine {
	return &CachedEngine{
		engine: engine,
		cache:  utils.NewCache[string, *MethodSignature](capacity),
	}
}

// Parse returns the cached result for sig or parses and stores it
func (c *CachedEngine) Parse(sig string) (*MethodSignature, error) {
	if cached, ok := c.cache.Get(sig); ok {
		return cached.Clone(), nil
	}

	result, err := c.engine.Parse(sig)
	if err != nil {
		return nil, err
	}

	c.cache.Set(sig, result.Clone())
	return result, nil
}

// Stats exposes the cache statistics
func (c *CachedEngine) Stats() utils.CacheStats {
	return c.cache.GetStats()
}
