package worker

import (
	"fmt"
	"sync"

	"go.trai.ch/spawn/internal/core/domain"
	"go.trai.ch/spawn/internal/core/ports"
)

// Emitter writes cached artifacts into a pass output at most once per name.
type Emitter struct {
	logger ports.Logger

	mu      sync.Mutex
	emitted map[string][]byte
}

// NewEmitter creates an emitter with an empty pass.
func NewEmitter(logger ports.Logger) *Emitter {
	return &Emitter{
		logger:  logger,
		emitted: make(map[string][]byte),
	}
}

// Reset starts a new pass.
func (e *Emitter) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.emitted)
}

// Emit adds name to out unless it already holds identical contents. Replacing different
// contents, whether emitted earlier in the pass or produced by the host, is warned about.
func (e *Emitter) Emit(out ports.OutputBundle, name string, contents []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, ok := e.emitted[name]
	if !ok {
		prev, ok = out.Lookup(name)
	}
	if ok {
		if domain.SameContent(prev, contents) {
			e.emitted[name] = contents
			return
		}
		e.logger.Warn(fmt.Sprintf(
			"The emitted file %q overwrites a previously emitted file of the same name.", name))
	}

	e.emitted[name] = contents
	out.Emit(name, contents)
}
