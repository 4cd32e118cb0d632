package httpc

import (
	"fmt"
	"sync"
)

// global is a lazily initialized singleton offering the same surface as
// Client, installed at program start and torn down at end (by simply
// being dropped at process exit — nothing here needs an explicit
// destructor).
var (
	globalOnce   sync.Once
	globalMu     sync.Mutex
	globalClient *Client
	globalErr    error
)

// Global returns the process-wide Client, lazily building it from
// DefaultConfig on first call.
func Global() (*Client, error) {
	globalOnce.Do(func() {
		globalClient, globalErr = New()
	})

	globalMu.Lock()
	defer globalMu.Unlock()

	return globalClient, globalErr
}

// InitGlobal installs cfg as the process-wide Client's configuration. It
// must be called before the first Global()/SetGlobal() call; calling it
// afterward returns an error rather than silently reconfiguring a client
// other goroutines may already be holding.
func InitGlobal(cfg Config) error {
	installed := false

	globalOnce.Do(func() {
		installed = true

		globalMu.Lock()
		defer globalMu.Unlock()

		globalClient, globalErr = NewWithConfig(cfg)
	})

	if !installed {
		return fmt.Errorf("httpc: global client already initialized")
	}

	return globalErr
}

// SetGlobal force-replaces the process-wide Client, for tests that need
// to swap in a fake connector. It bypasses the "once" guard and is not
// safe to call concurrently with Global().
func SetGlobal(c *Client) {
	globalOnce.Do(func() {})

	globalMu.Lock()
	defer globalMu.Unlock()

	globalClient = c
	globalErr = nil
}
