package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kadena-community/pactwallet/internal/client"
	"github.com/kadena-community/pactwallet/internal/storage"
	"github.com/kadena-community/pactwallet/pkg/pact"
)

// listModulesCode is the Pact expression that enumerates deployed modules.
const listModulesCode = "(list-modules)"

// ModuleLister runs the unsigned list-modules query against one backend.
type ModuleLister interface {
	Submit(ctx context.Context, cmd *pact.Command) (json.RawMessage, error)
}

func newPactLister(uri string) ModuleLister {
	return client.New(uri)
}

// DiscoverModules queries every resolved backend concurrently for its
// module list. Backends fail independently; the returned map carries
// one error per backend that could not be queried. Successful results
// replace the cached entry for that backend.
func (d *Directory) DiscoverModules(ctx context.Context) map[string]error {
	backends := d.Backends()

	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := make(map[string]error)

	for name, uri := range backends {
		wg.Add(1)
		go func(name, uri string) {
			defer wg.Done()
			if err := d.refreshBackend(ctx, name, uri); err != nil {
				mu.Lock()
				failures[name] = err
				mu.Unlock()
			}
		}(name, uri)
	}
	wg.Wait()
	return failures
}

// Refresh re-queries a single backend's module list on demand.
func (d *Directory) Refresh(ctx context.Context, name string) error {
	uri, ok := d.URI(name)
	if !ok {
		return fmt.Errorf("unknown backend %q", name)
	}
	return d.refreshBackend(ctx, name, uri)
}

func (d *Directory) refreshBackend(ctx context.Context, name, uri string) error {
	payload := pact.NewExecPayload(listModulesCode, nil, pact.Nonce())
	cmd, err := pact.UnsignedCommand(payload)
	if err != nil {
		return fmt.Errorf("build list-modules command: %w", err)
	}

	data, err := d.newBackend(uri).Submit(ctx, cmd)
	if err != nil {
		d.logger().Debug().Err(err).Str("backend", name).Msg("module discovery failed")
		return err
	}

	var modules []string
	if err := json.Unmarshal(data, &modules); err != nil {
		return fmt.Errorf("parse module list from %q: %w", name, err)
	}
	if modules == nil {
		modules = []string{}
	}

	d.storeModules(name, modules)
	d.logger().Debug().Str("backend", name).Int("modules", len(modules)).Msg("module list refreshed")
	return nil
}

// Modules returns the last successfully loaded module list for a
// backend. ok is false when no load has ever succeeded; a loaded empty
// list returns (empty, true).
func (d *Directory) Modules(name string) ([]string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	modules, ok := d.modules[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(modules))
	copy(out, modules)
	return out, true
}

func (d *Directory) storeModules(name string, modules []string) {
	d.mu.Lock()
	d.modules[name] = modules
	d.mu.Unlock()

	encoded, err := json.Marshal(modules)
	if err != nil {
		return
	}
	if err := d.db.Put(storage.ModulesKey(name), encoded); err != nil {
		d.logger().Warn().Err(err).Str("backend", name).Msg("persist module cache failed")
	}
}

// warmModuleCache loads previously persisted module lists so results
// survive restarts. Cache problems only cost the warm start.
func (d *Directory) warmModuleCache() {
	err := d.db.ForEach(storage.PrefixModules, func(key, value []byte) error {
		name := string(key[len(storage.PrefixModules):])
		var modules []string
		if err := json.Unmarshal(value, &modules); err != nil {
			return nil // skip corrupt entry
		}
		d.modules[name] = modules
		return nil
	})
	if err != nil {
		d.logger().Warn().Err(err).Msg("warm module cache failed")
	}
}
