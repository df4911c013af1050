package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kadena-community/pactwallet/internal/log"
	"github.com/kadena-community/pactwallet/internal/storage"
)

// Devnet backends synthesized when no server list is configured at all.
var devnetBackends = []struct {
	name string
	uri  string
}{
	{"devnet-0", "http://localhost:7010"},
	{"devnet-1", "http://localhost:7011"},
	{"devnet-2", "http://localhost:7012"},
}

// Options configures a Directory.
type Options struct {
	// StaticList is the bundled server list text (may be empty).
	StaticList string
	// RemoteURL is the live server-list endpoint (may be empty).
	RemoteURL string
	// HTTPClient fetches the remote list. Defaults to a plain client.
	HTTPClient *http.Client
	// DB caches module discovery results. Defaults to in-memory.
	DB storage.DB
}

// Directory holds the resolved backend set and the last known module
// list per backend. All caching is scoped to the instance; there is no
// ambient global state.
type Directory struct {
	static     string
	remoteURL  string
	http       *http.Client
	db         storage.DB
	newBackend func(uri string) ModuleLister

	mu       sync.RWMutex
	backends map[string]string
	order    []string
	modules  map[string][]string
}

// New creates a Directory and warms the module cache from the DB.
func New(opts Options) *Directory {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	db := opts.DB
	if db == nil {
		db = storage.NewMemory()
	}

	d := &Directory{
		static:     opts.StaticList,
		remoteURL:  opts.RemoteURL,
		http:       hc,
		db:         db,
		newBackend: newPactLister,
		backends:   make(map[string]string),
		modules:    make(map[string][]string),
	}
	d.warmModuleCache()
	return d
}

func (d *Directory) logger() *zerolog.Logger {
	return &log.Directory
}

// Resolve determines the backend set. A configured remote list is
// fetched first; on any failure it falls back to the static list. This
// is the one place in the core where a failure substitutes a fallback
// value instead of propagating.
func (d *Directory) Resolve(ctx context.Context) (map[string]string, error) {
	if d.remoteURL != "" {
		backends, order, err := d.fetchRemote(ctx)
		if err == nil {
			d.setBackends(backends, order)
			return d.Backends(), nil
		}
		d.logger().Warn().Err(err).Str("url", d.remoteURL).Msg("live server list unavailable, using static list")
	}

	if d.static != "" {
		backends, order := ParseServerList(d.static)
		if len(order) == 0 {
			return nil, errors.New("static server list has no entries")
		}
		d.setBackends(backends, order)
		return d.Backends(), nil
	}

	// Pure local/dev mode: no list of any kind configured.
	backends := make(map[string]string, len(devnetBackends))
	order := make([]string, 0, len(devnetBackends))
	for _, b := range devnetBackends {
		backends[b.name] = b.uri
		order = append(order, b.name)
	}
	d.setBackends(backends, order)
	return d.Backends(), nil
}

// fetchRemote downloads and parses the live server list. Any status
// other than 200 counts as a failure.
func (d *Directory) fetchRemote(ctx context.Context) (map[string]string, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.remoteURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch server list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("server list fetch returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read server list: %w", err)
	}

	backends, order := ParseServerList(string(body))
	if len(order) == 0 {
		return nil, nil, errors.New("live server list has no entries")
	}
	return backends, order, nil
}

func (d *Directory) setBackends(backends map[string]string, order []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.backends = backends
	d.order = order
}

// Backends returns a copy of the resolved name → uri mapping.
func (d *Directory) Backends() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]string, len(d.backends))
	for k, v := range d.backends {
		out[k] = v
	}
	return out
}

// Names returns the backend names in server-list order.
func (d *Directory) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// URI returns the endpoint for a backend name.
func (d *Directory) URI(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	uri, ok := d.backends[name]
	return uri, ok
}
