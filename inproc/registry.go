// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inproc

import (
	"sort"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/link/queue"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Serial identifies one queue pair in a registry. Serials increase
// monotonically in creation order.
type Serial = uint32

// pair holds the two directional queues of one key.
type pair struct {
	serial   Serial
	toServer *queue.Blocking[[]byte]
	toClient *queue.Blocking[[]byte]
}

// queues returns the (write, read) queues for role.
func (p *pair) queues(role Role) (w, r *queue.Blocking[[]byte]) {
	if role == Server {
		return p.toClient, p.toServer
	}
	return p.toServer, p.toClient
}

// Registry maps keys to queue pairs. Pairs are created lazily on first
// lookup by either side and are never removed, so two peers opening the
// same key rendezvous regardless of which opens first.
//
// A Registry is explicitly constructed and owned by its caller; there is
// no process-wide default.
type Registry struct {
	mu     sync.Mutex
	pairs  map[string]*pair
	serial atomix.Uint32
	log    zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger of the registry and of the transports it
// opens.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{pairs: make(map[string]*pair), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// lookup returns the pair for key, creating it under the registry lock
// if it does not exist.
func (r *Registry) lookup(key string) *pair {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pairs[key]; ok {
		return p
	}
	p := &pair{
		serial:   r.serial.Add(1),
		toServer: queue.New[[]byte](),
		toClient: queue.New[[]byte](),
	}
	r.pairs[key] = p
	r.log.Debug().Str("key", key).Uint32("serial", p.serial).Msg("inproc: queue pair created")
	return p
}

// Open returns a transport bound to key in role.
func (r *Registry) Open(key string, role Role) *Transport {
	t := &Transport{reg: r, role: role}
	t.bind(key, r.lookup(key))
	return t
}

// Pair returns both ends of key: the client writes what the server
// reads and vice versa.
func (r *Registry) Pair(key string) (client, server *Transport) {
	return r.Open(key, Client), r.Open(key, Server)
}

// NewPair opens both ends of a fresh random key.
func (r *Registry) NewPair() (client, server *Transport, key string) {
	key = uuid.NewString()
	client, server = r.Pair(key)
	return client, server, key
}

// Serial returns the serial of key's pair, or false if key has never
// been opened.
func (r *Registry) Serial(key string) (Serial, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pairs[key]
	if !ok {
		return 0, false
	}
	return p.serial, true
}

// Len returns the number of keys in the registry.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pairs)
}

// Keys returns the registered keys in lexical order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	keys := make([]string, 0, len(r.pairs))
	for k := range r.pairs {
		keys = append(keys, k)
	}
	r.mu.Unlock()
	sort.Strings(keys)
	return keys
}
