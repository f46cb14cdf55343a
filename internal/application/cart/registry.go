package cart

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/storefront-cart/internal/application/ports"
	"github.com/jhoicas/storefront-cart/internal/domain/repository"
	"github.com/jhoicas/storefront-cart/pkg/logger"
)

// Registry mantiene un State por sesión de navegador. La clave de cada carrito es
// "<StorageKey>:<sessionID>". Los estados inactivos se liberan con Sweep; el snapshot
// sigue en el almacenamiento y se vuelve a cargar en el próximo acceso.
type Registry struct {
	inventory ports.InventoryService
	storage   repository.CartStorage
	log       *logger.Logger
	opts      Options
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	state    *State
	lastSeen time.Time
}

// NewRegistry construye el registro. opts.StorageKey es el prefijo de las claves.
func NewRegistry(inventory ports.InventoryService, storage repository.CartStorage, log *logger.Logger, opts Options) *Registry {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		inventory: inventory,
		storage:   storage,
		log:       log,
		opts:      opts,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

// Get devuelve el estado de la sesión, abriéndolo desde el almacenamiento si hace falta.
// La carga se hace fuera del lock; si dos peticiones abren la misma sesión a la vez se
// conserva el primer estado registrado y el otro se descarta.
func (r *Registry) Get(ctx context.Context, sessionID string) (*State, error) {
	if state, ok := r.lookup(sessionID); ok {
		return state, nil
	}

	sessionID = strings.Clone(sessionID)
	opts := r.opts
	opts.StorageKey = r.opts.StorageKey + ":" + sessionID
	state, err := Open(ctx, r.inventory, r.storage, r.log, opts)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		s.lastSeen = r.now()
		return s.state, nil
	}
	r.sessions[sessionID] = &session{state: state, lastSeen: r.now()}
	return state, nil
}

func (r *Registry) lookup(sessionID string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.state, true
}

// Len cantidad de sesiones en memoria.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep libera las sesiones sin uso desde hace más de maxIdle; devuelve cuántas liberó.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	n := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		r.log.Debug().Int("evicted", n).Int("remaining", len(r.sessions)).Msg("sesiones de carrito liberadas")
	}
	return n
}

// RunSweeper ejecuta Sweep cada interval hasta que ctx termine.
func (r *Registry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(maxIdle)
		}
	}
}
