package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/domain"
	"github.com/jhoicas/eproc-api/pkg/logger"
)

const (
	defaultDebounce       = 1500 * time.Millisecond
	defaultGeocodeTimeout = 30 * time.Second
	defaultDraftTTL       = 30 * time.Minute

	// MaxDraftsPerOwner borradores abiertos por usuario; al superarlo se descarta el más antiguo.
	MaxDraftsPerOwner = 5
)

// StructValidator valida tags de struct (go-playground/validator).
type StructValidator interface {
	Struct(s interface{}) error
}

// Dependencies servicios que usan los borradores.
type Dependencies struct {
	Postal         PostalLookup
	Registry       RegistryLookup
	Geocoder       Locator
	Suppliers      SupplierCreator
	Validator      StructValidator // opcional; valida la entrada del alta antes de enviarla
	Debounce       time.Duration
	GeocodeTimeout time.Duration
	Log            *logger.Logger
}

// Store borradores en memoria por usuario. Un borrador sin uso durante ttl se descarta.
type Store struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	deps   Dependencies
	ttl    time.Duration
	now    func() time.Time
	log    *logger.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// NewStore construye el store y arranca el janitor de expiración.
func NewStore(deps Dependencies, ttl time.Duration) *Store {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	deps.Log = deps.Log.Component("onboarding")
	if deps.Debounce <= 0 {
		deps.Debounce = defaultDebounce
	}
	if deps.GeocodeTimeout <= 0 {
		deps.GeocodeTimeout = defaultGeocodeTimeout
	}
	if ttl <= 0 {
		ttl = defaultDraftTTL
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		drafts: make(map[string]*Draft),
		deps:   deps,
		ttl:    ttl,
		now:    time.Now,
		log:    deps.Log,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.janitor(janitorInterval(ttl))
	return s
}

func janitorInterval(ttl time.Duration) time.Duration {
	iv := ttl / 2
	if iv > time.Minute {
		iv = time.Minute
	}
	if iv < 10*time.Millisecond {
		iv = 10 * time.Millisecond
	}
	return iv
}

// Create abre un borrador nuevo para owner. Si owner ya tiene MaxDraftsPerOwner,
// descarta el que lleva más tiempo sin uso.
func (s *Store) Create(owner string) *Draft {
	d := newDraft(s.ctx, uuid.New().String(), owner, &s.deps, s.now())
	s.mu.Lock()
	evicted := s.evictOldestLocked(owner)
	s.drafts[d.id] = d
	s.mu.Unlock()
	if evicted != nil {
		evicted.close()
		s.log.Debug().Str("draft", evicted.id).Str("owner", owner).Msg("borrador descartado por límite")
	}
	s.log.Debug().Str("draft", d.id).Str("owner", owner).Msg("borrador creado")
	return d
}

func (s *Store) evictOldestLocked(owner string) *Draft {
	var oldest *Draft
	var oldestAt time.Time
	n := 0
	for _, d := range s.drafts {
		if d.owner != owner {
			continue
		}
		n++
		if at := d.idleSince(); oldest == nil || at.Before(oldestAt) {
			oldest, oldestAt = d, at
		}
	}
	if n < MaxDraftsPerOwner {
		return nil
	}
	delete(s.drafts, oldest.id)
	return oldest
}

// Get devuelve el borrador si existe y pertenece a owner. Renueva su expiración.
func (s *Store) Get(owner, id string) (*Draft, error) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	s.mu.Unlock()
	if !ok || d.owner != owner {
		return nil, domain.ErrDraftNotFound
	}
	d.touch(s.now())
	return d, nil
}

// Delete descarta el borrador.
func (s *Store) Delete(owner, id string) error {
	s.mu.Lock()
	d, ok := s.drafts[id]
	if !ok || d.owner != owner {
		s.mu.Unlock()
		return domain.ErrDraftNotFound
	}
	delete(s.drafts, id)
	s.mu.Unlock()
	d.close()
	return nil
}

// Submit crea el proveedor a partir del borrador. Si el alta tiene éxito el borrador se elimina.
func (s *Store) Submit(ctx context.Context, owner, id string) (*dto.SupplierResponse, error) {
	d, err := s.Get(owner, id)
	if err != nil {
		return nil, err
	}
	req := d.currentForm().toCreateRequest()
	if s.deps.Validator != nil {
		if err := s.deps.Validator.Struct(req); err != nil {
			return nil, err
		}
	}
	out, err := s.deps.Suppliers.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.Delete(owner, id); err != nil {
		s.log.Warn().Err(err).Str("draft", id).Msg("borrador ya eliminado tras el alta")
	}
	return out, nil
}

// Len cantidad de borradores abiertos.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *Store) janitor(every time.Duration) {
	defer close(s.done)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-t.C:
			if n := s.sweep(); n > 0 {
				s.log.Info().Int("expired", n).Msg("borradores expirados")
			}
		}
	}
}

// sweep elimina los borradores inactivos por más de ttl.
func (s *Store) sweep() int {
	cutoff := s.now().Add(-s.ttl)
	var expired []*Draft
	s.mu.Lock()
	for id, d := range s.drafts {
		if d.idleSince().Before(cutoff) {
			expired = append(expired, d)
			delete(s.drafts, id)
		}
	}
	s.mu.Unlock()
	for _, d := range expired {
		d.close()
	}
	return len(expired)
}

// Close detiene el janitor y todos los timers y geocodificaciones pendientes.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
		s.mu.Lock()
		drafts := make([]*Draft, 0, len(s.drafts))
		for id, d := range s.drafts {
			drafts = append(drafts, d)
			delete(s.drafts, id)
		}
		s.mu.Unlock()
		for _, d := range drafts {
			d.close()
		}
		s.log.Debug().Int("drafts", len(drafts)).Msg("store de borradores cerrado")
	})
}
