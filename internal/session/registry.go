package session

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"bosko-storefront/internal/cart"
	"bosko-storefront/internal/identity"
	"bosko-storefront/internal/preferences"
	"bosko-storefront/internal/repository/storage"
	"golang.org/x/sync/singleflight"
)

// Device bundles the state owned for one browser profile.
type Device struct {
	ID          string
	Session     *Session
	Cart        *cart.Store
	Preferences *preferences.Preferences
}

// Registry keeps loaded devices in memory. The first load of a device reads
// its cart and credential from storage exactly once, even when concurrent
// requests race for it.
type Registry struct {
	repo   storage.Repository
	logger *log.Logger
	now    func() time.Time

	group   singleflight.Group
	mu      sync.RWMutex
	devices map[string]*Device
}

func NewRegistry(repo storage.Repository, logger *log.Logger, now func() time.Time) *Registry {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{repo: repo, logger: logger, now: now, devices: make(map[string]*Device)}
}

// Device returns the loaded device for id, loading it on first use.
func (r *Registry) Device(ctx context.Context, id string) (*Device, error) {
	if id == "" {
		return nil, errors.New("device id required")
	}
	r.mu.RLock()
	d, ok := r.devices[id]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}

	v, err, _ := r.group.Do(id, func() (interface{}, error) {
		r.mu.RLock()
		d, ok := r.devices[id]
		r.mu.RUnlock()
		if ok {
			return d, nil
		}
		// A canceled first request must not leave the device half loaded for the others.
		d = r.load(context.WithoutCancel(ctx), id)
		r.mu.Lock()
		r.devices[id] = d
		r.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Device), nil
}

func (r *Registry) load(ctx context.Context, id string) *Device {
	kv := storage.Scope(r.repo, id)
	notifier := &identity.Notifier{}
	store := cart.New(kv, r.logger)
	notifier.Subscribe(store)

	store.Hydrate(ctx)
	sess := New(kv, notifier, r.logger, r.now)
	sess.Restore(ctx)

	return &Device{
		ID:          id,
		Session:     sess,
		Cart:        store,
		Preferences: preferences.New(kv, r.logger),
	}
}

// Forget drops a device from memory. Its stored state is untouched.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.devices, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}
