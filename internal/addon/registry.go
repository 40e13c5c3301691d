// Package addon manages optional extension modules: a registry of addon
// descriptors, a durable activation set and lifecycle notifications that
// collaborating code uses to install itself lazily.
package addon

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/setting"
)

var (
	// ErrAddonNotFound is returned when acting on an unregistered addon.
	ErrAddonNotFound = errors.New("addon not found")
	// ErrAddonSlugEmpty is returned when registering a descriptor without a slug.
	ErrAddonSlugEmpty = errors.New("addon slug cannot be empty")
	// ErrAddonRequiresNewerVersion is returned when an addon requires a newer
	// application version than the one running.
	ErrAddonRequiresNewerVersion = errors.New("addon requires a newer application version")
)

// Descriptor is the metadata an addon registers itself with.
type Descriptor struct {
	Slug        string
	Name        string
	Version     string
	Description string
	Author      string
	Requires    string // minimum application version, empty means any
}

// Listener receives addon lifecycle notifications.
type Listener interface {
	// AddonLoaded fires when an already-active addon is registered at startup.
	AddonLoaded(slug string, d Descriptor)
	// AddonActivated fires when an addon is switched on.
	AddonActivated(slug string, d Descriptor)
	// AddonDeactivated fires when an addon is switched off.
	AddonDeactivated(slug string)
}

// Registry holds registered addon descriptors and their activation state.
// Descriptors are re-registered on every startup; the active set is the only
// durable part, persisted as a JSON slug list.
type Registry struct {
	db         *gorm.DB
	appVersion string

	mu        sync.RWMutex
	addons    map[string]Descriptor
	order     []string
	active    map[string]bool
	listeners []Listener
}

// NewRegistry loads the persisted activation set and returns an empty
// registry. appVersion is matched against addon Requires constraints.
func NewRegistry(db *gorm.DB, appVersion string) (*Registry, error) {
	r := &Registry{
		db:         db,
		appVersion: appVersion,
		addons:     map[string]Descriptor{},
		active:     map[string]bool{},
	}

	record, err := setting.Get(db, setting.KeyActiveAddons)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return r, nil
		}
		return nil, fmt.Errorf("load active addons: %w", err)
	}

	var slugs []string
	if len(record.Value) > 0 {
		if err := json.Unmarshal(record.Value, &slugs); err != nil {
			return nil, fmt.Errorf("decode active addons: %w", err)
		}
	}
	for _, slug := range slugs {
		r.active[slug] = true
	}

	return r, nil
}

// AddListener registers a lifecycle listener. Listeners added before
// descriptors are also told about addons loaded at startup.
func (r *Registry) AddListener(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// Register adds an addon descriptor. When the addon is in the persisted
// active set it is loaded immediately and listeners are notified, unless its
// Requires constraint is not met, which blocks the load with a warning.
func (r *Registry) Register(d Descriptor) error {
	if d.Slug == "" {
		return ErrAddonSlugEmpty
	}

	if d.Requires != "" && compareVersions(r.appVersion, d.Requires) < 0 {
		log.Warn().
			Str("addon", d.Slug).
			Str("requires", d.Requires).
			Str("version", r.appVersion).
			Msg("Addon requires a newer application version, not loading")
		return ErrAddonRequiresNewerVersion
	}

	r.mu.Lock()
	if _, exists := r.addons[d.Slug]; !exists {
		r.order = append(r.order, d.Slug)
	}
	r.addons[d.Slug] = d
	loaded := r.active[d.Slug]
	listeners := r.snapshotListeners()
	r.mu.Unlock()

	if loaded {
		for _, l := range listeners {
			l.AddonLoaded(d.Slug, d)
		}
	}

	return nil
}

// Activate switches an addon on, persists the activation set and notifies
// listeners. Activating an unknown slug fails; activating an active addon
// only re-fires the notification, matching a re-install.
func (r *Registry) Activate(slug string) error {
	r.mu.Lock()
	d, ok := r.addons[slug]
	if !ok {
		r.mu.Unlock()
		return ErrAddonNotFound
	}

	r.active[slug] = true
	listeners := r.snapshotListeners()
	err := r.persistActiveLocked()
	r.mu.Unlock()

	if err != nil {
		return err
	}

	for _, l := range listeners {
		l.AddonActivated(slug, d)
	}

	log.Info().Str("addon", slug).Msg("Addon activated")

	return nil
}

// Deactivate switches an addon off. Deactivating an addon that is not active
// is a no-op returning nil; listeners only fire on an actual transition.
func (r *Registry) Deactivate(slug string) error {
	r.mu.Lock()
	if !r.active[slug] {
		r.mu.Unlock()
		return nil
	}

	delete(r.active, slug)
	listeners := r.snapshotListeners()
	err := r.persistActiveLocked()
	r.mu.Unlock()

	if err != nil {
		return err
	}

	for _, l := range listeners {
		l.AddonDeactivated(slug)
	}

	log.Info().Str("addon", slug).Msg("Addon deactivated")

	return nil
}

// List returns all registered descriptors in registration order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.addons[slug])
	}
	return out
}

// Active returns the descriptors of all active addons in registration order.
func (r *Registry) Active() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Descriptor
	for _, slug := range r.order {
		if r.active[slug] {
			out = append(out, r.addons[slug])
		}
	}
	return out
}

// IsActive reports whether the addon with the given slug is active.
func (r *Registry) IsActive(slug string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active[slug]
}

// Prune drops active slugs that no registered descriptor claims and persists
// the cleaned set. Called once startup registration is complete, so a stale
// slug from a removed addon cannot report active forever.
func (r *Registry) Prune() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := false
	for slug := range r.active {
		if _, ok := r.addons[slug]; ok {
			continue
		}

		delete(r.active, slug)
		pruned = true

		log.Warn().Str("addon", slug).Msg("Dropping active addon without a registered descriptor")
	}

	if !pruned {
		return nil
	}

	return r.persistActiveLocked()
}

// Get returns the descriptor registered under slug.
func (r *Registry) Get(slug string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.addons[slug]
	if !ok {
		return Descriptor{}, ErrAddonNotFound
	}
	return d, nil
}

func (r *Registry) snapshotListeners() []Listener {
	out := make([]Listener, len(r.listeners))
	copy(out, r.listeners)
	return out
}

// persistActiveLocked writes the active slug set. Slugs keep registration
// order so the stored list is stable. Callers hold r.mu.
func (r *Registry) persistActiveLocked() error {
	slugs := []string{}
	for _, slug := range r.order {
		if r.active[slug] {
			slugs = append(slugs, slug)
		}
	}

	blob, err := json.Marshal(slugs)
	if err != nil {
		return fmt.Errorf("encode active addons: %w", err)
	}

	if _, err := setting.Set(r.db, setting.KeyActiveAddons, blob); err != nil {
		return fmt.Errorf("save active addons: %w", err)
	}

	return nil
}

// compareVersions compares two dotted numeric versions, returning -1, 0 or 1.
// Non-numeric segments compare as zero.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) || i < len(bs); i++ {
		var av, bv int
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}
