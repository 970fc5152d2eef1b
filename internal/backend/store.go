package backend

import (
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrDuplicate is returned by Store.Add for an id that is already registered.
var ErrDuplicate = errors.New("product already registered")

// Product is a registered product as the backend reports it.
type Product struct {
	ID           string    `json:"idproducto"`
	Name         string    `json:"nombre"`
	RegisteredAt time.Time `json:"registrado"`
}

// Store remembers registered products. With a zero expiration entries
// never expire.
type Store struct {
	cache *gocache.Cache
	now   func() time.Time
}

// NewStore creates a store whose entries expire after expiration.
func NewStore(expiration time.Duration) *Store {
	defaultExpiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if expiration > 0 {
		defaultExpiration = expiration
		cleanup = expiration
	}
	return &Store{
		cache: gocache.New(defaultExpiration, cleanup),
		now:   time.Now,
	}
}

// Add registers a product, failing with ErrDuplicate when the id is taken.
func (s *Store) Add(id, name string) (Product, error) {
	p := Product{ID: id, Name: name, RegisteredAt: s.now().UTC()}
	if err := s.cache.Add(id, p, gocache.DefaultExpiration); err != nil {
		return Product{}, ErrDuplicate
	}
	return p, nil
}

// Get returns the product registered under id.
func (s *Store) Get(id string) (Product, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return Product{}, false
	}
	return v.(Product), true
}

// Count returns the number of registered products, expired ones included
// until the next cleanup.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
