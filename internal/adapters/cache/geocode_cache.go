// Package cache guarda resultados de geocodificação em memória.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
)

// GeocodeCache usa go-cache com TTL fixo por entrada.
type GeocodeCache struct {
	items *gocache.Cache
}

var _ ports.GeocodeCache = (*GeocodeCache)(nil)

// NewGeocodeCache cria o cache; ttl <= 0 devolve NoopCache.
func NewGeocodeCache(ttl time.Duration) ports.GeocodeCache {
	if ttl <= 0 {
		return NoopCache{}
	}
	return &GeocodeCache{items: gocache.New(ttl, 2*ttl)}
}

func (c *GeocodeCache) Get(key string) (domain.GeocodeResult, bool) {
	raw, ok := c.items.Get(key)
	if !ok {
		return domain.GeocodeResult{}, false
	}
	result, ok := raw.(domain.GeocodeResult)
	return result, ok
}

func (c *GeocodeCache) Set(key string, value domain.GeocodeResult) {
	c.items.SetDefault(key, value)
}

func (c *GeocodeCache) Len() int {
	return c.items.ItemCount()
}

// NoopCache sempre erra e ignora escritas.
type NoopCache struct{}

func (NoopCache) Get(string) (domain.GeocodeResult, bool) { return domain.GeocodeResult{}, false }

func (NoopCache) Set(string, domain.GeocodeResult) {}
