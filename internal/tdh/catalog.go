package tdh

import "github.com/danmuck/tdhctl/internal/memo"

// Catalog memoizes provider and event enumeration over one Source.
// Results settle for the catalog's lifetime: a repeat call never touches
// the source again, concurrent callers for the same key share one
// in-flight query, and failures are not retained. A panicking decode
// releases its key and re-raises in every sharing caller, so a later
// call queries the source again.
type Catalog struct {
	src       Source
	providers memo.Value[[]Provider]
	events    memo.Cache[string, []Event]
}

// NewCatalog returns a catalog over src.
func NewCatalog(src Source) *Catalog {
	return &Catalog{src: src}
}

// Providers returns the registered provider list.
func (c *Catalog) Providers() ([]Provider, error) {
	return c.providers.Do(func() ([]Provider, error) {
		return EnumerateProviders(c.src)
	})
}

// ProviderEvents returns every event version the provider declares.
// providerGUID is the cache key as given; callers wanting one cache
// entry per provider normalize it first.
func (c *Catalog) ProviderEvents(providerGUID string) ([]Event, error) {
	return c.events.Do(providerGUID, func() ([]Event, error) {
		return EnumerateProviderEvents(c.src, providerGUID)
	})
}

// ProvidersCached reports whether the provider list has settled.
func (c *Catalog) ProvidersCached() bool { return c.providers.Cached() }

// EventsCached reports whether events for providerGUID have settled.
func (c *Catalog) EventsCached(providerGUID string) bool {
	return c.events.Cached(providerGUID)
}
