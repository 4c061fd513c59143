package npi

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hudsonrx/claimsight/internal/normalize"
)

// Resolve returns locations for the given NPIs, consulting the cache first
// and querying the registry only for misses. Registry failures are logged
// and skipped; new hits are persisted before returning.
func Resolve(ctx context.Context, client *Client, cache *Cache, npis []string, log zerolog.Logger) map[string]Location {
	out := make(map[string]Location, len(npis))
	fetched := 0
	for _, raw := range npis {
		npi := normalize.NormalizeNPI(raw)
		if npi == "" {
			continue
		}
		if _, done := out[npi]; done {
			continue
		}
		if loc, ok := cache.Get(npi); ok {
			out[npi] = loc
			continue
		}
		loc, ok, err := client.Lookup(ctx, npi)
		if err != nil {
			log.Warn().Str("npi", npi).Err(err).Msg("npi registry lookup failed")
			continue
		}
		if !ok {
			log.Debug().Str("npi", npi).Msg("npi not found in registry")
			continue
		}
		cache.Put(loc)
		out[npi] = loc
		fetched++
	}
	if fetched > 0 {
		if err := cache.Save(); err != nil {
			log.Warn().Err(err).Msg("persist npi cache")
		}
	}
	return out
}
