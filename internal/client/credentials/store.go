// Package credentials persists the client's auth-adjacent state: the bearer
// token plus a small set of companion keys. The store is injected into the
// session store and the HTTP gateway so tests can swap in an in-memory fake.
package credentials

import (
	"context"
	"strings"
)

// Keys owned by the auth subsystem. KeyAccessToken is the canonical
// credential; the rest are convenience values cached alongside it.
const (
	KeyAccessToken = "authToken"
	KeyProfile     = "authUser"
	KeyExpiresAt   = "authExpiresAt"
)

// authKeys is the explicit registry of keys PurgeAuth removes. Matching is
// case-insensitive so historical variants of these names are swept too.
var authKeys = []string{KeyAccessToken, KeyProfile, KeyExpiresAt}

// Store is a scoped get/set/remove surface over string keys.
//
// Get returns ("", nil) when the key is absent; presence of a stored value
// does not imply it is still valid.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// PurgeAuth removes every auth-owned key from s. It is the single cleanup
// path shared by explicit logout and the gateway's unauthorized handling,
// so the two can never disagree on which keys to drop.
func PurgeAuth(ctx context.Context, s Store) error {
	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		for _, owned := range authKeys {
			if strings.EqualFold(k, owned) {
				if err := s.Delete(ctx, k); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}
