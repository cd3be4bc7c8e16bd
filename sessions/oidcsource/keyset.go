package oidcsource

import (
	"context"
	"crypto"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-jose/go-jose/v4"
)

// minKeyRefresh bounds how often an unknown signature can trigger a refetch.
const minKeyRefresh = 5 * time.Second

var _ oidc.KeySet = (*keySet)(nil)

// keySet verifies signatures against the provider's published JWKS and keeps
// fetch failures apart from signature mismatches.
type keySet struct {
	jwksURL string
	client  *http.Client

	lock      sync.Mutex
	keys      []crypto.PublicKey
	fetchedAt time.Time
}

func newKeySet(jwksURL string, client *http.Client) *keySet {
	return &keySet{jwksURL: jwksURL, client: client}
}

type fetchFailureKey struct{}

// fetchFailure collects a key fetch error for the verification running under ctx.
type fetchFailure struct {
	err error
}

func withFetchFailure(ctx context.Context) (context.Context, *fetchFailure) {
	failure := &fetchFailure{}
	return context.WithValue(ctx, fetchFailureKey{}, failure), failure
}

func (k *keySet) VerifySignature(ctx context.Context, jwt string) ([]byte, error) {
	keys, err := k.current(ctx, false)
	if err == nil {
		if payload, verr := (&oidc.StaticKeySet{PublicKeys: keys}).VerifySignature(ctx, jwt); verr == nil {
			return payload, nil
		}
		keys, err = k.current(ctx, true)
	}
	if err != nil {
		if failure, ok := ctx.Value(fetchFailureKey{}).(*fetchFailure); ok {
			failure.err = err
		}
		return nil, err
	}
	return (&oidc.StaticKeySet{PublicKeys: keys}).VerifySignature(ctx, jwt)
}

// current returns the cached keys, fetching when the cache is empty or when
// refresh is set and the last fetch is older than minKeyRefresh.
func (k *keySet) current(ctx context.Context, refresh bool) ([]crypto.PublicKey, error) {
	k.lock.Lock()
	defer k.lock.Unlock()

	if len(k.keys) > 0 && (!refresh || time.Since(k.fetchedAt) < minKeyRefresh) {
		return k.keys, nil
	}

	keys, err := k.fetch(ctx)
	if err != nil {
		return nil, err
	}
	k.keys = keys
	k.fetchedAt = time.Now()
	return keys, nil
}

func (k *keySet) fetch(ctx context.Context) ([]crypto.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("[oidcsource keySet] failed to build request: %w", err)
	}

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[oidcsource keySet] key fetch failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("[oidcsource keySet] failed to read keys: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[oidcsource keySet] key endpoint returned %d", resp.StatusCode)
	}

	var set jose.JSONWebKeySet
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("[oidcsource keySet] failed to decode keys: %w", err)
	}

	keys := make([]crypto.PublicKey, 0, len(set.Keys))
	for _, key := range set.Keys {
		if key.Use != "" && key.Use != "sig" {
			continue
		}
		keys = append(keys, key.Key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("[oidcsource keySet] key endpoint published no signing keys")
	}
	return keys, nil
}
