package lookup

import (
	"context"
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store is a JSON context file of previous lookups, keyed by Query.Key.
type Store struct {
	path    string
	entries map[string]VPC
}

// OpenStore reads the context file at path. A missing file is an empty store.
func OpenStore(path string) (*Store, error) {
	s := &Store{path: path, entries: make(map[string]VPC)}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading context file %s", path)
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, errors.Wrapf(err, "parsing context file %s", path)
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached VPC for key.
func (s *Store) Get(key string) (VPC, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// Put caches v under key.
func (s *Store) Put(key string, v VPC) {
	s.entries[key] = v
}

// Keys returns the cached keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Match returns the cached queries that answer q, treating an empty account
// or region in q as a wildcard, sorted by key.
func (s *Store) Match(q Query) []Query {
	var found []Query
	for _, key := range s.Keys() {
		cached, ok := parseKey(key)
		if ok && q.matches(cached) {
			found = append(found, cached)
		}
	}
	return found
}

// Save writes the store back to its file. A store without a path is not persisted.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding context")
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, "writing context file %s", s.path)
	}
	return nil
}

// CachedProvider answers lookups from a Store and falls back to a live
// provider, saving what it learns.
type CachedProvider struct {
	store *Store
	live  Provider
}

// NewCachedProvider wraps live with store. live may be nil, in which case
// only cached lookups succeed.
func NewCachedProvider(store *Store, live Provider) *CachedProvider {
	return &CachedProvider{store: store, live: live}
}

// LookupVPC implements Provider.
func (p *CachedProvider) LookupVPC(ctx context.Context, q Query) (VPC, error) {
	key := q.Key()
	if v, ok := p.store.Get(key); ok {
		zap.L().Debug("context cache hit", zap.String("key", key))
		return v, nil
	}

	if p.live == nil {
		return p.offline(q)
	}

	zap.L().Info("looking up vpc", zap.String("key", key))
	v, err := p.live.LookupVPC(ctx, q)
	if err != nil {
		return VPC{}, err
	}

	p.store.Put(key, v)
	if err := p.store.Save(); err != nil {
		return VPC{}, err
	}
	return v, nil
}

// offline answers q without a live provider. Offline runs may not know the
// account or region, so a single cached entry for the same name is enough.
func (p *CachedProvider) offline(q Query) (VPC, error) {
	found := p.store.Match(q)
	switch len(found) {
	case 0:
		return VPC{}, errors.Errorf("no cached context for %s and live lookups are disabled", q.Key())
	case 1:
		zap.L().Debug("context cache match", zap.String("key", found[0].Key()))
		v, _ := p.store.Get(found[0].Key())
		return v, nil
	default:
		return VPC{}, errors.Errorf("%d cached contexts match %s; set AWS_ACCOUNT_ID and AWS_DEFAULT_REGION to pick one",
			len(found), q.Key())
	}
}
