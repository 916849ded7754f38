package ingest

import (
	"context"
	"sync"
)

// KnownCodes caches the employee codes already present in the directory.
type KnownCodes struct {
	mu     sync.RWMutex
	codes  map[string]struct{}
	loaded bool
}

func NewKnownCodes() *KnownCodes {
	return &KnownCodes{codes: map[string]struct{}{}}
}

func (k *KnownCodes) Refresh(ctx context.Context, directory EmployeeDirectory) error {
	codes, err := directory.ListEmployeeCodes(ctx)
	if err != nil {
		return err
	}

	fresh := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		fresh[c] = struct{}{}
	}

	k.mu.Lock()
	k.codes = fresh
	k.loaded = true
	k.mu.Unlock()
	return nil
}

func (k *KnownCodes) Loaded() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.loaded
}

// Missing returns the codes not in the cache, in input order.
func (k *KnownCodes) Missing(codes []string) []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var missing []string
	for _, c := range codes {
		if _, ok := k.codes[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

func (k *KnownCodes) Add(codes ...string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, c := range codes {
		k.codes[c] = struct{}{}
	}
}
