package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindcare/internal/common"
	"github.com/dmitrijs2005/mindcare/internal/cryptox"
)

// SealedRepository encrypts every value before handing it to the wrapped
// Repository. The key derivation salt is kept unsealed under
// common.StorageKeySalt and is hidden from List.
type SealedRepository struct {
	inner  Repository
	sealer *cryptox.Sealer
}

// NewSealedRepository derives the storage key from secret and the salt stored
// in inner, creating the salt on first use.
func NewSealedRepository(ctx context.Context, inner Repository, secret []byte) (*SealedRepository, error) {
	salt, err := inner.Get(ctx, common.StorageKeySalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = cryptox.NewSalt()
		if err := inner.Set(ctx, common.StorageKeySalt, salt); err != nil {
			return nil, err
		}
	}

	key := cryptox.DeriveKey(secret, salt)
	defer common.WipeByteArray(key)

	sealer, err := cryptox.NewSealer(key)
	if err != nil {
		return nil, err
	}
	return &SealedRepository{inner: inner, sealer: sealer}, nil
}

func (r *SealedRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.inner.Get(ctx, key)
	if err != nil || v == nil {
		return v, err
	}
	plain, err := r.sealer.Open(v)
	if err != nil {
		return nil, fmt.Errorf("storage[%s]: %w", key, err)
	}
	return plain, nil
}

func (r *SealedRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.inner.Set(ctx, key, r.sealer.Seal(value))
}

func (r *SealedRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	sealed := make(map[string][]byte, len(values))
	for k, v := range values {
		sealed[k] = r.sealer.Seal(v)
	}
	return r.inner.SetMany(ctx, sealed)
}

func (r *SealedRepository) Delete(ctx context.Context, key string) error {
	return r.inner.Delete(ctx, key)
}

func (r *SealedRepository) DeleteMany(ctx context.Context, keys ...string) error {
	return r.inner.DeleteMany(ctx, keys...)
}

func (r *SealedRepository) List(ctx context.Context) (map[string][]byte, error) {
	all, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	delete(all, common.StorageKeySalt)

	for k, v := range all {
		plain, err := r.sealer.Open(v)
		if err != nil {
			return nil, fmt.Errorf("storage[%s]: %w", k, err)
		}
		all[k] = plain
	}
	return all, nil
}

// Clear removes all sealed values but keeps the salt so the same secret keeps
// deriving the same key.
func (r *SealedRepository) Clear(ctx context.Context) error {
	all, err := r.inner.List(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		if k != common.StorageKeySalt {
			keys = append(keys, k)
		}
	}
	return r.inner.DeleteMany(ctx, keys...)
}
