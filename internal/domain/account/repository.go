package account

import "context"

// Repository covers the lazily created chain mirrors. Every GetOrCreate is an
// upsert on a unique key, so concurrent callers receive the same row.
type Repository interface {
	GetOrCreateAccount(ctx context.Context, walletAddr string) (Account, error)
	GetAccountByWallet(ctx context.Context, walletAddr string) (Account, bool, error)
	GetAccountsByIDs(ctx context.Context, ids []int64) ([]Account, error)
	GetOrCreateCollection(ctx context.Context, contractAddr string) (Collection, error)
	// GetOrCreateAsset keys on (TokenID, CollectionID); an existing row is
	// reassigned to item.OwnerID.
	GetOrCreateAsset(ctx context.Context, item Asset) (Asset, error)
}
