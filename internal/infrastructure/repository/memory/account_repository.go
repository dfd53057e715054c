package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/account"
)

type assetKey struct {
	tokenID      string
	collectionID int64
}

type AccountRepository struct {
	mu          sync.RWMutex
	accounts    map[string]account.Account
	collections map[string]account.Collection
	assets      map[assetKey]account.Asset
	nextAccount int64
	nextColl    int64
	nextAsset   int64
	now         func() time.Time
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:    make(map[string]account.Account),
		collections: make(map[string]account.Collection),
		assets:      make(map[assetKey]account.Asset),
		now:         time.Now,
	}
}

func (r *AccountRepository) GetOrCreateAccount(_ context.Context, walletAddr string) (account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item, ok := r.accounts[walletAddr]; ok {
		return item, nil
	}
	r.nextAccount++
	item := account.Account{ID: r.nextAccount, WalletAddr: walletAddr, CreatedAt: r.now()}
	r.accounts[walletAddr] = item
	return item, nil
}

func (r *AccountRepository) GetAccountByWallet(_ context.Context, walletAddr string) (account.Account, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.accounts[walletAddr]
	return item, ok, nil
}

func (r *AccountRepository) GetAccountsByIDs(_ context.Context, ids []int64) ([]account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]account.Account, 0, len(wanted))
	for _, item := range r.accounts {
		if _, ok := wanted[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *AccountRepository) GetOrCreateCollection(_ context.Context, contractAddr string) (account.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item, ok := r.collections[contractAddr]; ok {
		return item, nil
	}
	r.nextColl++
	item := account.Collection{ID: r.nextColl, ContractAddr: contractAddr, CreatedAt: r.now()}
	r.collections[contractAddr] = item
	return item, nil
}

func (r *AccountRepository) GetOrCreateAsset(_ context.Context, item account.Asset) (account.Asset, error) {
	if err := item.Validate(); err != nil {
		return account.Asset{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := assetKey{tokenID: item.TokenID, collectionID: item.CollectionID}
	if existing, ok := r.assets[key]; ok {
		existing.OwnerID = item.OwnerID
		r.assets[key] = existing
		return existing, nil
	}
	r.nextAsset++
	item.ID = r.nextAsset
	item.CreatedAt = r.now()
	r.assets[key] = item
	return item, nil
}

// AssetCount reports mirrored assets; used by tests.
func (r *AccountRepository) AssetCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assets)
}
