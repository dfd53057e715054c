package account

import (
	"fmt"
	"strings"
	"time"
)

// Account mirrors a wallet that has been seen on chain.
type Account struct {
	ID         int64
	Username   string
	WalletAddr string
	ImageURL   string
	CreatedAt  time.Time
}

// Collection mirrors an NFT contract.
type Collection struct {
	ID           int64
	Name         string
	ContractAddr string
	CreatedAt    time.Time
}

// Asset mirrors one token of a collection. (TokenID, CollectionID) is unique.
type Asset struct {
	ID           int64
	TokenID      string
	CollectionID int64
	OwnerID      int64
	Name         string
	ImageURL     string
	CreatedAt    time.Time
}

func (a Asset) Validate() error {
	if strings.TrimSpace(a.TokenID) == "" {
		return fmt.Errorf("asset token id is required")
	}
	if a.CollectionID <= 0 {
		return fmt.Errorf("asset collection id is required")
	}
	if a.OwnerID <= 0 {
		return fmt.Errorf("asset owner id is required")
	}
	return nil
}
