package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/account"
)

type accountTableModel struct {
	ID         int64          `db:"id"`
	Username   sql.NullString `db:"username"`
	WalletAddr string         `db:"wallet_addr"`
	ImageURL   sql.NullString `db:"image_url"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

type accountInsertModel struct {
	WalletAddr string `db:"wallet_addr"`
}

type collectionTableModel struct {
	ID           int64          `db:"id"`
	Name         sql.NullString `db:"name"`
	ContractAddr string         `db:"contract_addr"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type collectionInsertModel struct {
	ContractAddr string `db:"contract_addr"`
}

type assetTableModel struct {
	ID           int64          `db:"id"`
	TokenID      string         `db:"token_id"`
	CollectionID int64          `db:"collection_id"`
	OwnerID      int64          `db:"owner_id"`
	Name         sql.NullString `db:"name"`
	ImageURL     sql.NullString `db:"image_url"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type assetInsertModel struct {
	TokenID      string         `db:"token_id"`
	CollectionID int64          `db:"collection_id"`
	OwnerID      int64          `db:"owner_id"`
	Name         sql.NullString `db:"name"`
	ImageURL     sql.NullString `db:"image_url"`
}

func (m accountTableModel) toDomain() account.Account {
	return account.Account{
		ID:         m.ID,
		Username:   nullStringValue(m.Username),
		WalletAddr: m.WalletAddr,
		ImageURL:   nullStringValue(m.ImageURL),
		CreatedAt:  m.CreatedAt,
	}
}

func (m collectionTableModel) toDomain() account.Collection {
	return account.Collection{
		ID:           m.ID,
		Name:         nullStringValue(m.Name),
		ContractAddr: m.ContractAddr,
		CreatedAt:    m.CreatedAt,
	}
}

func (m assetTableModel) toDomain() account.Asset {
	return account.Asset{
		ID:           m.ID,
		TokenID:      m.TokenID,
		CollectionID: m.CollectionID,
		OwnerID:      m.OwnerID,
		Name:         nullStringValue(m.Name),
		ImageURL:     nullStringValue(m.ImageURL),
		CreatedAt:    m.CreatedAt,
	}
}
