package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-nft/internal/domain/account"
	qb "github.com/riskibarqy/fantasy-nft/internal/platform/querybuilder"
)

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.

func (r *AccountRepository) GetOrCreateAccount(ctx context.Context, walletAddr string) (account.Account, error) {
	walletAddr = strings.TrimSpace(walletAddr)
	if walletAddr == "" {
		return account.Account{}, fmt.Errorf("wallet address is required")
	}

	query, args, err := qb.InsertModel("accounts", accountInsertModel{WalletAddr: walletAddr}, `ON CONFLICT (wallet_addr) WHERE deleted_at IS NULL
DO UPDATE SET wallet_addr = EXCLUDED.wallet_addr
RETURNING *`)
	if err != nil {
		return account.Account{}, fmt.Errorf("build upsert account query: %w", err)
	}

	var row accountTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return account.Account{}, fmt.Errorf("upsert account wallet=%s: %w", walletAddr, err)
	}
	return row.toDomain(), nil
}

func (r *AccountRepository) GetAccountByWallet(ctx context.Context, walletAddr string) (account.Account, bool, error) {
	query, args, err := qb.Select("*").From("accounts").
		Where(
			qb.Eq("wallet_addr", strings.TrimSpace(walletAddr)),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return account.Account{}, false, fmt.Errorf("build get account query: %w", err)
	}

	var row accountTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return account.Account{}, false, nil
		}
		return account.Account{}, false, fmt.Errorf("get account wallet=%s: %w", walletAddr, err)
	}
	return row.toDomain(), true, nil
}

func (r *AccountRepository) GetAccountsByIDs(ctx context.Context, ids []int64) ([]account.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("accounts").
		Where(
			qb.AnyOf("id", anyInt64(ids)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select accounts query: %w", err)
	}

	var rows []accountTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}

	out := make([]account.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AccountRepository) GetOrCreateCollection(ctx context.Context, contractAddr string) (account.Collection, error) {
	contractAddr = strings.TrimSpace(contractAddr)
	if contractAddr == "" {
		return account.Collection{}, fmt.Errorf("contract address is required")
	}

	query, args, err := qb.InsertModel("collections", collectionInsertModel{ContractAddr: contractAddr}, `ON CONFLICT (contract_addr) WHERE deleted_at IS NULL
DO UPDATE SET contract_addr = EXCLUDED.contract_addr
RETURNING *`)
	if err != nil {
		return account.Collection{}, fmt.Errorf("build upsert collection query: %w", err)
	}

	var row collectionTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return account.Collection{}, fmt.Errorf("upsert collection contract=%s: %w", contractAddr, err)
	}
	return row.toDomain(), nil
}

func (r *AccountRepository) GetOrCreateAsset(ctx context.Context, item account.Asset) (account.Asset, error) {
	if err := item.Validate(); err != nil {
		return account.Asset{}, fmt.Errorf("validate asset: %w", err)
	}

	query, args, err := qb.InsertModel("assets", assetInsertModel{
		TokenID:      strings.TrimSpace(item.TokenID),
		CollectionID: item.CollectionID,
		OwnerID:      item.OwnerID,
		Name:         toNullString(item.Name),
		ImageURL:     toNullString(item.ImageURL),
	}, `ON CONFLICT (token_id, collection_id) WHERE deleted_at IS NULL
DO UPDATE SET
    owner_id = EXCLUDED.owner_id,
    updated_at = CASE WHEN assets.owner_id = EXCLUDED.owner_id THEN assets.updated_at ELSE NOW() END
RETURNING *`)
	if err != nil {
		return account.Asset{}, fmt.Errorf("build upsert asset query: %w", err)
	}

	var row assetTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return account.Asset{}, fmt.Errorf("upsert asset token=%s: %w", item.TokenID, err)
	}
	return row.toDomain(), nil
}
