package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-nft/internal/platform/cache"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-nft/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

const cacheKeyPrefix = "chain:query:"

// CachedQuerier serves repeated contract queries from a byte cache. Cache
// errors fall through to the wrapped querier; failed queries are never cached.
type CachedQuerier struct {
	next   usecase.ChainQuerier
	store  cache.ByteStore
	ttl    time.Duration
	logger *logging.Logger
	flight resilience.Group[[]byte]
}

var _ usecase.ChainQuerier = (*CachedQuerier)(nil)

func NewCachedQuerier(next usecase.ChainQuerier, store cache.ByteStore, ttl time.Duration, logger *logging.Logger) *CachedQuerier {
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedQuerier{next: next, store: store, ttl: ttl, logger: logger}
}

func (q *CachedQuerier) QueryContract(ctx context.Context, contractAddr string, msg any) ([]byte, error) {
	if q.store == nil || q.ttl <= 0 {
		return q.next.QueryContract(ctx, contractAddr, msg)
	}

	key, err := queryCacheKey(contractAddr, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: encode query message: %v", usecase.ErrInvalidInput, err)
	}

	cached, ok, err := q.store.GetBytes(ctx, key)
	if err != nil {
		q.logger.WarnContext(ctx, "chain cache read failed", "key", key, "error", err)
	} else if ok {
		return cached, nil
	}

	// The shared query and its cache write run detached from the first caller;
	// each caller waits on its own context. The wrapped client bounds the call.
	ch := q.flight.DoChan(key, func() ([]byte, error) {
		shared := context.WithoutCancel(ctx)
		raw, err := q.next.QueryContract(shared, contractAddr, msg)
		if err != nil {
			return nil, err
		}
		if err := q.store.SetBytes(shared, key, raw, q.ttl); err != nil {
			q.logger.WarnContext(shared, "chain cache write failed", "key", key, "error", err)
		}
		return raw, nil
	})

	select {
	case <-ctx.Done():
		err := ctx.Err()
		return nil, upstreamErr(classifyTransportError(err), err.Error(), err)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return append([]byte(nil), res.Val...), nil
	}
}

func queryCacheKey(contractAddr string, msg any) (string, error) {
	encoded, err := sonic.Marshal(msg)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return cacheKeyPrefix + strings.TrimSpace(contractAddr) + ":" + hex.EncodeToString(sum[:]), nil
}
