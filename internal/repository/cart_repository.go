package repository

// Carts are deliberately not kept in process memory: they live in Redis
// under one key per user, so every server process sees the same cart and a
// restart loses nothing.  Values are JSON-encoded model.Cart documents
// with a sliding TTL.  When no Redis client is available the repo falls
// back to a process-local map, matching how the request counter degrades.

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/recordhub/internal/model"
)

// cartTTL is refreshed on every write; abandoned carts expire on their own.
const cartTTL = 7 * 24 * time.Hour

// CartRepo stores per-user shopping carts in Redis.
type CartRepo struct {
	RDB *redis.Client // nil -> local-only mode

	mu    sync.Mutex
	local map[uint64][]byte
}

func NewCartRepo(rdb *redis.Client) *CartRepo {
	return &CartRepo{RDB: rdb, local: make(map[uint64][]byte)}
}

func cartKey(userID uint64) string {
	return "cart:" + strconv.FormatUint(userID, 10)
}

// Get returns the user's cart, or an empty cart when none is stored.
func (r *CartRepo) Get(ctx context.Context, userID uint64) (*model.Cart, error) {
	var raw []byte
	if r.RDB != nil {
		b, err := r.RDB.Get(ctx, cartKey(userID)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return &model.Cart{Items: []model.CartItem{}}, nil
			}
			return nil, err
		}
		raw = b
	} else {
		r.mu.Lock()
		raw = r.local[userID]
		r.mu.Unlock()
		if raw == nil {
			return &model.Cart{Items: []model.CartItem{}}, nil
		}
	}

	var cart model.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		// A corrupt value is unrecoverable; start the user over.
		return &model.Cart{Items: []model.CartItem{}}, nil
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return &cart, nil
}

// Save writes the user's cart back, refreshing the TTL.
func (r *CartRepo) Save(ctx context.Context, userID uint64, cart *model.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if r.RDB != nil {
		return r.RDB.Set(ctx, cartKey(userID), raw, cartTTL).Err()
	}
	r.mu.Lock()
	r.local[userID] = raw
	r.mu.Unlock()
	return nil
}

// Clear removes the user's cart.
func (r *CartRepo) Clear(ctx context.Context, userID uint64) error {
	if r.RDB != nil {
		return r.RDB.Del(ctx, cartKey(userID)).Err()
	}
	r.mu.Lock()
	delete(r.local, userID)
	r.mu.Unlock()
	return nil
}
