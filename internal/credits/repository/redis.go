package repository

import (
	"context"
	"fmt"
	"time"

	"marketplace_backend/internal/credits/ledger"

	"github.com/redis/go-redis/v9"
)

// Each account lives under three keys sharing a hash tag so scripts stay on one
// cluster slot: a hash holding the balance, a set for membership checks and a
// list preserving unlock order. Every write refreshes the session TTL.

var spendScript = redis.NewScript(`
redis.call('HSETNX', KEYS[1], 'balance', ARGV[1])
local ttl = tonumber(ARGV[4])
local balance = tonumber(redis.call('HGET', KEYS[1], 'balance'))
if redis.call('SISMEMBER', KEYS[2], ARGV[3]) == 1 then
  for i = 1, 3 do redis.call('PEXPIRE', KEYS[i], ttl) end
  return {1, 1, 0, balance}
end
local amount = tonumber(ARGV[2])
if balance < amount then
  for i = 1, 3 do redis.call('PEXPIRE', KEYS[i], ttl) end
  return {0, 0, 0, balance}
end
balance = redis.call('HINCRBY', KEYS[1], 'balance', -amount)
redis.call('SADD', KEYS[2], ARGV[3])
redis.call('RPUSH', KEYS[3], ARGV[3])
for i = 1, 3 do redis.call('PEXPIRE', KEYS[i], ttl) end
return {1, 0, amount, balance}
`)

var addScript = redis.NewScript(`
redis.call('HSETNX', KEYS[1], 'balance', ARGV[1])
local balance = redis.call('HINCRBY', KEYS[1], 'balance', tonumber(ARGV[2]))
local ttl = tonumber(ARGV[3])
for i = 1, 3 do redis.call('PEXPIRE', KEYS[i], ttl) end
return balance
`)

var getScript = redis.NewScript(`
redis.call('HSETNX', KEYS[1], 'balance', ARGV[1])
local ttl = tonumber(ARGV[2])
for i = 1, 3 do redis.call('PEXPIRE', KEYS[i], ttl) end
local ids = redis.call('LRANGE', KEYS[3], 0, -1)
table.insert(ids, 1, tonumber(redis.call('HGET', KEYS[1], 'balance')))
return ids
`)

// RedisStore keeps ledgers in Redis with a sliding session TTL, so an account
// disappears once its session has been idle for ttl.
type RedisStore struct {
	client  redis.UniversalClient
	initial int64
	ttl     time.Duration
	prefix  string
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.UniversalClient, initial int64, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, initial: initial, ttl: ttl, prefix: "credits"}
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) keys(accountID string) []string {
	tag := fmt.Sprintf("%s:{%s}", s.prefix, accountID)
	return []string{tag + ":account", tag + ":unlocked", tag + ":order"}
}

// Get returns the account, creating it if needed.
func (s *RedisStore) Get(ctx context.Context, accountID string) (Account, error) {
	if accountID == "" {
		return Account{}, errAccountRequired
	}

	raw, err := getScript.Run(ctx, s.client, s.keys(accountID), s.initial, s.ttl.Milliseconds()).Slice()
	if err != nil {
		return Account{}, fmt.Errorf("redis get account: %w", err)
	}
	if len(raw) == 0 {
		return Account{}, fmt.Errorf("redis get account: empty reply")
	}

	balance, ok := raw[0].(int64)
	if !ok {
		return Account{}, fmt.Errorf("redis get account: unexpected balance %T", raw[0])
	}
	ids := make([]string, 0, len(raw)-1)
	for _, v := range raw[1:] {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return Account{AccountID: accountID, Balance: balance, UnlockedIDs: ids}, nil
}

// IsUnlocked reports whether the account has unlocked rfpID.
func (s *RedisStore) IsUnlocked(ctx context.Context, accountID, rfpID string) (bool, error) {
	if accountID == "" {
		return false, errAccountRequired
	}
	ok, err := s.client.SIsMember(ctx, s.keys(accountID)[1], rfpID).Result()
	if err != nil {
		return false, fmt.Errorf("redis is unlocked: %w", err)
	}
	return ok, nil
}

// Spend runs the check-then-charge script atomically.
func (s *RedisStore) Spend(ctx context.Context, accountID string, amount int64, rfpID string) (ledger.SpendResult, error) {
	if err := validateSpend(accountID, amount, rfpID); err != nil {
		return ledger.SpendResult{}, err
	}

	vals, err := spendScript.Run(ctx, s.client, s.keys(accountID), s.initial, amount, rfpID, s.ttl.Milliseconds()).Int64Slice()
	if err != nil {
		return ledger.SpendResult{}, fmt.Errorf("redis spend: %w", err)
	}
	if len(vals) != 4 {
		return ledger.SpendResult{}, fmt.Errorf("redis spend: unexpected reply length %d", len(vals))
	}

	return ledger.SpendResult{
		OK:              vals[0] == 1,
		AlreadyUnlocked: vals[1] == 1,
		Charged:         vals[2],
		Balance:         vals[3],
	}, nil
}

// Add credits the account.
func (s *RedisStore) Add(ctx context.Context, accountID string, amount int64) (int64, error) {
	if err := validateAdd(accountID, amount); err != nil {
		return 0, err
	}

	balance, err := addScript.Run(ctx, s.client, s.keys(accountID), s.initial, amount, s.ttl.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis add: %w", err)
	}
	return balance, nil
}
