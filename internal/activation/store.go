package activation

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// PendingCode is what send-code stores for an email until it expires or
// the account is activated.
type PendingCode struct {
	Code      string `json:"code"`
	Matricule string `json:"matricule"`
}

// CodeStore keeps one-time activation codes in Redis with a TTL. Codes are
// ephemeral by design: resending overwrites, activation deletes.
type CodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCodeStore builds the store.
func NewCodeStore(client *redis.Client, ttl time.Duration) *CodeStore {
	return &CodeStore{client: client, ttl: ttl}
}

func codeKey(email string) string     { return "activation:code:" + email }
func verifiedKey(email string) string { return "activation:verified:" + email }

// GenerateCode produces a 6-digit code in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Put stores (and overwrites) the pending code for an email.
func (s *CodeStore) Put(ctx context.Context, email string, pending PendingCode) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, codeKey(email), payload, s.ttl).Err()
}

// Get returns the pending code for an email, or found=false if none.
func (s *CodeStore) Get(ctx context.Context, email string) (PendingCode, bool, error) {
	raw, err := s.client.Get(ctx, codeKey(email)).Bytes()
	if err == redis.Nil {
		return PendingCode{}, false, nil
	}
	if err != nil {
		return PendingCode{}, false, err
	}
	var pending PendingCode
	if err := json.Unmarshal(raw, &pending); err != nil {
		return PendingCode{}, false, err
	}
	return pending, true, nil
}

// MarkVerified records a successful code check so finalize can require it.
// The marker inherits the code TTL.
func (s *CodeStore) MarkVerified(ctx context.Context, email string) error {
	return s.client.Set(ctx, verifiedKey(email), "1", s.ttl).Err()
}

// IsVerified reports whether verify-code succeeded for the email.
func (s *CodeStore) IsVerified(ctx context.Context, email string) (bool, error) {
	err := s.client.Get(ctx, verifiedKey(email)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes both the code and the verified marker after activation.
func (s *CodeStore) Clear(ctx context.Context, email string) error {
	return s.client.Del(ctx, codeKey(email), verifiedKey(email)).Err()
}
