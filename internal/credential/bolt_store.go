package credential

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	credentialBucket = "credentials"
	expiryValueBytes = 8
)

// boltStore implements a Store backed by BoltDB. Values are an 8-byte
// big-endian unix expiry (0 = never) followed by the token bytes.
type boltStore struct {
	db  *bolt.DB
	key []byte
	ttl time.Duration
	now func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create credential directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(credentialBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{
		db:  db,
		key: []byte(opts.Key),
		ttl: opts.TTL,
		now: time.Now,
	}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Credential returns the stored token. It only reads; expired or corrupt
// entries read as empty and are replaced by the next save or clear.
func (b *boltStore) Credential(ctx context.Context) (string, error) {
	if b == nil || b.db == nil {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var token string
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket missing")
		}
		value := bucket.Get(b.key)
		if value == nil {
			return nil
		}
		tok, expiry, ok := decodeValue(value)
		if !ok {
			return nil
		}
		if !expiry.IsZero() && !expiry.After(b.now()) {
			return nil
		}
		token = tok
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// SaveCredential stores token under the configured key.
func (b *boltStore) SaveCredential(token string) error {
	if b == nil || b.db == nil {
		return nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return b.ClearCredential()
	}

	var expiry uint64
	if b.ttl > 0 {
		expiry = uint64(b.now().Add(b.ttl).Unix())
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket missing")
		}
		buf := make([]byte, expiryValueBytes+len(token))
		binary.BigEndian.PutUint64(buf, expiry)
		copy(buf[expiryValueBytes:], token)
		return bucket.Put(b.key, buf)
	})
}

// ClearCredential removes the stored token.
func (b *boltStore) ClearCredential() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.deleteIfPresent()
}

func (b *boltStore) deleteIfPresent() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket missing")
		}
		if bucket.Get(b.key) == nil {
			return nil
		}
		return bucket.Delete(b.key)
	})
}

// decodeValue splits a stored value into token and expiry.
func decodeValue(value []byte) (string, time.Time, bool) {
	if len(value) <= expiryValueBytes {
		return "", time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	token := string(value[expiryValueBytes:])
	if unix <= 0 {
		return token, time.Time{}, true
	}
	return token, time.Unix(unix, 0), true
}
