package credential

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

func TestBoltStoreSavesAndExpiresCredential(t *testing.T) {
	dir := t.TempDir()
	storeRaw, err := openBolt(filepath.Join(dir, "creds", "credentials.db"), Options{Key: "authToken", TTL: time.Hour})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	ctx := context.Background()
	tok, err := store.Credential(ctx)
	if err != nil || tok != "" {
		t.Fatalf("expected empty credential, got %q err=%v", tok, err)
	}

	if err := store.SaveCredential("abc"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}
	tok, err = store.Credential(ctx)
	if err != nil || tok != "abc" {
		t.Fatalf("expected abc, got %q err=%v", tok, err)
	}

	// Fast-forward past the TTL.
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	tok, err = store.Credential(ctx)
	if err != nil {
		t.Fatalf("Credential after expiry: %v", err)
	}
	if tok != "" {
		t.Fatalf("expected expired credential to be dropped, got %q", tok)
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	first, err := NewStore("bbolt", path, Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := first.SaveCredential("persisted"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := NewStore("bbolt", path, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	tok, err := second.Credential(context.Background())
	if err != nil || tok != "persisted" {
		t.Fatalf("expected persisted token, got %q err=%v", tok, err)
	}

	if err := second.ClearCredential(); err != nil {
		t.Fatalf("ClearCredential: %v", err)
	}
	if tok, _ := second.Credential(context.Background()); tok != "" {
		t.Fatalf("expected cleared credential, got %q", tok)
	}
}

func TestNewStoreSupportsNoopAndMemory(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.SaveCredential("x"); err != nil {
		t.Fatalf("noop SaveCredential: %v", err)
	}
	if tok, _ := store.Credential(context.Background()); tok != "" {
		t.Fatalf("noop store should never return a token")
	}

	mem, err := NewStore("memory", "", Options{})
	if err != nil {
		t.Fatalf("NewStore memory: %v", err)
	}
	_ = mem.SaveCredential(" tok ")
	if tok, _ := mem.Credential(context.Background()); tok != "tok" {
		t.Fatalf("memory store returned %q", tok)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected unsupported type error")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected missing path error")
	}
}

func TestBoltStoreReadsNeverWrite(t *testing.T) {
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "credentials.db"), Options{Key: "authToken", TTL: time.Hour})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()
	ctx := context.Background()

	writes := func() int64 {
		st := store.db.Stats()
		return st.TxStats.GetWrite()
	}

	before := writes()
	for i := 0; i < 3; i++ {
		if tok, err := store.Credential(ctx); err != nil || tok != "" {
			t.Fatalf("missing key: got %q err=%v", tok, err)
		}
	}
	if after := writes(); after != before {
		t.Fatalf("reading a missing key wrote to the store: %d -> %d", before, after)
	}

	if err := store.SaveCredential("abc"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	before = writes()
	if tok, _ := store.Credential(ctx); tok != "" {
		t.Fatalf("expected expired token to read as empty, got %q", tok)
	}
	if after := writes(); after != before {
		t.Fatalf("reading an expired key wrote to the store: %d -> %d", before, after)
	}

	var raw []byte
	_ = store.db.View(func(tx *bolt.Tx) error {
		raw = tx.Bucket([]byte(credentialBucket)).Get(store.key)
		return nil
	})
	if raw == nil {
		t.Fatalf("expired entry should stay until the next save or clear")
	}

	if err := store.ClearCredential(); err != nil {
		t.Fatalf("ClearCredential: %v", err)
	}
	_ = store.db.View(func(tx *bolt.Tx) error {
		raw = tx.Bucket([]byte(credentialBucket)).Get(store.key)
		return nil
	})
	if raw != nil {
		t.Fatalf("clear should purge the expired entry")
	}
}
