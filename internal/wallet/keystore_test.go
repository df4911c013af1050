package wallet

import (
	"testing"
)

const testPassword = "a long enough password"

func newTestKeystore(t *testing.T) *Keystore {
	t.Helper()
	ks, err := NewKeystore(t.TempDir())
	if err != nil {
		t.Fatalf("NewKeystore() error: %v", err)
	}
	return ks
}

func createTestWallet(t *testing.T, ks *Keystore, name string) []byte {
	t.Helper()
	seed := testSeed(t)
	if err := ks.Create(name, seed, []byte(testPassword), fastKDFParams()); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return seed
}

func TestKeystore_CreateAndLoad(t *testing.T) {
	ks := newTestKeystore(t)
	seed := createTestWallet(t, ks, "main")

	loaded, err := ks.LoadSeed("main", []byte(testPassword))
	if err != nil {
		t.Fatalf("LoadSeed() error: %v", err)
	}
	if string(loaded) != string(seed) {
		t.Error("loaded seed differs from created seed")
	}
}

func TestKeystore_CreateDuplicate(t *testing.T) {
	ks := newTestKeystore(t)
	createTestWallet(t, ks, "main")

	if err := ks.Create("main", testSeed(t), []byte(testPassword), fastKDFParams()); err == nil {
		t.Error("creating an existing wallet should fail")
	}
}

func TestKeystore_LoadWrongPassword(t *testing.T) {
	ks := newTestKeystore(t)
	createTestWallet(t, ks, "main")

	if _, err := ks.LoadSeed("main", []byte("not the password")); err == nil {
		t.Error("wrong password should fail")
	}
}

func TestKeystore_AddAndListKeys(t *testing.T) {
	ks := newTestKeystore(t)
	createTestWallet(t, ks, "main")

	entries := []KeyEntry{
		{Name: "alice", PublicKey: "aa", Index: 0},
		{Name: "bob", PublicKey: "bb", Index: 1},
		{Name: "carol-watch", PublicKey: "cc", WatchOnly: true},
	}
	for _, e := range entries {
		if err := ks.AddKey("main", e); err != nil {
			t.Fatalf("AddKey(%q) error: %v", e.Name, err)
		}
	}

	got, err := ks.ListKeys("main")
	if err != nil {
		t.Fatalf("ListKeys() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(keys) = %d, want 3", len(got))
	}
	// Insertion order is the signing order; it must survive storage.
	for i, e := range entries {
		if got[i].Name != e.Name {
			t.Errorf("keys[%d] = %q, want %q", i, got[i].Name, e.Name)
		}
	}

	next, err := ks.NextKeyIndex("main")
	if err != nil {
		t.Fatalf("NextKeyIndex() error: %v", err)
	}
	if next != 2 {
		t.Errorf("next index = %d, want 2", next)
	}
}

func TestKeystore_AddKey_DuplicateName(t *testing.T) {
	ks := newTestKeystore(t)
	createTestWallet(t, ks, "main")

	if err := ks.AddKey("main", KeyEntry{Name: "k", PublicKey: "aa"}); err != nil {
		t.Fatalf("AddKey() error: %v", err)
	}
	// Same name, same key: idempotent.
	if err := ks.AddKey("main", KeyEntry{Name: "k", PublicKey: "aa"}); err != nil {
		t.Errorf("idempotent re-add should succeed: %v", err)
	}
	// Same name, different key: conflict.
	if err := ks.AddKey("main", KeyEntry{Name: "k", PublicKey: "bb"}); err == nil {
		t.Error("conflicting re-add should fail")
	}
}

func TestKeystore_ListAndDelete(t *testing.T) {
	ks := newTestKeystore(t)
	createTestWallet(t, ks, "first")
	createTestWallet(t, ks, "second")

	names, err := ks.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("len(names) = %d, want 2", len(names))
	}

	if err := ks.Delete("first"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := ks.Delete("first"); err == nil {
		t.Error("deleting a missing wallet should fail")
	}

	names, err = ks.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 1 || names[0] != "second" {
		t.Errorf("names = %v, want [second]", names)
	}
}

func TestUnlock_Session(t *testing.T) {
	ks := newTestKeystore(t)
	createTestWallet(t, ks, "main")

	// Derive and register two keys plus a watch-only entry.
	seedSession, err := Unlock(ks, "main", testPassword)
	if err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	p0, err := seedSession.DeriveKey(0)
	if err != nil {
		t.Fatalf("DeriveKey(0) error: %v", err)
	}
	p1, err := seedSession.DeriveKey(1)
	if err != nil {
		t.Fatalf("DeriveKey(1) error: %v", err)
	}
	seedSession.Close()

	watchKey := "6b79000000000000000000000000000000000000000000000000000000000000"
	ks.AddKey("main", KeyEntry{Name: "ops", PublicKey: p0.PublicKeyHex(), Index: 0})
	ks.AddKey("main", KeyEntry{Name: "backup", PublicKey: p1.PublicKeyHex(), Index: 1})
	ks.AddKey("main", KeyEntry{Name: "cold", PublicKey: watchKey, WatchOnly: true})

	session, err := Unlock(ks, "main", testPassword)
	if err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	defer session.Close()

	ring := session.Keyring()
	if got := ring.Names(); len(got) != 3 || got[0] != "ops" || got[1] != "backup" || got[2] != "cold" {
		t.Errorf("keyring names = %v", got)
	}

	ops, ok := ring.Get("ops")
	if !ok || !ops.HasPrivateKey() {
		t.Error("ops should be a signing key")
	}
	if ops.PublicKeyHex() != p0.PublicKeyHex() {
		t.Error("unlock did not reproduce the derived key")
	}

	cold, ok := ring.Get("cold")
	if !ok || cold.HasPrivateKey() {
		t.Error("cold should be watch-only")
	}
	if cold.PublicKeyHex() != watchKey {
		t.Errorf("cold pubkey = %s", cold.PublicKeyHex())
	}
}

func TestUnlock_WrongPassword(t *testing.T) {
	ks := newTestKeystore(t)
	createTestWallet(t, ks, "main")

	if _, err := Unlock(ks, "main", "definitely wrong"); err == nil {
		t.Error("unlock with the wrong password should fail")
	}
}
