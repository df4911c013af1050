package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// walletFile is the on-disk JSON format for an encrypted wallet.
type walletFile struct {
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	EncryptedSeed []byte     `json:"encrypted_seed"`
	Keys          []KeyEntry `json:"keys"`
	NextKeyIndex  uint32     `json:"next_key_index"`
}

// KeyEntry stores metadata for a named key. Watch-only entries carry a
// public key with no derivation index behind it.
type KeyEntry struct {
	Name      string `json:"name"`
	PublicKey string `json:"public_key"` // hex-encoded Ed25519 public key
	Index     uint32 `json:"index"`      // hardened derivation index
	WatchOnly bool   `json:"watch_only"`
}

// Keystore manages encrypted wallet storage on disk.
type Keystore struct {
	dir string
}

// NewKeystore creates a keystore that reads/writes to the given directory.
// The directory is created if it doesn't exist.
func NewKeystore(dir string) (*Keystore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &Keystore{dir: dir}, nil
}

func (ks *Keystore) walletPath(name string) string {
	return filepath.Join(ks.dir, name+".wallet")
}

// Create writes a new encrypted wallet file holding the BIP-39 seed.
func (ks *Keystore) Create(name string, seed, password []byte, params KDFParams) error {
	path := ks.walletPath(name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("wallet %q already exists", name)
	}

	encrypted, err := EncryptSecret(seed, password, params)
	if err != nil {
		return fmt.Errorf("encrypt seed: %w", err)
	}

	wf := walletFile{
		Version:       1,
		CreatedAt:     time.Now().UTC(),
		EncryptedSeed: encrypted,
		Keys:          []KeyEntry{},
	}
	return ks.writeFile(path, &wf)
}

// LoadSeed decrypts a wallet and returns the seed bytes.
func (ks *Keystore) LoadSeed(name string, password []byte) ([]byte, error) {
	wf, err := ks.readFile(ks.walletPath(name))
	if err != nil {
		return nil, err
	}
	seed, err := DecryptSecret(wf.EncryptedSeed, password)
	if err != nil {
		return nil, fmt.Errorf("decrypt wallet: %w", err)
	}
	return seed, nil
}

// AddKey records a named key. Duplicate names are rejected; re-adding the
// same name/public-key pair is a no-op.
func (ks *Keystore) AddKey(walletName string, entry KeyEntry) error {
	path := ks.walletPath(walletName)
	wf, err := ks.readFile(path)
	if err != nil {
		return err
	}

	for _, existing := range wf.Keys {
		if existing.Name == entry.Name {
			if existing.PublicKey == entry.PublicKey {
				return nil
			}
			return fmt.Errorf("key %q already exists", entry.Name)
		}
	}

	wf.Keys = append(wf.Keys, entry)
	if !entry.WatchOnly && entry.Index >= wf.NextKeyIndex {
		wf.NextKeyIndex = entry.Index + 1
	}
	return ks.writeFile(path, wf)
}

// ListKeys returns the key entries for a wallet in insertion order.
func (ks *Keystore) ListKeys(walletName string) ([]KeyEntry, error) {
	wf, err := ks.readFile(ks.walletPath(walletName))
	if err != nil {
		return nil, err
	}
	return wf.Keys, nil
}

// NextKeyIndex returns the next unused derivation index for a wallet.
func (ks *Keystore) NextKeyIndex(walletName string) (uint32, error) {
	wf, err := ks.readFile(ks.walletPath(walletName))
	if err != nil {
		return 0, err
	}
	return wf.NextKeyIndex, nil
}

// List returns the names of all wallet files in the keystore.
func (ks *Keystore) List() ([]string, error) {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return nil, fmt.Errorf("read keystore dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if ext := filepath.Ext(name); ext == ".wallet" {
			names = append(names, name[:len(name)-len(ext)])
		}
	}
	return names, nil
}

// Delete removes a wallet file.
func (ks *Keystore) Delete(name string) error {
	path := ks.walletPath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("wallet %q not found", name)
	}
	return os.Remove(path)
}

func (ks *Keystore) writeFile(path string, wf *walletFile) error {
	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}
	return nil
}

func (ks *Keystore) readFile(path string) (*walletFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse wallet: %w", err)
	}
	if wf.Version != 1 {
		return nil, fmt.Errorf("unsupported wallet version: %d", wf.Version)
	}
	return &wf, nil
}
