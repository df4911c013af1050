package pact

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/kadena-community/pactwallet/pkg/crypto"
)

// KeyPair holds a public key and, unless the key is watch-only, the
// private key that signs for it.
type KeyPair struct {
	PublicKey  []byte
	PrivateKey *crypto.PrivateKey // nil for watch-only keys
}

// HasPrivateKey reports whether this pair can sign.
func (kp KeyPair) HasPrivateKey() bool {
	return kp.PrivateKey != nil
}

// PublicKeyHex returns the hex encoding of the public key.
func (kp KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(kp.PublicKey)
}

// keyEntry is a named keypair inside a Keyring.
type keyEntry struct {
	name string
	pair KeyPair
}

// Keyring is an ordered mapping from key name to KeyPair. Iteration
// order is insertion order; signing relies on that order staying stable
// through filtering so sigs and pubkeys never misalign.
type Keyring struct {
	entries []keyEntry
	index   map[string]int
}

// NewKeyring creates an empty keyring.
func NewKeyring() *Keyring {
	return &Keyring{index: make(map[string]int)}
}

// Add appends a named keypair. Names must be unique.
func (r *Keyring) Add(name string, pair KeyPair) error {
	if _, ok := r.index[name]; ok {
		return fmt.Errorf("key %q already exists", name)
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, keyEntry{name: name, pair: pair})
	return nil
}

// Get returns the keypair stored under name.
func (r *Keyring) Get(name string) (KeyPair, bool) {
	i, ok := r.index[name]
	if !ok {
		return KeyPair{}, false
	}
	return r.entries[i].pair, true
}

// Names returns all key names in insertion order.
func (r *Keyring) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.name
	}
	return out
}

// Len returns the number of keys.
func (r *Keyring) Len() int {
	return len(r.entries)
}

// MissingKeyPolicy controls what happens when a signing name resolves to
// a watch-only key.
type MissingKeyPolicy int

const (
	// SkipMissing silently excludes watch-only keys from the signature
	// list. This matches historical wallet behavior.
	SkipMissing MissingKeyPolicy = iota
	// RejectMissing fails the whole signing step, naming the key.
	RejectMissing
)

// Sig is one signature in the command envelope. Sigs[i] pairs with the
// i-th signing key, positionally.
type Sig struct {
	Sig    string `json:"sig"`
	PubKey string `json:"pubKey"`
}

// Command is the wire-ready signed command envelope. Cmd is the
// stringified Payload JSON; Hash is the BLAKE2b-256 of that exact text.
type Command struct {
	Hash string `json:"hash"`
	Sigs []Sig  `json:"sigs"`
	Cmd  string `json:"cmd"`
}

// SignCommand stringifies the payload, hashes the text, and signs the
// hash with each key named in signWith, preserving keyring order.
//
// Every name in signWith must exist in the keyring. Names that resolve
// to a watch-only key are skipped or rejected per policy.
func SignCommand(ring *Keyring, signWith []string, payload *Payload, policy MissingKeyPolicy) (*Command, error) {
	text, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	hash := crypto.CommandHash(text)

	selected := make(map[string]struct{}, len(signWith))
	for _, name := range signWith {
		if _, ok := ring.Get(name); !ok {
			return nil, fmt.Errorf("signing key %q not in keyring", name)
		}
		selected[name] = struct{}{}
	}

	sigs := make([]Sig, 0, len(selected))
	for _, e := range ring.entries {
		if _, ok := selected[e.name]; !ok {
			continue
		}
		if !e.pair.HasPrivateKey() {
			if policy == RejectMissing {
				return nil, fmt.Errorf("signing key %q has no private key", e.name)
			}
			continue
		}
		sig, err := e.pair.PrivateKey.Sign(hash[:])
		if err != nil {
			return nil, fmt.Errorf("sign with %q: %w", e.name, err)
		}
		sigs = append(sigs, Sig{
			Sig:    hex.EncodeToString(sig),
			PubKey: e.pair.PublicKeyHex(),
		})
	}

	return &Command{
		Hash: hash.String(),
		Sigs: sigs,
		Cmd:  string(text),
	}, nil
}

// UnsignedCommand builds a command envelope with an empty signature
// list, for read-only queries like module listing.
func UnsignedCommand(payload *Payload) (*Command, error) {
	return SignCommand(NewKeyring(), nil, payload, SkipMissing)
}
