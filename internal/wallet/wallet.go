// Package wallet implements the HD cryptocurrency wallet generator
// (spec component C6): a BIP-39 mnemonic and BIP-32 master derived
// from keyforge domain key material, producing a Bitcoin P2WPKH
// address and an Ethereum-shaped address, plus a non-mnemonic
// "payment wallet" branch with an opaque Lightning identifier.
//
// Ethereum addressing note: this package hashes with real Keccak-256
// (golang.org/x/crypto/sha3's pre-standardization variant), not the
// SHA3-256 bug present in some reference Keyforge implementations —
// see spec §9's open question. It also follows spec §4.6 step 7
// literally (strip the SEC1 tag byte from the compressed public key,
// hash the remaining 32-byte X coordinate) rather than the 64-byte
// uncompressed-pubkey convention real Ethereum tooling uses; addresses
// produced here will not match other Ethereum wallets regardless of
// the Keccak-vs-SHA3 choice, and are Keyforge-internal identifiers.
package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/keyforge/keyforge/internal/derive"
	"github.com/keyforge/keyforge/internal/primitives"
)

// bitcoinPath is BIP-84's m/84'/0'/0'/0/0 (native SegWit, account 0,
// external chain, first address).
var bitcoinPath = []uint32{
	bip32.FirstHardenedChild + 84,
	bip32.FirstHardenedChild + 0,
	bip32.FirstHardenedChild + 0,
	0,
	0,
}

// ethereumPath is m/44'/60'/0'/0/0, the standard Ethereum derivation
// path (BIP-44, coin type 60).
var ethereumPath = []uint32{
	bip32.FirstHardenedChild + 44,
	bip32.FirstHardenedChild + 60,
	bip32.FirstHardenedChild + 0,
	0,
	0,
}

// Bitcoin holds the P2WPKH branch of a wallet.
type Bitcoin struct {
	XPub    string
	XPriv   string
	Address string
}

// Ethereum holds the Ethereum branch of a wallet.
type Ethereum struct {
	Address string
}

// Wallet is the full output of Generate.
type Wallet struct {
	Mnemonic string
	Bitcoin  Bitcoin
	Ethereum Ethereum
}

// Lightning is an opaque Lightning-style identifier pair; it does not
// correspond to a real LN node (spec §4.6).
type Lightning struct {
	NodeID string
	Seed   string
}

// PaymentWallet is the output of GeneratePaymentWallet: a Bitcoin
// branch derived directly from domain key material (no BIP-39 step)
// plus a Lightning identifier.
type PaymentWallet struct {
	Bitcoin   Bitcoin
	Lightning Lightning
}

// Generate derives a full BIP-39/BIP-32 wallet for (masterSeed,
// service). service == "" uses index 0.
func Generate(masterSeed []byte, service string) (*Wallet, error) {
	var index uint32
	if service != "" {
		index = derive.ServiceIndex(service)
	}

	entropy, err := derive.Key(masterSeed, derive.DomainWalletBIP39, index, 32)
	if err != nil {
		return nil, err
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("wallet: mnemonic generation: %w", err)
	}

	bip39Seed := bip39.NewSeed(mnemonic, "")

	root, err := bip32.NewMasterKey(bip39Seed)
	if err != nil {
		return nil, fmt.Errorf("wallet: bip32 master key: %w", err)
	}

	btc, err := deriveBitcoin(root)
	if err != nil {
		return nil, err
	}
	eth, err := deriveEthereum(root)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		Mnemonic: mnemonic,
		Bitcoin:  *btc,
		Ethereum: *eth,
	}, nil
}

// GeneratePaymentWallet derives the non-mnemonic payment branch: the
// Bitcoin P2WPKH address from a BIP-32 master seeded directly by
// domain key material, plus an opaque Lightning identifier pair.
func GeneratePaymentWallet(masterSeed []byte) (*PaymentWallet, error) {
	paymentSeed, err := derive.Key(masterSeed, derive.DomainWalletPayment, 0, 32)
	if err != nil {
		return nil, err
	}

	root, err := bip32.NewMasterKey(paymentSeed)
	if err != nil {
		return nil, fmt.Errorf("wallet: bip32 master key: %w", err)
	}

	btc, err := deriveBitcoin(root)
	if err != nil {
		return nil, err
	}

	btcChild, err := deriveChild(root, bitcoinPath)
	if err != nil {
		return nil, err
	}
	nodeID := hex.EncodeToString(btcChild.PublicKey().Key)

	lnSeed, err := derive.Key(masterSeed, derive.DomainWalletPayment, 1, 32)
	if err != nil {
		return nil, err
	}

	return &PaymentWallet{
		Bitcoin: *btc,
		Lightning: Lightning{
			NodeID: nodeID,
			Seed:   hex.EncodeToString(lnSeed),
		},
	}, nil
}

func deriveChild(root *bip32.Key, path []uint32) (*bip32.Key, error) {
	key := root
	for _, idx := range path {
		child, err := key.NewChildKey(idx)
		if err != nil {
			return nil, fmt.Errorf("wallet: bip32 child derivation: %w", err)
		}
		key = child
	}
	return key, nil
}

func deriveBitcoin(root *bip32.Key) (*Bitcoin, error) {
	child, err := deriveChild(root, bitcoinPath)
	if err != nil {
		return nil, err
	}

	pub := child.PublicKey()
	address, err := p2wpkhAddress(pub.Key)
	if err != nil {
		return nil, err
	}

	return &Bitcoin{
		XPub:    pub.B58Serialize(),
		XPriv:   child.B58Serialize(),
		Address: address,
	}, nil
}

func deriveEthereum(root *bip32.Key) (*Ethereum, error) {
	child, err := deriveChild(root, ethereumPath)
	if err != nil {
		return nil, err
	}
	compressed := child.PublicKey().Key // 33 bytes: 1-byte SEC1 tag || 32-byte X
	if len(compressed) < 2 {
		return nil, fmt.Errorf("wallet: unexpected public key length %d", len(compressed))
	}
	x := compressed[1:]
	digest := primitives.Keccak256(x)
	addrBytes := digest[len(digest)-20:]
	return &Ethereum{
		Address: "0x" + strings.ToLower(hex.EncodeToString(addrBytes)),
	}, nil
}

// p2wpkhAddress builds the bech32 native-SegWit (witness version 0)
// address for a compressed public key: bech32("bc", 0x00 ||
// convertbits(hash160(pubkey), 8, 5, true)).
func p2wpkhAddress(compressedPubKey []byte) (string, error) {
	program := primitives.Hash160(compressedPubKey)
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("wallet: bech32 bit conversion: %w", err)
	}
	data := append([]byte{0x00}, converted...)
	addr, err := bech32.Encode("bc", data)
	if err != nil {
		return "", fmt.Errorf("wallet: bech32 encode: %w", err)
	}
	return addr, nil
}
