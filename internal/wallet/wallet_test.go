package wallet

import (
	"regexp"
	"strings"
	"testing"

	"github.com/tyler-smith/go-bip39"
)

func zeroSeed() []byte { return make([]byte, 64) }

func TestGenerateDeterministic(t *testing.T) {
	seed := zeroSeed()
	a, err := Generate(seed, "personal")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(seed, "personal")
	if err != nil {
		t.Fatal(err)
	}
	if a.Mnemonic != b.Mnemonic {
		t.Fatal("mnemonic not deterministic")
	}
	if a.Bitcoin.Address != b.Bitcoin.Address || a.Bitcoin.XPub != b.Bitcoin.XPub {
		t.Fatal("bitcoin branch not deterministic")
	}
	if a.Ethereum.Address != b.Ethereum.Address {
		t.Fatal("ethereum branch not deterministic")
	}
}

func TestMnemonicShape(t *testing.T) {
	seed := zeroSeed()
	w, err := Generate(seed, "personal")
	if err != nil {
		t.Fatal(err)
	}
	words := strings.Fields(w.Mnemonic)
	if len(words) != 24 {
		t.Fatalf("want 24 words, got %d", len(words))
	}
	wordlist := bip39.GetWordList()
	known := make(map[string]bool, len(wordlist))
	for _, w := range wordlist {
		known[w] = true
	}
	for _, word := range words {
		if !known[word] {
			t.Fatalf("word %q not in BIP-39 English wordlist", word)
		}
	}
}

func TestBitcoinAddressShape(t *testing.T) {
	seed := zeroSeed()
	w, err := Generate(seed, "personal")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(w.Bitcoin.Address, "bc1") {
		t.Fatalf("want bc1 prefix, got %q", w.Bitcoin.Address)
	}
	if !strings.HasPrefix(w.Bitcoin.XPub, "xpub") && !strings.HasPrefix(w.Bitcoin.XPub, "zpub") {
		t.Fatalf("xpub should start with xpub or zpub, got %q", w.Bitcoin.XPub)
	}
}

func TestEthereumAddressShape(t *testing.T) {
	seed := zeroSeed()
	w, err := Generate(seed, "personal")
	if err != nil {
		t.Fatal(err)
	}
	re := regexp.MustCompile(`^0x[0-9a-f]{40}$`)
	if !re.MatchString(w.Ethereum.Address) {
		t.Fatalf("ethereum address shape wrong: %q", w.Ethereum.Address)
	}
}

func TestDiffersByService(t *testing.T) {
	seed := zeroSeed()
	a, _ := Generate(seed, "personal")
	b, _ := Generate(seed, "business")
	if a.Mnemonic == b.Mnemonic {
		t.Fatal("distinct services produced the same mnemonic")
	}
}

func TestGeneratePaymentWallet(t *testing.T) {
	seed := zeroSeed()
	a, err := GeneratePaymentWallet(seed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GeneratePaymentWallet(seed)
	if err != nil {
		t.Fatal(err)
	}
	if a.Bitcoin.Address != b.Bitcoin.Address {
		t.Fatal("payment wallet bitcoin branch not deterministic")
	}
	if a.Lightning.NodeID != b.Lightning.NodeID || a.Lightning.Seed != b.Lightning.Seed {
		t.Fatal("lightning identifiers not deterministic")
	}
	if !strings.HasPrefix(a.Bitcoin.Address, "bc1") {
		t.Fatalf("payment wallet address shape wrong: %q", a.Bitcoin.Address)
	}
}

func TestPaymentWalletDiffersFromMnemonicWallet(t *testing.T) {
	seed := zeroSeed()
	mnemonicWallet, err := Generate(seed, "")
	if err != nil {
		t.Fatal(err)
	}
	payment, err := GeneratePaymentWallet(seed)
	if err != nil {
		t.Fatal(err)
	}
	if mnemonicWallet.Bitcoin.Address == payment.Bitcoin.Address {
		t.Fatal("payment wallet and mnemonic wallet must derive from independent domains")
	}
}
