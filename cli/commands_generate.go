package cli

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/keyforge/keyforge/internal/gpgkey"
	"github.com/keyforge/keyforge/internal/session"
	"github.com/keyforge/keyforge/internal/sshkey"
	"github.com/keyforge/keyforge/internal/vault"
	"github.com/keyforge/keyforge/internal/wallet"
)

// GenerateSSH derives and prints an SSH keypair for hostname, then
// records its public metadata in sess.Store (spec C4, `generate ssh`).
func GenerateSSH(sess *session.Session, hostname string) error {
	key, err := sshkey.Generate(sess.MasterSeed, hostname)
	if err != nil {
		return err
	}

	fmt.Println(key.PublicLine)
	fmt.Println(key.PrivatePEM)
	fmt.Println("Fingerprint:", key.Fingerprint)

	_, err = sess.Store.AddSSH(vault.SSHEntry{
		Hostname:    hostname,
		PublicLine:  key.PublicLine,
		Fingerprint: key.Fingerprint,
	})
	return err
}

// GenerateGPG prompts for an identity, derives a GPG-shaped keypair,
// prints it, and records its public metadata (spec C5, `generate gpg`).
func GenerateGPG(sess *session.Session, service string) error {
	reader := bufio.NewReader(os.Stdin)
	name := ReadLine(reader, "Name: ")
	email := ReadLine(reader, "Email: ")
	comment := ReadLine(reader, "Comment (optional): ")

	id := gpgkey.Identity{Name: name, Email: email, Comment: comment}
	if err := gpgkey.ValidateIdentity(id); err != nil {
		fmt.Println("Warning:", err)
	}

	key, err := gpgkey.Generate(sess.MasterSeed, gpgkey.Options{
		Name: name, Email: email, Comment: comment, Service: service,
	})
	if err != nil {
		return err
	}

	fmt.Println(key.PublicArmor)
	fmt.Println("Key ID:", key.KeyID)
	fmt.Println("Fingerprint:", key.Fingerprint)

	_, err = sess.Store.AddGPG(vault.GPGEntry{
		Service:     service,
		Name:        name,
		Email:       email,
		KeyID:       key.KeyID,
		Fingerprint: key.Fingerprint,
	})
	return err
}

// GenerateWallet derives a full BIP-39/BIP-32 wallet for service,
// prints the mnemonic and addresses once, and records only the public
// addresses (spec C6, `generate bitcoin`/`generate ethereum`).
func GenerateWallet(sess *session.Session, service string) error {
	w, err := wallet.Generate(sess.MasterSeed, service)
	if err != nil {
		return err
	}

	fmt.Println("Mnemonic (write this down, it will not be shown again):")
	fmt.Println(w.Mnemonic)
	fmt.Println("Bitcoin address:", w.Bitcoin.Address)
	fmt.Println("Bitcoin xpub:", w.Bitcoin.XPub)
	fmt.Println("Ethereum address:", w.Ethereum.Address)

	_, err = sess.Store.AddWallet(vault.WalletEntry{
		Service:         service,
		BitcoinAddress:  w.Bitcoin.Address,
		EthereumAddress: w.Ethereum.Address,
	})
	return err
}

// GenerateTOTP provisions a TOTP secret for service, prints the
// current code, and records the secret in sess.Store (spec C7).
func GenerateTOTP(sess *session.Session, service string, digits, period int) error {
	secret, err := DeriveTOTPSecret(sess, service)
	if err != nil {
		return err
	}

	code, err := CodeFor(secret, time.Now().Unix(), digits, period)
	if err != nil {
		return err
	}
	fmt.Println("Current code:", code)

	_, err = sess.Store.AddTOTP(vault.TOTPEntry{
		Service:   service,
		SecretB64: Base64OfSecret(secret),
		Algorithm: "SHA1",
		Digits:    digits,
		Period:    period,
	})
	return err
}
