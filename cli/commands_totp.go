package cli

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/keyforge/keyforge/internal/session"
	"github.com/keyforge/keyforge/internal/totp"
)

// DeriveTOTPSecret derives the deterministic TOTP secret for service
// without persisting it.
func DeriveTOTPSecret(sess *session.Session, service string) ([]byte, error) {
	return totp.DeriveSecret(sess.MasterSeed, service)
}

// CodeFor computes the current SHA1-based TOTP code for secret.
func CodeFor(secret []byte, nowUnix int64, digits, period int) (string, error) {
	return totp.Code(secret, nowUnix, totp.SHA1, digits, period)
}

// Base64OfSecret encodes a raw TOTP secret the way vault.TOTPEntry
// persists it (spec §4.9: "secret_b64").
func Base64OfSecret(secret []byte) string {
	return base64.StdEncoding.EncodeToString(secret)
}

func algorithmFromName(name string) totp.Algorithm {
	switch name {
	case "SHA256":
		return totp.SHA256
	case "SHA512":
		return totp.SHA512
	default:
		return totp.SHA1
	}
}

// ShowTOTP prints the current code for service: if a secret was
// already provisioned via GenerateTOTP it is reused (honouring its
// stored algorithm/digits/period), otherwise a fresh default-parameter
// secret is derived and shown without being persisted.
func ShowTOTP(sess *session.Session, service string) error {
	for _, e := range sess.Store.ListTOTP() {
		if e.Service != service {
			continue
		}
		secret, err := base64.StdEncoding.DecodeString(e.SecretB64)
		if err != nil {
			return err
		}
		code, err := totp.Code(secret, time.Now().Unix(), algorithmFromName(e.Algorithm), e.Digits, e.Period)
		if err != nil {
			return err
		}
		fmt.Println(totp.Display(code))
		return nil
	}

	secret, err := totp.DeriveSecret(sess.MasterSeed, service)
	if err != nil {
		return err
	}
	code, err := totp.Code(secret, time.Now().Unix(), totp.SHA1, 6, 30)
	if err != nil {
		return err
	}
	fmt.Println(totp.Display(code))
	return nil
}
