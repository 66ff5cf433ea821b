package cli

import (
	"encoding/json"
	"os"

	"github.com/keyforge/keyforge/internal/session"
)

// ExportVault writes one of the three export container formats (spec
// §6: "json", "encrypted", "backup") to path.
func ExportVault(sess *session.Session, format, path string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "encrypted":
		exp, e := sess.Store.ExportEncrypted()
		err = e
		if e == nil {
			data, err = json.MarshalIndent(exp, "", "  ")
		}
	case "backup":
		exp, e := sess.Store.ExportBackup(nil)
		err = e
		if e == nil {
			data, err = json.MarshalIndent(exp, "", "  ")
		}
	default:
		exp, e := sess.Store.ExportJSON()
		err = e
		if e == nil {
			data, err = json.MarshalIndent(exp, "", "  ")
		}
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ImportVault replaces sess.Store's record set from an export
// container at path, auto-detecting its format (spec §6 `import`).
func ImportVault(sess *session.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return sess.Store.Import(data)
}
