package vault

import (
	"encoding/hex"
	"encoding/json"

	"github.com/keyforge/keyforge/internal/primitives"
)

// calculateChecksum computes SHA-256(canonical-JSON(v with
// Metadata.Checksum cleared)) hex. encoding/json already produces
// deterministic output for this struct (fixed field order, and Go's
// marshaler sorts map keys) so no separate canonicalization step is
// needed.
func calculateChecksum(v Vault) (string, error) {
	v.Metadata.Checksum = ""
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := primitives.SHA256(data)
	return hex.EncodeToString(sum), nil
}
