package dataset

import (
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/sha3"
)

// Fingerprint computes the SHA3-256 digest of the file at path and returns
// it as a lower-case hex string. The history database stores fingerprints so
// a recorded run can be tied to the exact input bytes it was computed from.
func Fingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint %s: %w", path, err)
	}

	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
