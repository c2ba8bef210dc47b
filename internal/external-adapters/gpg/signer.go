package gpg

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer produces detached armored signatures for staged artifacts using a
// local private key.
type Signer struct {
	entity *openpgp.Entity
}

// NewSignerFromFile creates a signer from an armored private keyring file.
// The first entity carrying a private key is used.
func NewSignerFromFile(keyPath string) (*Signer, error) {
	//nolint:gosec // G304: keyPath is operator-provided for signing
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return nil, fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
	}

	for _, entity := range entities {
		if entity.PrivateKey != nil {
			return &Signer{entity: entity}, nil
		}
	}

	return nil, fmt.Errorf("no private key found in %s", keyPath)
}

// NewSignerFromEntity creates a signer from an in-memory entity. Used by
// tests that generate throwaway keys.
func NewSignerFromEntity(entity *openpgp.Entity) (*Signer, error) {
	if entity == nil || entity.PrivateKey == nil {
		return nil, fmt.Errorf("entity carries no private key")
	}
	return &Signer{entity: entity}, nil
}

// SignDetached writes a detached armored signature for filePath next to it
// as <filePath>.asc, overwriting any previous signature. Returns the
// signature path.
func (s *Signer) SignDetached(filePath string) (string, error) {
	//nolint:gosec // G304: filePath is a staged artifact path
	data, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer data.Close()

	sigPath := filePath + ".asc"
	//nolint:gosec // G304: sigPath sits next to the artifact
	sigFile, err := os.OpenFile(sigPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create signature file: %w", err)
	}

	if err := openpgp.ArmoredDetachSign(sigFile, s.entity, data, nil); err != nil {
		_ = sigFile.Close()
		_ = os.Remove(sigPath)
		return "", fmt.Errorf("failed to sign %s: %w", filePath, err)
	}

	if err := sigFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close signature file: %w", err)
	}

	return sigPath, nil
}
