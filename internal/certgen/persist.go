package certgen

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	certFileName = "edgelink.crt"
	keyFileName  = "edgelink.key"
)

// LoadOrGenerate reads configDir/edgelink.{crt,key}, generating and
// persisting a fresh self-signed certificate for hostname if either file is
// missing (setup.rs::load_or_generate_certs).
func LoadOrGenerate(configDir, hostname string) (Generated, error) {
	certPath := filepath.Join(configDir, certFileName)
	keyPath := filepath.Join(configDir, keyFileName)

	certPEM, certErr := os.ReadFile(certPath)
	keyPEM, keyErr := os.ReadFile(keyPath)
	if certErr == nil && keyErr == nil {
		block, _ := pem.Decode(certPEM)
		if block == nil {
			return Generated{}, errors.New("malformed certificate PEM")
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return Generated{}, fmt.Errorf("parse certificate: %w", err)
		}
		return Generated{CertPEM: certPEM, KeyPEM: keyPEM, Fingerprint: FingerprintOf(cert)}, nil
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return Generated{}, fmt.Errorf("create config dir: %w", err)
	}
	gen, err := Generate(hostname)
	if err != nil {
		return Generated{}, err
	}
	if err := os.WriteFile(certPath, gen.CertPEM, 0o644); err != nil {
		return Generated{}, fmt.Errorf("write certificate: %w", err)
	}
	if err := os.WriteFile(keyPath, gen.KeyPEM, 0o600); err != nil {
		return Generated{}, fmt.Errorf("write key: %w", err)
	}
	return gen, nil
}
