// Package certgen generates the self-signed per-machine TLS certificate
// used to authenticate QUIC connections, grounded on
// cross-control-certgen's lib.rs (rcgen-backed self-signed cert + SHA-256
// fingerprint).
package certgen

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ed25519"
)

// validity matches a single long-lived self-signed cert; re-pairing rotates
// it by regenerating rather than renewing.
const validity = 10 * 365 * 24 * time.Hour

// Generated is a freshly minted certificate and its SHA-256 fingerprint.
type Generated struct {
	CertPEM     []byte
	KeyPEM      []byte
	Fingerprint string
}

// Generate creates a self-signed Ed25519 certificate for hostname, with
// "localhost" and 127.0.0.1 as additional subject alternative names.
func Generate(hostname string) (Generated, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Generated{}, fmt.Errorf("generate key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return Generated{}, fmt.Errorf("generate serial: %w", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:   hostname,
			Organization: []string{"edgelink"},
		},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(validity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{hostname, "localhost"},
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1)},
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, pub, priv)
	if err != nil {
		return Generated{}, fmt.Errorf("create certificate: %w", err)
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return Generated{}, fmt.Errorf("marshal key: %w", err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})

	return Generated{
		CertPEM:     certPEM,
		KeyPEM:      keyPEM,
		Fingerprint: Fingerprint(der),
	}, nil
}

// Fingerprint renders the SHA-256 digest of a DER-encoded certificate as
// "SHA256:xx:xx:...", matching the wire form used in ScreenConfig.
func Fingerprint(der []byte) string {
	sum := sha256.Sum256(der)
	parts := make([]string, len(sum))
	for i, b := range sum {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return "SHA256:" + strings.Join(parts, ":")
}

// TLSCertificate parses a Generated pair into a tls.Certificate ready for
// tls.Config.Certificates.
func TLSCertificate(g Generated) (tls.Certificate, error) {
	return tls.X509KeyPair(g.CertPEM, g.KeyPEM)
}

// FingerprintOf computes the SHA256:... fingerprint of a parsed leaf cert.
func FingerprintOf(cert *x509.Certificate) string {
	return Fingerprint(cert.Raw)
}
