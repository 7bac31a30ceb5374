package certificates

import (
	"crypto/rand"
	"fmt"
	"time"
)

const certNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCertNumber returns a certificate number of the form
// CERT-YYYYMMDD-XXXXXX with a crypto-random uppercase alphanumeric
// token. Uniqueness is advisory; the unique index on cert_number is the
// authoritative guard.
func NewCertNumber() string {
	token := make([]byte, 6)
	if _, err := rand.Read(token); err != nil {
		panic(fmt.Sprintf("certnumber: read random bytes: %v", err))
	}
	for i := range token {
		token[i] = certNumberAlphabet[int(token[i])%len(certNumberAlphabet)]
	}
	return fmt.Sprintf("CERT-%s-%s", time.Now().Format("20060102"), token)
}
