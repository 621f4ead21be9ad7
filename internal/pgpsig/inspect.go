// Package pgpsig reads the detached OpenPGP signature embedded in a sync
// database record. It reports who signed a package; it does not verify
// the signature.
package pgpsig

import (
	"bytes"
	"crypto"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/ralt/pacquery/internal/models"
)

// Info describes a signature packet
type Info struct {
	KeyID       uint64
	Fingerprint []byte
	Hash        crypto.Hash
	PubKeyAlgo  packet.PublicKeyAlgorithm
	Created     time.Time
}

// KeyIDString returns the issuer key ID in the usual 16 hex digit form
func (i *Info) KeyIDString() string {
	return fmt.Sprintf("%016X", i.KeyID)
}

// FingerprintString returns the issuer fingerprint, or "" when the
// signature does not carry one
func (i *Info) FingerprintString() string {
	return strings.ToUpper(hex.EncodeToString(i.Fingerprint))
}

// AlgorithmName returns a short name for the public key algorithm
func (i *Info) AlgorithmName() string {
	switch i.PubKeyAlgo {
	case packet.PubKeyAlgoRSA, packet.PubKeyAlgoRSASignOnly:
		return "RSA"
	case packet.PubKeyAlgoDSA:
		return "DSA"
	case packet.PubKeyAlgoECDSA:
		return "ECDSA"
	case packet.PubKeyAlgoEdDSA:
		return "EdDSA"
	default:
		return fmt.Sprintf("algo-%d", i.PubKeyAlgo)
	}
}

// Inspect decodes a base64 %PGPSIG% value and reads its signature packet
func Inspect(b64 string) (*Info, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, sigError(fmt.Errorf("failed to decode signature: %w", err))
	}

	p, err := packet.Read(bytes.NewReader(raw))
	if err != nil {
		return nil, sigError(fmt.Errorf("failed to read signature packet: %w", err))
	}

	sig, ok := p.(*packet.Signature)
	if !ok {
		return nil, sigError(fmt.Errorf("unexpected packet type %T", p))
	}

	info := &Info{
		Fingerprint: sig.IssuerFingerprint,
		Hash:        sig.Hash,
		PubKeyAlgo:  sig.PubKeyAlgo,
		Created:     sig.CreationTime,
	}
	switch {
	case sig.IssuerKeyId != nil:
		info.KeyID = *sig.IssuerKeyId
	case len(sig.IssuerFingerprint) >= 8:
		// v4 key IDs are the low 64 bits of the fingerprint
		fp := sig.IssuerFingerprint
		for _, b := range fp[len(fp)-8:] {
			info.KeyID = info.KeyID<<8 | uint64(b)
		}
	}
	return info, nil
}

// InspectDescription inspects the signature embedded in d, if any
func InspectDescription(d *models.Description) (*Info, error) {
	if d.PGPSignature == "" {
		return nil, &models.DBError{
			Type:    models.ErrSignature,
			Package: d.Name,
			Err:     fmt.Errorf("no embedded signature"),
		}
	}
	info, err := Inspect(d.PGPSignature)
	if err != nil {
		if dbErr, ok := err.(*models.DBError); ok {
			dbErr.Package = d.Name
		}
		return nil, err
	}
	return info, nil
}

func sigError(err error) error {
	return &models.DBError{Type: models.ErrSignature, Err: err}
}
