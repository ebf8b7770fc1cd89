// Copyright 2025 MydriaTech AB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package certvalidate

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
)

// SignatureEngine verifies sig as the signature over signed under pub.
type SignatureEngine interface {
	Verify(pub crypto.PublicKey, signed, sig []byte) error
}

type rsaPKCS1Engine struct {
	hash crypto.Hash
}

func (e rsaPKCS1Engine) Verify(pub crypto.PublicKey, signed, sig []byte) error {
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("certvalidate: public key is not RSA")
	}
	digest := e.hash.New()
	digest.Write(signed)
	return rsa.VerifyPKCS1v15(rsaPub, e.hash, digest.Sum(nil), sig)
}

type ecdsaEngine struct {
	hash crypto.Hash
}

func (e ecdsaEngine) Verify(pub crypto.PublicKey, signed, sig []byte) error {
	ecdsaPub, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return fmt.Errorf("certvalidate: public key is not ECDSA")
	}
	digest := e.hash.New()
	digest.Write(signed)
	if !ecdsa.VerifyASN1(ecdsaPub, digest.Sum(nil), sig) {
		return fmt.Errorf("certvalidate: ECDSA signature verification failed")
	}
	return nil
}

type ed25519Engine struct{}

func (ed25519Engine) Verify(pub crypto.PublicKey, signed, sig []byte) error {
	ed25519Pub, ok := pub.(ed25519.PublicKey)
	if !ok {
		return fmt.Errorf("certvalidate: public key is not Ed25519")
	}
	if !ed25519.Verify(ed25519Pub, signed, sig) {
		return fmt.Errorf("certvalidate: Ed25519 signature verification failed")
	}
	return nil
}

// EngineRegistry maps a dotted signature-algorithm OID string to the
// SignatureEngine that verifies it. Hosts may register additional
// engines, e.g. for HSM-backed verification, without modifying the
// validator.
type EngineRegistry struct {
	byOID map[string]SignatureEngine
}

// NewStandardEngineRegistry builds an EngineRegistry with the default
// RSA PKCS#1v1.5, ECDSA and Ed25519 engines installed.
func NewStandardEngineRegistry() *EngineRegistry {
	r := &EngineRegistry{byOID: make(map[string]SignatureEngine)}
	r.Register("1.2.840.113549.1.1.11", rsaPKCS1Engine{hash: crypto.SHA256}) // sha256WithRSAEncryption
	r.Register("1.2.840.113549.1.1.12", rsaPKCS1Engine{hash: crypto.SHA384}) // sha384WithRSAEncryption
	r.Register("1.2.840.113549.1.1.13", rsaPKCS1Engine{hash: crypto.SHA512}) // sha512WithRSAEncryption
	r.Register("1.2.840.10045.4.3.2", ecdsaEngine{hash: crypto.SHA256})      // ecdsa-with-SHA256
	r.Register("1.2.840.10045.4.3.3", ecdsaEngine{hash: crypto.SHA384})      // ecdsa-with-SHA384
	r.Register("1.2.840.10045.4.3.4", ecdsaEngine{hash: crypto.SHA512})      // ecdsa-with-SHA512
	r.Register("1.3.101.112", ed25519Engine{})                               // ed25519
	return r
}

// Register installs engine for the given dotted signature-algorithm OID
// string, overwriting any existing registration.
func (r *EngineRegistry) Register(oid string, engine SignatureEngine) {
	r.byOID[oid] = engine
}

// Lookup returns the engine registered for oid, if any.
func (r *EngineRegistry) Lookup(oid string) (SignatureEngine, bool) {
	e, ok := r.byOID[oid]
	return e, ok
}
