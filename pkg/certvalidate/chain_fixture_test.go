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

package certvalidate_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/asn1"

	. "github.com/onsi/gomega"

	"github.com/mydriatech/upkit-x509-go/pkg/certbuild"
	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

// subjectPublicKeyInfoWire mirrors just enough of RFC 5280's
// SubjectPublicKeyInfo SEQUENCE to pull out the raw public-key bit-string
// payload underneath the AlgorithmIdentifier wrapper.
type subjectPublicKeyInfoWire struct {
	Algorithm asn1.RawValue
	PublicKey asn1.BitString
}

// rawSPKIKeyBytes extracts the raw (non-DER) public-key octets from a
// DER-encoded SubjectPublicKeyInfo, the payload KeyIdentifierFromPublicKey
// expects.
func rawSPKIKeyBytes(spkiDER []byte) []byte {
	var w subjectPublicKeyInfoWire
	_, err := asn1.Unmarshal(spkiDER, &w)
	Expect(err).NotTo(HaveOccurred())
	return w.PublicKey.RightAlign()
}

const ed25519AlgOID = "1.3.101.112"

type keyMaterial struct {
	pub     ed25519.PublicKey
	priv    ed25519.PrivateKey
	spkiDER []byte
	ski     []byte
}

type issuedCert struct {
	der []byte
	key keyMaterial
}

func genKeyMaterial() keyMaterial {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	Expect(err).NotTo(HaveOccurred())
	spkiDER, err := x509.MarshalPKIXPublicKey(pub)
	Expect(err).NotTo(HaveOccurred())
	return keyMaterial{
		pub:     pub,
		priv:    priv,
		spkiDER: spkiDER,
		ski:     pkixmodel.KeyIdentifierFromPublicKey(rawSPKIKeyBytes(spkiDER)),
	}
}

// signCert assembles a TBS around key and exts, signs it with
// signingKey, and returns the resulting certificate DER.
func signCert(
	subject, issuer pkixmodel.DistinguishedName,
	key keyMaterial,
	signingKey ed25519.PrivateKey,
	exts *pkixmodel.Extensions,
	notAfterEpochSeconds int64,
) []byte {
	b, err := certbuild.NewTbsBuilder(issuer, subject, key.spkiDER, notAfterEpochSeconds, exts)
	Expect(err).NotTo(HaveOccurred())

	algID, err := pkixmodel.AlgorithmIdentifier{OID: pkixmodel.MustParseOID(ed25519AlgOID)}.DER()
	Expect(err).NotTo(HaveOccurred())

	signable, err := b.WithSignatureAlgorithm(algID)
	Expect(err).NotTo(HaveOccurred())

	sig := ed25519.Sign(signingKey, signable)

	cert, err := b.ToCertificate(algID, sig)
	Expect(err).NotTo(HaveOccurred())
	der, err := cert.DER()
	Expect(err).NotTo(HaveOccurred())
	return der
}

func mustDN(pairs ...[2]string) pkixmodel.DistinguishedName {
	dn, err := pkixmodel.NewDistinguishedName(pairs...)
	Expect(err).NotTo(HaveOccurred())
	return dn
}

// threeCertChain builds a synthetic "H1 Root CA <label>" / "H1 Sub CA
// <label>" / "H1 Leaf <label>" chain, all valid at notAfterEpochSeconds,
// wired with the SKI/AKI and KeyUsage extensions the standard checkers
// require. label distinguishes the DNs of independently generated chains
// so two calls never collide on subject/issuer matching.
func threeCertChain(notAfterEpochSeconds int64, label string) (root, intermediate, leaf issuedCert) {
	rootDN := mustDN([2]string{"common_name", "H1 Root CA " + label})
	subDN := mustDN([2]string{"common_name", "H1 Sub CA " + label})
	leafDN := mustDN([2]string{"common_name", "H1 Leaf " + label})

	rootKey := genKeyMaterial()
	subKey := genKeyMaterial()
	leafKey := genKeyMaterial()

	rootExts := pkixmodel.NewExtensions()
	Expect(rootExts.AddBasicConstraints(pkixmodel.BasicConstraints{CA: true})).To(Succeed())
	Expect(rootExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.KeyCertSign, pkixmodel.CRLSign))).To(Succeed())
	Expect(rootExts.AddSubjectKeyIdentifier(rootKey.ski)).To(Succeed())
	rootDER := signCert(rootDN, rootDN, rootKey, rootKey.priv, rootExts, notAfterEpochSeconds)

	subExts := pkixmodel.NewExtensions()
	Expect(subExts.AddBasicConstraints(pkixmodel.BasicConstraints{CA: true})).To(Succeed())
	Expect(subExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.KeyCertSign, pkixmodel.CRLSign))).To(Succeed())
	Expect(subExts.AddSubjectKeyIdentifier(subKey.ski)).To(Succeed())
	Expect(subExts.AddAuthorityKeyIdentifier(rootKey.ski)).To(Succeed())
	subDER := signCert(subDN, rootDN, subKey, rootKey.priv, subExts, notAfterEpochSeconds)

	leafExts := pkixmodel.NewExtensions()
	Expect(leafExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.DigitalSignature))).To(Succeed())
	Expect(leafExts.AddAuthorityKeyIdentifier(subKey.ski)).To(Succeed())
	leafDER := signCert(leafDN, subDN, leafKey, subKey.priv, leafExts, notAfterEpochSeconds)

	return issuedCert{der: rootDER, key: rootKey},
		issuedCert{der: subDER, key: subKey},
		issuedCert{der: leafDER, key: leafKey}
}
