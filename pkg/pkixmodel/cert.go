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

package pkixmodel

import (
	"encoding/asn1"
)

// AlgorithmIdentifier is the exported, opaque-parameters view of RFC
// 5280's AlgorithmIdentifier SEQUENCE used for both the TBSCertificate's
// own signature field and the outer Certificate's signatureAlgorithm.
type AlgorithmIdentifier struct {
	OID        asn1.ObjectIdentifier
	Parameters asn1.RawValue
}

// NoSignatureAlgorithmIdentifier is the RFC 2797 id-alg-noSignature
// placeholder carried by a TBSCertificate before it has been signed.
func NoSignatureAlgorithmIdentifier() AlgorithmIdentifier {
	wire := noSignatureAlgorithmIdentifier()
	return AlgorithmIdentifier{OID: wire.Algorithm, Parameters: wire.Parameters}
}

// IsNoSignaturePlaceholder reports whether this AlgorithmIdentifier is the
// RFC 2797 id-alg-noSignature placeholder.
func (a AlgorithmIdentifier) IsNoSignaturePlaceholder() bool {
	return a.OID.Equal(NoSignatureOID)
}

// AlgorithmIdentifierFromDER decodes a standalone DER-encoded
// AlgorithmIdentifier SEQUENCE, as a signer hands back alongside its
// signature bytes.
func AlgorithmIdentifierFromDER(der []byte) (AlgorithmIdentifier, error) {
	var wire algorithmIdentifier
	if _, err := asn1.Unmarshal(der, &wire); err != nil {
		return AlgorithmIdentifier{}, newIdentityFragmentError(DecodingFailure, "decode AlgorithmIdentifier", err)
	}
	return AlgorithmIdentifier{OID: wire.Algorithm, Parameters: wire.Parameters}, nil
}

func (a AlgorithmIdentifier) toWire() algorithmIdentifier {
	return algorithmIdentifier{Algorithm: a.OID, Parameters: a.Parameters}
}

// DER re-encodes this AlgorithmIdentifier as a standalone SEQUENCE.
func (a AlgorithmIdentifier) DER() ([]byte, error) {
	return asn1.Marshal(a.toWire())
}

// TBSCertificate is the exported view of an RFC 5280 TBSCertificate,
// always constructed and emitted as X.509 v3.
type TBSCertificate struct {
	SerialNumber            SerialNumber
	Signature               AlgorithmIdentifier
	Issuer                  DistinguishedName
	Validity                Validity
	Subject                 DistinguishedName
	SubjectPublicKeyInfoDER []byte
	Extensions              *Extensions
}

func (t TBSCertificate) toWire() (tbsCertificate, error) {
	issuerWire, err := t.Issuer.toWire()
	if err != nil {
		return tbsCertificate{}, err
	}
	subjectWire, err := t.Subject.toWire()
	if err != nil {
		return tbsCertificate{}, err
	}
	var spki asn1.RawValue
	if _, err := asn1.Unmarshal(t.SubjectPublicKeyInfoDER, &spki); err != nil {
		return tbsCertificate{}, newIdentityFragmentError(EncodingFailure, "unmarshal SubjectPublicKeyInfo DER", err)
	}
	var exts []extension
	if t.Extensions != nil {
		exts = t.Extensions.toWire()
	}
	return tbsCertificate{
		Version:              x509VersionV3,
		SerialNumber:         t.SerialNumber.BigInt(),
		Signature:            t.Signature.toWire(),
		Issuer:               issuerWire,
		Validity:             t.Validity.toWire(),
		Subject:              subjectWire,
		SubjectPublicKeyInfo: spki,
		Extensions:           exts,
	}, nil
}

// DER encodes this TBSCertificate.
func (t TBSCertificate) DER() ([]byte, error) {
	wire, err := t.toWire()
	if err != nil {
		return nil, err
	}
	return asn1.Marshal(wire)
}

// TBSCertificateFromDER decodes a TBSCertificate DER blob. It accepts any
// well-formed TBSCertificate, not only ones produced by this package's own
// builder.
func TBSCertificateFromDER(der []byte) (TBSCertificate, error) {
	var wire tbsCertificate
	if _, err := asn1.Unmarshal(der, &wire); err != nil {
		return TBSCertificate{}, newIdentityFragmentError(DecodingFailure, "decode TBSCertificate", err)
	}
	issuer, err := distinguishedNameFromWire(wire.Issuer)
	if err != nil {
		return TBSCertificate{}, err
	}
	subject, err := distinguishedNameFromWire(wire.Subject)
	if err != nil {
		return TBSCertificate{}, err
	}
	spkiDER, err := asn1.Marshal(wire.SubjectPublicKeyInfo)
	if err != nil {
		return TBSCertificate{}, newIdentityFragmentError(DecodingFailure, "re-marshal SubjectPublicKeyInfo", err)
	}
	serial, err := SerialNumberFromBigInt(wire.SerialNumber)
	if err != nil {
		return TBSCertificate{}, err
	}
	return TBSCertificate{
		SerialNumber:            serial,
		Signature:               AlgorithmIdentifier{OID: wire.Signature.Algorithm, Parameters: wire.Signature.Parameters},
		Issuer:                  issuer,
		Validity:                validityFromWire(wire.Validity),
		Subject:                 subject,
		SubjectPublicKeyInfoDER: spkiDER,
		Extensions:              extensionsFromWire(wire.Extensions),
	}, nil
}

// Certificate is the exported view of an RFC 5280 Certificate. The TBS
// portion is kept as exactly the bytes it was signed over (TBSDER),
// rather than being re-derived from a decoded TBSCertificate, so that
// fingerprints and signature verification always operate on the original
// octets.
type Certificate struct {
	TBSDER             []byte
	SignatureAlgorithm AlgorithmIdentifier
	Signature          []byte
}

// DER encodes this Certificate.
func (c Certificate) DER() ([]byte, error) {
	var tbsRaw asn1.RawValue
	if _, err := asn1.Unmarshal(c.TBSDER, &tbsRaw); err != nil {
		return nil, newIdentityFragmentError(EncodingFailure, "unmarshal TBS DER", err)
	}
	wire := certificate{
		TBSCertificate:     tbsRaw,
		SignatureAlgorithm: c.SignatureAlgorithm.toWire(),
		SignatureValue:     asn1.BitString{Bytes: c.Signature, BitLength: len(c.Signature) * 8},
	}
	return asn1.Marshal(wire)
}

// CertificateFromDER decodes a full Certificate DER blob.
func CertificateFromDER(der []byte) (Certificate, error) {
	var wire certificate
	if _, err := asn1.Unmarshal(der, &wire); err != nil {
		return Certificate{}, newIdentityFragmentError(DecodingFailure, "decode Certificate", err)
	}
	tbsDER, err := asn1.Marshal(wire.TBSCertificate)
	if err != nil {
		return Certificate{}, newIdentityFragmentError(DecodingFailure, "re-marshal TBS DER", err)
	}
	return Certificate{
		TBSDER:             tbsDER,
		SignatureAlgorithm: AlgorithmIdentifier{OID: wire.SignatureAlgorithm.Algorithm, Parameters: wire.SignatureAlgorithm.Parameters},
		Signature:          wire.SignatureValue.RightAlign(),
	}, nil
}

// rewriteSignatureAlgorithm decodes tbsDER, overwrites its Signature field
// with algID, and re-encodes. Used by TbsBuilder.WithSignatureAlgorithm to
// turn the placeholder id-alg-noSignature into the real algorithm right
// before handing the bytes to a signer.
func rewriteSignatureAlgorithm(tbsDER []byte, algID AlgorithmIdentifier) ([]byte, error) {
	var wire tbsCertificate
	if _, err := asn1.Unmarshal(tbsDER, &wire); err != nil {
		return nil, newIdentityFragmentError(DecodingFailure, "decode TBSCertificate", err)
	}
	wire.Signature = algID.toWire()
	return asn1.Marshal(wire)
}

// RewriteTBSSignatureAlgorithm is the exported form of rewriteSignatureAlgorithm,
// used by pkg/certbuild's TbsBuilder.
func RewriteTBSSignatureAlgorithm(tbsDER []byte, algID AlgorithmIdentifier) ([]byte, error) {
	return rewriteSignatureAlgorithm(tbsDER, algID)
}
