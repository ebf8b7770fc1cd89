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
	"math/big"
)

// NoSignatureOID is the RFC 2797 id-alg-noSignature placeholder used for
// the signature AlgorithmIdentifier of a not-yet-signed TBSCertificate.
var NoSignatureOID = MustParseOID("1.3.6.1.5.5.7.6.2")

// algorithmIdentifier mirrors RFC 5280's AlgorithmIdentifier SEQUENCE.
// Parameters is carried as a RawValue so arbitrary (or absent) parameter
// shapes round-trip without this package needing to understand every
// algorithm's parameter grammar.
type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"optional"`
}

// derNull is the DER encoding of the ASN.1 NULL value, used as the
// parameters of the placeholder no-signature AlgorithmIdentifier.
var derNull = []byte{0x05, 0x00}

func noSignatureAlgorithmIdentifier() algorithmIdentifier {
	var params asn1.RawValue
	_, err := asn1.Unmarshal(derNull, &params)
	if err != nil {
		panic(err)
	}
	return algorithmIdentifier{Algorithm: NoSignatureOID, Parameters: params}
}

// attributeTypeAndValue mirrors RFC 5280's AttributeTypeAndValue SEQUENCE.
// Value is kept as a RawValue (rather than an `interface{}` ANY field) so
// this package controls the exact ASN.1 string subtype used for each
// attribute instead of relying on encoding/asn1's implicit Go-type-to-tag
// guessing.
type attributeTypeAndValue struct {
	Type  asn1.ObjectIdentifier
	Value asn1.RawValue
}

// relativeDistinguishedNameSET mirrors RFC 5280's
// RelativeDistinguishedName ::= SET SIZE (1..MAX) OF AttributeTypeAndValue.
type relativeDistinguishedNameSET []attributeTypeAndValue

// rdnSequence mirrors RFC 5280's RDNSequence ::= SEQUENCE OF
// RelativeDistinguishedName. Name ::= CHOICE { rdnSequence RDNSequence }
// has exactly one alternative, so it is encoded directly as this sequence
// with no enclosing CHOICE wrapper.
type rdnSequence []relativeDistinguishedNameSET

// extension mirrors RFC 5280's Extension SEQUENCE.
type extension struct {
	ID       asn1.ObjectIdentifier
	Critical bool `asn1:"optional"`
	Value    []byte
}

// tbsCertificate mirrors RFC 5280's TBSCertificate SEQUENCE, always
// emitted as X.509 v3 (version tagged [0] EXPLICIT, value 2).
type tbsCertificate struct {
	Version              int `asn1:"explicit,tag:0,default:0"`
	SerialNumber         *big.Int
	Signature            algorithmIdentifier
	Issuer               rdnSequence
	Validity             validity
	Subject              rdnSequence
	SubjectPublicKeyInfo asn1.RawValue
	IssuerUniqueID       asn1.BitString `asn1:"optional,tag:1"`
	SubjectUniqueID      asn1.BitString `asn1:"optional,tag:2"`
	Extensions           []extension    `asn1:"optional,explicit,tag:3"`
}

// certificate mirrors RFC 5280's Certificate SEQUENCE.
type certificate struct {
	TBSCertificate     asn1.RawValue
	SignatureAlgorithm algorithmIdentifier
	SignatureValue     asn1.BitString
}

const x509VersionV3 = 2
