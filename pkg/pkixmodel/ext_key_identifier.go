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

import "encoding/asn1"

// OIDSubjectKeyIdentifier is the RFC 5280 id-ce-subjectKeyIdentifier OID.
var OIDSubjectKeyIdentifier = MustParseOID("2.5.29.14")

// OIDAuthorityKeyIdentifier is the RFC 5280 id-ce-authorityKeyIdentifier OID.
var OIDAuthorityKeyIdentifier = MustParseOID("2.5.29.35")

// KeyIdentifierFromPublicKey derives the SHA3-256 key identifier this
// library uses for both SubjectKeyIdentifier and AuthorityKeyIdentifier,
// from the raw (non-DER, bit-string-content) public key bytes.
func KeyIdentifierFromPublicKey(rawPublicKey []byte) []byte {
	return Sha3_256(rawPublicKey)
}

// EncodeSubjectKeyIdentifier DER-encodes a SubjectKeyIdentifier extension
// value, an OCTET STRING carrying the key identifier bytes directly.
func EncodeSubjectKeyIdentifier(kid []byte) ([]byte, error) {
	return asn1.Marshal(kid)
}

// DecodeSubjectKeyIdentifier parses a SubjectKeyIdentifier extension value.
func DecodeSubjectKeyIdentifier(der []byte) ([]byte, error) {
	var kid []byte
	if _, err := asn1.Unmarshal(der, &kid); err != nil {
		return nil, newIdentityFragmentError(DecodingFailure, "decode SubjectKeyIdentifier", err)
	}
	return kid, nil
}

// authorityKeyIdentifierWire mirrors RFC 5280's AuthorityKeyIdentifier
// SEQUENCE. This library only ever populates keyIdentifier [0]; the
// authorityCertIssuer/authorityCertSerialNumber alternative is not used.
type authorityKeyIdentifierWire struct {
	KeyIdentifier []byte `asn1:"optional,tag:0"`
}

// EncodeAuthorityKeyIdentifier DER-encodes an AuthorityKeyIdentifier
// extension value carrying only the keyIdentifier [0] field.
func EncodeAuthorityKeyIdentifier(kid []byte) ([]byte, error) {
	return asn1.Marshal(authorityKeyIdentifierWire{KeyIdentifier: kid})
}

// DecodeAuthorityKeyIdentifier parses an AuthorityKeyIdentifier extension
// value, returning its keyIdentifier [0] bytes.
func DecodeAuthorityKeyIdentifier(der []byte) ([]byte, error) {
	var w authorityKeyIdentifierWire
	if _, err := asn1.Unmarshal(der, &w); err != nil {
		return nil, newIdentityFragmentError(DecodingFailure, "decode AuthorityKeyIdentifier", err)
	}
	return w.KeyIdentifier, nil
}
