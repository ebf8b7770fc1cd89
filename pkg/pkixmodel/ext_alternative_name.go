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

// OIDSubjectAlternativeName is the RFC 5280 id-ce-subjectAltName OID.
var OIDSubjectAlternativeName = MustParseOID("2.5.29.17")

// OIDIssuerAlternativeName is the RFC 5280 id-ce-issuerAltName OID.
var OIDIssuerAlternativeName = MustParseOID("2.5.29.18")

// AlternativeName is the GeneralNames SEQUENCE shared by the Subject
// Alternative Name and Issuer Alternative Name extensions.
type AlternativeName []GeneralName

// EncodeAlternativeName DER-encodes a GeneralNames SEQUENCE.
func EncodeAlternativeName(names AlternativeName) ([]byte, error) {
	raws := make([]asn1.RawValue, len(names))
	for i, n := range names {
		raw, err := encodeGeneralName(n)
		if err != nil {
			return nil, err
		}
		raws[i] = raw
	}
	return asn1.Marshal(raws)
}

// DecodeAlternativeName parses a GeneralNames SEQUENCE, as carried by
// both the SAN and IAN extensions.
func DecodeAlternativeName(der []byte) (AlternativeName, error) {
	var raws []asn1.RawValue
	if _, err := asn1.Unmarshal(der, &raws); err != nil {
		return nil, newIdentityFragmentError(DecodingFailure, "decode GeneralNames", err)
	}
	out := make(AlternativeName, 0, len(raws))
	for _, raw := range raws {
		gn, err := decodeGeneralName(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, gn)
	}
	return out, nil
}
