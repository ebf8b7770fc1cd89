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

// OIDKeyUsage is the RFC 5280 id-ce-keyUsage OID.
var OIDKeyUsage = MustParseOID("2.5.29.15")

// KeyUsageFlag indexes one of the nine ordered KeyUsage bits.
type KeyUsageFlag int

const (
	DigitalSignature KeyUsageFlag = iota
	NonRepudiation
	KeyEncipherment
	DataEncipherment
	KeyAgreement
	KeyCertSign
	CRLSign
	EncipherOnly
	DecipherOnly
)

// KeyUsage is a fixed nine-flag bit-set, index 0 = DigitalSignature
// through index 8 = DecipherOnly, matching the RFC 5280 bit order.
type KeyUsage [9]bool

// NewKeyUsage builds a KeyUsage with the given flags set.
func NewKeyUsage(flags ...KeyUsageFlag) KeyUsage {
	var ku KeyUsage
	for _, f := range flags {
		ku[f] = true
	}
	return ku
}

// IsEmpty reports whether no flag is set; an empty KeyUsage extension is
// omitted entirely by the Extensions builder rather than emitted as an
// all-zero BIT STRING.
func (ku KeyUsage) IsEmpty() bool {
	for _, b := range ku {
		if b {
			return false
		}
	}
	return true
}

// Encode DER-encodes this KeyUsage as a BIT STRING with trailing zero
// bits trimmed, per RFC 5280 and the DER canonical BIT STRING form.
func (ku KeyUsage) Encode() ([]byte, error) {
	lastSet := -1
	for i, b := range ku {
		if b {
			lastSet = i
		}
	}
	if lastSet < 0 {
		return nil, newIdentityFragmentError(EncodingFailure, "KeyUsage has no flags set", nil)
	}
	nBits := lastSet + 1
	nBytes := (nBits + 7) / 8
	bytes := make([]byte, nBytes)
	for i := 0; i < nBits; i++ {
		if ku[i] {
			bytes[i/8] |= 0x80 >> uint(i%8)
		}
	}
	bs := asn1.BitString{Bytes: bytes, BitLength: nBits}
	return asn1.Marshal(bs)
}

// DecodeKeyUsage parses a KeyUsage extension value.
func DecodeKeyUsage(der []byte) (KeyUsage, error) {
	var bs asn1.BitString
	if _, err := asn1.Unmarshal(der, &bs); err != nil {
		return KeyUsage{}, newIdentityFragmentError(DecodingFailure, "decode KeyUsage", err)
	}
	var ku KeyUsage
	for i := 0; i < len(ku) && i < bs.BitLength; i++ {
		if bs.At(i) != 0 {
			ku[i] = true
		}
	}
	return ku, nil
}
