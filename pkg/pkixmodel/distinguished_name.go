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
	"fmt"
)

// RelativeDistinguishedName is a set of IdentityFragments sharing one
// position in a DistinguishedName's RDN sequence. Multi-valued RDNs are
// supported but discouraged by higher level constructors.
type RelativeDistinguishedName []IdentityFragment

// DistinguishedName is an ordered sequence of RelativeDistinguishedNames.
// Order is preserved exactly as supplied and is significant for
// fingerprinting and DER round-trips. An empty DistinguishedName is
// permitted; a certificate with an empty subject DN must mark its SAN
// extension critical. Extensions.AddSubjectAlternativeName sets that
// flag from the caller's subjectDNEmpty argument; it does not inspect the
// DN itself.
type DistinguishedName []RelativeDistinguishedName

// NewDistinguishedName builds a single-valued-RDN-per-entry
// DistinguishedName from (name, value) pairs, in the order given.
func NewDistinguishedName(pairs ...[2]string) (DistinguishedName, error) {
	dn := make(DistinguishedName, 0, len(pairs))
	for _, p := range pairs {
		frag, err := NewIdentityFragment(p[0], p[1])
		if err != nil {
			return nil, err
		}
		dn = append(dn, RelativeDistinguishedName{frag})
	}
	return dn, nil
}

// IsEmpty reports whether the DN carries no RDNs at all.
func (dn DistinguishedName) IsEmpty() bool {
	return len(dn) == 0
}

func encodeAttributeValue(enc Asn1EncodingType, value string) (asn1.RawValue, error) {
	der, err := asn1.MarshalWithParams(value, enc.asn1Tag())
	if err != nil {
		return asn1.RawValue{}, newIdentityFragmentError(EncodingFailure, "marshal attribute value", err)
	}
	var raw asn1.RawValue
	if _, err := asn1.Unmarshal(der, &raw); err != nil {
		return asn1.RawValue{}, newIdentityFragmentError(EncodingFailure, "unmarshal attribute value into RawValue", err)
	}
	return raw, nil
}

func decodeAttributeValue(raw asn1.RawValue) (string, error) {
	var tag string
	switch raw.Tag {
	case asn1.TagIA5String:
		tag = "ia5"
	case asn1.TagPrintableString:
		tag = "printable"
	case asn1.TagUTF8String:
		tag = "utf8"
	case asn1.TagT61String:
		tag = "t61"
	default:
		tag = "utf8"
	}
	var s string
	if _, err := asn1.UnmarshalWithParams(raw.FullBytes, &s, tag); err != nil {
		if tag == "utf8" {
			var fallback string
			if _, ferr := asn1.UnmarshalWithParams(raw.FullBytes, &fallback, "printable"); ferr == nil {
				return fallback, nil
			}
		}
		return "", newIdentityFragmentError(DecodingFailure, "unmarshal attribute value", err)
	}
	return s, nil
}

// DER encodes this DistinguishedName as an RFC 5280 Name (i.e. directly
// as its single CHOICE alternative, RDNSequence).
func (dn DistinguishedName) DER() ([]byte, error) {
	wire, err := dn.toWire()
	if err != nil {
		return nil, err
	}
	return asn1.Marshal(wire)
}

func (dn DistinguishedName) toWire() (rdnSequence, error) {
	seq := make(rdnSequence, 0, len(dn))
	for _, rdn := range dn {
		set := make(relativeDistinguishedNameSET, 0, len(rdn))
		for _, frag := range rdn {
			attr, ok := LookupWellKnownAttributeByName(frag.Name)
			if !ok {
				return nil, newIdentityFragmentError(UnknownAttribute, frag.Name, nil)
			}
			if err := attr.Validate(frag.Value); err != nil {
				return nil, err
			}
			raw, err := encodeAttributeValue(attr.PreferredEncoding, frag.Value)
			if err != nil {
				return nil, err
			}
			set = append(set, attributeTypeAndValue{Type: attr.OID, Value: raw})
		}
		seq = append(seq, set)
	}
	return seq, nil
}

// DistinguishedNameFromDER decodes an RFC 5280 Name (RDNSequence) back
// into a DistinguishedName, resolving each attribute OID against the
// WellKnownAttribute registry.
func DistinguishedNameFromDER(der []byte) (DistinguishedName, error) {
	var seq rdnSequence
	if _, err := asn1.Unmarshal(der, &seq); err != nil {
		return nil, newIdentityFragmentError(DecodingFailure, "unmarshal RDNSequence", err)
	}
	return distinguishedNameFromWire(seq)
}

func distinguishedNameFromWire(seq rdnSequence) (DistinguishedName, error) {
	dn := make(DistinguishedName, 0, len(seq))
	for _, set := range seq {
		rdn := make(RelativeDistinguishedName, 0, len(set))
		for _, atv := range set {
			attr, ok := LookupWellKnownAttributeByOID(atv.Type)
			if !ok {
				return nil, newIdentityFragmentError(UnknownAttribute, atv.Type.String(), nil)
			}
			value, err := decodeAttributeValue(atv.Value)
			if err != nil {
				return nil, err
			}
			rdn = append(rdn, IdentityFragment{Name: attr.Name, Value: value})
		}
		dn = append(dn, rdn)
	}
	return dn, nil
}

// String renders the DN as a comma-separated, most-specific-first RFC
// 2253-ish string, for logging and diagnostics only — not a parser-grade
// serialisation. Use ParseRFC2253DN / the ldap library directly for a
// round-trippable string form.
func (dn DistinguishedName) String() string {
	out := ""
	for i := len(dn) - 1; i >= 0; i-- {
		rdn := dn[i]
		for j, frag := range rdn {
			if out != "" {
				out += ","
			}
			if j > 0 {
				out += "+"
			}
			out += fmt.Sprintf("%s=%s", frag.Name, frag.Value)
		}
	}
	return out
}
