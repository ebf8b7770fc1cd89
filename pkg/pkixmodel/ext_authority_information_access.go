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

// OIDAuthorityInformationAccess is the RFC 5280 id-pe-authorityInfoAccess OID.
var OIDAuthorityInformationAccess = MustParseOID("1.3.6.1.5.5.7.1.1")

var (
	oidAccessMethodOcsp      = MustParseOID("1.3.6.1.5.5.7.48.1")
	oidAccessMethodCaIssuers = MustParseOID("1.3.6.1.5.5.7.48.2")
)

// AIADescriptionKind distinguishes the access method of one
// AccessDescription entry.
type AIADescriptionKind int

const (
	Ocsp AIADescriptionKind = iota
	CaIssuers
	Other
)

// AIADescription is one AccessDescription entry of an
// AuthorityInformationAccess extension.
type AIADescription struct {
	Kind     AIADescriptionKind
	OID      asn1.ObjectIdentifier // only meaningful when Kind == Other
	Location GeneralName
}

// NewOcspAccessDescription builds an id-ad-ocsp AccessDescription.
func NewOcspAccessDescription(uri string) AIADescription {
	return AIADescription{Kind: Ocsp, Location: GeneralName{Kind: Uri, Value: uri}}
}

// NewCaIssuersAccessDescription builds an id-ad-caIssuers AccessDescription.
func NewCaIssuersAccessDescription(location GeneralName) AIADescription {
	return AIADescription{Kind: CaIssuers, Location: location}
}

// NewOtherAccessDescription builds an AccessDescription for an access
// method this package has no dedicated constant for.
func NewOtherAccessDescription(oid asn1.ObjectIdentifier, location GeneralName) AIADescription {
	return AIADescription{Kind: Other, OID: oid, Location: location}
}

func (d AIADescription) accessMethod() asn1.ObjectIdentifier {
	switch d.Kind {
	case Ocsp:
		return oidAccessMethodOcsp
	case CaIssuers:
		return oidAccessMethodCaIssuers
	default:
		return d.OID
	}
}

type accessDescriptionWire struct {
	AccessMethod   asn1.ObjectIdentifier
	AccessLocation asn1.RawValue
}

// EncodeAuthorityInformationAccess DER-encodes an
// AuthorityInformationAccess extension value.
func EncodeAuthorityInformationAccess(descs []AIADescription) ([]byte, error) {
	wires := make([]accessDescriptionWire, len(descs))
	for i, d := range descs {
		raw, err := encodeGeneralName(d.Location)
		if err != nil {
			return nil, err
		}
		wires[i] = accessDescriptionWire{AccessMethod: d.accessMethod(), AccessLocation: raw}
	}
	return asn1.Marshal(wires)
}

// DecodeAuthorityInformationAccess parses an AuthorityInformationAccess
// extension value.
func DecodeAuthorityInformationAccess(der []byte) ([]AIADescription, error) {
	var wires []accessDescriptionWire
	if _, err := asn1.Unmarshal(der, &wires); err != nil {
		return nil, newIdentityFragmentError(DecodingFailure, "decode AuthorityInformationAccess", err)
	}
	out := make([]AIADescription, len(wires))
	for i, w := range wires {
		loc, err := decodeGeneralName(w.AccessLocation)
		if err != nil {
			return nil, err
		}
		switch w.AccessMethod.String() {
		case oidAccessMethodOcsp.String():
			out[i] = AIADescription{Kind: Ocsp, Location: loc}
		case oidAccessMethodCaIssuers.String():
			out[i] = AIADescription{Kind: CaIssuers, Location: loc}
		default:
			out[i] = AIADescription{Kind: Other, OID: w.AccessMethod, Location: loc}
		}
	}
	return out, nil
}
