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
	"sort"
	"strings"
)

// OIDCRLDistributionPoints is the RFC 5280 id-ce-cRLDistributionPoints OID.
var OIDCRLDistributionPoints = MustParseOID("2.5.29.31")

// CRLDistributionPoint is this library's simplified view of the CRL
// Distribution Points extension: exactly one full-name URI, valid for all
// reasons, with the issuer omitted (the CRL's issuer is assumed to equal
// the certificate's issuer).
type CRLDistributionPoint struct {
	URI string
}

// NewCRLDistributionPoint builds a CRLDistributionPoint from a single URI.
func NewCRLDistributionPoint(uri string) CRLDistributionPoint {
	return CRLDistributionPoint{URI: uri}
}

type distributionPointNameWire struct {
	FullName []asn1.RawValue `asn1:"optional,tag:0"`
}

type distributionPointWire struct {
	DistributionPoint distributionPointNameWire `asn1:"optional,explicit,tag:0"`
}

// EncodeCRLDistributionPoint DER-encodes a CRLDistributionPoint extension
// value as a one-entry DistributionPoint SEQUENCE carrying a single
// fullName GeneralName.
func EncodeCRLDistributionPoint(cdp CRLDistributionPoint) ([]byte, error) {
	raw, err := encodeGeneralName(GeneralName{Kind: Uri, Value: cdp.URI})
	if err != nil {
		return nil, err
	}
	points := []distributionPointWire{{
		DistributionPoint: distributionPointNameWire{FullName: []asn1.RawValue{raw}},
	}}
	return asn1.Marshal(points)
}

// preferredSchemeRank ranks http(s) ahead of any other scheme (notably
// ldap), so that when multiple distribution points are present the most
// broadly reachable one sorts first.
func preferredSchemeRank(uri string) int {
	lower := strings.ToLower(uri)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return 0
	}
	return 1
}

// DecodeCRLDistributionPoint parses a CRLDistributionPoints extension
// value, picking one full-name URI. When more than one DistributionPoint
// entry is present, http/https URIs are preferred over others (e.g.
// ldap), and entries are otherwise ordered lexicographically so the
// choice is deterministic.
func DecodeCRLDistributionPoint(der []byte) (CRLDistributionPoint, error) {
	var points []distributionPointWire
	if _, err := asn1.Unmarshal(der, &points); err != nil {
		return CRLDistributionPoint{}, newIdentityFragmentError(DecodingFailure, "decode CRLDistributionPoints", err)
	}
	var uris []string
	for _, p := range points {
		for _, raw := range p.DistributionPoint.FullName {
			gn, err := decodeGeneralName(raw)
			if err != nil {
				return CRLDistributionPoint{}, err
			}
			uris = append(uris, gn.Value)
		}
	}
	if len(uris) == 0 {
		return CRLDistributionPoint{}, newIdentityFragmentError(DecodingFailure, "CRLDistributionPoints has no fullName entries", nil)
	}
	sort.Slice(uris, func(i, j int) bool {
		ri, rj := preferredSchemeRank(uris[i]), preferredSchemeRank(uris[j])
		if ri != rj {
			return ri < rj
		}
		return uris[i] < uris[j]
	})
	return CRLDistributionPoint{URI: uris[0]}, nil
}
