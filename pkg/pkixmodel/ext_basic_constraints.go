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

// OIDBasicConstraints is the RFC 5280 id-ce-basicConstraints OID.
var OIDBasicConstraints = MustParseOID("2.5.29.19")

// BasicConstraints carries the CA flag and an optional path length
// constraint, meaningful only when CA is true.
type BasicConstraints struct {
	CA      bool
	PathLen *int
}

// IsLeaf reports whether this BasicConstraints value describes a
// non-CA (leaf) certificate.
func (bc BasicConstraints) IsLeaf() bool {
	return !bc.CA
}

// Encode DER-encodes this BasicConstraints value.
func (bc BasicConstraints) Encode() ([]byte, error) {
	if bc.CA && bc.PathLen != nil {
		return asn1.Marshal(struct {
			CA      bool `asn1:"optional"`
			PathLen int
		}{CA: bc.CA, PathLen: *bc.PathLen})
	}
	return asn1.Marshal(struct {
		CA bool `asn1:"optional"`
	}{CA: bc.CA})
}

// DecodeBasicConstraints parses a BasicConstraints extension value.
func DecodeBasicConstraints(der []byte) (BasicConstraints, error) {
	var w struct {
		CA      bool `asn1:"optional"`
		PathLen int  `asn1:"optional,default:-1"`
	}
	if _, err := asn1.Unmarshal(der, &w); err != nil {
		return BasicConstraints{}, newIdentityFragmentError(DecodingFailure, "decode BasicConstraints", err)
	}
	bc := BasicConstraints{CA: w.CA}
	if w.PathLen >= 0 {
		pl := w.PathLen
		bc.PathLen = &pl
	}
	return bc, nil
}
