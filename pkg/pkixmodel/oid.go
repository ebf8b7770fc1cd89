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

// Package pkixmodel provides the typed X.509 data model (distinguished
// names, identity fragments, general names, and the catalogue of typed
// extension values) along with the DER codec bridge built on
// encoding/asn1 and crypto/x509/pkix.
package pkixmodel

import (
	"encoding/asn1"
	"fmt"
	"strconv"
	"strings"
)

// ParseOID parses a dotted decimal object identifier such as "2.5.29.15".
func ParseOID(s string) (asn1.ObjectIdentifier, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("pkixmodel: %q is not a valid object identifier", s)
	}
	oid := make(asn1.ObjectIdentifier, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("pkixmodel: invalid object identifier component %q in %q: %w", p, s, err)
		}
		oid[i] = n
	}
	return oid, nil
}

// MustParseOID is like ParseOID but panics on error. Intended for package
// level variable initialization with literal OID strings.
func MustParseOID(s string) asn1.ObjectIdentifier {
	oid, err := ParseOID(s)
	if err != nil {
		panic(err)
	}
	return oid
}
