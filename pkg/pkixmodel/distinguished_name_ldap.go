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
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// ldapShortNameToAttribute maps the short attribute names go-ldap's
// ParseDN recognises to this package's WellKnownAttribute registry names.
var ldapShortNameToAttribute = map[string]string{
	"cn":            "common_name",
	"c":             "country_name",
	"st":            "state_or_province_name",
	"l":             "locality_name",
	"o":             "organization_name",
	"ou":            "organizational_unit_name",
	"sn":            "surname",
	"givenname":     "given_name",
	"serialnumber":  "serial_number",
	"street":        "street_address",
	"postalcode":    "postal_code",
	"dc":            "domain_component",
}

// ParseRFC2253DN parses an RFC 2253 distinguished name string such as
// "CN=foo,O=bar,C=US" into a DistinguishedName, resolving each attribute
// against the WellKnownAttribute registry. This is additive sugar around
// the typed builder API (NewDistinguishedName), convenient for test
// fixtures and tooling that only has a string DN on hand.
func ParseRFC2253DN(s string) (DistinguishedName, error) {
	parsed, err := ldap.ParseDN(s)
	if err != nil {
		return nil, fmt.Errorf("pkixmodel: parse RFC 2253 DN %q: %w", s, err)
	}
	dn := make(DistinguishedName, 0, len(parsed.RDNs))
	for _, rdn := range parsed.RDNs {
		frags := make(RelativeDistinguishedName, 0, len(rdn.Attributes))
		for _, atv := range rdn.Attributes {
			name, ok := ldapShortNameToAttribute[strings.ToLower(atv.Type)]
			if !ok {
				name = strings.ToLower(atv.Type)
			}
			frag, err := NewIdentityFragment(name, atv.Value)
			if err != nil {
				return nil, err
			}
			frags = append(frags, frag)
		}
		dn = append(dn, frags)
	}
	return dn, nil
}
