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

// ExtensionEntry is one (oid, critical, der_value) triple of an
// Extensions collection.
type ExtensionEntry struct {
	OID      asn1.ObjectIdentifier
	Critical bool
	Value    []byte
}

// Extensions is an insertion-ordered collection of ExtensionEntry values,
// with the invariant that at most one entry exists per OID.
type Extensions struct {
	entries []ExtensionEntry
}

// NewExtensions builds an empty Extensions collection.
func NewExtensions() *Extensions {
	return &Extensions{}
}

// Entries returns the extensions in insertion order.
func (e *Extensions) Entries() []ExtensionEntry {
	return e.entries
}

func (e *Extensions) has(oid asn1.ObjectIdentifier) bool {
	for _, ex := range e.entries {
		if ex.OID.Equal(oid) {
			return true
		}
	}
	return false
}

func (e *Extensions) add(oid asn1.ObjectIdentifier, critical bool, value []byte) error {
	if e.has(oid) {
		return fmt.Errorf("pkixmodel: extension %s already present", oid.String())
	}
	e.entries = append(e.entries, ExtensionEntry{OID: oid, Critical: critical, Value: value})
	return nil
}

// AddBasicConstraints adds a BasicConstraints extension, critical iff ca.
func (e *Extensions) AddBasicConstraints(bc BasicConstraints) error {
	der, err := bc.Encode()
	if err != nil {
		return err
	}
	return e.add(OIDBasicConstraints, bc.CA, der)
}

// AddKeyUsage adds a KeyUsage extension, always critical. An empty
// KeyUsage is silently omitted rather than emitted as an all-zero bit
// string.
func (e *Extensions) AddKeyUsage(ku KeyUsage) error {
	if ku.IsEmpty() {
		return nil
	}
	der, err := ku.Encode()
	if err != nil {
		return err
	}
	return e.add(OIDKeyUsage, true, der)
}

// AddExtendedKeyUsage adds an ExtendedKeyUsage extension, non-critical.
func (e *Extensions) AddExtendedKeyUsage(ekus []ExtendedKeyUsage) error {
	if len(ekus) == 0 {
		return nil
	}
	der, err := EncodeExtendedKeyUsageList(ekus)
	if err != nil {
		return err
	}
	return e.add(OIDExtendedKeyUsage, false, der)
}

// AddSubjectKeyIdentifier adds a SubjectKeyIdentifier extension, non-critical.
func (e *Extensions) AddSubjectKeyIdentifier(kid []byte) error {
	der, err := EncodeSubjectKeyIdentifier(kid)
	if err != nil {
		return err
	}
	return e.add(OIDSubjectKeyIdentifier, false, der)
}

// AddAuthorityKeyIdentifier adds an AuthorityKeyIdentifier extension, non-critical.
func (e *Extensions) AddAuthorityKeyIdentifier(kid []byte) error {
	der, err := EncodeAuthorityKeyIdentifier(kid)
	if err != nil {
		return err
	}
	return e.add(OIDAuthorityKeyIdentifier, false, der)
}

// AddCertificatePolicies adds a CertificatePolicies extension, non-critical.
func (e *Extensions) AddCertificatePolicies(policies []CertificatePolicy) error {
	if len(policies) == 0 {
		return nil
	}
	der, err := EncodeCertificatePolicies(policies)
	if err != nil {
		return err
	}
	return e.add(OIDCertificatePolicies, false, der)
}

// AddAuthorityInformationAccess adds an AuthorityInformationAccess
// extension, non-critical.
func (e *Extensions) AddAuthorityInformationAccess(descs []AIADescription) error {
	if len(descs) == 0 {
		return nil
	}
	der, err := EncodeAuthorityInformationAccess(descs)
	if err != nil {
		return err
	}
	return e.add(OIDAuthorityInformationAccess, false, der)
}

// AddCRLDistributionPoint adds a CRLDistributionPoints extension, non-critical.
func (e *Extensions) AddCRLDistributionPoint(cdp CRLDistributionPoint) error {
	der, err := EncodeCRLDistributionPoint(cdp)
	if err != nil {
		return err
	}
	return e.add(OIDCRLDistributionPoints, false, der)
}

// AddSubjectAlternativeName adds a SubjectAlternativeName extension.
// Criticality is true iff subjectDNEmpty, matching the rule that a
// certificate with an empty subject must mark its SAN critical. An empty
// name list is silently omitted.
func (e *Extensions) AddSubjectAlternativeName(names AlternativeName, subjectDNEmpty bool) error {
	if len(names) == 0 {
		return nil
	}
	der, err := EncodeAlternativeName(names)
	if err != nil {
		return err
	}
	return e.add(OIDSubjectAlternativeName, subjectDNEmpty, der)
}

// AddIssuerAlternativeName adds an IssuerAlternativeName extension,
// non-critical. An empty name list is silently omitted.
func (e *Extensions) AddIssuerAlternativeName(names AlternativeName) error {
	if len(names) == 0 {
		return nil
	}
	der, err := EncodeAlternativeName(names)
	if err != nil {
		return err
	}
	return e.add(OIDIssuerAlternativeName, false, der)
}

func (e *Extensions) toWire() []extension {
	out := make([]extension, len(e.entries))
	for i, ex := range e.entries {
		out[i] = extension{ID: ex.OID, Critical: ex.Critical, Value: ex.Value}
	}
	return out
}

func extensionsFromWire(wire []extension) *Extensions {
	e := NewExtensions()
	for _, ex := range wire {
		e.entries = append(e.entries, ExtensionEntry{OID: ex.ID, Critical: ex.Critical, Value: ex.Value})
	}
	return e
}

// Find returns the entry for oid, if present.
func (e *Extensions) Find(oid asn1.ObjectIdentifier) (ExtensionEntry, bool) {
	for _, ex := range e.entries {
		if ex.OID.Equal(oid) {
			return ex, true
		}
	}
	return ExtensionEntry{}, false
}

// CriticalOIDs returns the OIDs of every entry marked critical.
func (e *Extensions) CriticalOIDs() []asn1.ObjectIdentifier {
	var out []asn1.ObjectIdentifier
	for _, ex := range e.entries {
		if ex.Critical {
			out = append(out, ex.OID)
		}
	}
	return out
}
