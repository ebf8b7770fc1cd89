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
	"unicode/utf8"
)

// OIDCertificatePolicies is the RFC 5280 id-ce-certificatePolicies OID.
var OIDCertificatePolicies = MustParseOID("2.5.29.32")

var (
	oidQualifierCPS     = MustParseOID("1.3.6.1.5.5.7.2.1")
	oidQualifierUNotice = MustParseOID("1.3.6.1.5.5.7.2.2")
)

// WellKnownCertificatePolicy enumerates the CertificatePolicy OIDs this
// package has a name for: RFC 5280's anyPolicy plus the CA/Browser Forum
// baseline-requirements and extended-validation policy OIDs.
type WellKnownCertificatePolicy string

const (
	AnyPolicy                                WellKnownCertificatePolicy = "2.5.29.32.0"
	CabfExtendedValidation                   WellKnownCertificatePolicy = "2.23.140.1.1"
	CabfBaselineRequirements                 WellKnownCertificatePolicy = "2.23.140.1.2"
	CabfDomainValidated                      WellKnownCertificatePolicy = "2.23.140.1.2.1"
	CabfOrganizationValidated                WellKnownCertificatePolicy = "2.23.140.1.2.2"
	CabfIndividualValidated                  WellKnownCertificatePolicy = "2.23.140.1.2.3"
	CabfExtendedValidationCodeSigning        WellKnownCertificatePolicy = "2.23.140.1.3"
	CabfCodeSigningRequirementsCodeSigning   WellKnownCertificatePolicy = "2.23.140.1.4.1"
	CabfCodeSigningRequirementsTimestamping  WellKnownCertificatePolicy = "2.23.140.1.4.2"
)

// OID resolves a WellKnownCertificatePolicy constant to its
// asn1.ObjectIdentifier.
func (p WellKnownCertificatePolicy) OID() asn1.ObjectIdentifier {
	return MustParseOID(string(p))
}

// CertificatePolicyKind distinguishes the three PolicyInformation shapes
// this package round-trips.
type CertificatePolicyKind int

const (
	OidOnly CertificatePolicyKind = iota
	WithCPS
	WithUserNotice
)

// NoticeReference is the optional, RFC 5280-discouraged organisation/
// notice-number pointer inside a UserNotice policy qualifier.
type NoticeReference struct {
	Organization  string
	NoticeNumbers []int
}

// CertificatePolicy is one PolicyInformation entry of a
// CertificatePolicies extension.
type CertificatePolicy struct {
	Kind CertificatePolicyKind
	OID  asn1.ObjectIdentifier

	// WithCPS
	CPSUri string

	// WithUserNotice
	NoticeRef    *NoticeReference
	ExplicitText string
}

// NewOidOnlyPolicy builds a bare PolicyInformation with no qualifiers.
func NewOidOnlyPolicy(oid asn1.ObjectIdentifier) CertificatePolicy {
	return CertificatePolicy{Kind: OidOnly, OID: oid}
}

// NewCSPPolicy builds a PolicyInformation with a CPS URI qualifier.
func NewCSPPolicy(oid asn1.ObjectIdentifier, cpsURI string) CertificatePolicy {
	return CertificatePolicy{Kind: WithCPS, OID: oid, CPSUri: cpsURI}
}

// maxExplicitTextChars is the UTF-8 character count a UserNotice's
// explicitText is truncated to on emission.
const maxExplicitTextChars = 200

// NewUserNoticePolicy builds a PolicyInformation with a UserNotice
// qualifier. explicitText longer than 200 UTF-8 characters is truncated.
func NewUserNoticePolicy(oid asn1.ObjectIdentifier, noticeRef *NoticeReference, explicitText string) CertificatePolicy {
	if utf8.RuneCountInString(explicitText) > maxExplicitTextChars {
		r := []rune(explicitText)
		explicitText = string(r[:maxExplicitTextChars])
	}
	return CertificatePolicy{Kind: WithUserNotice, OID: oid, NoticeRef: noticeRef, ExplicitText: explicitText}
}

type policyQualifierInfoWire struct {
	ID        asn1.ObjectIdentifier
	Qualifier asn1.RawValue
}

type policyInformationWire struct {
	PolicyIdentifier asn1.ObjectIdentifier
	PolicyQualifiers []policyQualifierInfoWire `asn1:"optional"`
}

type noticeReferenceWire struct {
	Organization  string `asn1:"utf8"`
	NoticeNumbers []int
}

type userNoticeWire struct {
	NoticeRef    noticeReferenceWire `asn1:"optional"`
	ExplicitText string              `asn1:"optional,utf8"`
}

func (cp CertificatePolicy) toWire() (policyInformationWire, error) {
	w := policyInformationWire{PolicyIdentifier: cp.OID}
	switch cp.Kind {
	case OidOnly:
		return w, nil
	case WithCPS:
		qualifier, err := asn1.MarshalWithParams(cp.CPSUri, "ia5")
		if err != nil {
			return w, newIdentityFragmentError(EncodingFailure, "marshal CPS URI", err)
		}
		var raw asn1.RawValue
		if _, err := asn1.Unmarshal(qualifier, &raw); err != nil {
			return w, newIdentityFragmentError(EncodingFailure, "unmarshal CPS URI raw value", err)
		}
		w.PolicyQualifiers = []policyQualifierInfoWire{{ID: oidQualifierCPS, Qualifier: raw}}
		return w, nil
	case WithUserNotice:
		un := userNoticeWire{ExplicitText: cp.ExplicitText}
		if cp.NoticeRef != nil {
			un.NoticeRef = noticeReferenceWire{Organization: cp.NoticeRef.Organization, NoticeNumbers: cp.NoticeRef.NoticeNumbers}
		}
		der, err := asn1.Marshal(un)
		if err != nil {
			return w, newIdentityFragmentError(EncodingFailure, "marshal UserNotice", err)
		}
		var raw asn1.RawValue
		if _, err := asn1.Unmarshal(der, &raw); err != nil {
			return w, newIdentityFragmentError(EncodingFailure, "unmarshal UserNotice raw value", err)
		}
		w.PolicyQualifiers = []policyQualifierInfoWire{{ID: oidQualifierUNotice, Qualifier: raw}}
		return w, nil
	default:
		return w, newIdentityFragmentError(EncodingFailure, "unknown CertificatePolicy kind", nil)
	}
}

func certificatePolicyFromWire(w policyInformationWire) (CertificatePolicy, error) {
	if len(w.PolicyQualifiers) == 0 {
		return NewOidOnlyPolicy(w.PolicyIdentifier), nil
	}
	q := w.PolicyQualifiers[0]
	switch q.ID.String() {
	case oidQualifierCPS.String():
		var uri string
		if _, err := asn1.UnmarshalWithParams(q.Qualifier.FullBytes, &uri, "ia5"); err != nil {
			return CertificatePolicy{}, newIdentityFragmentError(DecodingFailure, "decode CPS URI", err)
		}
		return NewCSPPolicy(w.PolicyIdentifier, uri), nil
	case oidQualifierUNotice.String():
		var un userNoticeWire
		if _, err := asn1.Unmarshal(q.Qualifier.FullBytes, &un); err != nil {
			return CertificatePolicy{}, newIdentityFragmentError(DecodingFailure, "decode UserNotice", err)
		}
		var ref *NoticeReference
		if un.NoticeRef.Organization != "" {
			ref = &NoticeReference{Organization: un.NoticeRef.Organization, NoticeNumbers: un.NoticeRef.NoticeNumbers}
		}
		return CertificatePolicy{Kind: WithUserNotice, OID: w.PolicyIdentifier, NoticeRef: ref, ExplicitText: un.ExplicitText}, nil
	default:
		return CertificatePolicy{}, newIdentityFragmentError(DecodingFailure, "unknown policy qualifier "+q.ID.String(), nil)
	}
}

// EncodeCertificatePolicies DER-encodes a CertificatePolicies extension
// value.
func EncodeCertificatePolicies(policies []CertificatePolicy) ([]byte, error) {
	wires := make([]policyInformationWire, len(policies))
	for i, p := range policies {
		w, err := p.toWire()
		if err != nil {
			return nil, err
		}
		wires[i] = w
	}
	return asn1.Marshal(wires)
}

// DecodeCertificatePolicies parses a CertificatePolicies extension value.
func DecodeCertificatePolicies(der []byte) ([]CertificatePolicy, error) {
	var wires []policyInformationWire
	if _, err := asn1.Unmarshal(der, &wires); err != nil {
		return nil, newIdentityFragmentError(DecodingFailure, "decode CertificatePolicies", err)
	}
	out := make([]CertificatePolicy, len(wires))
	for i, w := range wires {
		cp, err := certificatePolicyFromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = cp
	}
	return out, nil
}
