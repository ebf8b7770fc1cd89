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

package certvalidate

import (
	"bytes"
	"crypto/x509"
	"encoding/asn1"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/mydriatech/upkit-x509-go/pkg/certparse"
	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

// CertificatePathValidator orders an unordered leaf chain, links it to a
// trust anchor by issuer-subject matching, verifies signatures up the
// chain, and dispatches critical-extension checkers until every critical
// OID is resolved or the chain is rejected.
type CertificatePathValidator struct {
	log logr.Logger

	engines *EngineRegistry

	anchorsByFingerprint        map[string]*certparse.CertificateParser
	anchorsBySubjectFingerprint map[string]*certparse.CertificateParser

	standardCheckers []ExtensionChecker
}

// Option configures a CertificatePathValidator at construction time.
type Option func(*CertificatePathValidator)

// WithLogger installs a structured logger. Defaults to logr.Discard().
func WithLogger(log logr.Logger) Option {
	return func(v *CertificatePathValidator) { v.log = log }
}

// WithEngineRegistry overrides the default standard signature-engine
// registry, e.g. to add HSM-backed verification.
func WithEngineRegistry(engines *EngineRegistry) Option {
	return func(v *CertificatePathValidator) { v.engines = engines }
}

// NewCertificatePathValidator parses trustAnchorsDER and indexes each
// anchor by both its own fingerprint and by its subject DN's
// fingerprint. Installs the standard extension checkers
// (BasicConstraintsChecker, KeyUsageChecker, KeyIdentifierChecker).
func NewCertificatePathValidator(trustAnchorsDER [][]byte, opts ...Option) (*CertificatePathValidator, error) {
	v := &CertificatePathValidator{
		log:                         logr.Discard(),
		engines:                     NewStandardEngineRegistry(),
		anchorsByFingerprint:        make(map[string]*certparse.CertificateParser),
		anchorsBySubjectFingerprint: make(map[string]*certparse.CertificateParser),
		standardCheckers: []ExtensionChecker{
			BasicConstraintsChecker{},
			NewKeyUsageChecker(),
			KeyIdentifierChecker{},
		},
	}
	for _, opt := range opts {
		opt(v)
	}

	for _, der := range trustAnchorsDER {
		anchor, err := certparse.NewCertificateParser(der)
		if err != nil {
			return nil, newValidationError(CertificateParsingErrorKind, "parse trust anchor", err)
		}
		v.anchorsByFingerprint[anchor.Fingerprint()] = anchor
		_, subjectFp, err := anchor.EncodedSubject()
		if err != nil {
			return nil, newValidationError(CertificateParsingErrorKind, "encode trust anchor subject", err)
		}
		v.anchorsBySubjectFingerprint[subjectFp] = anchor
	}
	return v, nil
}

// Validate orders chainDER, attaches it to a trust anchor, verifies
// signatures, and runs the standard checkers followed by extraCheckers in
// order, at the given query time.
func (v *CertificatePathValidator) Validate(chainDER [][]byte, atEpochSeconds int64, extraCheckers ...ExtensionChecker) error {
	// 1. Parse & time-filter.
	parsed := make([]*certparse.CertificateParser, len(chainDER))
	for i, der := range chainDER {
		cert, err := certparse.NewCertificateParser(der)
		if err != nil {
			return newValidationError(CertificateParsingErrorKind, "parse chain certificate", err)
		}
		if !cert.IsValidAt(atEpochSeconds) {
			return newValidationError(InvalidLifeSpan,
				fmt.Sprintf("certificate %s is not valid at query time", cert.Fingerprint()), nil)
		}
		parsed[i] = cert
	}

	// 2. Locate the leaf.
	leafIdx := -1
	for i, cert := range parsed {
		isLeaf, err := cert.IsLeaf()
		if err != nil {
			return newValidationError(CertificateParsingErrorKind, "decode BasicConstraints", err)
		}
		if isLeaf {
			if leafIdx >= 0 {
				return newValidationError(NotOneLeaf, "multiple leaf certificates found in chain", nil)
			}
			leafIdx = i
		}
	}
	if leafIdx < 0 {
		return newValidationError(NotOneLeaf, "no leaf certificate found in chain", nil)
	}

	// 3. Order the chain, starting from the leaf.
	ordered := []*certparse.CertificateParser{parsed[leafIdx]}
	used := map[int]bool{leafIdx: true}
	for {
		current := ordered[len(ordered)-1]
		found := false
		for i, candidate := range parsed {
			if used[i] {
				continue
			}
			if dnEqual(candidate.Subject(), current.Issuer()) {
				ordered = append(ordered, candidate)
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	if len(used) != len(parsed) {
		return newValidationError(NotOneLeaf, "chain has a gap: not every certificate could be linked by issuer/subject", nil)
	}

	// 4. Attach trust.
	var anchor *certparse.CertificateParser
	anchorIdx := -1
	anchorIsChainMember := false
	for i, cert := range ordered {
		if a, ok := v.anchorsByFingerprint[cert.Fingerprint()]; ok {
			anchor = a
			anchorIdx = i
			anchorIsChainMember = true
			break
		}
		_, issuerFp, err := cert.EncodedIssuer()
		if err != nil {
			return newValidationError(CertificateParsingErrorKind, "encode certificate issuer", err)
		}
		if a, ok := v.anchorsBySubjectFingerprint[issuerFp]; ok {
			anchor = a
			anchorIdx = i
			break
		}
	}
	if anchor == nil {
		last := ordered[len(ordered)-1]
		return newValidationError(NotTrusted,
			fmt.Sprintf("chain does not reach a trust anchor, last certificate %s", last.Fingerprint()), nil)
	}

	var chain []*certparse.CertificateParser
	if anchorIsChainMember {
		chain = append(chain, ordered[:anchorIdx+1]...)
	} else {
		chain = append(chain, ordered[:anchorIdx+1]...)
		chain = append(chain, anchor)
	}

	// 5. Trust-anchor time check.
	if !anchor.IsValidAt(atEpochSeconds) {
		return newValidationError(InvalidLifeSpan,
			fmt.Sprintf("trust anchor %s is not valid at query time", anchor.Fingerprint()), nil)
	}

	// 6. Signature verification, anchor down to leaf.
	for i := len(chain) - 2; i >= 0; i-- {
		current := chain[i]
		issuer := chain[i+1]
		engine, ok := v.engines.Lookup(current.SignatureAlgorithmOID())
		if !ok {
			return newValidationError(UnknownSignature,
				fmt.Sprintf("no signature engine registered for %s", current.SignatureAlgorithmOID()), nil)
		}
		pub, err := x509.ParsePKIXPublicKey(issuer.SubjectPublicKeyInfoDER())
		if err != nil {
			return newValidationError(CertificateParsingErrorKind, "parse issuer public key", err)
		}
		if err := engine.Verify(pub, current.TBSDER(), current.SignatureValue()); err != nil {
			msg := fmt.Sprintf("signature verification failed for %s", current.Fingerprint())
			if current.Fingerprint() == issuer.Fingerprint() {
				msg += " (self-signed)"
			}
			return newValidationError(InvalidSignature, msg, err)
		}
	}

	// 7. Critical-extension set, leaf up to but excluding the anchor.
	var criticalOIDs []asn1.ObjectIdentifier
	for _, cert := range chain[:len(chain)-1] {
		criticalOIDs = append(criticalOIDs, cert.CriticalExtensionOIDs()...)
	}
	pending := newPendingOIDs(criticalOIDs)

	// 8. Run checkers.
	for _, checker := range v.standardCheckers {
		if err := checker.Check(chain, pending); err != nil {
			return err
		}
	}
	for _, checker := range extraCheckers {
		if err := checker.Check(chain, pending); err != nil {
			return err
		}
	}

	// 9. Closure.
	if remaining := pending.Remaining(); len(remaining) > 0 {
		return newValidationError(UnhandledCriticalExtensions,
			fmt.Sprintf("unhandled critical extensions: %v", oidsToStrings(remaining)), nil)
	}
	return nil
}

// dnEqual compares two distinguished names by their canonical DER
// encoding, matching the issuer-subject linkage the RFC 5280 chain
// ordering step relies on.
func dnEqual(a, b pkixmodel.DistinguishedName) bool {
	aDER, err := a.DER()
	if err != nil {
		return false
	}
	bDER, err := b.DER()
	if err != nil {
		return false
	}
	return bytes.Equal(aDER, bDER)
}
