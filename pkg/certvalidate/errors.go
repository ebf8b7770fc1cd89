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

// Package certvalidate orders an unordered certificate chain, links it to
// a trust anchor, verifies signatures up the chain, and dispatches
// pluggable critical-extension checkers.
package certvalidate

import (
	"encoding/asn1"
	"fmt"
)

// ValidationErrorKind enumerates the ways chain validation can fail.
type ValidationErrorKind int

const (
	// CertificateParsingErrorKind means a trust anchor or chain entry
	// failed to decode.
	CertificateParsingErrorKind ValidationErrorKind = iota
	// InvalidSignature means cryptographic verification failed.
	InvalidSignature
	// UnknownSignature means no engine is registered for the
	// certificate's signature algorithm OID.
	UnknownSignature
	// InvalidLifeSpan means some certificate or the selected anchor is
	// not valid at the query time.
	InvalidLifeSpan
	// NotOneLeaf means zero or multiple leaves were found, or the chain
	// has a gap.
	NotOneLeaf
	// NotTrusted means the chain does not reach any anchor.
	NotTrusted
	// UnhandledCriticalExtensions means the pending-critical set is
	// non-empty after checker dispatch.
	UnhandledCriticalExtensions
	// ExtensionHandlingFailure means a checker rejected the chain.
	ExtensionHandlingFailure
)

func (k ValidationErrorKind) String() string {
	switch k {
	case CertificateParsingErrorKind:
		return "CertificateParsingError"
	case InvalidSignature:
		return "InvalidSignature"
	case UnknownSignature:
		return "UnknownSignature"
	case InvalidLifeSpan:
		return "InvalidLifeSpan"
	case NotOneLeaf:
		return "NotOneLeaf"
	case NotTrusted:
		return "NotTrusted"
	case UnhandledCriticalExtensions:
		return "UnhandledCriticalExtensions"
	case ExtensionHandlingFailure:
		return "ExtensionHandlingFailure"
	default:
		return "Unknown"
	}
}

// ValidationError is the single error type raised by
// CertificatePathValidator and its extension checkers.
type ValidationError struct {
	Kind    ValidationErrorKind
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("certvalidate: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("certvalidate: %s: %s", e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func newValidationError(kind ValidationErrorKind, message string, cause error) *ValidationError {
	return &ValidationError{Kind: kind, Message: message, Cause: cause}
}

func oidsToStrings(oids []asn1.ObjectIdentifier) []string {
	out := make([]string, len(oids))
	for i, oid := range oids {
		out[i] = oid.String()
	}
	return out
}
