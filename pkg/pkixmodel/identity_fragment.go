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

import "fmt"

// IdentityFragmentErrorKind enumerates the ways building or decoding an
// IdentityFragment can fail.
type IdentityFragmentErrorKind int

const (
	// EncodingFailure means the textual value could not be encoded into
	// its attribute's preferred ASN.1 string type.
	EncodingFailure IdentityFragmentErrorKind = iota
	// DecodingFailure means a DER attribute value could not be decoded
	// into a textual value.
	DecodingFailure
	// UnknownAttribute means the attribute name, or OID, has no entry in
	// the WellKnownAttribute registry.
	UnknownAttribute
	// InvalidAttributeValue means the value violates the attribute's
	// length or alphabet constraint.
	InvalidAttributeValue
)

func (k IdentityFragmentErrorKind) String() string {
	switch k {
	case EncodingFailure:
		return "EncodingFailure"
	case DecodingFailure:
		return "DecodingFailure"
	case UnknownAttribute:
		return "UnknownAttribute"
	case InvalidAttributeValue:
		return "InvalidAttributeValue"
	default:
		return "Unknown"
	}
}

// IdentityFragmentError is the single error type raised by attribute
// registry validate/encode/decode operations.
type IdentityFragmentError struct {
	Kind    IdentityFragmentErrorKind
	Message string
	Cause   error
}

func (e *IdentityFragmentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pkixmodel: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("pkixmodel: %s: %s", e.Kind, e.Message)
}

func (e *IdentityFragmentError) Unwrap() error {
	return e.Cause
}

func newIdentityFragmentError(kind IdentityFragmentErrorKind, message string, cause error) *IdentityFragmentError {
	return &IdentityFragmentError{Kind: kind, Message: message, Cause: cause}
}

// IdentityFragment is a single (name, value) pair in a Distinguished Name,
// where name is a snake_case label naming a WellKnownAttribute registry
// entry and value is its textual form. The name is authoritative: the OID,
// preferred ASN.1 encoding and maximum length are all derived from the
// registry at encode/decode time.
type IdentityFragment struct {
	Name  string
	Value string
}

// NewIdentityFragment validates value against the named attribute's
// registry entry before constructing the fragment.
func NewIdentityFragment(name, value string) (IdentityFragment, error) {
	attr, ok := LookupWellKnownAttributeByName(name)
	if !ok {
		return IdentityFragment{}, newIdentityFragmentError(UnknownAttribute, name, nil)
	}
	if err := attr.Validate(value); err != nil {
		return IdentityFragment{}, err
	}
	return IdentityFragment{Name: name, Value: value}, nil
}
