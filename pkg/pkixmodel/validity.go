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

import "time"

// backdateNotBefore is the amount NewValidity subtracts from "now" for
// not_before, to tolerate minor clock skew between issuer and relying
// party.
const backdateNotBefore = 10 * time.Minute

// Validity is the pair of epoch-second bounds a certificate is considered
// valid within. Both bounds are inclusive.
type Validity struct {
	NotBefore int64
	NotAfter  int64
}

// NewValidity builds a Validity whose NotBefore is backdated by 10 minutes
// from now and whose NotAfter is notAfterEpochSeconds.
func NewValidity(nowEpochSeconds, notAfterEpochSeconds int64) Validity {
	return Validity{
		NotBefore: nowEpochSeconds - int64(backdateNotBefore.Seconds()),
		NotAfter:  notAfterEpochSeconds,
	}
}

// IsValidAt reports whether atEpochSeconds falls within the closed
// interval [NotBefore, NotAfter].
func (v Validity) IsValidAt(atEpochSeconds int64) bool {
	return atEpochSeconds >= v.NotBefore && atEpochSeconds <= v.NotAfter
}

// NotBeforeTime returns NotBefore as a UTC time.Time.
func (v Validity) NotBeforeTime() time.Time {
	return time.Unix(v.NotBefore, 0).UTC()
}

// NotAfterTime returns NotAfter as a UTC time.Time.
func (v Validity) NotAfterTime() time.Time {
	return time.Unix(v.NotAfter, 0).UTC()
}

// validity is the ASN.1 wire shape. Both fields always encode as
// GeneralizedTime: the source this was ported from deliberately never
// emits UTCTime, sidestepping the RFC 5280 year-2050 cutover entirely.
type validity struct {
	NotBefore time.Time `asn1:"generalized"`
	NotAfter  time.Time `asn1:"generalized"`
}

func (v Validity) toWire() validity {
	return validity{
		NotBefore: v.NotBeforeTime(),
		NotAfter:  v.NotAfterTime(),
	}
}

func validityFromWire(w validity) Validity {
	return Validity{
		NotBefore: w.NotBefore.Unix(),
		NotAfter:  w.NotAfter.Unix(),
	}
}
