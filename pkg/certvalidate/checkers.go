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
	"encoding/asn1"

	"github.com/mydriatech/upkit-x509-go/pkg/certparse"
)

// PendingOIDs tracks the set of critical-extension OIDs not yet
// discharged by any checker during one validate call.
type PendingOIDs struct {
	set map[string]asn1.ObjectIdentifier
}

func newPendingOIDs(oids []asn1.ObjectIdentifier) *PendingOIDs {
	p := &PendingOIDs{set: make(map[string]asn1.ObjectIdentifier, len(oids))}
	for _, oid := range oids {
		p.set[oid.String()] = oid
	}
	return p
}

// Remove discharges oid from the pending set. A no-op if oid is not
// pending.
func (p *PendingOIDs) Remove(oid asn1.ObjectIdentifier) {
	delete(p.set, oid.String())
}

// Has reports whether oid is still pending.
func (p *PendingOIDs) Has(oid asn1.ObjectIdentifier) bool {
	_, ok := p.set[oid.String()]
	return ok
}

// Remaining returns the still-pending OIDs in no particular order.
func (p *PendingOIDs) Remaining() []asn1.ObjectIdentifier {
	out := make([]asn1.ObjectIdentifier, 0, len(p.set))
	for _, oid := range p.set {
		out = append(out, oid)
	}
	return out
}

// ExtensionChecker is a pluggable validator component that handles one or
// more specific extensions across an ordered chain (leaf first, trust
// anchor last) and discharges the OIDs it claims to handle from pending.
// Checkers that reject a chain must not mutate pending.
type ExtensionChecker interface {
	Check(chain []*certparse.CertificateParser, pending *PendingOIDs) error
}
