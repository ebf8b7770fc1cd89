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
	"fmt"

	"github.com/mydriatech/upkit-x509-go/pkg/certparse"
	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

// CertificatePoliciesChecker requires the declared CertificatePolicies of
// each certificate to be a superset of the configured required policies,
// with a separate requirement set for the leaf and for every issuer.
type CertificatePoliciesChecker struct {
	RequiredLeafPolicies   []asn1.ObjectIdentifier
	RequiredIssuerPolicies []asn1.ObjectIdentifier
}

// Check implements ExtensionChecker.
func (c CertificatePoliciesChecker) Check(chain []*certparse.CertificateParser, pending *PendingOIDs) error {
	for i, cert := range chain {
		required := c.RequiredLeafPolicies
		if i > 0 {
			required = c.RequiredIssuerPolicies
		}
		if len(required) == 0 {
			continue
		}
		policies, present, err := cert.GetCertificatePolicies()
		if err != nil {
			return newValidationError(ExtensionHandlingFailure, "decode CertificatePolicies", err)
		}
		declared := make(map[string]bool, len(policies))
		if present {
			for _, p := range policies {
				declared[p.OID.String()] = true
			}
		}
		for _, req := range required {
			if !declared[req.String()] {
				return newValidationError(ExtensionHandlingFailure,
					fmt.Sprintf("certificate %s missing required policy %s", cert.Fingerprint(), req.String()), nil)
			}
		}
	}
	pending.Remove(pkixmodel.OIDCertificatePolicies)
	return nil
}
