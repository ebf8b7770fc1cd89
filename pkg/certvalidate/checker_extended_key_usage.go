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
	"fmt"

	"github.com/mydriatech/upkit-x509-go/pkg/certparse"
	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

// ExtendedKeyUsageChecker requires the declared ExtendedKeyUsage of each
// certificate to be a superset of the configured required usages, with a
// separate requirement set for the leaf and for every issuer.
type ExtendedKeyUsageChecker struct {
	RequiredLeafEKUs   []pkixmodel.ExtendedKeyUsage
	RequiredIssuerEKUs []pkixmodel.ExtendedKeyUsage
}

// Check implements ExtensionChecker.
func (c ExtendedKeyUsageChecker) Check(chain []*certparse.CertificateParser, pending *PendingOIDs) error {
	for i, cert := range chain {
		required := c.RequiredLeafEKUs
		if i > 0 {
			required = c.RequiredIssuerEKUs
		}
		if len(required) == 0 {
			continue
		}
		ekus, present, err := cert.GetExtendedKeyUsage()
		if err != nil {
			return newValidationError(ExtensionHandlingFailure, "decode ExtendedKeyUsage", err)
		}
		declared := make(map[string]bool, len(ekus))
		if present {
			for _, e := range ekus {
				declared[e.EffectiveOID().String()] = true
			}
		}
		for _, req := range required {
			if !declared[req.EffectiveOID().String()] {
				return newValidationError(ExtensionHandlingFailure,
					fmt.Sprintf("certificate %s missing required extended key usage %s", cert.Fingerprint(), req.EffectiveOID().String()), nil)
			}
		}
	}
	pending.Remove(pkixmodel.OIDExtendedKeyUsage)
	return nil
}
