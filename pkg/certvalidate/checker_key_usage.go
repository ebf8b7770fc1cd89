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

// KeyUsageChecker requires every certificate in the chain to carry the
// configured KeyUsage flags, with a separate set for the leaf and for
// every issuing certificate above it.
type KeyUsageChecker struct {
	RequiredLeafKUs   []pkixmodel.KeyUsageFlag
	RequiredIssuerKUs []pkixmodel.KeyUsageFlag
}

// NewKeyUsageChecker builds a KeyUsageChecker with the default
// requirement set: DigitalSignature on the leaf, KeyCertSign on every
// issuer.
func NewKeyUsageChecker() KeyUsageChecker {
	return KeyUsageChecker{
		RequiredLeafKUs:   []pkixmodel.KeyUsageFlag{pkixmodel.DigitalSignature},
		RequiredIssuerKUs: []pkixmodel.KeyUsageFlag{pkixmodel.KeyCertSign},
	}
}

// Check implements ExtensionChecker.
func (c KeyUsageChecker) Check(chain []*certparse.CertificateParser, pending *PendingOIDs) error {
	for i, cert := range chain {
		required := c.RequiredLeafKUs
		if i > 0 {
			required = c.RequiredIssuerKUs
		}
		ku, present, err := cert.GetKeyUsage()
		if err != nil {
			return newValidationError(ExtensionHandlingFailure, "decode KeyUsage", err)
		}
		if !present {
			if len(required) > 0 {
				return newValidationError(ExtensionHandlingFailure,
					fmt.Sprintf("certificate %s missing required KeyUsage", cert.Fingerprint()), nil)
			}
			continue
		}
		for _, flag := range required {
			if !ku[flag] {
				return newValidationError(ExtensionHandlingFailure,
					fmt.Sprintf("certificate %s missing required KeyUsage flag", cert.Fingerprint()), nil)
			}
		}
	}
	pending.Remove(pkixmodel.OIDKeyUsage)
	return nil
}
