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

// BasicConstraintsChecker requires every non-leaf certificate in the
// chain to carry BasicConstraints with is_ca=true and a path length
// sufficient to cover the intermediates below it.
//
// This is the corrected, non-inverted rule: every non-leaf must satisfy
// the predicate, not merely "not all fail it".
type BasicConstraintsChecker struct{}

// Check implements ExtensionChecker.
func (BasicConstraintsChecker) Check(chain []*certparse.CertificateParser, pending *PendingOIDs) error {
	for i := 1; i < len(chain); i++ {
		cert := chain[i]
		bc, present, err := cert.GetBasicConstraints()
		if err != nil {
			return newValidationError(ExtensionHandlingFailure, "decode BasicConstraints", err)
		}
		if !present || !bc.CA {
			return newValidationError(ExtensionHandlingFailure,
				fmt.Sprintf("certificate %s is not a CA", cert.Fingerprint()), nil)
		}
		if bc.PathLen != nil && *bc.PathLen < i-1 {
			return newValidationError(ExtensionHandlingFailure,
				fmt.Sprintf("certificate %s path_len %d insufficient for depth %d", cert.Fingerprint(), *bc.PathLen, i-1), nil)
		}
	}
	pending.Remove(pkixmodel.OIDBasicConstraints)
	return nil
}
