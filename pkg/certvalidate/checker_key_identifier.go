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
	"fmt"

	"github.com/mydriatech/upkit-x509-go/pkg/certparse"
	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

// KeyIdentifierChecker walks the chain leaf-to-anchor and, whenever the
// previously visited certificate declared an AuthorityKeyIdentifier,
// requires the current certificate's SubjectKeyIdentifier to be present
// and byte-equal to it.
type KeyIdentifierChecker struct{}

// Check implements ExtensionChecker.
func (KeyIdentifierChecker) Check(chain []*certparse.CertificateParser, pending *PendingOIDs) error {
	var prevAKI []byte
	havePrevAKI := false
	for _, cert := range chain {
		if havePrevAKI {
			ski, present, err := cert.GetSubjectKeyIdentifier()
			if err != nil {
				return newValidationError(ExtensionHandlingFailure, "decode SubjectKeyIdentifier", err)
			}
			if !present || !bytes.Equal(ski, prevAKI) {
				return newValidationError(ExtensionHandlingFailure,
					fmt.Sprintf("certificate %s SubjectKeyIdentifier does not match parent AuthorityKeyIdentifier", cert.Fingerprint()), nil)
			}
		}
		aki, present, err := cert.GetAuthorityKeyIdentifier()
		if err != nil {
			return newValidationError(ExtensionHandlingFailure, "decode AuthorityKeyIdentifier", err)
		}
		prevAKI, havePrevAKI = aki, present
	}
	pending.Remove(pkixmodel.OIDSubjectKeyIdentifier)
	pending.Remove(pkixmodel.OIDAuthorityKeyIdentifier)
	return nil
}
