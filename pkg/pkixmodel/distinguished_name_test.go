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

package pkixmodel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

var _ = Describe("DistinguishedName", func() {
	Context("DER round-trip", func() {
		It("preserves order and values for well-known attributes", func() {
			dn, err := pkixmodel.NewDistinguishedName(
				[2]string{"common_name", "leaf.example.com"},
				[2]string{"organization_name", "Example Org"},
				[2]string{"country_name", "US"},
			)
			Expect(err).NotTo(HaveOccurred())

			der, err := dn.DER()
			Expect(err).NotTo(HaveOccurred())

			decoded, err := pkixmodel.DistinguishedNameFromDER(der)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal(dn))
		})

		It("round-trips an empty DN", func() {
			var dn pkixmodel.DistinguishedName
			der, err := dn.DER()
			Expect(err).NotTo(HaveOccurred())

			decoded, err := pkixmodel.DistinguishedNameFromDER(der)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.IsEmpty()).To(BeTrue())
		})
	})

	Context("attribute validation", func() {
		It("rejects an unknown attribute name", func() {
			_, err := pkixmodel.NewIdentityFragment("not_a_real_attribute", "x")
			Expect(err).To(HaveOccurred())
		})

		It("rejects a country_name value exceeding its two character maximum", func() {
			_, err := pkixmodel.NewIdentityFragment("country_name", "USA")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("ParseRFC2253DN", func() {
		It("parses a simple DN string", func() {
			dn, err := pkixmodel.ParseRFC2253DN("CN=foo,O=bar,C=US")
			Expect(err).NotTo(HaveOccurred())
			Expect(dn).To(HaveLen(3))
			Expect(dn[0][0].Name).To(Equal("common_name"))
			Expect(dn[0][0].Value).To(Equal("foo"))
		})
	})
})
