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

package certvalidate_test

import (
	"encoding/asn1"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mydriatech/upkit-x509-go/pkg/certvalidate"
	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

var _ = Describe("CertificatePathValidator", func() {
	queryTime := time.Now().Unix()
	const notAfter = int64(2000000000)

	It("validates the synthetic three-certificate chain", func() {
		root, intermediate, leaf := threeCertChain(notAfter, "A")

		v, err := certvalidate.NewCertificatePathValidator([][]byte{root.der})
		Expect(err).NotTo(HaveOccurred())

		err = v.Validate([][]byte{leaf.der, intermediate.der}, queryTime)
		Expect(err).NotTo(HaveOccurred())
	})

	It("accepts the chain presented out of order", func() {
		root, intermediate, leaf := threeCertChain(notAfter, "B")

		v, err := certvalidate.NewCertificatePathValidator([][]byte{root.der})
		Expect(err).NotTo(HaveOccurred())

		err = v.Validate([][]byte{intermediate.der, leaf.der}, queryTime)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a chain not valid at the query time", func() {
		root, intermediate, leaf := threeCertChain(notAfter, "C")

		v, err := certvalidate.NewCertificatePathValidator([][]byte{root.der})
		Expect(err).NotTo(HaveOccurred())

		err = v.Validate([][]byte{leaf.der, intermediate.der}, notAfter+1)
		Expect(err).To(HaveOccurred())
		Expect(err.(*certvalidate.ValidationError).Kind).To(Equal(certvalidate.InvalidLifeSpan))
	})

	It("rejects a chain that does not reach a trust anchor", func() {
		otherRoot, _, _ := threeCertChain(notAfter, "D")
		_, intermediate, leaf := threeCertChain(notAfter, "E")

		v, err := certvalidate.NewCertificatePathValidator([][]byte{otherRoot.der})
		Expect(err).NotTo(HaveOccurred())

		err = v.Validate([][]byte{leaf.der, intermediate.der}, queryTime)
		Expect(err).To(HaveOccurred())
		Expect(err.(*certvalidate.ValidationError).Kind).To(Equal(certvalidate.NotTrusted))
	})

	It("rejects a chain with an unrecognised critical extension", func() {
		rootDN := mustDN([2]string{"common_name", "H1 Root CA 2"})
		subDN := mustDN([2]string{"common_name", "H1 Sub CA 2"})
		leafDN := mustDN([2]string{"common_name", "H1 Leaf 2"})

		rootKey := genKeyMaterial()
		subKey := genKeyMaterial()
		leafKey := genKeyMaterial()

		rootExts := pkixmodel.NewExtensions()
		Expect(rootExts.AddBasicConstraints(pkixmodel.BasicConstraints{CA: true})).To(Succeed())
		Expect(rootExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.KeyCertSign, pkixmodel.CRLSign))).To(Succeed())
		Expect(rootExts.AddSubjectKeyIdentifier(rootKey.ski)).To(Succeed())
		rootDER := signCert(rootDN, rootDN, rootKey, rootKey.priv, rootExts, notAfter)

		subExts := pkixmodel.NewExtensions()
		Expect(subExts.AddBasicConstraints(pkixmodel.BasicConstraints{CA: true})).To(Succeed())
		Expect(subExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.KeyCertSign, pkixmodel.CRLSign))).To(Succeed())
		Expect(subExts.AddSubjectKeyIdentifier(subKey.ski)).To(Succeed())
		Expect(subExts.AddAuthorityKeyIdentifier(rootKey.ski)).To(Succeed())
		subDER := signCert(subDN, rootDN, subKey, rootKey.priv, subExts, notAfter)

		leafExts := pkixmodel.NewExtensions()
		Expect(leafExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.DigitalSignature))).To(Succeed())
		Expect(leafExts.AddAuthorityKeyIdentifier(subKey.ski)).To(Succeed())
		// SubjectAlternativeName is forced critical here (the flag an
		// empty subject DN would set), and no standard checker
		// discharges it.
		Expect(leafExts.AddSubjectAlternativeName(
			pkixmodel.AlternativeName{{Kind: pkixmodel.DnsName, Value: "example.test"}}, true)).To(Succeed())
		leafDER := signCert(leafDN, subDN, leafKey, subKey.priv, leafExts, notAfter)

		v, err := certvalidate.NewCertificatePathValidator([][]byte{rootDER})
		Expect(err).NotTo(HaveOccurred())

		err = v.Validate([][]byte{leafDER, subDER}, queryTime)
		Expect(err).To(HaveOccurred())
		Expect(err.(*certvalidate.ValidationError).Kind).To(Equal(certvalidate.UnhandledCriticalExtensions))
	})

	It("enforces an extra CertificatePoliciesChecker when configured", func() {
		root, intermediate, leaf := threeCertChain(notAfter, "F")

		v, err := certvalidate.NewCertificatePathValidator([][]byte{root.der})
		Expect(err).NotTo(HaveOccurred())

		err = v.Validate([][]byte{leaf.der, intermediate.der}, queryTime,
			certvalidate.CertificatePoliciesChecker{
				RequiredLeafPolicies: []asn1.ObjectIdentifier{pkixmodel.MustParseOID("2.23.140.1.2.1")},
			})
		Expect(err).To(HaveOccurred())
		Expect(err.(*certvalidate.ValidationError).Kind).To(Equal(certvalidate.ExtensionHandlingFailure))
	})

	It("rejects a chain with a dangling certificate that cannot be linked", func() {
		root, intermediate, leaf := threeCertChain(notAfter, "G")

		orphanDN := mustDN([2]string{"common_name", "Unrelated Orphan CA"})
		orphanKey := genKeyMaterial()
		orphanExts := pkixmodel.NewExtensions()
		Expect(orphanExts.AddBasicConstraints(pkixmodel.BasicConstraints{CA: true})).To(Succeed())
		Expect(orphanExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.KeyCertSign, pkixmodel.CRLSign))).To(Succeed())
		orphanDER := signCert(orphanDN, orphanDN, orphanKey, orphanKey.priv, orphanExts, notAfter)

		v, err := certvalidate.NewCertificatePathValidator([][]byte{root.der})
		Expect(err).NotTo(HaveOccurred())

		err = v.Validate([][]byte{leaf.der, intermediate.der, orphanDER}, queryTime)
		Expect(err).To(HaveOccurred())
		Expect(err.(*certvalidate.ValidationError).Kind).To(Equal(certvalidate.NotOneLeaf))
	})

	It("passes a leaf satisfying an extra ExtendedKeyUsageChecker and CertificatePoliciesChecker (real-world-shaped chain)", func() {
		rootDN := mustDN([2]string{"common_name", "H1 Root CA 3"})
		subDN := mustDN([2]string{"common_name", "H1 Sub CA 3"})
		leafDN := mustDN([2]string{"common_name", "www.example.test"})

		rootKey := genKeyMaterial()
		subKey := genKeyMaterial()
		leafKey := genKeyMaterial()

		rootExts := pkixmodel.NewExtensions()
		Expect(rootExts.AddBasicConstraints(pkixmodel.BasicConstraints{CA: true})).To(Succeed())
		Expect(rootExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.KeyCertSign, pkixmodel.CRLSign))).To(Succeed())
		Expect(rootExts.AddSubjectKeyIdentifier(rootKey.ski)).To(Succeed())
		rootDER := signCert(rootDN, rootDN, rootKey, rootKey.priv, rootExts, notAfter)

		subExts := pkixmodel.NewExtensions()
		Expect(subExts.AddBasicConstraints(pkixmodel.BasicConstraints{CA: true})).To(Succeed())
		Expect(subExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.KeyCertSign, pkixmodel.CRLSign))).To(Succeed())
		Expect(subExts.AddSubjectKeyIdentifier(subKey.ski)).To(Succeed())
		Expect(subExts.AddAuthorityKeyIdentifier(rootKey.ski)).To(Succeed())
		subDER := signCert(subDN, rootDN, subKey, rootKey.priv, subExts, notAfter)

		leafExts := pkixmodel.NewExtensions()
		Expect(leafExts.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.DigitalSignature))).To(Succeed())
		Expect(leafExts.AddAuthorityKeyIdentifier(subKey.ski)).To(Succeed())
		Expect(leafExts.AddExtendedKeyUsage([]pkixmodel.ExtendedKeyUsage{
			pkixmodel.WellKnownExtendedKeyUsage(pkixmodel.PkixServerAuth),
		})).To(Succeed())
		Expect(leafExts.AddCertificatePolicies([]pkixmodel.CertificatePolicy{
			pkixmodel.NewOidOnlyPolicy(pkixmodel.MustParseOID("2.23.140.1.2.1")),
		})).To(Succeed())
		leafDER := signCert(leafDN, subDN, leafKey, subKey.priv, leafExts, notAfter)

		v, err := certvalidate.NewCertificatePathValidator([][]byte{rootDER})
		Expect(err).NotTo(HaveOccurred())

		err = v.Validate([][]byte{leafDER, subDER}, queryTime,
			certvalidate.ExtendedKeyUsageChecker{
				RequiredLeafEKUs: []pkixmodel.ExtendedKeyUsage{
					pkixmodel.WellKnownExtendedKeyUsage(pkixmodel.PkixServerAuth),
				},
			},
			certvalidate.CertificatePoliciesChecker{
				RequiredLeafPolicies: []asn1.ObjectIdentifier{pkixmodel.MustParseOID("2.23.140.1.2.1")},
			},
		)
		Expect(err).NotTo(HaveOccurred())
	})
})
