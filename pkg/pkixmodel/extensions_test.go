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
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

var _ = Describe("Extensions builder", func() {
	It("marks BasicConstraints critical iff CA", func() {
		e := pkixmodel.NewExtensions()
		Expect(e.AddBasicConstraints(pkixmodel.BasicConstraints{CA: true})).To(Succeed())
		entry, ok := e.Find(pkixmodel.OIDBasicConstraints)
		Expect(ok).To(BeTrue())
		Expect(entry.Critical).To(BeTrue())
	})

	It("always marks KeyUsage critical and omits an empty one", func() {
		e := pkixmodel.NewExtensions()
		Expect(e.AddKeyUsage(pkixmodel.NewKeyUsage(pkixmodel.DigitalSignature))).To(Succeed())
		entry, ok := e.Find(pkixmodel.OIDKeyUsage)
		Expect(ok).To(BeTrue())
		Expect(entry.Critical).To(BeTrue())

		e2 := pkixmodel.NewExtensions()
		Expect(e2.AddKeyUsage(pkixmodel.KeyUsage{})).To(Succeed())
		_, ok = e2.Find(pkixmodel.OIDKeyUsage)
		Expect(ok).To(BeFalse())
	})

	It("marks SAN critical iff the subject DN is empty", func() {
		names := pkixmodel.AlternativeName{{Kind: pkixmodel.DnsName, Value: "example.com"}}

		e := pkixmodel.NewExtensions()
		Expect(e.AddSubjectAlternativeName(names, true)).To(Succeed())
		entry, _ := e.Find(pkixmodel.OIDSubjectAlternativeName)
		Expect(entry.Critical).To(BeTrue())

		e2 := pkixmodel.NewExtensions()
		Expect(e2.AddSubjectAlternativeName(names, false)).To(Succeed())
		entry2, _ := e2.Find(pkixmodel.OIDSubjectAlternativeName)
		Expect(entry2.Critical).To(BeFalse())
	})

	It("rejects a duplicate extension OID", func() {
		e := pkixmodel.NewExtensions()
		Expect(e.AddBasicConstraints(pkixmodel.BasicConstraints{CA: true})).To(Succeed())
		Expect(e.AddBasicConstraints(pkixmodel.BasicConstraints{CA: false})).To(HaveOccurred())
	})
})

var _ = Describe("KeyUsage wire encoding", func() {
	It("trims trailing zero bits", func() {
		ku := pkixmodel.NewKeyUsage(pkixmodel.DigitalSignature)
		der, err := ku.Encode()
		Expect(err).NotTo(HaveOccurred())
		// BIT STRING tag(1) + length(1) + unused-bits-count(1) + 1 content byte == 4 bytes.
		Expect(der).To(HaveLen(4))
	})

	It("round-trips all nine flags", func() {
		ku := pkixmodel.NewKeyUsage(
			pkixmodel.DigitalSignature, pkixmodel.NonRepudiation, pkixmodel.KeyEncipherment,
			pkixmodel.DataEncipherment, pkixmodel.KeyAgreement, pkixmodel.KeyCertSign,
			pkixmodel.CRLSign, pkixmodel.EncipherOnly, pkixmodel.DecipherOnly,
		)
		der, err := ku.Encode()
		Expect(err).NotTo(HaveOccurred())
		decoded, err := pkixmodel.DecodeKeyUsage(der)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(ku))
	})
})

var _ = Describe("ExtendedKeyUsage round-trip", func() {
	It("round-trips well-known and custom EKUs", func() {
		ekus := []pkixmodel.ExtendedKeyUsage{
			pkixmodel.WellKnownExtendedKeyUsage(pkixmodel.PkixServerAuth),
			pkixmodel.CustomExtendedKeyUsage(pkixmodel.MustParseOID("1.2.3.4.5")),
		}
		der, err := pkixmodel.EncodeExtendedKeyUsageList(ekus)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := pkixmodel.DecodeExtendedKeyUsageList(der)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(ekus))
	})
})

var _ = Describe("CertificatePolicy", func() {
	It("truncates explicit_text to 200 characters", func() {
		cp := pkixmodel.NewUserNoticePolicy(pkixmodel.AnyPolicy.OID(), nil, strings.Repeat("x", 500))
		Expect(cp.ExplicitText).To(HaveLen(200))
	})

	It("round-trips an OidOnly policy", func() {
		cp := pkixmodel.NewOidOnlyPolicy(pkixmodel.CabfDomainValidated.OID())
		der, err := pkixmodel.EncodeCertificatePolicies([]pkixmodel.CertificatePolicy{cp})
		Expect(err).NotTo(HaveOccurred())
		decoded, err := pkixmodel.DecodeCertificatePolicies(der)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(HaveLen(1))
		Expect(decoded[0].OID.Equal(pkixmodel.CabfDomainValidated.OID())).To(BeTrue())
	})

	It("round-trips a CSP policy", func() {
		cp := pkixmodel.NewCSPPolicy(pkixmodel.AnyPolicy.OID(), "https://example.com/cps")
		der, err := pkixmodel.EncodeCertificatePolicies([]pkixmodel.CertificatePolicy{cp})
		Expect(err).NotTo(HaveOccurred())
		decoded, err := pkixmodel.DecodeCertificatePolicies(der)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded[0].CPSUri).To(Equal("https://example.com/cps"))
	})
})

var _ = Describe("GeneralName", func() {
	It("round-trips a DNS name through punycode", func() {
		names := pkixmodel.AlternativeName{{Kind: pkixmodel.DnsName, Value: "straße.example"}}
		der, err := pkixmodel.EncodeAlternativeName(names)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := pkixmodel.DecodeAlternativeName(der)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(HaveLen(1))
		Expect(decoded[0].Value).To(Equal(strings.ToLower("straße.example")))
	})

	It("round-trips an IPv4 address", func() {
		names := pkixmodel.AlternativeName{{Kind: pkixmodel.IpAddress, Value: "192.0.2.1"}}
		der, err := pkixmodel.EncodeAlternativeName(names)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := pkixmodel.DecodeAlternativeName(der)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded[0].Value).To(Equal("192.0.2.1"))
	})

	It("round-trips a registeredID OID", func() {
		names := pkixmodel.AlternativeName{{Kind: pkixmodel.RegisteredId, Value: "1.2.3.4.5.6"}}
		der, err := pkixmodel.EncodeAlternativeName(names)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := pkixmodel.DecodeAlternativeName(der)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded[0].Value).To(Equal("1.2.3.4.5.6"))
	})
})

var _ = Describe("AuthorityInformationAccess", func() {
	It("round-trips an OCSP and a CA-issuers entry", func() {
		descs := []pkixmodel.AIADescription{
			pkixmodel.NewOcspAccessDescription("http://ocsp.example.com"),
			pkixmodel.NewCaIssuersAccessDescription(pkixmodel.GeneralName{Kind: pkixmodel.Uri, Value: "http://ca.example.com/ca.crt"}),
		}
		der, err := pkixmodel.EncodeAuthorityInformationAccess(descs)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := pkixmodel.DecodeAuthorityInformationAccess(der)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(descs))
	})
})

var _ = Describe("CRLDistributionPoint", func() {
	It("round-trips a single URI", func() {
		cdp := pkixmodel.NewCRLDistributionPoint("http://crl.example.com/ca.crl")
		der, err := pkixmodel.EncodeCRLDistributionPoint(cdp)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := pkixmodel.DecodeCRLDistributionPoint(der)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(cdp))
	})
})

var _ = Describe("Key identifiers", func() {
	It("derives a 32 byte SHA3-256 identifier", func() {
		kid := pkixmodel.KeyIdentifierFromPublicKey([]byte("some raw public key bytes"))
		Expect(kid).To(HaveLen(32))
	})

	It("round-trips SubjectKeyIdentifier and AuthorityKeyIdentifier", func() {
		kid := pkixmodel.KeyIdentifierFromPublicKey([]byte("another key"))

		skiDER, err := pkixmodel.EncodeSubjectKeyIdentifier(kid)
		Expect(err).NotTo(HaveOccurred())
		decodedSKI, err := pkixmodel.DecodeSubjectKeyIdentifier(skiDER)
		Expect(err).NotTo(HaveOccurred())
		Expect(decodedSKI).To(Equal(kid))

		akiDER, err := pkixmodel.EncodeAuthorityKeyIdentifier(kid)
		Expect(err).NotTo(HaveOccurred())
		decodedAKI, err := pkixmodel.DecodeAuthorityKeyIdentifier(akiDER)
		Expect(err).NotTo(HaveOccurred())
		Expect(decodedAKI).To(Equal(kid))
	})
})
