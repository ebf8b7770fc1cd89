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

package certparse

import (
	"encoding/asn1"

	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

// CertificateParser decodes a DER-encoded X.509 certificate once at
// construction time and exposes typed accessors for its fields and
// extensions on demand. Immutable after construction.
type CertificateParser struct {
	der         []byte
	fingerprint string
	cert        pkixmodel.Certificate
	tbs         pkixmodel.TBSCertificate
}

// NewCertificateParser decodes der into a CertificateParser, failing with
// a CertificateDecodingError (wrapping a best-effort diagnostic structural
// dump) if the ASN.1 codec rejects the input anywhere in the structure.
func NewCertificateParser(der []byte) (*CertificateParser, error) {
	cert, err := pkixmodel.CertificateFromDER(der)
	if err != nil {
		return nil, newParsingError("decode Certificate: "+pkixmodel.DiagnosticDump(der), err)
	}
	tbs, err := pkixmodel.TBSCertificateFromDER(cert.TBSDER)
	if err != nil {
		return nil, newParsingError("decode TBSCertificate: "+pkixmodel.DiagnosticDump(cert.TBSDER), err)
	}
	return &CertificateParser{
		der:         der,
		fingerprint: pkixmodel.Sha3_512Hex(der),
		cert:        cert,
		tbs:         tbs,
	}, nil
}

// DER returns the original certificate bytes this parser was constructed
// from.
func (p *CertificateParser) DER() []byte {
	return p.der
}

// Fingerprint returns the lower-case hex SHA3-512 fingerprint of the
// original certificate bytes.
func (p *CertificateParser) Fingerprint() string {
	return p.fingerprint
}

// TBSDER returns the encoded TBSCertificate as it was signed over.
func (p *CertificateParser) TBSDER() []byte {
	return p.cert.TBSDER
}

// SerialNumber returns the certificate's serial number.
func (p *CertificateParser) SerialNumber() pkixmodel.SerialNumber {
	return p.tbs.SerialNumber
}

// Validity returns the certificate's validity period.
func (p *CertificateParser) Validity() pkixmodel.Validity {
	return p.tbs.Validity
}

// IsValidAt reports whether the certificate is valid at atEpochSeconds.
func (p *CertificateParser) IsValidAt(atEpochSeconds int64) bool {
	return p.tbs.Validity.IsValidAt(atEpochSeconds)
}

// Subject returns the subject distinguished name.
func (p *CertificateParser) Subject() pkixmodel.DistinguishedName {
	return p.tbs.Subject
}

// Issuer returns the issuer distinguished name.
func (p *CertificateParser) Issuer() pkixmodel.DistinguishedName {
	return p.tbs.Issuer
}

// EncodedSubject returns the DER encoding and SHA3-512 hex fingerprint of
// the subject distinguished name.
func (p *CertificateParser) EncodedSubject() (der []byte, fingerprint string, err error) {
	der, err = p.tbs.Subject.DER()
	if err != nil {
		return nil, "", newParsingError("encode subject DN", err)
	}
	return der, pkixmodel.Sha3_512Hex(der), nil
}

// EncodedIssuer returns the DER encoding and SHA3-512 hex fingerprint of
// the issuer distinguished name.
func (p *CertificateParser) EncodedIssuer() (der []byte, fingerprint string, err error) {
	der, err = p.tbs.Issuer.DER()
	if err != nil {
		return nil, "", newParsingError("encode issuer DN", err)
	}
	return der, pkixmodel.Sha3_512Hex(der), nil
}

// SubjectPublicKeyInfoDER returns the opaque DER-encoded SPKI.
func (p *CertificateParser) SubjectPublicKeyInfoDER() []byte {
	return p.tbs.SubjectPublicKeyInfoDER
}

// SignatureAlgorithmOID returns the dotted OID string of the outer
// certificate's signature algorithm.
func (p *CertificateParser) SignatureAlgorithmOID() string {
	return p.cert.SignatureAlgorithm.OID.String()
}

// SignatureValue returns the raw signature bytes.
func (p *CertificateParser) SignatureValue() []byte {
	return p.cert.Signature
}

// CriticalExtensionOIDs returns the OIDs of every extension marked
// critical.
func (p *CertificateParser) CriticalExtensionOIDs() []asn1.ObjectIdentifier {
	return p.tbs.Extensions.CriticalOIDs()
}

func (p *CertificateParser) findExtension(oid asn1.ObjectIdentifier) (pkixmodel.ExtensionEntry, bool) {
	return p.tbs.Extensions.Find(oid)
}

// GetBasicConstraints returns the BasicConstraints extension, if present.
func (p *CertificateParser) GetBasicConstraints() (pkixmodel.BasicConstraints, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDBasicConstraints)
	if !ok {
		return pkixmodel.BasicConstraints{}, false, nil
	}
	bc, err := pkixmodel.DecodeBasicConstraints(entry.Value)
	if err != nil {
		return pkixmodel.BasicConstraints{}, true, newParsingError("decode BasicConstraints", err)
	}
	return bc, true, nil
}

// IsLeaf reports whether this certificate has no BasicConstraints, or a
// BasicConstraints that is not a CA, matching the validator's definition
// of a leaf.
func (p *CertificateParser) IsLeaf() (bool, error) {
	bc, present, err := p.GetBasicConstraints()
	if err != nil {
		return false, err
	}
	if !present {
		return true, nil
	}
	return bc.IsLeaf(), nil
}

// GetKeyUsage returns the KeyUsage extension as a fixed nine-bool array,
// [0]=DigitalSignature .. [8]=DecipherOnly, if present.
func (p *CertificateParser) GetKeyUsage() (pkixmodel.KeyUsage, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDKeyUsage)
	if !ok {
		return pkixmodel.KeyUsage{}, false, nil
	}
	ku, err := pkixmodel.DecodeKeyUsage(entry.Value)
	if err != nil {
		return pkixmodel.KeyUsage{}, true, newParsingError("decode KeyUsage", err)
	}
	return ku, true, nil
}

// GetExtendedKeyUsage returns the ExtendedKeyUsage extension, if present.
func (p *CertificateParser) GetExtendedKeyUsage() ([]pkixmodel.ExtendedKeyUsage, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDExtendedKeyUsage)
	if !ok {
		return nil, false, nil
	}
	ekus, err := pkixmodel.DecodeExtendedKeyUsageList(entry.Value)
	if err != nil {
		return nil, true, newParsingError("decode ExtendedKeyUsage", err)
	}
	return ekus, true, nil
}

// GetSubjectKeyIdentifier returns the SubjectKeyIdentifier bytes, if
// present.
func (p *CertificateParser) GetSubjectKeyIdentifier() ([]byte, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDSubjectKeyIdentifier)
	if !ok {
		return nil, false, nil
	}
	kid, err := pkixmodel.DecodeSubjectKeyIdentifier(entry.Value)
	if err != nil {
		return nil, true, newParsingError("decode SubjectKeyIdentifier", err)
	}
	return kid, true, nil
}

// GetAuthorityKeyIdentifier returns the AuthorityKeyIdentifier's
// keyIdentifier bytes, if present.
func (p *CertificateParser) GetAuthorityKeyIdentifier() ([]byte, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDAuthorityKeyIdentifier)
	if !ok {
		return nil, false, nil
	}
	kid, err := pkixmodel.DecodeAuthorityKeyIdentifier(entry.Value)
	if err != nil {
		return nil, true, newParsingError("decode AuthorityKeyIdentifier", err)
	}
	return kid, true, nil
}

// GetCertificatePolicies returns the CertificatePolicies extension, if
// present.
func (p *CertificateParser) GetCertificatePolicies() ([]pkixmodel.CertificatePolicy, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDCertificatePolicies)
	if !ok {
		return nil, false, nil
	}
	policies, err := pkixmodel.DecodeCertificatePolicies(entry.Value)
	if err != nil {
		return nil, true, newParsingError("decode CertificatePolicies", err)
	}
	return policies, true, nil
}

// GetAuthorityInformationAccess returns the AuthorityInformationAccess
// extension, if present.
func (p *CertificateParser) GetAuthorityInformationAccess() ([]pkixmodel.AIADescription, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDAuthorityInformationAccess)
	if !ok {
		return nil, false, nil
	}
	descs, err := pkixmodel.DecodeAuthorityInformationAccess(entry.Value)
	if err != nil {
		return nil, true, newParsingError("decode AuthorityInformationAccess", err)
	}
	return descs, true, nil
}

// GetCRLDistributionPoint returns the CRLDistributionPoints extension, if
// present.
func (p *CertificateParser) GetCRLDistributionPoint() (pkixmodel.CRLDistributionPoint, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDCRLDistributionPoints)
	if !ok {
		return pkixmodel.CRLDistributionPoint{}, false, nil
	}
	cdp, err := pkixmodel.DecodeCRLDistributionPoint(entry.Value)
	if err != nil {
		return pkixmodel.CRLDistributionPoint{}, true, newParsingError("decode CRLDistributionPoint", err)
	}
	return cdp, true, nil
}

// GetSubjectAlternativeName returns the SubjectAlternativeName extension,
// if present.
func (p *CertificateParser) GetSubjectAlternativeName() (pkixmodel.AlternativeName, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDSubjectAlternativeName)
	if !ok {
		return nil, false, nil
	}
	names, err := pkixmodel.DecodeAlternativeName(entry.Value)
	if err != nil {
		return nil, true, newParsingError("decode SubjectAlternativeName", err)
	}
	return names, true, nil
}

// GetIssuerAlternativeName returns the IssuerAlternativeName extension,
// if present.
func (p *CertificateParser) GetIssuerAlternativeName() (pkixmodel.AlternativeName, bool, error) {
	entry, ok := p.findExtension(pkixmodel.OIDIssuerAlternativeName)
	if !ok {
		return nil, false, nil
	}
	names, err := pkixmodel.DecodeAlternativeName(entry.Value)
	if err != nil {
		return nil, true, newParsingError("decode IssuerAlternativeName", err)
	}
	return names, true, nil
}
