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

// Package certbuild assembles to-be-signed (TBS) certificates and
// finalises them into signed Certificates once a signature is available,
// decoupling assembly from signing so the same builder serves both
// in-process and HSM-backed signers.
package certbuild

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/mydriatech/upkit-x509-go/pkg/pkixmodel"
)

// TbsBuilder composes a structured certificate template into a cached,
// DER-encoded TBSCertificate blob suitable for detached signing, and
// rehydrates a fully signed Certificate once the signature is available.
type TbsBuilder struct {
	log logr.Logger

	serialNumber pkixmodel.SerialNumber
	tbsDER       []byte
}

// Option configures a TbsBuilder at construction time.
type Option func(*TbsBuilder)

// WithLogger installs a structured logger. Defaults to logr.Discard().
func WithLogger(log logr.Logger) Option {
	return func(b *TbsBuilder) { b.log = log }
}

// NewTbsBuilder generates a fresh serial number, constructs a Validity
// with a backdated not_before, sets version v3, emits a TBSCertificate
// carrying the id-alg-noSignature placeholder signature algorithm, and
// caches the resulting DER encoding.
func NewTbsBuilder(
	issuer pkixmodel.DistinguishedName,
	subject pkixmodel.DistinguishedName,
	subjectPublicKeyInfoDER []byte,
	notAfterEpochSeconds int64,
	extensions *pkixmodel.Extensions,
	opts ...Option,
) (*TbsBuilder, error) {
	b := &TbsBuilder{log: logr.Discard()}
	for _, opt := range opts {
		opt(b)
	}

	serial, err := pkixmodel.NewSerialNumber()
	if err != nil {
		return nil, errors.Wrap(err, "certbuild: generate serial number")
	}

	tbs := pkixmodel.TBSCertificate{
		SerialNumber:            serial,
		Signature:               pkixmodel.NoSignatureAlgorithmIdentifier(),
		Issuer:                  issuer,
		Validity:                pkixmodel.NewValidity(time.Now().Unix(), notAfterEpochSeconds),
		Subject:                 subject,
		SubjectPublicKeyInfoDER: subjectPublicKeyInfoDER,
		Extensions:              extensions,
	}
	der, err := tbs.DER()
	if err != nil {
		return nil, errors.Wrap(err, "certbuild: encode TBSCertificate")
	}

	b.serialNumber = serial
	b.tbsDER = der
	return b, nil
}

// FromExistingTBS wraps an already-assembled TBSCertificate DER blob,
// without regenerating any of its fields. Accepts any well-formed TBS; if
// its signature algorithm is not the id-alg-noSignature placeholder, this
// is logged at debug level (V(1)) but does not prevent the builder from
// being constructed.
func FromExistingTBS(tbsDER []byte, opts ...Option) (*TbsBuilder, error) {
	b := &TbsBuilder{log: logr.Discard()}
	for _, opt := range opts {
		opt(b)
	}

	decoded, err := pkixmodel.TBSCertificateFromDER(tbsDER)
	if err != nil {
		return nil, errors.Wrap(err, "certbuild: decode existing TBSCertificate")
	}
	if !decoded.Signature.IsNoSignaturePlaceholder() {
		b.log.V(1).Info("existing TBSCertificate signature algorithm is not id-alg-noSignature",
			"algorithm", decoded.Signature.OID.String())
	}

	b.serialNumber = decoded.SerialNumber
	b.tbsDER = tbsDER
	return b, nil
}

// DER returns the cached TBSCertificate bytes as built by NewTbsBuilder or
// as passed to FromExistingTBS. WithSignatureAlgorithm and ToCertificate
// return rewritten copies and never modify this cache.
func (b *TbsBuilder) DER() []byte {
	return b.tbsDER
}

// SerialNumber returns the serial number this TBSCertificate was built
// with.
func (b *TbsBuilder) SerialNumber() pkixmodel.SerialNumber {
	return b.serialNumber
}

// WithSignatureAlgorithm decodes the cached TBS, overwrites its signature
// field with algIDDER's decoded AlgorithmIdentifier, re-encodes, and
// returns the bytes an external signer should sign over.
func (b *TbsBuilder) WithSignatureAlgorithm(algIDDER []byte) ([]byte, error) {
	algID, err := pkixmodel.AlgorithmIdentifierFromDER(algIDDER)
	if err != nil {
		return nil, errors.Wrap(err, "certbuild: decode signature AlgorithmIdentifier")
	}
	rewritten, err := pkixmodel.RewriteTBSSignatureAlgorithm(b.tbsDER, algID)
	if err != nil {
		return nil, errors.Wrap(err, "certbuild: rewrite TBS signature algorithm")
	}
	return rewritten, nil
}

// ToCertificate performs the same signature-algorithm rewrite as
// WithSignatureAlgorithm, then wraps the result together with
// signatureBytes into a signed Certificate.
func (b *TbsBuilder) ToCertificate(algIDDER []byte, signatureBytes []byte) (pkixmodel.Certificate, error) {
	algID, err := pkixmodel.AlgorithmIdentifierFromDER(algIDDER)
	if err != nil {
		return pkixmodel.Certificate{}, errors.Wrap(err, "certbuild: decode signature AlgorithmIdentifier")
	}
	rewritten, err := pkixmodel.RewriteTBSSignatureAlgorithm(b.tbsDER, algID)
	if err != nil {
		return pkixmodel.Certificate{}, errors.Wrap(err, "certbuild: rewrite TBS signature algorithm")
	}
	return pkixmodel.Certificate{
		TBSDER:             rewritten,
		SignatureAlgorithm: algID,
		Signature:          signatureBytes,
	}, nil
}
