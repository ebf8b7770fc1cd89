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

package pkixmodel

import (
	"encoding/asn1"
	"sync"
)

// OIDExtendedKeyUsage is the RFC 5280 id-ce-extKeyUsage OID.
var OIDExtendedKeyUsage = MustParseOID("2.5.29.37")

// ExtendedKeyUsageName is a well-known EKU name drawn from the closed
// registry below, or "custom" when constructed via CustomExtendedKeyUsage.
type ExtendedKeyUsageName string

// Well-known Extended Key Usage names. See RFC 5280 4.2.1.12 and the
// various profile RFCs cited alongside each OID in the registry table.
const (
	AnyExtendedKeyUsage              ExtendedKeyUsageName = "any_extended_key_usage"
	PkinitClientAuth                 ExtendedKeyUsageName = "pkinit_client_auth"
	PkinitKeyDistributionCenter      ExtendedKeyUsageName = "pkinit_key_distribution_center"
	PkixServerAuth                   ExtendedKeyUsageName = "pkix_server_auth"
	PkixClientAuth                   ExtendedKeyUsageName = "pkix_client_auth"
	PkixCodeSigning                  ExtendedKeyUsageName = "pkix_code_signing"
	PkixEmailProtection              ExtendedKeyUsageName = "pkix_email_protection"
	PkixTimeStamping                 ExtendedKeyUsageName = "pkix_time_stamping"
	PkixOcspSigning                  ExtendedKeyUsageName = "pkix_ocsp_signing"
	PkixEapOverPpp                   ExtendedKeyUsageName = "pkix_eap_over_ppp"
	PkixEapOverLan                   ExtendedKeyUsageName = "pkix_eap_over_lan"
	PkixScvpServer                   ExtendedKeyUsageName = "pkix_scvp_server"
	PkixScvpClient                   ExtendedKeyUsageName = "pkix_scvp_client"
	PkixIpsecIke                     ExtendedKeyUsageName = "pkix_ipsec_ike"
	PkixSipDomain                    ExtendedKeyUsageName = "pkix_sip_domain"
	PkixSecureShellClient            ExtendedKeyUsageName = "pkix_secure_shell_client"
	PkixSecureShellServer            ExtendedKeyUsageName = "pkix_secure_shell_server"
	PkixDocumentSigning              ExtendedKeyUsageName = "pkix_document_signing"
	EtsiTlsSigning                   ExtendedKeyUsageName = "etsi_tls_signing"
	IcaoCscaMasterListSigningKey     ExtendedKeyUsageName = "icao_csca_master_list_signing_key"
	IcaoDeviationListSigningKey      ExtendedKeyUsageName = "icao_deviation_list_signing_key"
	NistPivCardAuth                  ExtendedKeyUsageName = "nist_piv_card_auth"
	MsIndividualCodeSigning          ExtendedKeyUsageName = "ms_individual_code_signing"
	MsCommercialCodeSigning          ExtendedKeyUsageName = "ms_commercial_code_signing"
	MsEncryptedFileSystem            ExtendedKeyUsageName = "ms_encrypted_file_system"
	MsEncryptedFileSystemRecovery    ExtendedKeyUsageName = "ms_encrypted_file_system_recovery"
	MsDocumentSigning                ExtendedKeyUsageName = "ms_document_signing"
	MsSmartCardLogon                 ExtendedKeyUsageName = "ms_smart_card_logon"
	MsKeyExchangeCertificate         ExtendedKeyUsageName = "ms_key_exchange_certificate"
	IntelAmt                         ExtendedKeyUsageName = "intel_amt"
	AdobeAuthenticDocumentsTrust     ExtendedKeyUsageName = "adobe_authentic_documents_trust"
	customExtendedKeyUsageName       ExtendedKeyUsageName = "custom"
)

// ExtendedKeyUsage is either a well-known name resolved through the
// registry below, or a Custom OID escape hatch for EKUs this package does
// not recognise by name.
type ExtendedKeyUsage struct {
	Name ExtendedKeyUsageName
	OID  asn1.ObjectIdentifier // only meaningful when Name == "custom"
}

// CustomExtendedKeyUsage builds an ExtendedKeyUsage for an OID with no
// well-known name.
func CustomExtendedKeyUsage(oid asn1.ObjectIdentifier) ExtendedKeyUsage {
	return ExtendedKeyUsage{Name: customExtendedKeyUsageName, OID: oid}
}

// WellKnownExtendedKeyUsage builds an ExtendedKeyUsage from one of the
// named constants above.
func WellKnownExtendedKeyUsage(name ExtendedKeyUsageName) ExtendedKeyUsage {
	return ExtendedKeyUsage{Name: name}
}

type ekuRegistry struct {
	oidByName map[ExtendedKeyUsageName]asn1.ObjectIdentifier
	nameByOID map[string]ExtendedKeyUsageName
}

var (
	ekuRegistryOnce sync.Once
	ekuReg          *ekuRegistry
)

var ekuEntries = []struct {
	name ExtendedKeyUsageName
	oid  string
}{
	{AnyExtendedKeyUsage, "2.5.29.37.0"},
	{PkinitClientAuth, "1.3.6.1.5.2.3.4"},
	{PkinitKeyDistributionCenter, "1.3.6.1.5.2.3.5"},
	{PkixServerAuth, "1.3.6.1.5.5.7.3.1"},
	{PkixClientAuth, "1.3.6.1.5.5.7.3.2"},
	{PkixCodeSigning, "1.3.6.1.5.5.7.3.3"},
	{PkixEmailProtection, "1.3.6.1.5.5.7.3.4"},
	{PkixTimeStamping, "1.3.6.1.5.5.7.3.8"},
	{PkixOcspSigning, "1.3.6.1.5.5.7.3.9"},
	{PkixEapOverPpp, "1.3.6.1.5.5.7.3.13"},
	{PkixEapOverLan, "1.3.6.1.5.5.7.3.14"},
	{PkixScvpServer, "1.3.6.1.5.5.7.3.15"},
	{PkixScvpClient, "1.3.6.1.5.5.7.3.16"},
	{PkixIpsecIke, "1.3.6.1.5.5.7.3.17"},
	{PkixSipDomain, "1.3.6.1.5.5.7.3.20"},
	{PkixSecureShellClient, "1.3.6.1.5.5.7.3.21"},
	{PkixSecureShellServer, "1.3.6.1.5.5.7.3.22"},
	{PkixDocumentSigning, "1.3.6.1.5.5.7.3.36"},
	{EtsiTlsSigning, "0.4.0.2231.3.0"},
	{IcaoCscaMasterListSigningKey, "2.23.136.1.1.3"},
	{IcaoDeviationListSigningKey, "2.23.136.1.1.8"},
	{NistPivCardAuth, "2.16.840.1.101.3.6.8"},
	{MsIndividualCodeSigning, "1.3.6.1.4.1.311.2.1.21"},
	{MsCommercialCodeSigning, "1.3.6.1.4.1.311.2.1.22"},
	{MsEncryptedFileSystem, "1.3.6.1.4.1.311.10.3.4"},
	{MsEncryptedFileSystemRecovery, "1.3.6.1.4.1.311.10.3.4.1"},
	{MsDocumentSigning, "1.3.6.1.4.1.311.10.3.12"},
	{MsSmartCardLogon, "1.3.6.1.4.1.311.20.2.2"},
	{MsKeyExchangeCertificate, "1.3.6.1.4.1.311.21.5"},
	{IntelAmt, "2.16.840.1.113741.1.2.3"},
	{AdobeAuthenticDocumentsTrust, "1.2.840.113583.1.1.5"},
}

func initEkuRegistry() {
	reg := &ekuRegistry{
		oidByName: make(map[ExtendedKeyUsageName]asn1.ObjectIdentifier, len(ekuEntries)),
		nameByOID: make(map[string]ExtendedKeyUsageName, len(ekuEntries)),
	}
	for _, e := range ekuEntries {
		oid := MustParseOID(e.oid)
		reg.oidByName[e.name] = oid
		reg.nameByOID[oid.String()] = e.name
	}
	ekuReg = reg
}

func getEkuRegistry() *ekuRegistry {
	ekuRegistryOnce.Do(initEkuRegistry)
	return ekuReg
}

// EffectiveOID resolves this ExtendedKeyUsage to its wire OID, whether it
// was constructed from a well-known name or as a CustomExtendedKeyUsage.
func (e ExtendedKeyUsage) EffectiveOID() asn1.ObjectIdentifier {
	return e.resolveOID()
}

func (e ExtendedKeyUsage) resolveOID() asn1.ObjectIdentifier {
	if e.Name == customExtendedKeyUsageName {
		return e.OID
	}
	return getEkuRegistry().oidByName[e.Name]
}

// extendedKeyUsageFromOID resolves a wire OID to an ExtendedKeyUsage,
// falling back to a Custom value when the OID is not in the registry.
func extendedKeyUsageFromOID(oid asn1.ObjectIdentifier) ExtendedKeyUsage {
	if name, ok := getEkuRegistry().nameByOID[oid.String()]; ok {
		return ExtendedKeyUsage{Name: name}
	}
	return CustomExtendedKeyUsage(oid)
}

// EncodeExtendedKeyUsageList DER-encodes a SEQUENCE OF OBJECT IDENTIFIER.
func EncodeExtendedKeyUsageList(ekus []ExtendedKeyUsage) ([]byte, error) {
	oids := make([]asn1.ObjectIdentifier, len(ekus))
	for i, e := range ekus {
		oids[i] = e.resolveOID()
	}
	return asn1.Marshal(oids)
}

// DecodeExtendedKeyUsageList parses an ExtendedKeyUsage extension value.
func DecodeExtendedKeyUsageList(der []byte) ([]ExtendedKeyUsage, error) {
	var oids []asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(der, &oids); err != nil {
		return nil, newIdentityFragmentError(DecodingFailure, "decode ExtendedKeyUsage", err)
	}
	ekus := make([]ExtendedKeyUsage, len(oids))
	for i, oid := range oids {
		ekus[i] = extendedKeyUsageFromOID(oid)
	}
	return ekus, nil
}
