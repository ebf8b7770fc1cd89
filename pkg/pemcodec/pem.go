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

// Package pemcodec frames and parses PEM blocks: BEGIN/END delimiters
// around a 64-column base64 body, built on encoding/pem.
package pemcodec

import (
	"bytes"
	"encoding/pem"
	"fmt"
)

// Label is a PEM block type string, the text between "-----BEGIN " and
// "-----".
type Label string

// Well-known labels this library recognises by name. Any other label
// string is still a valid Label value; it is simply not one of these
// named constants.
const (
	LabelCertificate          Label = "CERTIFICATE"
	LabelX509CRL              Label = "X509 CRL"
	LabelCertificateRequest   Label = "CERTIFICATE REQUEST"
	LabelCMS                  Label = "CMS"
	LabelPrivateKey           Label = "PRIVATE KEY"
	LabelEncryptedPrivateKey  Label = "ENCRYPTED PRIVATE KEY"
	LabelAttributeCertificate Label = "ATTRIBUTE CERTIFICATE"
	LabelPublicKey            Label = "PUBLIC KEY"
)

// Block is one decoded PEM block: its label and the raw DER bytes of its
// base64 body.
type Block struct {
	Label Label
	Bytes []byte
}

// Encode frames der as a single PEM block under label, with the body
// wrapped at 64 columns.
func Encode(label Label, der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: string(label), Bytes: der})
}

// ParseAll decodes every PEM block in data, in order. A BEGIN delimiter
// with no matching END delimiter is reported as a decoding error rather
// than silently dropped.
func ParseAll(data []byte) ([]Block, error) {
	beginCount := bytes.Count(data, []byte("-----BEGIN "))

	var blocks []Block
	rest := data
	for {
		var p *pem.Block
		p, rest = pem.Decode(rest)
		if p == nil {
			break
		}
		blocks = append(blocks, Block{Label: Label(p.Type), Bytes: p.Bytes})
	}

	if len(blocks) < beginCount {
		return nil, newDecodingError(
			fmt.Sprintf("missing END terminator for block %d of %d", len(blocks)+1, beginCount), nil)
	}
	return blocks, nil
}

// ParseOne decodes data and requires it to hold exactly one PEM block.
// Text before or after the block that is not PEM framing is ignored.
func ParseOne(data []byte) (Block, error) {
	blocks, err := ParseAll(data)
	if err != nil {
		return Block{}, err
	}
	if len(blocks) != 1 {
		return Block{}, newDecodingError(fmt.Sprintf("expected exactly one PEM block, found %d", len(blocks)), nil)
	}
	return blocks[0], nil
}
