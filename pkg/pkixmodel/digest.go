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
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// DigestByName resolves a digest algorithm name to a fresh hash.Hash. Only
// "SHA3-256" and "SHA3-512" are recognised, matching the two digests this
// library actually uses (key identifiers and fingerprints).
func DigestByName(name string) (hash.Hash, error) {
	switch name {
	case "SHA3-256":
		return sha3.New256(), nil
	case "SHA3-512":
		return sha3.New512(), nil
	default:
		return nil, fmt.Errorf("pkixmodel: unknown digest algorithm %q", name)
	}
}

// Sha3_256 returns the 32-byte SHA3-256 digest of data, used for
// SubjectKeyIdentifier/AuthorityKeyIdentifier key identifiers.
func Sha3_256(data []byte) []byte {
	d := sha3.Sum256(data)
	return d[:]
}

// Sha3_512Hex returns the lower-case hex SHA3-512 digest of data, the
// fingerprint convention used throughout this library for certificates,
// subjects and issuers.
func Sha3_512Hex(data []byte) string {
	d := sha3.Sum512(data)
	return hex.EncodeToString(d[:])
}
