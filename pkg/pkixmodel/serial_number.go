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
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// SerialNumberMinOctets is the smallest serial number length this
	// package will generate.
	SerialNumberMinOctets = 9
	// SerialNumberMaxOctets is the largest serial number length this
	// package will generate or accept from a generator call.
	SerialNumberMaxOctets = 20
	// SerialNumberDefaultOctets is used by NewSerialNumber.
	SerialNumberDefaultOctets = 20
)

// SerialNumber is a positive, non-zero certificate serial number. Its wire
// form is a minimal big-endian two's-complement integer whose top bit is
// always clear, so it is represented here as a *big.Int that is guaranteed
// positive.
type SerialNumber struct {
	value *big.Int
}

// NewSerialNumber generates a fresh random serial number using
// SerialNumberDefaultOctets of CSPRNG output.
func NewSerialNumber() (SerialNumber, error) {
	return NewSerialNumberWithLength(SerialNumberDefaultOctets)
}

// NewSerialNumberWithLength generates a fresh random serial number of the
// requested octet length, clamped to [SerialNumberMinOctets,
// SerialNumberMaxOctets]. The most significant bit of the leading octet is
// always cleared so the value encodes as positive, and generation retries
// until that leading octet is non-zero, so the value is exactly the
// clamped length and never zero.
func NewSerialNumberWithLength(octets int) (SerialNumber, error) {
	if octets < SerialNumberMinOctets {
		octets = SerialNumberMinOctets
	}
	if octets > SerialNumberMaxOctets {
		octets = SerialNumberMaxOctets
	}
	buf := make([]byte, octets)
	for {
		if _, err := rand.Read(buf); err != nil {
			return SerialNumber{}, fmt.Errorf("pkixmodel: failed to read random bytes for serial number: %w", err)
		}
		buf[0] &= 0x7f
		if buf[0] != 0 {
			return SerialNumber{value: new(big.Int).SetBytes(buf)}, nil
		}
	}
}

// SerialNumberFromBytes wraps an already-decoded big-endian serial number,
// as produced by an ASN.1 INTEGER decode.
func SerialNumberFromBytes(b []byte) (SerialNumber, error) {
	v := new(big.Int).SetBytes(b)
	if v.Sign() == 0 {
		return SerialNumber{}, fmt.Errorf("pkixmodel: serial number must not be zero")
	}
	return SerialNumber{value: v}, nil
}

// SerialNumberFromBigInt wraps an existing positive big.Int, e.g. one
// produced by encoding/asn1 decoding directly into a *big.Int field.
func SerialNumberFromBigInt(v *big.Int) (SerialNumber, error) {
	if v == nil || v.Sign() <= 0 {
		return SerialNumber{}, fmt.Errorf("pkixmodel: serial number must be positive and non-zero")
	}
	return SerialNumber{value: new(big.Int).Set(v)}, nil
}

// BigInt returns the underlying value, suitable for assignment into an
// asn1.RawValue-free *big.Int struct field for DER encoding.
func (s SerialNumber) BigInt() *big.Int {
	return new(big.Int).Set(s.value)
}

// Bytes returns the minimal big-endian representation, without a leading
// sign octet, as would be carried in the INTEGER content.
func (s SerialNumber) Bytes() []byte {
	return s.value.Bytes()
}

// String returns the decimal textual representation.
func (s SerialNumber) String() string {
	if s.value == nil {
		return "0"
	}
	return s.value.String()
}

// Equal reports whether two serial numbers carry the same value.
func (s SerialNumber) Equal(other SerialNumber) bool {
	if s.value == nil || other.value == nil {
		return s.value == other.value
	}
	return s.value.Cmp(other.value) == 0
}
