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

import "golang.org/x/net/idna"

var punycodeProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
)

// PunycodeEncode converts a UTF-8 DNS label or domain into its ASCII
// (punycode, "xn--") wire form. DNS names and the domain part of
// Rfc822Name values are kept as UTF-8 in the typed model and only
// punycoded at DER encode time.
func PunycodeEncode(domain string) (string, error) {
	return punycodeProfile.ToASCII(domain)
}

// PunycodeDecode converts an ASCII wire-form domain back to its UTF-8
// form. Round-tripping PunycodeDecode(PunycodeEncode(x)) yields
// x with case folded to lower-case.
func PunycodeDecode(ascii string) (string, error) {
	return punycodeProfile.ToUnicode(ascii)
}
