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
	"fmt"
	"strings"

	ber "github.com/go-asn1-ber/asn1-ber"
)

// DiagnosticDump produces a best-effort structural dump of a DER blob that
// failed to decode into a Go struct, for inclusion in a
// CertificateDecodingError message. It never fails: if even the generic
// BER reader chokes, it returns a short message saying so rather than
// propagating another error.
func DiagnosticDump(der []byte) string {
	packet, err := ber.DecodePacketErr(der)
	if err != nil {
		return fmt.Sprintf("<undecodable: %v>", err)
	}
	var b strings.Builder
	dumpPacket(&b, packet, 0)
	return b.String()
}

func dumpPacket(b *strings.Builder, p *ber.Packet, depth int) {
	fmt.Fprintf(b, "%s[class=%d tag=%d len=%d]", strings.Repeat("  ", depth), p.ClassType, p.Tag, len(p.Data.Bytes()))
	if len(p.Children) == 0 {
		fmt.Fprintf(b, " %x", p.Data.Bytes())
	}
	b.WriteByte('\n')
	for _, c := range p.Children {
		dumpPacket(b, c, depth+1)
	}
}
