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

package pemcodec_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mydriatech/upkit-x509-go/pkg/pemcodec"
)

var _ = Describe("pemcodec", func() {
	It("round-trips a single certificate block", func() {
		der := bytes.Repeat([]byte{0x30, 0x01, 0x02}, 20)
		framed := pemcodec.Encode(pemcodec.LabelCertificate, der)

		block, err := pemcodec.ParseOne(framed)
		Expect(err).NotTo(HaveOccurred())
		Expect(block.Label).To(Equal(pemcodec.LabelCertificate))
		Expect(block.Bytes).To(Equal(der))
	})

	It("parses an ordered multi-block bundle", func() {
		leaf := []byte("leaf-der")
		intermediate := []byte("intermediate-der")
		root := []byte("root-der")

		var buf bytes.Buffer
		buf.Write(pemcodec.Encode(pemcodec.LabelCertificate, leaf))
		buf.Write(pemcodec.Encode(pemcodec.LabelCertificate, intermediate))
		buf.Write(pemcodec.Encode(pemcodec.LabelCertificate, root))

		blocks, err := pemcodec.ParseAll(buf.Bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(HaveLen(3))
		Expect(blocks[0].Bytes).To(Equal(leaf))
		Expect(blocks[1].Bytes).To(Equal(intermediate))
		Expect(blocks[2].Bytes).To(Equal(root))
	})

	It("preserves a custom, unrecognised label", func() {
		framed := pemcodec.Encode(pemcodec.Label("OPAQUE BLOB"), []byte("payload"))
		block, err := pemcodec.ParseOne(framed)
		Expect(err).NotTo(HaveOccurred())
		Expect(block.Label).To(Equal(pemcodec.Label("OPAQUE BLOB")))
	})

	It("fails on a missing END terminator", func() {
		framed := pemcodec.Encode(pemcodec.LabelCertificate, []byte("payload"))
		truncated := bytes.Split(framed, []byte("-----END"))[0]

		_, err := pemcodec.ParseAll(truncated)
		Expect(err).To(HaveOccurred())
		var de *pemcodec.DecodingError
		Expect(err).To(BeAssignableToTypeOf(de))
	})

	It("rejects a bundle with no PEM blocks when one is required", func() {
		_, err := pemcodec.ParseOne([]byte("not pem data at all"))
		Expect(err).To(HaveOccurred())
	})
})
