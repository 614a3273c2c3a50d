// go-pn532
// Copyright (c) 2025 The nfcd Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of nfcd.
//
// nfcd is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// nfcd is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with nfcd; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package ndef

import "golang.org/x/text/encoding/unicode"

const (
	textStatusUTF16    = 0x80
	textStatusReserved = 0x40
	textStatusLangMask = 0x3F
)

// decodeText decodes a Text record payload:
// [status:1][lang:L bytes ASCII][text: remaining].
//
// Bit 7 of status selects UTF-16 vs UTF-8, bit 6 is reserved and must be
// zero, and bits 5..0 give the language code length L. If 1+L exceeds the
// payload, or the reserved bit is set, decoding fails.
func decodeText(payload ByteView) (*TextPayload, bool) {
	if payload.Len() < 1 {
		return nil, false
	}
	b := payload.Bytes()
	status := b[0]
	if status&textStatusReserved != 0 {
		return nil, false
	}

	langLen := int(status & textStatusLangMask)
	if 1+langLen > payload.Len() {
		return nil, false
	}

	lang := string(b[1 : 1+langLen])
	textBytes := b[1+langLen:]

	if status&textStatusUTF16 == 0 {
		return &TextPayload{Lang: lang, Text: string(textBytes), Encoding: EncodingUTF8}, true
	}

	text, err := decodeUTF16BOM(textBytes)
	if err != nil {
		return nil, false
	}
	return &TextPayload{Lang: lang, Text: text, Encoding: EncodingUTF16}, true
}

// decodeUTF16BOM decodes b as UTF-16, honoring a leading byte-order mark
// when present and defaulting to big-endian otherwise, per the NFC Forum
// Text RTD.
func decodeUTF16BOM(b []byte) (string, error) {
	dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
