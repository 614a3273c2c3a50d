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

import "encoding/binary"

// TLV type bytes with special meaning (any other type is an ordinary
// Type-Length-Value block), plus tlvExtendedLen, the length-byte value
// that announces a two-byte big-endian length.
const (
	tlvNull        = 0x00
	tlvTerminator  = 0xFE
	TLVNdefMessage = 0x03
	tlvExtendedLen = 0xFF
)

// tlvIterator walks a TLV byte stream, yielding (type, value) pairs.
type tlvIterator struct {
	data ByteView
	pos  int
}

func newTLVIterator(data ByteView) *tlvIterator {
	return &tlvIterator{data: data}
}

// next returns the next (type, value) pair, or ok=false once the stream
// is exhausted or a terminator TLV is seen.
func (it *tlvIterator) next() (typ byte, value ByteView, ok bool) {
	for {
		if it.pos >= it.data.Len() {
			return 0, ByteView{}, false
		}
		typ = it.data.At(it.pos)
		it.pos++

		switch typ {
		case tlvNull:
			continue
		case tlvTerminator:
			return 0, ByteView{}, false
		}

		if it.pos >= it.data.Len() {
			return 0, ByteView{}, false
		}
		length := int(it.data.At(it.pos))
		it.pos++

		if length == tlvExtendedLen {
			if it.pos+2 > it.data.Len() {
				return 0, ByteView{}, false
			}
			length = int(binary.BigEndian.Uint16(it.data.Bytes()[it.pos : it.pos+2]))
			it.pos += 2
		}

		if it.pos+length > it.data.Len() {
			return 0, ByteView{}, false
		}
		value = it.data.sub(it.pos, length)
		it.pos += length
		return typ, value, true
	}
}
