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

// Header bit masks, byte offset 0 of a record.
const (
	hdrMB  = 0x80 // Message Begin
	hdrME  = 0x40 // Message End
	hdrCF  = 0x20 // Chunk Flag
	hdrSR  = 0x10 // Short Record
	hdrIL  = 0x08 // ID Length present
	hdrTNF = 0x07 // Type Name Format mask
)

// maxPayloadLength is the sanity gate from spec: payload_length must stay
// below 2^31, rejecting hostile frames outright.
const maxPayloadLength = uint32(1) << 31

// headerDescriptor carries an owned copy of one record's bytes and the
// offsets of its fields within that copy, produced by parseHeader and
// consumed by buildRecord. It never
// outlives the parse loop that created it.
type headerDescriptor struct {
	rec           ByteView
	typeOffset    int
	idOffset      int
	payloadOffset int
	typeLength    int
	idLength      int
	payloadLength uint32
	header        byte
}

func (d headerDescriptor) mb() bool   { return d.header&hdrMB != 0 }
func (d headerDescriptor) me() bool   { return d.header&hdrME != 0 }
func (d headerDescriptor) cf() bool   { return d.header&hdrCF != 0 }
func (d headerDescriptor) il() bool   { return d.header&hdrIL != 0 }
func (d headerDescriptor) tnf() TNF   { return clampTNF(d.header & hdrTNF) }
func (d headerDescriptor) typ() ByteView {
	return d.rec.sub(d.typeOffset, d.typeLength)
}
func (d headerDescriptor) id() ByteView {
	if !d.il() {
		return ByteView{}
	}
	return d.rec.sub(d.idOffset, d.idLength)
}
func (d headerDescriptor) payload() ByteView {
	return d.rec.sub(d.payloadOffset, int(d.payloadLength))
}

// parseHeader reads one record starting at input[0]. On success it
// returns the descriptor and true; the caller advances its cursor by
// desc.rec.Len(). On failure (truncated, or an insane payload length) it
// returns false and the caller must stop the chain-building loop.
func parseHeader(input ByteView) (headerDescriptor, bool) {
	if input.Len() < 3 {
		return headerDescriptor{}, false
	}

	b := input.Bytes()
	header := b[0]
	typeLength := int(b[1])

	pos := 2
	total := 1 + 1 + typeLength

	var payloadLength uint32
	if header&hdrSR != 0 {
		if pos+1 > input.Len() {
			return headerDescriptor{}, false
		}
		payloadLength = uint32(b[pos])
		pos++
		total += 1 + int(payloadLength)
	} else {
		if pos+4 > input.Len() {
			return headerDescriptor{}, false
		}
		payloadLength = binary.BigEndian.Uint32(b[pos : pos+4])
		pos += 4
		total += 4 + int(payloadLength)
	}

	if payloadLength >= maxPayloadLength {
		return headerDescriptor{}, false
	}

	var idLength int
	if header&hdrIL != 0 {
		if pos+1 > input.Len() {
			return headerDescriptor{}, false
		}
		idLength = int(b[pos])
		pos++
		total += 1 + idLength
	}

	if total > input.Len() {
		return headerDescriptor{}, false
	}

	typeOffset := pos
	pos += typeLength
	idOffset := pos
	pos += idLength
	payloadOffset := pos

	// Own a copy of exactly this record's bytes. input is whatever
	// buffer the caller handed to ParseMessage/ParseTLV — possibly one a
	// BlockReader reuses across reads — so Type/ID/Payload must not
	// alias it beyond this call.
	owned := make([]byte, total)
	copy(owned, b[:total])

	return headerDescriptor{
		rec:           NewByteView(owned),
		header:        header,
		typeOffset:    typeOffset,
		typeLength:    typeLength,
		idOffset:      idOffset,
		idLength:      idLength,
		payloadOffset: payloadOffset,
		payloadLength: payloadLength,
	}, true
}
