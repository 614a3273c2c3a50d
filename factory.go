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

// wellKnownRTD maps a well-known TYPE to its RTD tag. Types not in this
// table, and any record whose TNF isn't WellKnown, produce a generic
// record tagged RTDUnknown.
var wellKnownRTD = map[string]RTD{
	"U":   RTDURI,
	"T":   RTDText,
	"Sp":  RTDSmartPoster,
	"Hs":  RTDHandoverSelect,
	"Hr":  RTDHandoverRequest,
	"Hc":  RTDHandoverCarrier,
	"ac":  RTDAlternativeCarrier,
	"cr":  RTDCollisionResolution,
	"err": RTDError,
}

// buildRecord constructs the appropriate record variant for desc. It never
// fails: decode failures degrade to a generic record.
func buildRecord(desc headerDescriptor) *Record {
	r := &Record{
		TNF:     desc.tnf(),
		RTD:     RTDUnknown,
		Raw:     desc.rec,
		Type:    desc.typ(),
		ID:      desc.id(),
		Payload: desc.payload(),
	}
	if desc.mb() {
		r.Flags |= FlagFirst
	}
	if desc.me() {
		r.Flags |= FlagLast
	}

	if r.TNF != TNFWellKnown {
		return r
	}

	rtd, known := wellKnownRTD[string(r.Type.Bytes())]
	if !known {
		return r
	}
	r.RTD = rtd

	switch rtd {
	case RTDURI:
		if v, ok := decodeURI(r.Payload); ok {
			r.variant = v
		} else {
			r.RTD = RTDUnknown
		}
	case RTDText:
		if v, ok := decodeText(r.Payload); ok {
			r.variant = v
		} else {
			r.RTD = RTDUnknown
		}
	default:
		// SmartPoster, Handover*, AlternativeCarrier,
		// CollisionResolution, Error: tagged but left undecoded,
		// payload handling belongs to a higher layer.
	}
	return r
}

// ParseMessage parses one NDEF message and returns the head of the
// resulting chain, or nil if nothing could be recovered.
//
// A zero-length input is the special "empty NDEF" case: a single record
// with TNF=Empty and no payload. Otherwise records are parsed and
// appended to the chain until the input is exhausted or a record fails
// to parse; whatever was recovered up to that point is returned.
// Chunked records (CF bit set) are recognized but dropped.
func ParseMessage(data []byte) *Record {
	if len(data) == 0 {
		return emptyRecord()
	}

	cursor := NewByteView(data)
	var head, tail *Record

	for cursor.Len() > 0 {
		desc, ok := parseHeader(cursor)
		if !ok {
			break
		}
		cursor = cursor.after(desc.rec.Len())

		if desc.cf() {
			continue
		}

		appendRecord(&head, &tail, buildRecord(desc))
	}

	return head
}

// ParseTLV parses a TLV byte stream, locating every TLV_NDEF_MESSAGE
// block and concatenating the chains parsed from each, in stream order.
func ParseTLV(data []byte) *Record {
	it := newTLVIterator(NewByteView(data))
	var head, tail *Record

	for {
		typ, value, ok := it.next()
		if !ok {
			break
		}
		if typ != TLVNdefMessage {
			continue
		}
		chain := ParseMessage(value.Bytes())
		for r := chain; r != nil; r = r.Next {
			appendRecord(&head, &tail, r)
		}
	}

	return head
}
