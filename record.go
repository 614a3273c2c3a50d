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

// Package ndef implements the NFC Data Exchange Format (NDEF): parsing raw
// byte streams into a chain of typed records, recognizing a set of
// well-known record types (URI, Text), and synthesizing records back into
// wire form. A second entry point extracts NDEF messages embedded in a
// Type-Length-Value container, as used by NFC Forum tag formats.
//
// Parsing never fails loudly: a malformed or truncated frame yields
// whatever records were recovered before the problem, down to nothing.
// Chunked records (CF bit set) are recognized but dropped, since chunk
// reassembly is out of scope. Records are immutable once built and safe
// to share across goroutines.
package ndef

// TNF is the Type Name Format, a 3-bit field categorizing a record's TYPE.
type TNF uint8

// Type Name Format values, per NFC Forum NDEF 1.0 §3.2.6.
const (
	TNFEmpty TNF = iota
	TNFWellKnown
	TNFMediaType
	TNFAbsoluteURI
	TNFExternalType
	TNFUnknown
	TNFUnchanged
)

// clampTNF maps any header TNF field to a valid TNF, clamping reserved
// values (>= 7) to TNFUnknown per spec.
func clampTNF(raw byte) TNF {
	t := TNF(raw & 0x07)
	if t > TNFUnchanged {
		return TNFUnknown
	}
	return t
}

// String implements fmt.Stringer.
func (t TNF) String() string {
	switch t {
	case TNFEmpty:
		return "empty"
	case TNFWellKnown:
		return "well-known"
	case TNFMediaType:
		return "media-type"
	case TNFAbsoluteURI:
		return "absolute-uri"
	case TNFExternalType:
		return "external-type"
	case TNFUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// RTD is a Record Type Definition tag: the well-known type a record was
// recognized as, independent of its raw TYPE bytes.
type RTD uint8

// Record Type Definitions this engine recognizes.
const (
	RTDUnknown RTD = iota
	RTDURI
	RTDText
	RTDSmartPoster
	RTDHandoverRequest
	RTDHandoverSelect
	RTDHandoverCarrier
	RTDAlternativeCarrier
	RTDCollisionResolution
	RTDError
)

// String implements fmt.Stringer.
func (r RTD) String() string {
	switch r {
	case RTDURI:
		return "uri"
	case RTDText:
		return "text"
	case RTDSmartPoster:
		return "smart-poster"
	case RTDHandoverRequest:
		return "handover-request"
	case RTDHandoverSelect:
		return "handover-select"
	case RTDHandoverCarrier:
		return "handover-carrier"
	case RTDAlternativeCarrier:
		return "alternative-carrier"
	case RTDCollisionResolution:
		return "collision-resolution"
	case RTDError:
		return "error"
	default:
		return "unknown"
	}
}

// Flags is a bitmask of a record's position within its chain.
type Flags uint8

const (
	// FlagFirst marks the first record of a message (MB bit).
	FlagFirst Flags = 1 << iota
	// FlagLast marks the last record of a message (ME bit).
	FlagLast
)

// Has reports whether all bits in want are set.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// TextEncoding is the character encoding of a Text record's text field.
type TextEncoding uint8

const (
	// EncodingUTF8 marks a Text record's text as UTF-8.
	EncodingUTF8 TextEncoding = iota
	// EncodingUTF16 marks a Text record's text as UTF-16.
	EncodingUTF16
)

// URIPayload is the decoded payload of a URI record.
type URIPayload struct {
	URI string
}

// TextPayload is the decoded payload of a Text record.
type TextPayload struct {
	Lang     string
	Text     string
	Encoding TextEncoding
}

// Record is one NDEF record: the common header fields shared by every
// record, plus an optional decoded variant payload. Records are immutable
// after construction and form a singly linked chain via Next, in wire
// order. A Record and everything it points to becomes eligible for
// garbage collection once nothing holds a reference to its chain head.
type Record struct {
	Next    *Record
	variant any // nil (generic), *URIPayload, or *TextPayload
	Raw     ByteView
	Type    ByteView
	ID      ByteView
	Payload ByteView
	TNF     TNF
	RTD     RTD
	Flags   Flags
}

// URI returns the record's decoded URI and true if it is a URI record.
func (r *Record) URI() (string, bool) {
	if u, ok := r.variant.(*URIPayload); ok {
		return u.URI, true
	}
	return "", false
}

// Lang returns the record's decoded language code and true if it is a
// Text record.
func (r *Record) Lang() (string, bool) {
	if t, ok := r.variant.(*TextPayload); ok {
		return t.Lang, true
	}
	return "", false
}

// Text returns the record's decoded text and true if it is a Text record.
func (r *Record) Text() (string, bool) {
	if t, ok := r.variant.(*TextPayload); ok {
		return t.Text, true
	}
	return "", false
}

// TextEncoding returns the record's text encoding and true if it is a
// Text record.
func (r *Record) TextEncoding() (TextEncoding, bool) {
	if t, ok := r.variant.(*TextPayload); ok {
		return t.Encoding, true
	}
	return 0, false
}

// appendRecord links next onto the end of the chain headed by *head,
// tracking the tail in *tail so repeated appends stay O(1).
func appendRecord(head, tail **Record, next *Record) {
	if *head == nil {
		*head = next
		*tail = next
		return
	}
	(*tail).Next = next
	*tail = next
}

// emptyRecord builds the special zero-length-input record: TNF=Empty,
// rtd=Unknown, no payload, no flags, no successor.
func emptyRecord() *Record {
	return &Record{
		TNF:     TNFEmpty,
		RTD:     RTDUnknown,
		Raw:     ByteView{},
		Type:    ByteView{},
		ID:      ByteView{},
		Payload: ByteView{},
	}
}
