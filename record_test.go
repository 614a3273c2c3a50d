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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage_Empty(t *testing.T) {
	t.Parallel()

	r := ParseMessage(nil)
	require.NotNil(t, r)
	assert.Equal(t, TNFEmpty, r.TNF)
	assert.Equal(t, RTDUnknown, r.RTD)
	assert.Nil(t, r.Next)
	assert.Equal(t, 0, r.Payload.Len())
}

func TestParseMessage_ShortGeneric(t *testing.T) {
	t.Parallel()

	// MB|ME|SR, TNF=well-known, type "X" (not in the well-known dispatch
	// table), so it decodes as a generic record.
	data := []byte{0xD1, 0x01, 0x00, 0x58} // header, type_len=1, payload_len=0, type='X'
	r := ParseMessage(data)
	require.NotNil(t, r)
	assert.True(t, r.Flags.Has(FlagFirst))
	assert.True(t, r.Flags.Has(FlagLast))
	assert.Equal(t, TNFWellKnown, r.TNF)
	assert.Equal(t, RTDUnknown, r.RTD)
	assert.Equal(t, "X", string(r.Type.Bytes()))
	assert.Equal(t, 0, r.Payload.Len())
	assert.Nil(t, r.Next)
}

func TestParseMessage_URIRecord(t *testing.T) {
	t.Parallel()

	data := []byte{
		0xD1, 0x01, 0x08, 0x55, // header, type_len=1, payload_len=8, type='U'
		0x01, 0x6E, 0x66, 0x63, 0x2E, 0x63, 0x6F, 0x6D, // prefix 0x01 + "nfc.com"
	}
	r := ParseMessage(data)
	require.NotNil(t, r)
	assert.Equal(t, RTDURI, r.RTD)
	uri, ok := r.URI()
	require.True(t, ok)
	assert.Equal(t, "http://www.nfc.com", uri)
}

func TestParseMessage_TextRecord(t *testing.T) {
	t.Parallel()

	data := []byte{
		0xD1, 0x01, 0x08, 0x54, // header, type_len=1, payload_len=8, type='T'
		0x02, 0x65, 0x6E, 0x48, 0x65, 0x6C, 0x6C, 0x6F, // status=0x02 (lang len 2, UTF-8), "en", "Hello"
	}
	r := ParseMessage(data)
	require.NotNil(t, r)
	assert.Equal(t, RTDText, r.RTD)
	lang, ok := r.Lang()
	require.True(t, ok)
	assert.Equal(t, "en", lang)
	text, ok := r.Text()
	require.True(t, ok)
	assert.Equal(t, "Hello", text)
	enc, ok := r.TextEncoding()
	require.True(t, ok)
	assert.Equal(t, EncodingUTF8, enc)
}

func TestParseMessage_MediaType(t *testing.T) {
	t.Parallel()

	data := []byte{
		0xD2, 0x09, 0x00, // header TNF=media-type, type_len=9, payload_len=0
		0x74, 0x65, 0x78, 0x74, 0x2F, 0x70, 0x6C, 0x61, 0x69, 0x6E, // "text/plain"
	}
	r := ParseMessage(data)
	require.NotNil(t, r)
	assert.Equal(t, TNFMediaType, r.TNF)
	assert.Equal(t, RTDUnknown, r.RTD)
	assert.Equal(t, "text/plain", string(r.Type.Bytes()))
}

func TestParseMessage_Chain(t *testing.T) {
	t.Parallel()

	data := []byte{
		0x91, 0x01, 0x00, 0x55, // MB, no ME, TNF=well-known, type "U", empty payload
		0x51, 0x01, 0x00, 0x54, // ME, TNF=well-known, type "T", empty payload
	}
	first := ParseMessage(data)
	require.NotNil(t, first)
	require.NotNil(t, first.Next)
	assert.Nil(t, first.Next.Next)

	assert.True(t, first.Flags.Has(FlagFirst))
	assert.False(t, first.Flags.Has(FlagLast))
	assert.False(t, first.Next.Flags.Has(FlagFirst))
	assert.True(t, first.Next.Flags.Has(FlagLast))
}

func TestParseMessage_ChunkedDropped(t *testing.T) {
	t.Parallel()

	data := []byte{
		0x90 | hdrCF, 0x01, 0x00, 0x55, // MB|CF set, no ME: a chunk begin, dropped
		0x51, 0x01, 0x00, 0x54, // ME, a normal closing record
	}
	r := ParseMessage(data)
	require.NotNil(t, r)
	assert.Equal(t, "T", string(r.Type.Bytes()))
	assert.Nil(t, r.Next)
}

func TestParseMessage_BoundsSafety(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		{},
		{0x00},
		{0xD1},
		{0xD1, 0xFF},
		{0xD1, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		{0x91, 0x00, 0x00},
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			ParseMessage(in)
		})
	}

	// A large buffer of incrementing bytes should never panic regardless
	// of how the header bits happen to line up.
	big := make([]byte, 1024)
	for i := range big {
		big[i] = byte(i)
	}
	assert.NotPanics(t, func() {
		ParseMessage(big)
	})
}

func TestBuildWellKnown_RoundTrip(t *testing.T) {
	t.Parallel()

	r := BuildWellKnown(RTDURI, []byte("U"), []byte{0x03, 'n', 'f', 'c', '.', 'o', 'r', 'g'})
	require.NotNil(t, r)

	again := ParseMessage(r.Raw.Bytes())
	require.NotNil(t, again)
	assert.Equal(t, r.TNF, again.TNF)
	assert.Equal(t, r.RTD, again.RTD)
	assert.Equal(t, r.Payload.Bytes(), again.Payload.Bytes())

	uri, ok := again.URI()
	require.True(t, ok)
	assert.Equal(t, "http://nfc.org", uri)
}

func TestParseMessage_Idempotent(t *testing.T) {
	t.Parallel()

	data := []byte{0xD1, 0x01, 0x08, 0x55, 0x01, 0x6E, 0x66, 0x63, 0x2E, 0x63, 0x6F, 0x6D}
	a := ParseMessage(data)
	b := ParseMessage(data)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.Raw.Bytes(), b.Raw.Bytes())
	assert.Equal(t, a.TNF, b.TNF)
	assert.Equal(t, a.RTD, b.RTD)
}

func TestParseTLV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      []byte
		wantCount int
	}{
		{
			name:      "null padding then ndef",
			data:      []byte{0x00, 0x00, 0x03, 0x04, 0xD1, 0x01, 0x00, 0x55, 0xFE},
			wantCount: 1,
		},
		{
			name:      "terminator with no ndef",
			data:      []byte{0xFE},
			wantCount: 0,
		},
		{
			name: "extended length",
			data: append(
				[]byte{0x03, 0xFF, 0x00, 0x04},
				[]byte{0xD1, 0x01, 0x00, 0x55}...,
			),
			wantCount: 1,
		},
		{
			name: "two ndef TLVs concatenate",
			data: []byte{
				0x03, 0x04, 0xD1, 0x01, 0x00, 0x55,
				0x03, 0x04, 0xD1, 0x01, 0x00, 0x54,
				0xFE,
			},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chain := ParseTLV(tt.data)
			got := 0
			for r := chain; r != nil; r = r.Next {
				got++
			}
			assert.Equal(t, tt.wantCount, got)
		})
	}
}

func TestParseMessage_RawIsOwnedCopy(t *testing.T) {
	t.Parallel()

	data := []byte{0xD1, 0x01, 0x08, 0x55, 0x01, 0x6E, 0x66, 0x63, 0x2E, 0x63, 0x6F, 0x6D}
	r := ParseMessage(data)
	require.NotNil(t, r)

	uriBefore, ok := r.URI()
	require.True(t, ok)

	// Mutate the caller's buffer, simulating a BlockReader that reuses
	// its read buffer across calls. A record built from data must not
	// observe the change.
	for i := range data {
		data[i] = 0xAA
	}

	uriAfter, ok := r.URI()
	require.True(t, ok)
	assert.Equal(t, uriBefore, uriAfter)
	assert.NotEqual(t, byte(0xAA), r.Raw.Bytes()[0])
}

func TestDecodeText_StatusValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload []byte
		wantRTD RTD
	}{
		{
			name:    "reserved bit set rejects decode",
			payload: []byte{0x40}, // reserved bit set, lang len 0
			wantRTD: RTDUnknown,
		},
		{
			name:    "lang length exceeds payload rejects decode",
			payload: []byte{0x05}, // claims a 5-byte lang code, payload has none
			wantRTD: RTDUnknown,
		},
		{
			name:    "valid status decodes as text",
			payload: []byte{0x02, 0x65, 0x6E, 'h', 'i'}, // lang len 2, "en", "hi"
			wantRTD: RTDText,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := append([]byte{0xD1, 0x01, byte(len(tt.payload)), 0x54}, tt.payload...)
			r := ParseMessage(data)
			require.NotNil(t, r)
			assert.Equal(t, tt.wantRTD, r.RTD)
		})
	}
}

func TestDecodeText_UTF16BOM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text []byte
		want string
	}{
		{
			name: "big-endian BOM",
			text: []byte{0xFE, 0xFF, 0x00, 0x48, 0x00, 0x69},
			want: "Hi",
		},
		{
			name: "little-endian BOM",
			text: []byte{0xFF, 0xFE, 0x48, 0x00, 0x69, 0x00},
			want: "Hi",
		},
		{
			name: "no BOM defaults to big-endian",
			text: []byte{0x00, 0x48, 0x00, 0x69},
			want: "Hi",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload := append([]byte{textStatusUTF16}, tt.text...)
			p, ok := decodeText(NewByteView(payload))
			require.True(t, ok)
			assert.Equal(t, tt.want, p.Text)
			assert.Equal(t, EncodingUTF16, p.Encoding)
		})
	}
}

func TestDecodeURI_EmptyPayload(t *testing.T) {
	t.Parallel()

	_, ok := decodeURI(NewByteView(nil))
	assert.False(t, ok)

	data := []byte{0xD1, 0x01, 0x00, 0x55} // TNF=well-known, type "U", empty payload
	r := ParseMessage(data)
	require.NotNil(t, r)
	assert.Equal(t, RTDUnknown, r.RTD)
	_, ok = r.URI()
	assert.False(t, ok)
}

func TestParseMessage_ShortFormBoundary(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 0xFF)
	data := append([]byte{0x91, 0x01, 0xFF, 0x55}, payload...) // MB|SR, type_len=1, payload_len=255, type='U'

	r := ParseMessage(data)
	require.NotNil(t, r)
	assert.Equal(t, len(data), r.Raw.Len())
	assert.Equal(t, 0xFF, r.Payload.Len())
	assert.Nil(t, r.Next)

	// Truncate the last payload byte: the declared length no longer fits
	// the buffer, so the record must not parse at all.
	truncated := data[:len(data)-1]
	assert.Nil(t, ParseMessage(truncated))
}

func TestParseMessage_LongFormPayloadLengthGate(t *testing.T) {
	t.Parallel()

	// MB|ME, long form (no SR), TNF=well-known, type_len=0,
	// payload_length = 2^31 exactly: must be rejected outright.
	data := []byte{0xC1, 0x00, 0x80, 0x00, 0x00, 0x00}
	assert.Nil(t, ParseMessage(data))
}
