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

// shortFormMaxPayload is the largest payload that fits the one-byte
// PAYLOAD_LENGTH form.
const shortFormMaxPayload = 0xFF

// BuildWellKnown synthesizes a single-record NDEF message of TNF
// WellKnown from typ and payload, tagged rtd. The returned record always
// has both FlagFirst and FlagLast set (it is the only record in its
// message) and carries no ID field.
//
// The record is assembled into wire bytes and then parsed back through
// ParseMessage, so its Type/ID/Payload views point into its own owned
// copy rather than the caller's typ/payload slices.
func BuildWellKnown(rtd RTD, typ, payload []byte) *Record {
	short := len(payload) <= shortFormMaxPayload

	header := byte(hdrMB | hdrME | TNFWellKnown)
	if short {
		header |= hdrSR
	}

	raw := make([]byte, 0, 2+4+len(typ)+len(payload))
	raw = append(raw, header, byte(len(typ)))
	if short {
		raw = append(raw, byte(len(payload)))
	} else {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
		raw = append(raw, lenBuf[:]...)
	}
	raw = append(raw, typ...)
	raw = append(raw, payload...)

	r := ParseMessage(raw)
	if r != nil {
		// The dispatch table already derives RTD from typ for the
		// types it recognizes; for anything else honor the caller's
		// explicit tag rather than leaving it Unknown.
		if r.RTD == RTDUnknown {
			r.RTD = rtd
		}
	}
	return r
}
