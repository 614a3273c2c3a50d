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

// ByteView is a non-owning, zero-copy window into a byte slice. It never
// allocates on its own: slicing a ByteView reslices the underlying array.
type ByteView struct {
	b []byte
}

// NewByteView wraps b. The returned view shares b's backing array.
func NewByteView(b []byte) ByteView {
	return ByteView{b: b}
}

// Len returns the number of bytes in the view.
func (v ByteView) Len() int {
	return len(v.b)
}

// Bytes returns the view's bytes. Callers must not retain or mutate the
// result beyond the lifetime of the buffer v was built from.
func (v ByteView) Bytes() []byte {
	return v.b
}

// At returns the byte at index i.
func (v ByteView) At(i int) byte {
	return v.b[i]
}

// sub returns the sub-view [off, off+n), without bounds checking beyond
// what Go's own slicing provides. Callers are expected to have already
// validated off+n <= v.Len().
func (v ByteView) sub(off, n int) ByteView {
	return ByteView{b: v.b[off : off+n]}
}

// after returns the sub-view starting at off and running to the end.
func (v ByteView) after(off int) ByteView {
	return ByteView{b: v.b[off:]}
}
