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

import "context"

// BlockReader is the boundary between this package and a tag/device
// session: it returns one raw block read from a tag or peer, ready to
// hand to ParseMessage or ParseTLV. Activation, sequencing, and any
// target-specific framing belong to the implementation, not to this
// package.
type BlockReader interface {
	// ReadBlock returns the next available block, blocking until one is
	// read, ctx is done, or an error occurs.
	ReadBlock(ctx context.Context) ([]byte, error)

	// Close releases any resources held by the reader.
	Close() error
}
