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

package uart

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSerialPort struct {
	r   io.Reader
	err error
}

func (f *fakeSerialPort) Read(p []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.r.Read(p)
}

func (*fakeSerialPort) Close() error                        { return nil }
func (*fakeSerialPort) SetReadTimeout(time.Duration) error { return nil }

func newTestReader(data []byte) *Reader {
	port := &fakeSerialPort{r: bytes.NewReader(data)}
	return &Reader{
		port:    port,
		scanner: bufio.NewReaderSize(port, defaultReadBuffer),
		name:    "test",
	}
}

func TestReader_ReadBlock(t *testing.T) {
	t.Parallel()

	r := newTestReader([]byte{0x03, 0x03, 0xD1, 0x01, 0x00, 0xFE})
	block, err := r.ReadBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x03, 0xD1, 0x01, 0x00, 0xFE}, block)
}

func TestReader_ReadBlock_ContextCanceled(t *testing.T) {
	t.Parallel()

	r := newTestReader(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ReadBlock(ctx)
	require.Error(t, err)
}

func TestReader_Close(t *testing.T) {
	t.Parallel()

	r := newTestReader(nil)
	require.NoError(t, r.Close())
}
