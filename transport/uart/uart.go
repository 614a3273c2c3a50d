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

// Package uart implements ndef.BlockReader over a serial-attached tag
// reader: a device that, on request, writes one NDEF-bearing block
// terminated by the NDEF TLV terminator (0xFE) to its serial port.
package uart

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

const (
	defaultBaudRate    = 115200
	defaultReadBuffer  = 2048
	defaultReadTimeout = 500 * time.Millisecond
)

// serialPort is the subset of serial.Port this package depends on,
// narrow enough to fake in tests without reproducing go.bug.st/serial's
// full Port interface.
type serialPort interface {
	io.Reader
	Close() error
	SetReadTimeout(t time.Duration) error
}

// Reader implements ndef.BlockReader over go.bug.st/serial.
type Reader struct {
	port    serialPort
	scanner *bufio.Reader
	name    string
}

// config holds the settings New assembles from its Option arguments.
type config struct {
	baudRate    int
	readTimeout time.Duration
}

// Option configures a Reader at construction time.
type Option func(*config)

// WithBaudRate overrides the default baud rate (115200).
func WithBaudRate(rate int) Option {
	return func(c *config) { c.baudRate = rate }
}

// WithReadTimeout overrides the default per-syscall read timeout (500ms).
// ReadBlock itself is further bounded by the ctx passed to it.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *config) { c.readTimeout = timeout }
}

// New opens portName and returns a Reader, applying any opts over the
// package defaults.
func New(portName string, opts ...Option) (*Reader, error) {
	cfg := config{
		baudRate:    defaultBaudRate,
		readTimeout: defaultReadTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	log.Debug().Str("port", portName).Msg("opening uart tag reader")

	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: cfg.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("uart: open %s: %w", portName, err)
	}

	if err := port.SetReadTimeout(cfg.readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("uart: set read timeout: %w", err)
	}

	return &Reader{
		port:    port,
		scanner: bufio.NewReaderSize(port, defaultReadBuffer),
		name:    portName,
	}, nil
}

// ReadBlock reads bytes up to and including the next NDEF TLV terminator
// (0xFE), or until ctx is done.
func (r *Reader) ReadBlock(ctx context.Context) ([]byte, error) {
	type result struct {
		block []byte
		err   error
	}
	done := make(chan result, 1)

	go func() {
		block, err := r.scanner.ReadBytes(0xFE)
		if err != nil {
			done <- result{err: fmt.Errorf("uart: read %s: %w", r.name, err)}
			return
		}
		done <- result{block: block}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("uart: read %s: %w", r.name, ctx.Err())
	case res := <-done:
		return res.block, res.err
	}
}

// Close closes the underlying serial port.
func (r *Reader) Close() error {
	if err := r.port.Close(); err != nil {
		return fmt.Errorf("uart: close %s: %w", r.name, err)
	}
	return nil
}
