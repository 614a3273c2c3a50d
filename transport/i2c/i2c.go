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

// Package i2c implements ndef.BlockReader over an I2C-attached tag
// reader: a device that signals block availability through a one-byte
// ready register, then hands back up to maxBlockLen bytes of raw tag
// data (an NDEF message, optionally TLV-wrapped) on request.
package i2c

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	readyRegister = 0x00
	deviceReady   = 0x01
	maxBlockLen   = 256
	maxClockFreq  = 400 * physic.KiloHertz

	pollInterval = time.Millisecond
)

// Reader implements ndef.BlockReader over periph.io's I2C bindings.
type Reader struct {
	dev     *i2c.Dev
	busName string
	timeout time.Duration
}

// New initializes the periph.io host, opens busName, and returns a
// Reader addressing the device at addr.
func New(busName string, addr uint16) (*Reader, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("i2c: init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("i2c: open bus %s: %w", busName, err)
	}
	if err := bus.SetSpeed(maxClockFreq); err != nil {
		log.Debug().Err(err).Str("bus", busName).Msg("i2c: default speed kept")
	}

	return &Reader{
		dev:     &i2c.Dev{Addr: addr, Bus: bus},
		busName: busName,
		timeout: 500 * time.Millisecond,
	}, nil
}

// ReadBlock polls the ready register and, once set, reads one block. It
// trims the result at the first NDEF TLV terminator (0xFE) if present.
func (r *Reader) ReadBlock(ctx context.Context) ([]byte, error) {
	deadline := time.Now().Add(r.timeout)

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("i2c: read %s: %w", r.busName, ctx.Err())
		default:
		}

		ready, err := r.checkReady()
		if err != nil {
			return nil, err
		}
		if ready {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("i2c: read %s: timed out waiting for ready", r.busName)
		}
		time.Sleep(pollInterval)
	}

	buf := make([]byte, maxBlockLen)
	if err := r.dev.Tx(nil, buf); err != nil {
		return nil, fmt.Errorf("i2c: read block from %s: %w", r.busName, err)
	}

	if i := bytes.IndexByte(buf, 0xFE); i >= 0 {
		return buf[:i+1], nil
	}
	return buf, nil
}

// checkReady reads the one-byte ready register.
func (r *Reader) checkReady() (bool, error) {
	status := make([]byte, 1)
	if err := r.dev.Tx([]byte{readyRegister}, status); err != nil {
		return false, fmt.Errorf("i2c: ready check on %s: %w", r.busName, err)
	}
	return status[0] == deviceReady, nil
}

// Close releases the reader. periph.io's bus handles remain open for
// the process; there is nothing further to release here.
func (*Reader) Close() error {
	return nil
}
