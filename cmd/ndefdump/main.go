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

// Command ndefdump reads one block from a tag reader and prints the NDEF
// records it decodes to.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tehnick/nfcd"
	"github.com/tehnick/nfcd/transport/i2c"
	"github.com/tehnick/nfcd/transport/uart"
)

type config struct {
	device  *string
	timeout *time.Duration
	debug   *bool
	tlv     *bool
}

func parseFlags() *config {
	cfg := &config{
		device:  flag.String("device", "", "reader device: a serial path (e.g. /dev/ttyUSB0) or i2c:<bus>:<addr>"),
		timeout: flag.Duration("timeout", 5*time.Second, "read timeout"),
		debug:   flag.Bool("debug", false, "enable debug logging"),
		tlv:     flag.Bool("tlv", false, "treat the block as TLV-wrapped rather than a bare NDEF message"),
	}
	flag.Parse()
	return cfg
}

// openReader selects a transport from path: an "i2c:<bus>:<addr>" spec
// opens transport/i2c, anything else is handed to transport/uart as a
// serial device path.
func openReader(path string, timeout time.Duration) (ndef.BlockReader, error) {
	if path == "" {
		return nil, errors.New("ndefdump: -device is required")
	}

	if strings.HasPrefix(path, "i2c:") {
		parts := strings.Split(path, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("ndefdump: malformed i2c spec %q, want i2c:<bus>:<addr>", path)
		}
		addr, err := strconv.ParseUint(parts[2], 0, 16)
		if err != nil {
			return nil, fmt.Errorf("ndefdump: parse i2c address %q: %w", parts[2], err)
		}
		r, err := i2c.New(parts[1], uint16(addr))
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	r, err := uart.New(path, uart.WithReadTimeout(timeout))
	if err != nil {
		return nil, err
	}
	return r, nil
}

func dump(chain *ndef.Record) {
	n := 0
	for r := chain; r != nil; r = r.Next {
		n++
		entry := log.Info().
			Int("record", n).
			Str("tnf", r.TNF.String()).
			Str("rtd", r.RTD.String()).
			Int("payload_len", r.Payload.Len())

		if uri, ok := r.URI(); ok {
			entry = entry.Str("uri", uri)
		}
		if lang, ok := r.Lang(); ok {
			text, _ := r.Text()
			entry = entry.Str("lang", lang).Str("text", text)
		}
		entry.Msg("record")
	}
	if n == 0 {
		log.Warn().Msg("no records decoded")
	}
}

func main() {
	cfg := parseFlags()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *cfg.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	reader, err := openReader(*cfg.device, *cfg.timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("open reader")
	}
	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("close reader")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *cfg.timeout)
	defer cancel()

	block, err := reader.ReadBlock(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("read block")
	}

	var chain *ndef.Record
	if *cfg.tlv {
		chain = ndef.ParseTLV(block)
	} else {
		chain = ndef.ParseMessage(block)
	}
	if chain == nil {
		log.Error().Msg("block did not decode to any NDEF records")
		os.Exit(1)
	}
	dump(chain)
}
