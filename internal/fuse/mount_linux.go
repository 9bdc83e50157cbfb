//go:build linux
// +build linux

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package fuse

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	osutils "github.com/ostafen/gifdec/pkg/util/os"
)

const maxUnmountRetries = 3

// Mount serves entries read-only at mountpoint until SIGINT or SIGTERM.
// A missing mountpoint is created and removed on exit.
func Mount(mountpoint string, entries []FileEntry, logger *slog.Logger) error {
	created, err := osutils.EnsureDir(mountpoint, true)
	if err != nil {
		return err
	}
	if created {
		defer os.Remove(mountpoint)
	}

	c, err := fuse.Mount(mountpoint, fuse.ReadOnly(), fuse.FSName("gifdec"))
	if err != nil {
		return fmt.Errorf("failed to mount %s: %w", mountpoint, err)
	}
	defer c.Close()

	serveErr := make(chan error, 1)
	go func() {
		srv := fusefs.New(c, nil)
		serveErr <- srv.Serve(NewFramesFS(entries))
	}()

	logger.Info("Mounted", "mountpoint", mountpoint, "files", len(entries))
	return waitForUmount(mountpoint, serveErr, logger)
}

func waitForUmount(mountpoint string, serveErr <-chan error, logger *slog.Logger) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	logger.Info("Waiting for termination signal...")

	unmountAttempts := 0
	for {
		select {
		case err := <-serveErr:
			// Unmounted from outside, e.g. with fusermount -u.
			if err != nil {
				return fmt.Errorf("serve error: %w", err)
			}
			return nil
		case sig := <-sigc:
			logger.Info("Signal received", "signal", sig.String())

			if unmountAttempts >= maxUnmountRetries {
				return fmt.Errorf("maximum unmount retries (%d) exceeded, still unable to unmount %s", maxUnmountRetries, mountpoint)
			}

			logger.Info("Attempting unmount", "mountpoint", mountpoint, "attempt", unmountAttempts+1, "max", maxUnmountRetries)
			err := fuse.Unmount(mountpoint)
			if err == nil {
				logger.Info("Unmounted successfully, exiting.")
				return nil
			}

			unmountAttempts++
			logger.Warn("Unmount failed, waiting for another signal to retry", "err", err, "remaining", maxUnmountRetries-unmountAttempts)
		}
	}
}
