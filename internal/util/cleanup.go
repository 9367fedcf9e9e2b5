package util

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// InterruptContext returns a context cancelled on SIGINT/SIGTERM. When dir is
// set it is removed on interrupt if nothing was written into it.
func InterruptContext(parent context.Context, dir string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sig:
			fmt.Fprintln(os.Stderr, "\nInterrupt received. Cleaning up...")
			cancel()
			if dir != "" {
				RemoveIfEmpty(dir)
			}
		case <-ctx.Done():
		}
		signal.Stop(sig)
	}()

	return ctx, cancel
}

func RemoveIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	if len(entries) == 0 {
		if err := os.Remove(dir); err == nil {
			fmt.Fprintf(os.Stderr, "Removed empty output folder: %s\n", dir)
		}
	}
}
