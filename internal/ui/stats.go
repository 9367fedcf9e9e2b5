package ui

import "sync/atomic"

type Stats struct {
	Probes atomic.Int64
	Hits   atomic.Int64
	Files  atomic.Int64
	Bytes  atomic.Int64
}
