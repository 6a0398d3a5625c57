// Command atlasctl renders, exports and watches methane reports from local
// files.
//
// Usage:
//
//	atlasctl sample --dir ./site
//	atlasctl render --dir ./site -o report.html --layout split
//	atlasctl export --dir ./site --format pdf --page A3 -o report.pdf
//	atlasctl watch --dir ./site -o report.html
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
