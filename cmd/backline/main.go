package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	// Ctrl-C during a lookup or export exits quietly.
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "backline:", err)
	}
	os.Exit(1)
}
