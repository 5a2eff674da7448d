package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tui := NewTUI()
	go func() {
		<-ctx.Done()
		tui.Stop()
	}()

	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if output := tui.Output(); output != "" {
		fmt.Fprintln(os.Stdout, output)
	}
}
