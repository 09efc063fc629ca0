package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrsteele09/go-internship-client/internal/cli"
	"github.com/jrsteele09/go-internship-client/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, config.New(), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
