// Command esb runs a single directory lookup from the terminal:
//
//	esb project 42
//	esb salarié 1234
//	esb --set HOST=esb.utb.coop --set CLIENT_SECRET=... e 1234
//	esb config
//
// The configuration comes from the ESB_* environment variables (a .env file
// is honored) and the --set flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "esb:", err)
		os.Exit(1)
	}
}
