package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/haguru/shisui/config"
	"github.com/haguru/shisui/internal/app"
)

func main() {
	// interrupt/terminate cancels the run; in-flight polling stops at
	// the next check
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// create and initialize the app
	app, err := app.NewApp(config.CONFIG_PATH)
	if err != nil {
		panic(err) // handle error appropriately in production code
	}

	// run the seeding pipeline to its terminal state
	err = app.Run(ctx)
	if err != nil {
		panic(err) // handle error appropriately in production code
	}
}
