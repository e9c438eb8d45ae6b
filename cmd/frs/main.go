package main

import (
	"context"
	"fmt"
	"frsmenu/cmd/frs/commands"
	"frsmenu/lib/osutil"
	"frsmenu/lib/telemetry"
	"log/slog"
	"os"
	"time"
)

func main() {
	ctx, cancel := osutil.SignalContext(context.Background())
	defer cancel()

	telemetry.InitSlog(false)
	tel, err := telemetry.SetupFromEnv(ctx, "frs")
	if err != nil {
		slog.Warn("failed to set up telemetry", "err", err)
	}

	statsCtx, stopStats := context.WithCancel(ctx)
	var statsStopped <-chan struct{}
	if tel.MeterProvider != nil {
		statsStopped = telemetry.RecordRuntimeStats(statsCtx, 30*time.Second)
	}

	err = commands.ExecuteContext(ctx)

	stopStats()
	if statsStopped != nil {
		<-statsStopped
	}

	shutdownErr := tel.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
