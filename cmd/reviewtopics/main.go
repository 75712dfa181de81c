package main

import (
	"context"
	"log/slog"
	"time"

	"reviewtopics/cmd/reviewtopics/commands"
	"reviewtopics/lib/osutil"
	"reviewtopics/lib/serviceutil"
	"reviewtopics/lib/telemetry"
)

func run() error {
	ctx, cancel := osutil.SignalContext(context.Background())
	defer cancel()

	tel, err := telemetry.SetupFromEnv(ctx, "reviewtopics")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := tel.Shutdown(shutdownCtx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}()
	telemetry.InstrumentPerfStats(ctx, time.Second*15)

	return commands.ExecuteContext(ctx)
}

func main() {
	telemetry.InitSlog(false)
	err := run()
	if err != nil {
		serviceutil.Fatal("reviewtopics failed", err)
	}
}
