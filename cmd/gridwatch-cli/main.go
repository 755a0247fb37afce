package main

import (
	"context"
	"errors"
	"os"

	"gridwatch-backend/cmd/gridwatch-cli/commands"
	"gridwatch-backend/lib/serviceutil"
	"gridwatch-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "gridwatch-cli")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("setup telemetry", err)
	}
	if err == nil {
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}

	commands.ExecuteContext(ctx)
}
