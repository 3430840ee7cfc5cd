package analytics

import (
	"context"
	"fmt"

	"github.com/fbz-tec/skytrack/core/db"
	"github.com/fbz-tec/skytrack/internal/logger"
)

// DemoFlightNo is the flight number of the row AddDemoFlight inserts.
const DemoFlightNo = "DEMO001"

// AddDemoFlight inserts a scheduled flight departing today, so a rerun of the
// report shows the change. It returns the new flight id.
func AddDemoFlight(ctx context.Context, store db.Store) (int64, error) {
	id, err := store.QueryInt64(ctx, demoFlightQuery.For(store.Dialect()), DemoFlightNo)
	if err != nil {
		return 0, fmt.Errorf("error adding demo flight: %w", err)
	}
	logger.Success("New flight added successfully. Flight ID: %d", id)
	logger.Info("Regenerate the charts to see the change reflected in the visualizations.")
	return id, nil
}
