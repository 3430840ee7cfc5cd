package cmd

import (
	"testing"

	"github.com/fbz-tec/skytrack/core/db"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotSourceKeepsISOTimestamps(t *testing.T) {
	saved := timeFormat
	t.Cleanup(func() { timeFormat = saved })
	timeFormat = "dd/MM/yyyy HH:mm:ss"

	const dsn = "postgres://postgres@localhost:5432/airport_analytics"
	assert.Equal(t, db.SnapshotTimeFormat, snapshotSource(dsn).TimeFormat())
	assert.Equal(t, "dd/MM/yyyy HH:mm:ss", reportSource(dsn).TimeFormat())
}
