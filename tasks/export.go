package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/koitsu/thorchain-cryptotax/config"
)

// ExportFunc runs one export and returns the number of rows written.
type ExportFunc func(ctx context.Context) (int, error)

// ScheduleExport registers a recurring export. The first run happens at start when runOnStart is set,
// otherwise one interval later. Runs never overlap.
func ScheduleExport(ctx context.Context, scheduler *gocron.Scheduler, every string, runOnStart bool, export ExportFunc) (*gocron.Job, error) {
	interval, err := time.ParseDuration(every)
	if err != nil {
		return nil, fmt.Errorf("invalid export interval %q: %w", every, err)
	}

	s := scheduler.Every(interval).SingletonMode()
	if !runOnStart {
		s = s.StartAt(time.Now().Add(interval))
	}

	return s.Do(ExportTask, ctx, export)
}

func ExportTask(ctx context.Context, export ExportFunc) {
	config.Log.Info("Task started for ExportTask")

	written, err := export(ctx)
	if err != nil {
		config.Log.Error("Error in ExportTask", err)
		return
	}

	config.Log.Infof("Task ended for ExportTask, %d entries written", written)
}
