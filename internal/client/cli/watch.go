package cli

import (
	"context"
	"fmt"
	"time"
)

// watch runs the status poll loop and prints posture changes until the
// user presses Enter. The poller is cancelled deterministically when
// observation ends, so no timer survives the command.
func (a *App) watch(ctx context.Context) {
	if a.requireUser() == "" {
		return
	}

	watchCtx, cancel := context.WithCancel(ctx)
	a.stopWatch = cancel

	go a.poller.Run(watchCtx)

	go func() {
		var last string
		ticker := time.NewTicker(a.config.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				status := a.mirror.Status()
				line := "monitoring inactive"
				if status.Active {
					line = fmt.Sprintf("monitoring active, posture: %s", status.CurrentPosture)
				}
				if line != last {
					fmt.Println(line)
					last = line
				}
			case <-watchCtx.Done():
				return
			}
		}
	}()

	fmt.Println("Watching monitoring status (press Enter to stop)")
	_, _ = a.reader.ReadString('\n')
	a.cancelWatch()
}
