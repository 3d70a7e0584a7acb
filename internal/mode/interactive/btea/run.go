// ABOUTME: Entry point for the Bubble Tea interactive TUI
// ABOUTME: Runs the program alongside the config watcher and stops both on exit or ctx cancel

package btea

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mauromedda/panechat/internal/config"
	"github.com/mauromedda/panechat/internal/log"
	"golang.org/x/sync/errgroup"
)

// Run starts the interactive app and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, deps AppDeps) error {
	m := NewAppModel(deps)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
	)

	// NewAppModel allocates sh as a pointer; tea.NewProgram copies the
	// model value but shares the pointer.
	m.sh.program = p

	if len(deps.WatchPaths) > 0 {
		w := config.NewWatcher(deps.WatchPaths, func() { p.Send(ConfigChangedMsg{}) })
		if err := w.Start(); err != nil {
			log.Warn("config watcher disabled: %v", err)
		} else {
			defer w.Stop()
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		defer m.sh.cancel()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("bubble tea: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			log.Info("interrupted: %v", ctx.Err())
			p.Quit()
		case <-m.sh.ctx.Done():
		}
		return nil
	})
	return g.Wait()
}
