package serve

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/shahbajlive/lexforge/internal/enrich"
)

// watchReport pushes the report to websocket clients whenever the report
// file changes. The parent directory is watched, not the file: the report
// writer replaces the file by rename, which would invalidate a file watch.
func (s *Server) watchReport(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Error("report watcher unavailable", "error", err)
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(s.opts.ReportPath)
	if err := watcher.Add(dir); err != nil {
		s.logger.Error("report watch failed", "dir", dir, "error", err)
		return
	}
	target := filepath.Clean(s.opts.ReportPath)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.pushReport()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("report watcher error", "error", err)
		}
	}
}

func (s *Server) pushReport() {
	report, err := enrich.ReadReport(s.opts.ReportPath)
	if err != nil {
		s.logger.Debug("report not readable yet", "error", err)
		return
	}
	s.hub.broadcast(report)
}
