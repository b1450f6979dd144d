package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/NoreeIsmael/Next-Project/internal/hub"
	"github.com/NoreeIsmael/Next-Project/internal/metrics"
	"github.com/NoreeIsmael/Next-Project/internal/server"
	"github.com/NoreeIsmael/Next-Project/internal/tailer"
	"github.com/NoreeIsmael/Next-Project/internal/watcher"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the log retrieval API over HTTP",
	Long: `Serve the retrieval API, the catalog listing, and the live WebSocket
stream for the log files under the configured root.

Examples:
  loglens serve --root /srv/app/logs
  loglens serve --port 9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "8080", "HTTP listen port")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	root := viper.GetString("root")
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("log root: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(root)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	ckpt, err := tailer.NewCheckpoint(filepath.Join(root, ".loglens-state.json"))
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}

	t := tailer.New(w, ckpt)
	h := hub.New(t.Lines())
	collector := metrics.NewCollector()

	port := viper.GetString("server.port")
	srv := server.New(root, h, collector, port)
	httpSrv := &http.Server{Addr: ":" + port, Handler: srv.Handler()}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { w.Start(gctx); return nil })
	group.Go(func() error { t.Start(gctx); return nil })
	group.Go(func() error { h.Start(gctx); return nil })
	group.Go(func() error {
		err := httpSrv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	fmt.Fprintf(os.Stderr, "loglens serving %s on :%s\n", root, port)
	return group.Wait()
}
