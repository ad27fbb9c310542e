package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/pipeline"
	"github.com/jobscout/jobscout/internal/server"
	"github.com/jobscout/jobscout/internal/store"
)

const defaultListenAddr = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the job-search API over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address (default "+defaultListenAddr+")")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobscout api", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	// The API persists every run, so a database is mandatory here.
	deps, cleanup, err := newPipelineDeps(ctx, config, logger, true)
	defer cleanup()
	if err != nil {
		logger.Fatal("building pipeline dependencies", zap.Error(err))
	}

	runner := pipeline.NewRunner(logger, pipeline.DefaultSteps(deps)...)

	st, ok := deps.Store.(*store.Store)
	if !ok {
		logger.Fatal("store is required for the api server")
	}

	addr := defaultListenAddr
	if config.Server != nil && config.Server.Listen != "" {
		addr = config.Server.Listen
	}

	if err := server.New(runner, st, logger).ListenAndServe(ctx, addr); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
