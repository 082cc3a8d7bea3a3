// Package serve runs the HTTP conversion API.
package serve

import (
	"time"

	"bankflow/stmt-csv/cmd/root"
	"bankflow/stmt-csv/internal/api"
	"bankflow/stmt-csv/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

var address string

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversion API",
	Long: `Start an HTTP server exposing the conversion pipeline:
POST /api/convert accepts statement PDFs and returns the transaction table
as JSON; GET /api/health reports liveness.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (defaults to the configured server.address)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	pipeline, closer, err := root.NewPipeline(cmd.Context())
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to initialize pipeline")
	}
	defer closer()

	cfg := root.AppConfig
	app := fiber.New(fiber.Config{
		BodyLimit:   cfg.Server.BodyLimitMB * 1024 * 1024,
		ReadTimeout: time.Duration(cfg.Server.ReadTimeoutS) * time.Second,
	})
	api.NewHandler(pipeline, root.Log).Register(app)

	addr := address
	if addr == "" {
		addr = cfg.Server.Address
	}
	root.Log.Info("Starting HTTP server",
		logging.Field{Key: "address", Value: addr})
	if err := app.Listen(addr); err != nil {
		root.Log.WithError(err).Fatal("Server stopped")
	}
}
