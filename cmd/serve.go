package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"feedscout/internal/apihandlers"
)

var (
	serveAddr string // Listen address
	servePort string // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run feedscout as an HTTP API server",
	Long: `Starts an HTTP server exposing the catalog tools (GET /api/v1/tools,
POST /api/v1/tools/:name) and read-only browse routes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Retrieve the application instance from context
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if !debugMode {
			gin.SetMode(gin.ReleaseMode)
		}
		router := apihandlers.NewRouter(appInstance)

		// Flags override the configured address when set explicitly.
		cfg := appInstance.Config
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		listenAddr := cfg.ListenAddr()
		log.Infof("Starting feedscout API server on http://%s", listenAddr)

		// router.Run blocks unless an error occurs
		if err := router.Run(listenAddr); err != nil {
			log.WithError(err).Error("failed to run API server")
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost", "Address to listen on (e.g., '0.0.0.0' for all interfaces)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
}
