/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kuberwastaken/meow/pkg/api"
	"github.com/Kuberwastaken/meow/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the MEOW REST API server.

The server exposes embed, extract and capacity operations over HTTP for
pipelines that would rather not shell out to the CLI, plus a Prometheus
metrics endpoint at /metrics.

Examples:
  meow serve
  meow serve --port=9090
  meow serve --config=./meow.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		bind, _ := cmd.Flags().GetString("bind")
		port, _ := cmd.Flags().GetInt("port")

		cfg := config.DefaultConfig()
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = loaded
			cmd.Printf("Loaded configuration from %s\n", configPath)
		}

		// Flags override the config file.
		if cmd.Flags().Changed("bind") {
			cfg.Server.Bind = bind
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
		}

		return api.StartServer(codec, api.ServerConfig{
			Bind: cfg.Server.Bind,
			Port: cfg.Server.Port,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "Path to configuration file")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind the server to")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to run the server on")
}
