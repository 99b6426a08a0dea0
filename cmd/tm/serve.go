package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/amonks/taskmaster/chat"
	"github.com/amonks/taskmaster/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task engine over local HTTP",
	RunE:  runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, then :5000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.ServerAddr()
	}

	client := chat.NewClient(cfg.Chat.Endpoint)
	client.Model = cfg.Chat.Model

	srv, err := server.New(server.Options{
		Store:  store,
		Chat:   client,
		APIKey: cfg.ChatAPIKey(),
		Logger: log.New(os.Stderr, "taskmaster: ", log.LstdFlags),
	})
	if err != nil {
		return err
	}

	return srv.Serve(addr)
}
