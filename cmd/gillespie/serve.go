package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/deep6ix/gillespie/internal/config"
	"github.com/deep6ix/gillespie/internal/server"
	"github.com/deep6ix/gillespie/internal/telemetry"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <network.toml>",
	Short: "Serve a reaction network over a streaming HTTP/WebSocket API",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	net, err := config.LoadNetwork(args[0])
	if err != nil {
		return err
	}
	net.SetWarnFunc(telemetry.WarnFunc(logger))

	s := server.New(net, logger)
	logger.Sugar().Infof("gillespie: serving %s on %s", args[0], serveAddr)
	fmt.Printf("listening on %s\n", serveAddr)
	return http.ListenAndServe(serveAddr, s.Router())
}
