package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/orbview/atmosray/pkg/logger"
	"github.com/orbview/atmosray/web/server"
)

func main() {
	addr := flag.String("addr", ":8080", "Address to serve on")
	level := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	if err := logger.Init(*level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	webServer := server.NewServer(*addr)

	logger.Info("Planet renderer web preview", zap.String("addr", *addr))

	if err := webServer.Start(); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
