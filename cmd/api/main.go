package main

import (
	"os"

	"github.com/yigit/studyhub/internal/pkg/logger"
	"github.com/yigit/studyhub/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("StudyHub API failed to start")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("StudyHub API stopped with errors")
		os.Exit(1)
	}
}
