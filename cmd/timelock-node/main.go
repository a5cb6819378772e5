package main

import (
	"os"

	"timelock-node/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Log.Error(err)
		os.Exit(1)
	}
}
