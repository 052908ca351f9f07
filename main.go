package main

import (
	"os"

	"flutter-scaffold/backend/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Logger.Error(err.Error())
		os.Exit(1)
	}
}
