package main

import (
	"os"

	"github.com/powerman/structlog"

	"github.com/thurmanmarka/daybreak/internal/logging"
)

var log = structlog.New()

func main() {
	logging.Configure()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}
