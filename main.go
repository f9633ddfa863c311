package main

import (
	"os"

	"github.com/wbh1/jiratui/cmd"
	"github.com/wbh1/jiratui/internal/logging"
)

func main() {
	defer logging.RecoverPanic("main", nil)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
