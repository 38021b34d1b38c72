package main

import (
	"os"

	"github.com/limbo/healthlog/pkg/cleanup"
)

func main() {
	err := newRootCmd().Execute()
	cleanup.CleanUp()
	if err != nil {
		os.Exit(1)
	}
}
