package main

import (
	"os"

	"github.com/stash-app/stash-sync/syncservice"
)

func main() {
	if err := syncservice.Run(); err != nil {
		os.Exit(1)
	}
}
