package main

import (
	"os"

	_ "github.com/lib/pq"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
