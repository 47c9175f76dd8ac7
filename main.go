package main

import (
	"log"

	"github.com/koitsu/thorchain-cryptotax/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("Failed to execute. Err: %v", err)
	}
}
