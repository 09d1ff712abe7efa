package main

import (
	"log"

	"github.com/MrSnakeDoc/docnav/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("❌ docnav: %v", err)
	}
}
