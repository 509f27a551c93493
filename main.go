package main

import (
	"log"

	"github.com/thiagokokada/gitrepo/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("gitrepo: %v", err)
	}
}
