package main

import (
	"log"

	"github.com/abodsh/edufiles/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("edufiles failed to start: %v", err)
	}
}
