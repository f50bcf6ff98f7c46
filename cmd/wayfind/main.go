package main

import (
	"log"

	"github.com/davmoraru/wayfind/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ wayfind failed to start: %v", err)
	}
}
