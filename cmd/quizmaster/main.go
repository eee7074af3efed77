package main

import (
	"log"

	"github.com/quizmaster-app/quizmaster/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
