package main

import (
	"log"
	"os"

	"github.com/vexyart/vexyglob/cmd"
)

func main() {
	log.SetFlags(0)

	// Recover from panics so a traversal bug never dumps a stack trace on
	// a user terminal.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("vexyglob: internal error: %v", r)
			os.Exit(1)
		}
	}()

	if err := cmd.Execute(); err != nil {
		log.Fatalf("vexyglob: %v", err)
	}
}
