/*
Copyright © 2025 tieubaoca
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/tieubaoca/smartmail-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// A missing .env is fine in production where secrets come from the
	// environment directly.
	godotenv.Load()
}
