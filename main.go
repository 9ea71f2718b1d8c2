/*
Copyright © 2025 tieubaoca
*/
package main

import (
	"github.com/joho/godotenv"

	"github.com/tieubaoca/docqa-be/cmd"
)

func main() {
	// .env is optional, the process environment wins when both are set
	_ = godotenv.Load()
	cmd.Execute()
}
