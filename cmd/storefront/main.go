package main

import (
	"os"

	"github.com/joho/godotenv"
)

// CLI магазина: те же действия, что и на странице, над тем же сохранённым состоянием.
func main() {
	_ = godotenv.Load(".env.local")

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
