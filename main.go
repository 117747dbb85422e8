package main

import (
	"github.com/brogergvhs/noveld/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// optional; NOVELD_CONFIG_HOME and friends may come from .env
	_ = godotenv.Load()

	cmd.Execute()
}
