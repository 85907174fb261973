package main

import (
	cmd "github.com/rohmanhakim/cloudmeta/internal/cli"
)

func main() {
	cmd.Execute()
}
