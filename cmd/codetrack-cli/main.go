package main

import (
	"codetrack-backend/cmd/codetrack-cli/cmd"
)

func main() {
	cmd.Execute()
}
