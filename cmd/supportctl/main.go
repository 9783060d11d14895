package main

import (
	cmd "github.com/charanhu/support-agent/internal/cli"
)

// main starts the supportctl CLI by delegating to the cobra root
// command defined in the cli package.
func main() {
	cmd.Execute()
}
