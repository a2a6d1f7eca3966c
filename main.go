package main

import "github.com/douhashi/remove-safe-to-test-label/cmd"

func main() {
	cmd.Execute()
}
