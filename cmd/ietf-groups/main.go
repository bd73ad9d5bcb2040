package main

import "github.com/pfrederiksen/ietf-groups/internal/cli"

func main() {
	cli.Execute()
}
