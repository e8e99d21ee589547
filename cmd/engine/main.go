package main

import (
	"github.com/tilesnake/engine/cmd/engine/commands"
)

func main() {
	commands.Execute()
}
