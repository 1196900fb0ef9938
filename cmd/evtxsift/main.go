package main

import "github.com/livp123/evtxsift/cmd/evtxsift/commands"

func main() {
	commands.Execute()
}
