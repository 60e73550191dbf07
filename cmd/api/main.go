package main

import "github.com/Fan-Karwanta/motour-server-101/cmd/api/command"

func main() {
	command.Execute()
}
