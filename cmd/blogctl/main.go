package main

import "cleanlog-backend/cmd/blogctl/commands"

func main() {
	commands.Execute()
}
