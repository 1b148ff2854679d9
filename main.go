package main

import "github.com/emptyshell/mtsh/cmd"

func main() {
	cmd.Execute()
}
