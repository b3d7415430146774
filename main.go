package main

import "revealboard/cmd"

func main() {
	cmd.Execute()
}
