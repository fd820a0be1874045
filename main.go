package main

import "feedscout/cmd"

func main() {
	cmd.Execute()
}
