package main

import "credvault/cmd/client/cmd"

func main() {
	cmd.Execute()
}
