package main

import "github.com/nfrund/friends/cmd/friends-cli/cmd"

func main() {
	cmd.Execute()
}
