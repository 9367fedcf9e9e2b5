package main

import "github.com/brogergvhs/sanpid/cmd"

func main() {
	cmd.Execute()
}
