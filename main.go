package main

import "github.com/kabang/kabang/cmd"

func main() {
	cmd.Execute()
}
