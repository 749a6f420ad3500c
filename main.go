package main

import "github.com/doxly/doxly/cmd"

func main() {
	cmd.Execute()
}
