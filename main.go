package main

import "github.com/rwxsh/zcompgen/cmd"

func main() {
	cmd.Execute()
}
