package main

import "github.com/glossdev/gloss/cmd"

func main() {
	cmd.Execute()
}
