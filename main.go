package main

import "github.com/iksnae/valswitch/cmd"

func main() {
	cmd.Execute()
}
