package main

import "github.com/they4kman/marathonsweep/cmd"

func main() {
	cmd.Execute()
}
