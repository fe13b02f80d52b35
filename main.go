package main

import "github.com/mpeltier/thumbfix/cmd"

func main() {
	cmd.Execute()
}
