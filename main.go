package main

import "github.com/itsmostafa/chartpanel/cmd"

func main() {
	cmd.Execute()
}
