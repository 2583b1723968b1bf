package main

import "github.com/chrisuehlinger/dragbounds/cmd"

func main() {
	cmd.Execute()
}
