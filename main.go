package main

import "github.com/Norgate-AV/presetgen/cmd"

func main() {
	cmd.Execute()
}
