package main

import "github.com/Yates-Labs/storyline/cmd"

func main() {
	cmd.Execute()
}
