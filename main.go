package main

import "github.com/fbz-tec/skytrack/cmd"

func main() {
	cmd.Execute()
}
