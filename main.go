package main

import "github.com/RomanPopovMB/taskmanager/cmd"

func main() {
	cmd.Execute()
}
