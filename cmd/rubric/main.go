package main

import "github.com/tsawler/rubric/cmd/rubric/cmd"

func main() {
	cmd.Execute()
}
