package main

import "github.com/docfill/docfill/cmd"

func main() {
	cmd.Execute()
}
