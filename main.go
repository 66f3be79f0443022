package main

import "github.com/gaurav-prasanna/htmlmd/cmd"

func main() {
	cmd.Execute()
}
