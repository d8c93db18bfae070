package main

import "variation-manager/cmd"

func main() {
	cmd.Execute()
}
