package main

import "github.com/jmehdipour/invoice-dashboard/cmd"

func main() {
	cmd.Execute()
}
