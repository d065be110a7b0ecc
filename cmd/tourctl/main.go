package main

import "github.com/petrijr/featuretour/internal/cli"

func main() {
	cli.Execute()
}
