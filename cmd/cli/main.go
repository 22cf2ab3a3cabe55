package main

import (
	"github.com/transferhub/transferhub-go/internal/cli"
)

func main() {
	cli.Execute()
}
