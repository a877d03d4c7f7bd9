package main

import "github.com/wordduel/wordduel-go/internal/cli"

func main() {
	cli.Execute()
}
