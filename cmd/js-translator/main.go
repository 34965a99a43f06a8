package main

import "js-translator/internal/cli"

func main() {
	cli.Execute()
}
