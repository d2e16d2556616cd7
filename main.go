package main

import "github.com/itsmostafa/pdfnames/cmd"

func main() {
	cmd.Execute()
}
