package main

import (
	"os"

	"github.com/dwpark/llm/llm"
)

func main() {
	os.Exit(llm.CLI(os.Args[1:]))
}
