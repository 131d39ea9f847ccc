package main

import (
	"os"

	"github.com/haasonsaas/aiscan/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
