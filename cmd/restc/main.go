package main

import (
	"os"

	"github.com/andzheyevskiy/Toolbox/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
