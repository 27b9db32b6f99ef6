// cmd/pblast/main.go
package main

import (
	"pblast/internal/app"
	"pblast/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
