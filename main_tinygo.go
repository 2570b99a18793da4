//go:build tinygo && baremetal

package main

import (
	"speedplot/app"
	"speedplot/hal"
)

func main() {
	app.Run(hal.New())
}
