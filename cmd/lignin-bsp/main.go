// Command lignin-bsp combines triangle meshes with BSP-tree booleans.
package main

import "github.com/chazu/lignin-bsp/internal/cli"

func main() {
	cli.Execute()
}
