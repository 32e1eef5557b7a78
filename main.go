package main

import "github.com/Ananeya/asset-management-system/cmd"

func main() {
	cmd.Execute()
}
