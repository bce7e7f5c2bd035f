package main

import "github.com/arung-agamani/vagrant-inventory/cmd"

func main() {
	cmd.Execute()
}
