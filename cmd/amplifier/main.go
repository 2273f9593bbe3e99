package main

import "github.com/axelarnetwork/axelar-contract-deployments/cmd/amplifier/cmd"

func main() {
	cmd.Execute()
}
