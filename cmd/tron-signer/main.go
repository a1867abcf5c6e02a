package main

import "tron-wallet-core/cmd/tron-signer/cmd"

func main() {
	cmd.Execute()
}
