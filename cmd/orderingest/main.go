package main

import "github.com/example/order-ingest/cmd"

func main() {
	cmd.Execute()
}
