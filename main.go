package main

import "github.com/arbazmubasher1/RidersDashboard/cmd"

func main() {
	cmd.Execute()
}
