// Command ezkey runs the EzKey wallet: an HTTP API and a terminal client for
// EzKey NFTs and EZOCH rewards on Polygon.
package main

func main() {
	Execute()
}
