package main

import "os"

func main() {
	os.Exit((&cli{
		inStream:  os.Stdin,
		outStream: os.Stdout,
		errStream: os.Stderr,
	}).run(os.Args[1:]))
}
