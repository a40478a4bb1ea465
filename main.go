package main

import (
	"flag"

	"trackdrop/cmd"
)

func main() {
	var port int
	flag.IntVar(&port, "port", 0, "Port for the web server (overrides configuration)")
	flag.Parse()

	cmd.StartWebServer(port)
}
