//go:build js

package main

import "syscall/js"

// defaultServerURL points a browser build at the game endpoint of the page's own server.
func defaultServerURL() string {
	location := js.Global().Get("location")
	scheme := "ws"
	if location.Get("protocol").String() == "https:" {
		scheme = "wss"
	}
	return scheme + "://" + location.Get("host").String() + "/ws"
}
