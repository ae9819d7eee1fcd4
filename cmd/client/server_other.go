//go:build !js

package main

// defaultServerURL is empty on native builds, which play locally unless -server is set.
func defaultServerURL() string {
	return ""
}
