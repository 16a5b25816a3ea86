package cmd

// version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/scienceol/xyzen/inhibit/cmd.version=1.0.0"
var version = "0.1.0"
