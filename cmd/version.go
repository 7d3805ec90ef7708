package cmd

// Version is the application version. It is intended to be set at build time
// using ldflags, e.g.
//
//	go build -ldflags "-X github.com/Gugan3007/nexus-prime/cmd.Version=1.2.0"
var Version = "1.0.0"
