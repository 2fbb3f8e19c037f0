// Package app contains the core application logic. It defines the App
// struct, its configuration, and the command lifecycle that loads shader
// sources, resolves their dependencies and answers queries, decoupled from
// any specific entrypoint like a CLI.
package app
