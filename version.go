package lumen

// Version is the current release of the Lumen toolkit.
var Version = "0.3.0"
