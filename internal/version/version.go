package version

// Version is overridden at build time with -ldflags "-X".
// Version 在构建时通过 -ldflags "-X" 覆盖。
var Version = "dev"
