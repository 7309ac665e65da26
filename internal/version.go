package internal

// Version is the current aispeak version
const Version = "0.3.1"
