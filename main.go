package main

import (
	"context"

	"github.com/ytget/yt-monitor/internal/cli"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	cli.ExecuteContext(context.Background(), version)
}
