// Package main is the entrypoint for the example settings extension.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cartermckinnon/bottlerocket-settings-sdk/internal/server"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/example"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/extension"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/migrate"
)

const usage = `Usage: example-extension [command]
       example-extension serve           Start the extension (NATS request/reply, HTTP health).
       example-extension list-versions   Print the registered model versions.

Commands:
  serve           (default) Serve the example settings extension.
  list-versions   Print registered versions, one per line.

Environment: COMMS_URL (default nats://127.0.0.1:4222), EXTENSION_SUBJECT, HTTP_PORT, LOG_LEVEL.
`

// buildExtension assembles the example extension: two linearly migratable
// model versions served under one name.
func buildExtension() (*extension.SettingsExtension, error) {
	return extension.NewBuilder("example").
		WithModels(example.NewV1Setting(), example.NewV2Setting()).
		WithMigrator(migrate.LinearMigrator{}).
		Build()
}

func main() {
	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 && args[0] != "" {
		cmd = args[0]
	}

	ext, err := buildExtension()
	if err != nil {
		log.Fatalf("example-extension: %v", err)
	}

	switch cmd {
	case "serve":
		if err := server.Run(ext); err != nil {
			log.Fatalf("example-extension serve: %v", err)
		}
	case "list-versions":
		for _, tag := range ext.Versions() {
			fmt.Println(tag)
		}
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "example-extension: unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
}
