package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/narendrakumarsharma-byte/aws-ai-class/pkg/server"

	_ "github.com/narendrakumarsharma-byte/aws-ai-class/toolsets/codegen"
	_ "github.com/narendrakumarsharma-byte/aws-ai-class/toolsets/gateway"
	_ "github.com/narendrakumarsharma-byte/aws-ai-class/toolsets/identity"
	_ "github.com/narendrakumarsharma-byte/aws-ai-class/toolsets/memory"
	_ "github.com/narendrakumarsharma-byte/aws-ai-class/toolsets/observability"
	_ "github.com/narendrakumarsharma-byte/aws-ai-class/toolsets/runtime"
)

const version = "0.1.0"

var runServer = server.Run
var exit = os.Exit

func main() {
	ctx := context.Background()

	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	region := flags.String("region", "", "AWS region")
	profile := flags.String("profile", "", "AWS shared config profile")
	outputDir := flags.String("output-dir", "", "directory where generated scripts should be written")
	toolsets := flags.String("toolsets", "", "comma-separated toolsets to enable")
	configPath := flags.String("config", "", "config file path")
	readOnly := flags.Bool("read-only", false, "disable write operations")
	disableDestructive := flags.Bool("disable-destructive", false, "disable destructive operations")
	logLevel := flags.String("log-level", "", "log level")

	_ = flags.Parse(os.Args[1:])

	options := server.Options{
		ConfigPath:         *configPath,
		Region:             "",
		Profile:            "",
		OutputDir:          "",
		Toolsets:           nil,
		ReadOnly:           false,
		DisableDestructive: false,
		LogLevel:           "",
		Version:            version,
		Stderr:             os.Stderr,
	}
	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["region"] {
		options.Region = *region
	}
	if set["profile"] {
		options.Profile = *profile
	}
	if set["output-dir"] {
		options.OutputDir = *outputDir
	}
	if set["toolsets"] {
		options.Toolsets = parseCSV(*toolsets)
	}
	if set["read-only"] {
		options.ReadOnly = *readOnly
	}
	if set["disable-destructive"] {
		options.DisableDestructive = *disableDestructive
	}
	if set["log-level"] {
		options.LogLevel = *logLevel
	}

	if err := runServer(ctx, options); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		exit(1)
	}
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
