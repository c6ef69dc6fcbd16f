package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "cli":
		return cliTemplate, nil
	case "serve":
		return serveTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const cliTemplate = `app = "tdhctl"
format = "text"

# Provider filters for listings; empty values match everything.
schema = ""
name_contains = ""
`

const serveTemplate = `app = "tdhctl"
addr = ":9460"
cors_origins = ["http://localhost:3000"]
format = "json"
`
