package config

import (
	"fmt"
	"os"
)

const defaultConfigTemplate = `# mdstream configuration
logging:
  level: info      # debug, info, warn, error
  format: text     # text or json

render:
  engine: fsm      # fsm (line state machine) or commonmark (goldmark reference)
  encoding: auto   # auto strips a UTF-8 byte-order mark, raw passes bytes through

output:
  path: ""         # empty writes to stdout

metrics:
  path: ""         # write Prometheus text metrics here after each run

watch:
  debounce: 200ms
`

// Init creates a new configuration file with commented default content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
