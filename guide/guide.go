// Package guide holds the embedded usage pages shown by "darc guide" and the
// darc_guide MCP tool. One markdown page per command, plus guide.md as the
// landing page.
package guide

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// ErrUnknownTopic is returned by Get for a topic with no page.
var ErrUnknownTopic = errors.New("unknown guide topic")

// aliases maps alternative command names onto the page that documents them.
var aliases = map[string]string{
	"find":    "search",
	"ingest":  "file",
	"export":  "import",
	"unlink":  "relate",
	"delete":  "rm",
	"mcp":     "serve",
	"cat":     "show",
	"list":    "ls",
	"subtree": "tree",
}

// Get returns the page for topic. An empty topic returns the landing page.
// Topics are case-insensitive and command aliases such as "find" resolve to
// their page. An unknown topic returns an error wrapping ErrUnknownTopic that
// lists the topics that do exist.
func Get(topic string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(topic))
	if name == "" {
		name = "guide"
	}
	if a, ok := aliases[name]; ok {
		name = a
	}
	data, err := files.ReadFile(name + ".md")
	if err != nil {
		topics, _ := List()
		return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownTopic, topic, strings.Join(topics, ", "))
	}
	return string(data), nil
}

// List returns the topic names, sorted, excluding the landing page.
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name != "guide" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
