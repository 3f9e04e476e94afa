package registry

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/horw/issue-title-ai/internal/config"
	"github.com/horw/issue-title-ai/internal/i18n"
)

type CommandFactory interface {
	CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command
}

type Registry struct {
	factories map[string]CommandFactory
	config    *config.Config
	t         *i18n.Translations
}

func NewRegistry(cfg *config.Config, t *i18n.Translations) *Registry {
	return &Registry{
		factories: make(map[string]CommandFactory),
		config:    cfg,
		t:         t,
	}
}

func (r *Registry) Register(name string, factory CommandFactory) error {
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%s", r.t.GetMessage("factory_already_registered", 0, map[string]interface{}{
			"FactoryName": name,
		}))
	}
	r.factories[name] = factory
	return nil
}

// CreateCommands builds every registered command, ordered by name.
func (r *Registry) CreateCommands() []*cli.Command {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	commands := make([]*cli.Command, 0, len(names))
	for _, name := range names {
		commands = append(commands, r.factories[name].CreateCommand(r.t, r.config))
	}
	return commands
}
