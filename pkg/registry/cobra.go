package registry

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag annotations read by FromCobra. Set them with cmd.Flags().SetAnnotation.
const (
	// FlagOptionsAnnotation lists the allowed values of an option flag.
	FlagOptionsAnnotation = "acgen_flag_options"

	// FlagAllowNoAnnotation marks a boolean flag that also accepts --no-<name>.
	// Any value enables it.
	FlagAllowNoAnnotation = "acgen_flag_allow_no"
)

// CobraOptions carries the host settings a command tree cannot express.
type CobraOptions struct {
	// Bin overrides root.Name().
	Bin            string
	BinAliases     []string
	CacheDir       string
	Shell          string
	TopicSeparator Separator
}

// FromCobra walks a cobra command tree and returns it as a registry.
//
// Runnable commands become commands (id = colon-joined path below root),
// parents become explicit topics described by their Short text, and cobra
// aliases are expanded against the parent path. Hidden commands hide their
// whole subtree. Local and inherited flags are both recorded; deprecated
// flags are treated as hidden.
func FromCobra(root *cobra.Command, opts CobraOptions) *Config {
	cfg := &Config{
		Bin:            opts.Bin,
		BinAliases:     opts.BinAliases,
		CacheDir:       opts.CacheDir,
		Shell:          opts.Shell,
		TopicSeparator: opts.TopicSeparator,
	}
	if cfg.Bin == "" {
		cfg.Bin = root.Name()
	}
	if cfg.TopicSeparator == "" {
		cfg.TopicSeparator = SeparatorSpace
	}

	plugin := Plugin{Name: cfg.Bin}
	for _, child := range root.Commands() {
		walkCobra(child, nil, false, cfg, &plugin)
	}
	cfg.Plugins = []Plugin{plugin}
	return cfg
}

func walkCobra(cmd *cobra.Command, parent []string, hidden bool, cfg *Config, plugin *Plugin) {
	hidden = hidden || cmd.Hidden || cmd.Name() == cobra.ShellCompRequestCmd || cmd.Name() == cobra.ShellCompNoDescRequestCmd
	path := append(append([]string{}, parent...), cmd.Name())
	id := strings.Join(path, ":")

	if cmd.HasSubCommands() {
		cfg.Topics = append(cfg.Topics, Topic{
			Name:        id,
			Description: cmd.Short,
			Hidden:      hidden,
		})
	}

	if cmd.Runnable() {
		c := Command{
			ID:          id,
			Summary:     cmd.Short,
			Description: cmd.Long,
			Hidden:      hidden,
			Flags:       cobraFlags(cmd),
		}
		for _, alias := range cmd.Aliases {
			c.Aliases = append(c.Aliases, strings.Join(append(append([]string{}, parent...), alias), ":"))
		}
		plugin.Commands = append(plugin.Commands, c)
	}

	for _, child := range cmd.Commands() {
		walkCobra(child, path, hidden, cfg, plugin)
	}
}

func cobraFlags(cmd *cobra.Command) map[string]Flag {
	flags := make(map[string]Flag)
	visit := func(f *pflag.Flag) {
		if _, ok := flags[f.Name]; ok {
			return
		}
		flags[f.Name] = cobraFlag(f)
	}
	cmd.LocalFlags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)
	return flags
}

func cobraFlag(f *pflag.Flag) Flag {
	flag := Flag{
		Name:    f.Name,
		Char:    f.Shorthand,
		Type:    FlagOption,
		Summary: f.Usage,
		Hidden:  f.Hidden || f.Deprecated != "",
	}

	valueType := f.Value.Type()
	switch {
	case valueType == "bool":
		flag.Type = FlagBoolean
	case valueType == "count":
		flag.Type = FlagBoolean
		flag.Multiple = true
	}
	if _, ok := f.Value.(pflag.SliceValue); ok {
		flag.Multiple = true
	} else if strings.HasSuffix(valueType, "Slice") || strings.HasSuffix(valueType, "Array") {
		flag.Multiple = true
	}

	if opts, ok := f.Annotations[FlagOptionsAnnotation]; ok {
		flag.Options = append([]string{}, opts...)
	}
	if _, ok := f.Annotations[FlagAllowNoAnnotation]; ok && flag.IsBoolean() {
		flag.AllowNo = true
	}
	return flag
}
