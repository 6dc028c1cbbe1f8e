package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Command represents a CLI command with common functionality
type Command struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Run         func(args []string) error
}

// NewFlagSet creates a standardized flag set for a command
func (c *Command) NewFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		c.PrintUsage()
		fmt.Fprintln(stderr, "\nFLAGS:")
		fs.PrintDefaults()
	}
	return fs
}

// PrintUsage prints standardized usage information
func (c *Command) PrintUsage() {
	fmt.Fprintf(stderr, "%s\n\n", c.Description)
	fmt.Fprintf(stderr, "USAGE:\n    %s\n\n", c.Usage)
	if len(c.Examples) > 0 {
		fmt.Fprintf(stderr, "EXAMPLES:\n")
		for _, example := range c.Examples {
			fmt.Fprintf(stderr, "    %s\n", example)
		}
	}
}

// CommandRegistry manages all CLI commands
type CommandRegistry struct {
	commands map[string]*Command
	order    []string
	version  VersionInfo
}

// VersionInfo holds build-time version information
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(v VersionInfo) *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]*Command),
		version:  v,
	}
}

// Register adds a command to the registry. Help lists commands in
// registration order.
func (r *CommandRegistry) Register(cmd *Command) {
	if _, exists := r.commands[cmd.Name]; !exists {
		r.order = append(r.order, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
}

// Execute runs the appropriate command based on args
func (r *CommandRegistry) Execute(args []string) error {
	if len(args) < 1 {
		r.PrintHelp(stdout)
		return fmt.Errorf("no command specified")
	}

	cmdName := args[0]

	// Handle special commands
	switch cmdName {
	case "help", "-h", "--help":
		if len(args) > 1 {
			if cmd, ok := r.commands[args[1]]; ok {
				cmd.PrintUsage()
				return nil
			}
		}
		r.PrintHelp(stdout)
		return nil
	}

	// Execute registered command
	cmd, ok := r.commands[cmdName]
	if !ok {
		r.PrintHelp(stderr)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	return cmd.Run(args[1:])
}

// PrintHelp prints overall CLI help
func (r *CommandRegistry) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "svcbind - resolve service bindings into application properties")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "    svcbind <command> [arguments]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "COMMANDS:")

	for _, name := range r.order {
		cmd := r.commands[name]
		fmt.Fprintf(w, "    %-12s %s\n", cmd.Name, cmd.Description)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'svcbind <command> --help' for more information on a command.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "    # Write application properties for the mounted bindings")
	fmt.Fprintln(w, "    SERVICE_BINDING_ROOT=/bindings svcbind resolve --output application.properties")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "    # Show what was discovered, with secrets masked")
	fmt.Fprintln(w, "    svcbind list --root /bindings --properties")
}
