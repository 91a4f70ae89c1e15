package execxtest

import (
	"fmt"
	"strings"
)

type Call struct {
	User string
	Name string
	Args []string
}

func (c Call) String() string {
	line := strings.Join(append([]string{c.Name}, c.Args...), " ")
	if c.User != "" {
		return c.User + "! " + line
	}
	return line
}

// FakeRunner records every invocation instead of executing it. When
// Paths is nil every binary resolves; set it to control LookPath.
type FakeRunner struct {
	Calls   []Call
	RunErr  func(name string, args []string) error
	Outputs map[string]string
	Paths   map[string]string
}

func (f *FakeRunner) Run(name string, args ...string) error {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
	if f.RunErr != nil {
		return f.RunErr(name, args)
	}
	return nil
}

func (f *FakeRunner) Output(name string, args ...string) (string, error) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
	key := strings.Join(append([]string{name}, args...), " ")
	out, ok := f.Outputs[key]
	if !ok {
		return "", fmt.Errorf("%s: exit status 2", key)
	}
	return out, nil
}

func (f *FakeRunner) RunAs(user string, name string, args ...string) error {
	f.Calls = append(f.Calls, Call{User: user, Name: name, Args: args})
	if f.RunErr != nil {
		return f.RunErr(name, args)
	}
	return nil
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	if f.Paths == nil {
		return "/usr/bin/" + name, nil
	}
	path, ok := f.Paths[name]
	if !ok {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return path, nil
}

// CommandLines flattens recorded calls for order assertions.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.String())
	}
	return lines
}
