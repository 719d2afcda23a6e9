package interp

import (
	"gopkg.in/yaml.v3"
)

// yamlSnapshot is the --dump-state debug shape: the interpreter's
// mode plus every live object's canonical serialized line. It is never
// the format a snapshot is reloaded from — that remains the line-based
// text AtomicBegin/autoLoad read and write — this is strictly a
// human-readable debug dump.
type yamlSnapshot struct {
	State   string   `yaml:"state"`
	Objects []string `yaml:"objects"`
}

// DumpStateYAML renders the interpreter's current mode and every live
// object's serialized line as YAML, for the --dump-state debug flag.
// It never replaces the line-based snapshot format AtomicBegin/autoLoad
// use for actual rollback.
func (i *Interpreter) DumpStateYAML() ([]byte, error) {
	i.mu.Lock()
	state := i.status
	i.mu.Unlock()

	lines, err := i.classes.SerializeAll()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(yamlSnapshot{State: state.String(), Objects: lines})
}
