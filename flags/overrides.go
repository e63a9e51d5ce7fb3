package flags

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
)

// ApplyOverrides sets each named dynamic flag to the given value. Every
// override is attempted; failures are collected and returned together.
func (r *Registry) ApplyOverrides(overrides map[string]bool) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	var result *multierror.Error
	for _, name := range names {
		if err := r.Set(name, overrides[name]); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

type overrideFile struct {
	Flags map[string]bool `toml:"flags"`
}

// LoadOverrides reads flag overrides from a TOML document and applies them:
//
//	[flags]
//	LuauVectorLib = false
//	LuauTailCallOptimization = false
func (r *Registry) LoadOverrides(reader io.Reader) error {
	var file overrideFile
	md, err := toml.NewDecoder(reader).Decode(&file)
	if err != nil {
		return fmt.Errorf("parsing flag overrides: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("parsing flag overrides: unexpected keys %s", strings.Join(keys, ", "))
	}
	return r.ApplyOverrides(file.Flags)
}

// ParseAssignment parses a "Name=value" override such as
// "LuauVectorLib=false". A bare name means true.
func ParseAssignment(s string) (string, bool, error) {
	name, raw, found := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false, fmt.Errorf("invalid flag assignment %q", s)
	}
	if !found {
		return name, true, nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return "", false, fmt.Errorf("invalid value for flag %s: %q", name, raw)
	}
	return name, value, nil
}
