// Package flagx contains helpers that let several components share os.Args,
// each parsing only the flags it owns.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigEnvVar names the environment variable consulted by ConfigFile when no
// -c/-config flag is present.
const ConfigEnvVar = "TASKKEEPER_CONFIG"

// FilterArgs returns the subset of args that belongs to allowedFlags, keeping
// values that follow them.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -f database.json
//  2. Flag and value combined with '=':      -f=database.json
//
// Flags listed in boolFlags never consume the next argument, so "-x -a addr"
// keeps "-a addr" intact. Pass "-x=false" to switch a boolean off.
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}
	bools := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		bools[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)

		if _, isBool := bools[arg]; isBool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags extracts the config file path given via -c or -config.
// Other arguments are ignored. Returns "" when neither flag is present.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}

// ConfigFile resolves the JSON config path: flags first, then ConfigEnvVar.
func ConfigFile() string {
	if path := JsonConfigFlags(); path != "" {
		return path
	}
	return os.Getenv(ConfigEnvVar)
}
