package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	literalFlagTypeName       = "bool"
	literalFlagTrue           = "true"
	literalFlagAcceptedValues = "true, false, yes, no, on, off, 1, 0"
	literalFlagInvalidFormat  = "invalid boolean value %q for --%s; accepted values: %s"
)

var booleanLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// parseBooleanLiteral interprets a yes/no style literal. An empty literal means true.
func parseBooleanLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	parsed, known := booleanLiterals[normalized]
	return parsed, known
}

// literalBooleanFlag is a pflag.Value accepting every literal in booleanLiterals.
type literalBooleanFlag struct {
	target   *bool
	flagName string
}

func (flagValue *literalBooleanFlag) Set(input string) error {
	parsed, known := parseBooleanLiteral(input)
	if !known {
		return fmt.Errorf(literalFlagInvalidFormat, input, flagValue.flagName, literalFlagAcceptedValues)
	}
	*flagValue.target = parsed
	return nil
}

func (flagValue *literalBooleanFlag) String() string {
	if flagValue == nil || flagValue.target == nil {
		return literalFlagTrue
	}
	return strconv.FormatBool(*flagValue.target)
}

func (flagValue *literalBooleanFlag) Type() string {
	return literalFlagTypeName
}

// registerBooleanFlag registers a flag that accepts --name, --name=no and --name no.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&literalBooleanFlag{target: target, flagName: name}, name, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(defaultValue)
	registered.NoOptDefVal = literalFlagTrue
}

// normalizeBooleanFlagArguments joins "--flag literal" into "--flag=literal" for every
// literal boolean flag of command and its subcommands, since pflag never consumes a
// separate value for flags with NoOptDefVal.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	literalFlagNames := map[string]struct{}{}
	collectBooleanFlagNames(command, literalFlagNames)
	if len(literalFlagNames) == 0 {
		return arguments
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == "--" {
			return append(normalized, arguments[index:]...)
		}
		flagName, isLongFlag := strings.CutPrefix(argument, "--")
		_, isLiteralFlag := literalFlagNames[flagName]
		if isLongFlag && isLiteralFlag && index+1 < len(arguments) {
			nextArgument := arguments[index+1]
			if _, known := booleanLiterals[strings.ToLower(strings.TrimSpace(nextArgument))]; known {
				normalized = append(normalized, argument+"="+nextArgument)
				index++
				continue
			}
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	collect := func(flag *pflag.Flag) {
		if _, isLiteral := flag.Value.(*literalBooleanFlag); isLiteral {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
