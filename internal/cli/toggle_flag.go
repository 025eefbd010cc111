package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName         = "bool"
	toggleFlagTrueLiteral      = "true"
	toggleFlagAcceptedLiterals = "true, false, yes, no, on, off, 1, 0"
	toggleFlagTerminator       = "--"
	toggleFlagPrefix           = "--"
	toggleFlagAssignment       = "="
	toggleFlagAssignmentFormat = "--%s=%s"

	errorToggleValueFormat = "invalid boolean value %q for --%s; accepted values: %s"
)

var toggleFlagLiterals = map[string]bool{
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

// toggleFlagValue is a pflag.Value for booleans that understands yes/no and
// on/off in addition to strconv literals.
type toggleFlagValue struct {
	target   *bool
	flagName string
}

func (value *toggleFlagValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleFlagTrueLiteral
	}
	parsed, known := toggleFlagLiterals[normalized]
	if !known || value.target == nil {
		return fmt.Errorf(errorToggleValueFormat, input, value.flagName, toggleFlagAcceptedLiterals)
	}
	*value.target = parsed
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleFlagValue) Type() string {
	return toggleFlagTypeName
}

// registerToggleFlag adds a boolean flag that may be given bare, as
// --name=value or as --name value.
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&toggleFlagValue{target: target, flagName: name}, name, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(defaultValue)
	registered.NoOptDefVal = toggleFlagTrueLiteral
}

// normalizeToggleArguments rewrites "--name value" into "--name=value" for
// toggle flags whose next argument is a boolean literal. pflag would otherwise
// treat the literal as a positional argument.
func normalizeToggleArguments(command *cobra.Command, arguments []string) []string {
	toggleNames := toggleFlagNames(command)
	if len(toggleNames) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == toggleFlagTerminator {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		flagName := strings.TrimPrefix(currentArgument, toggleFlagPrefix)
		_, isToggle := toggleNames[flagName]
		if isToggle && strings.HasPrefix(currentArgument, toggleFlagPrefix) && !strings.Contains(currentArgument, toggleFlagAssignment) && index+1 < len(arguments) {
			nextArgument := arguments[index+1]
			if _, isLiteral := toggleFlagLiterals[strings.ToLower(strings.TrimSpace(nextArgument))]; isLiteral {
				normalized = append(normalized, fmt.Sprintf(toggleFlagAssignmentFormat, flagName, nextArgument))
				index++
				continue
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func toggleFlagNames(command *cobra.Command) map[string]struct{} {
	names := map[string]struct{}{}
	collect := func(flag *pflag.Flag) {
		if flag.Value.Type() == toggleFlagTypeName {
			names[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	return names
}
