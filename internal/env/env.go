// Package env maps environment variables onto unset command flags.
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const globalPrefix = "horn"

const errorMessagePrefix = "error mapping environment variables to command flags"

// CheckEnvironmentVariables sets every flag of the command that was not given on
// the command line from the environment. Subcommands read HORN_<CMD>_<FLAG>
// first and HORN_<FLAG> after it; the root command reads HORN_<FLAG>.
// Dashes in flag names become underscores.
func CheckEnvironmentVariables(command *cobra.Command) error {
	var errs []string
	if command.Name() != globalPrefix {
		errs = mapFlags(command, fmt.Sprintf("%s_%s", globalPrefix, command.Name()), errs)
	}
	errs = mapFlags(command, globalPrefix, errs)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}

func mapFlags(command *cobra.Command, prefix string, errs []string) []string {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix(prefix)
	command.Flags().VisitAll(func(f *pflag.Flag) {
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				errs = append(errs, err.Error())
			}
		}
	})
	return errs
}
