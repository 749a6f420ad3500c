package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "doxly"
)

var User string

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	rootCmd.AddCommand(contextCommand)
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
}

// Context holds the acting user identity stamped on uploads and shares.
type Context struct {
	User string `json:"user"`
}

// saves the context info to the config file in ./.tmp
func setContextCommand() *cobra.Command {
	var user string
	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if user == "" {
				color.Red(`missing: --user`)
				return
			}

			writeContext(Context{User: user})
			fmt.Println("context saved")
		},
	}

	command.Flags().StringVarP(&user, "user", "u", "", "acting user id")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := readContext()
			fmt.Println("user:", cfg.User)
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			writeContext(Context{})
		},
	}

	return command
}

func writeContext(context Context) {
	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")
	viper.Set("context", context)

	if err := viper.WriteConfig(); err != nil {
		fmt.Println("error writing config file: ", err)
	}
}

func readContext() Context {
	var ctx Context

	// create file if it doesn't exist
	if _, err := os.Stat("./.tmp/" + configFileName + ".yml"); os.IsNotExist(err) {
		_ = os.MkdirAll("./.tmp", os.ModePerm)
		file, err := os.Create("./.tmp/" + configFileName + ".yml")
		if err != nil {
			fmt.Println("error creating config file: ", err)
		}
		err = file.Close()
		if err != nil {
			panic(err)
		}
	}

	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("error reading config file: ", err)
	}

	if err := viper.UnmarshalKey("context", &ctx); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}

	return ctx
}

func actingUser() string {
	if User != "" {
		return User
	}
	cfg := readContext()
	return cfg.User
}

func bindUserFlag(command *cobra.Command) {
	command.Flags().StringVarP(&User, "user", "u", "", "acting user id")
}
