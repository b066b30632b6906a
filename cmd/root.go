/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ademuri/spotify-insights/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string
var spotifyUser string
var databasePath string
var timezone string
var outputFormat string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotify-insights",
	Short: "Analyzes Spotify listening history",
	Long: `Imports Spotify streaming history exports into a local database and derives
listening patterns from it: when you listen, how varied your listening is, and
what kind of listener that makes you.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.spotify-insights.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&spotifyUser, "user", "u", "", "user whose plays to act on")
	viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./insights.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(
		&timezone, "timezone", "", "IANA time zone plays are bucketed in (default is the local zone)")
	viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))

	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "format", "f", formatTable, "output format: table, yaml or json")
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".spotify-insights" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".spotify-insights")
	}

	viper.SetEnvPrefix("SPOTIFY_INSIGHTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// settings is the resolved configuration a command runs with.
type settings struct {
	dbPath   string
	user     string
	location *time.Location
	format   string
}

func requireUser(cmd *cobra.Command, args []string) error {
	if viper.GetString("user") == "" {
		return fmt.Errorf("required flag(s) \"user\" not set")
	}
	return nil
}

func loadSettings() (settings, error) {
	loc, err := loadLocation(viper.GetString("timezone"))
	if err != nil {
		return settings{}, err
	}
	format, err := parseFormat(viper.GetString("format"))
	if err != nil {
		return settings{}, err
	}
	return settings{
		dbPath:   viper.GetString("database"),
		user:     viper.GetString("user"),
		location: loc,
		format:   format,
	}, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", name, err)
	}
	return loc, nil
}

func openStore(cfg settings) (*store.Store, error) {
	s, err := store.New(cfg.dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", cfg.dbPath, err)
	}
	return s, nil
}
