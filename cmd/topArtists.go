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
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var topNumber int

var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [from] [to (optional)]",
	Short: "Gets the user's top artists",
	Long: `Uses the specified date or date range, or the last 30 days. Date strings look
like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd', or relative like '30d'.`,
	Args:    cobra.RangeArgs(0, 2),
	PreRunE: requireUser,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSettings()
		if err == nil {
			err = printTopArtists(os.Stdout, cfg, args, topNumber)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var topAlbumsCmd = &cobra.Command{
	Use:   "top-albums [from] [to (optional)]",
	Short: "Gets the user's top albums",
	Long: `Uses the specified date or date range, or the last 30 days. Date strings look
like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd', or relative like '30d'.`,
	Args:    cobra.RangeArgs(0, 2),
	PreRunE: requireUser,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSettings()
		if err == nil {
			err = printTopAlbums(os.Stdout, cfg, args, topNumber)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)
	rootCmd.AddCommand(topAlbumsCmd)

	topArtistsCmd.Flags().IntVarP(&topNumber, "number", "n", 10, "number of results to return")
	topAlbumsCmd.Flags().IntVarP(&topNumber, "number", "n", 10, "number of results to return")
}

func printTopArtists(w io.Writer, cfg settings, args []string, numToReturn int) error {
	start, end, err := parseDateRangeOrDefault(args, cfg.location, defaultWindow)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	artists, err := s.GetTopArtists(cfg.user, start, end, numToReturn)
	if err != nil {
		return err
	}

	table := Analysis{results: [][]string{{"Artist", "Listens"}}}
	var numListens int64
	for _, a := range artists {
		table.results = append(table.results, []string{a.Artist, strconv.FormatInt(a.Count, 10)})
		numListens += a.Count
	}
	table.summary = fmt.Sprintf("Top %d artists with %d listens from %s to %s",
		len(artists), numListens, start.Format(dateFormat), end.Format(dateFormat))
	return render(w, cfg.format, artists, table)
}

func printTopAlbums(w io.Writer, cfg settings, args []string, numToReturn int) error {
	start, end, err := parseDateRangeOrDefault(args, cfg.location, defaultWindow)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	albums, err := s.GetTopAlbums(cfg.user, start, end, numToReturn)
	if err != nil {
		return err
	}

	table := Analysis{results: [][]string{{"Artist", "Album", "Listens"}}}
	var numListens int64
	for _, a := range albums {
		table.results = append(table.results, []string{a.Artist, a.Album, strconv.FormatInt(a.Count, 10)})
		numListens += a.Count
	}
	table.summary = fmt.Sprintf("Top %d albums with %d listens from %s to %s",
		len(albums), numListens, start.Format(dateFormat), end.Format(dateFormat))
	return render(w, cfg.format, albums, table)
}
