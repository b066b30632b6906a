package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ademuri/spotify-insights/internal/metadata"
	"github.com/spf13/cobra"
)

var missingArtistsTemplate bool
var missingArtistsNumber int

var missingArtistsCmd = &cobra.Command{
	Use:   "missing-artists",
	Short: "Lists played artists that have no metadata",
	Long: `Lists the artists in the user's history that have never had metadata
imported, most played first. With --template, writes them as an artist metadata
file to fill in and pass to import-artists.`,
	Args:    cobra.NoArgs,
	PreRunE: requireUser,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSettings()
		if err == nil {
			err = printMissingArtists(os.Stdout, cfg, missingArtistsNumber, missingArtistsTemplate)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(missingArtistsCmd)

	missingArtistsCmd.Flags().BoolVar(&missingArtistsTemplate, "template", false, "write an artist metadata file instead of a table")
	missingArtistsCmd.Flags().IntVarP(&missingArtistsNumber, "number", "n", 0, "number of artists to list, default is all")
}

func printMissingArtists(w io.Writer, cfg settings, numToReturn int, template bool) error {
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	missing, err := s.GetArtistsMissingMetadata(cfg.user)
	if err != nil {
		return err
	}
	if numToReturn > 0 && len(missing) > numToReturn {
		missing = missing[:numToReturn]
	}

	if template {
		names := make([]string, 0, len(missing))
		for _, m := range missing {
			names = append(names, m.Artist)
		}
		return metadata.WriteTemplate(w, names)
	}

	table := Analysis{results: [][]string{{"Artist", "Plays"}}}
	for _, m := range missing {
		table.results = append(table.results, []string{m.Artist, strconv.FormatInt(m.Count, 10)})
	}
	table.summary = fmt.Sprintf("Found %d artists without metadata", len(missing))
	return render(w, cfg.format, missing, table)
}
