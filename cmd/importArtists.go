package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ademuri/spotify-insights/internal/metadata"
	"github.com/spf13/cobra"
)

var importArtistsCmd = &cobra.Command{
	Use:   "import-artists <file>",
	Short: "Imports artist metadata from a YAML file",
	Long: `Imports genres, popularity and origin of artists. The file has a top level
'artists' list whose entries have a name and optionally genres, popularity
(0-100), country, latitude and longitude. 'missing-artists --template' writes a
file to start from.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSettings()
		if err == nil {
			err = importArtists(os.Stdout, cfg, args[0])
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importArtistsCmd)
}

func importArtists(w io.Writer, cfg settings, path string) error {
	artists, err := metadata.ReadFile(path)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, a := range artists {
		if err := s.SaveArtistMetadata(a); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Imported metadata for %d artists from %s\n", len(artists), path)
	return nil
}
