package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"utm-som/internal/utm"

	"github.com/spf13/cobra"
)

var catalogJSON bool

// catalogCmd lists the choices the build command accepts
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List channels, sources, cities, aliases and users",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

type catalogDocument struct {
	Channels         []utm.Channel `json:"channels"`
	Cities           []string      `json:"cities"`
	Aliases          []string      `json:"aliases"`
	Users            []string      `json:"users"`
	CampaignTemplate string        `json:"campaign_template"`
}

func runCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if catalogJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(catalogDocument{
			Channels:         utm.Channels(),
			Cities:           utm.Cities(),
			Aliases:          utm.Aliases(),
			Users:            utm.Users(),
			CampaignTemplate: utm.CampaignTemplate,
		})
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tMEDIUM\tSOURCES")
	for _, ch := range utm.Channels() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ch.Name, ch.Medium, describeSources(ch))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Cities:   %s\n", strings.Join(utm.Cities(), ", "))
	fmt.Fprintf(out, "Aliases:  %s\n", strings.Join(utm.Aliases(), ", "))
	fmt.Fprintf(out, "Users:    %s\n", strings.Join(utm.Users(), ", "))
	fmt.Fprintf(out, "Campaign: %s\n", utm.CampaignTemplate)
	return nil
}

func describeSources(ch utm.Channel) string {
	if ch.CustomSource {
		return fmt.Sprintf("--custom-source (%s) -> %s<texto>", ch.CustomLabel, ch.SourcePrefix)
	}
	values := make([]string, len(ch.Sources))
	for i, s := range ch.Sources {
		values[i] = s.Value
	}
	return strings.Join(values, ", ")
}
