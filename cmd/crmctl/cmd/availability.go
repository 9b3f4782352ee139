package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
	"github.com/BruksfildServices01/fieldservice-availability/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/fieldservice-availability/internal/usecase/availability"
)

var (
	workTypeFlag  string
	territoryFlag string
	jsonFlag      bool
)

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "List available appointment dates and times",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uc := ucAvailability.NewGetAvailableDates(
			current.session,
			ucAvailability.Defaults{
				WorkTypeID:  current.cfg.Salesforce.WorkTypeID,
				TerritoryID: current.cfg.Salesforce.TerritoryID,
			},
			timezone.Location(current.cfg.Timezone),
			audit.Nop{},
			current.log,
		)

		dates, err := uc.Execute(cmd.Context(), ucAvailability.GetAvailableDatesInput{
			WorkTypeID:  workTypeFlag,
			TerritoryID: territoryFlag,
		})
		if err != nil {
			return err
		}

		if jsonFlag {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dates)
		}

		printDates(cmd.OutOrStdout(), dates)
		return nil
	},
}

func printDates(w io.Writer, dates []scheduling.AvailableDate) {
	if len(dates) == 0 {
		fmt.Fprintln(w, "no available dates")
		return
	}
	for _, d := range dates {
		fmt.Fprintf(w, "%s  %s\n", d.Date, strings.Join(d.Times, " "))
	}
}

func init() {
	availabilityCmd.Flags().StringVar(&workTypeFlag, "work-type", "", "work type id (defaults to WORKTYPE_ID)")
	availabilityCmd.Flags().StringVar(&territoryFlag, "territory", "", "territory id (defaults to TERRITORY_ID)")
	availabilityCmd.Flags().BoolVar(&jsonFlag, "json", false, "print JSON")
}
