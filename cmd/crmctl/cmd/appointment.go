package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	ucAvailability "github.com/BruksfildServices01/fieldservice-availability/internal/usecase/availability"
)

var appointmentCmd = &cobra.Command{
	Use:   "appointment <id>",
	Short: "Print a ServiceAppointment record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uc := ucAvailability.NewGetServiceAppointment(current.session, audit.Nop{})

		raw, err := uc.Execute(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return fmt.Errorf("format response: %w", err)
		}
		buf.WriteByte('\n')

		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	},
}
