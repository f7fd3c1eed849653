package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ytget/intune-dash/internal/model"
	"github.com/ytget/intune-dash/internal/sample"
)

func newDevicesCmd(e *env) *cobra.Command {
	var (
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "Print a table of sample devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				count = e.settings.GetDeviceCount()
			}
			if seed == 0 {
				seed = e.settings.GetSeed()
			}

			generator := sample.New(seed, e.settings.GetFleet())
			return renderDevices(cmd.OutOrStdout(), generator.Devices(count))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of devices (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible output (0 picks one)")
	return cmd
}

// renderDevices writes the device table and a compliance summary line
func renderDevices(w io.Writer, devices []model.Device) error {
	header := make([]any, len(model.DeviceColumns))
	for i, column := range model.DeviceColumns {
		header[i] = column
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)

	for _, d := range devices {
		cells := d.Cells()
		row := make([]any, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		if err := table.Append(row...); err != nil {
			return fmt.Errorf("rendering device %s: %w", d.ID, err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering device table: %w", err)
	}

	compliant := model.CountCompliant(devices)
	bold.Fprintf(w, "%d devices", len(devices))
	fmt.Fprint(w, ", ")
	green.Fprintf(w, "%d compliant", compliant)
	fmt.Fprint(w, ", ")
	red.Fprintf(w, "%d non-compliant\n", len(devices)-compliant)
	return nil
}
