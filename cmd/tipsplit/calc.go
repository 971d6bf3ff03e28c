package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mmynk/tipsplit/internal/calculator"
	"github.com/mmynk/tipsplit/internal/form"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/repl"
)

func newCalcCmd(configPath *string) *cobra.Command {
	var (
		bill, people, tip string
		preset            float64
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run a single calculation and print the result",
		Example: `  tipsplit calc --bill 100 --people 4 --preset 20
  tipsplit calc --bill 50 --people 2 --tip 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}

			in := calculator.RawInputs{
				BillText:      bill,
				PeopleText:    people,
				CustomTipText: tip,
			}
			if cmd.Flags().Changed("preset") {
				presets := resolvePresets(cmd.Context(), cfg)
				if !slices.Contains(models.Percents(presets), preset) {
					return fmt.Errorf("%w: %s", form.ErrUnknownPreset, models.PercentLabel(preset))
				}
				in.ActivePreset = &preset
			}

			repl.RenderCalculation(cmd.OutOrStdout(), calculator.Calculate(in), repl.DefaultStyles())
			return nil
		},
	}

	cmd.Flags().StringVar(&bill, "bill", "", "bill amount")
	cmd.Flags().StringVar(&people, "people", "", "number of people")
	cmd.Flags().StringVar(&tip, "tip", "", "custom tip percent; overrides --preset when set")
	cmd.Flags().Float64Var(&preset, "preset", 0, "preset tip percent to apply")
	return cmd
}
