package dates

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cmdTypes "github.com/rwxsh/zcompgen/internal/cmd/types"
	cmdUtils "github.com/rwxsh/zcompgen/internal/cmd/utils"
	"github.com/rwxsh/zcompgen/internal/dateutil"
	"github.com/rwxsh/zcompgen/internal/logger"
)

func DatesCommand() *cobra.Command {
	opts := cmdTypes.DatesOpts{}

	cmd := cobra.Command{
		Use:   "dates START END",
		Short: "Compute differences between dates or clock times",
		Long:  "Compute calendar and clock differences between two timestamps.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdUtils.CommandErrorHandler(datesMain(cmd, &opts, args))
		},
	}

	cmd.Flags().BoolVarP(&opts.DisplayJson, "json", "j", false, "Output information in JSON format")

	cmdUtils.SetHelpFlagText(&cmd)
	cmd.SetHelpTemplate(cmd.HelpTemplate() + `
Arguments:
  START  First timestamp, a YYYY-MM-DD date or a HH:MM:SS clock time
  END    Second timestamp, in the same form as START
`)

	return &cmd
}

func datesMain(cmd *cobra.Command, opts *cmdTypes.DatesOpts, args []string) error {
	log := logger.FromContext(cmd.Context())

	if start, err := dateutil.ParseDate(args[0]); err == nil {
		end, err := dateutil.ParseDate(args[1])
		if err != nil {
			log.Errorf("%v", err)
			return err
		}

		displayDateReport(start, end, opts.DisplayJson)
		return nil
	}

	start, err := dateutil.ParseClock(args[0])
	if err != nil {
		err = fmt.Errorf("%q is neither a YYYY-MM-DD date nor a HH:MM:SS clock time", args[0])
		log.Errorf("%v", err)
		return err
	}

	end, err := dateutil.ParseClock(args[1])
	if err != nil {
		log.Errorf("%v", err)
		return err
	}

	displayClockReport(start, end, opts.DisplayJson)
	return nil
}

func displayDateReport(start time.Time, end time.Time, displayJson bool) {
	days := dateutil.DaysBetween(start, end)
	weeks := dateutil.WeeksBetween(start, end)
	sundays := dateutil.CountSundays(start, end)
	workingDays := dateutil.WorkingDaysBetween(start, end)

	if displayJson {
		type dateReportJson struct {
			Start       string `json:"start"`
			End         string `json:"end"`
			Days        int    `json:"days"`
			Weeks       int    `json:"weeks"`
			Sundays     int    `json:"sundays"`
			WorkingDays int    `json:"working_days"`
		}

		bytes, _ := json.MarshalIndent(dateReportJson{
			Start:       start.Format(dateutil.DateLayout),
			End:         end.Format(dateutil.DateLayout),
			Days:        days,
			Weeks:       weeks,
			Sundays:     sundays,
			WorkingDays: workingDays,
		}, "", "  ")
		fmt.Printf("%v\n", string(bytes))
		return
	}

	fmt.Printf("Days:         %v\n", days)
	fmt.Printf("Weeks:        %v\n", weeks)
	fmt.Printf("Sundays:      %v\n", sundays)
	fmt.Printf("Working days: %v\n", workingDays)
}

func displayClockReport(start time.Duration, end time.Duration, displayJson bool) {
	diff := dateutil.ClockDifference(start, end)

	if displayJson {
		type clockReportJson struct {
			Difference string  `json:"difference"`
			Seconds    float64 `json:"seconds"`
		}

		bytes, _ := json.MarshalIndent(clockReportJson{
			Difference: diff.String(),
			Seconds:    diff.Seconds(),
		}, "", "  ")
		fmt.Printf("%v\n", string(bytes))
		return
	}

	fmt.Printf("Time difference: %v\n", diff)
}
