package utils

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// DrawRecommendationTable renders the ranked savings opportunities for one
// account. Rows arrive already sorted by estimated savings.
func DrawRecommendationTable(accountId string, recommendations []model.Recommendation, totalMonthly float64) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 🩺  SAVINGS DIAGNOSIS"))
	fmt.Printf(" Account ID: %s\n", text.FgBlue.Sprint(accountId))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if len(recommendations) == 0 {
		fmt.Println(text.FgHiGreen.Sprint(" ✅ No savings opportunities found"))
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Resource", "Region", "Type", "Recommendation", "Est. Monthly Savings", "Confidence"})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: 60},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignCenter},
	})

	for _, rec := range recommendations {
		tw.AppendRow(table.Row{
			rec.ResourceName,
			rec.Region,
			typeLabel(rec.Type),
			rec.Details,
			text.FgHiGreen.Sprintf("%.2f USD", rec.EstimatedMonthlySavings),
			confidenceLabel(rec.Confidence),
		})
	}

	tw.AppendSeparator()
	tw.AppendRow(table.Row{
		text.FgHiWhite.Sprint("TOTAL"),
		"", "", "",
		text.FgHiGreen.Sprintf("%.2f USD", totalMonthly),
		"",
	})
	tw.Render()
}

// DrawReservationTable renders expiring or recently expired commitments
func DrawReservationTable(reservations []model.Reservation) {
	if len(reservations) == 0 {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" ⏳  COMMITMENT EXPIRY"))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Reservation", "Instance Type", "Status", "Days Until Expiry"})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})

	for _, reservation := range reservations {
		status := text.FgHiYellow.Sprint(reservation.Status)
		if reservation.Status == "expired" {
			status = text.FgHiRed.Sprint(reservation.Status)
		}
		tw.AppendRow(table.Row{
			reservation.ID,
			reservation.InstanceType,
			status,
			reservation.DaysUntilExpiry,
		})
	}
	tw.Render()
}

func typeLabel(recType model.RecommendationType) string {
	switch recType {
	case model.RecommendationRightsize:
		return text.FgHiCyan.Sprint(string(recType))
	case model.RecommendationTerminateIdle, model.RecommendationUnusedResource:
		return text.FgHiRed.Sprint(string(recType))
	case model.RecommendationReservedCapacity:
		return text.FgHiMagenta.Sprint(string(recType))
	default:
		return text.FgHiYellow.Sprint(string(recType))
	}
}

func confidenceLabel(confidence model.Confidence) string {
	switch confidence {
	case model.ConfidenceHigh:
		return text.FgHiGreen.Sprint(string(confidence))
	case model.ConfidenceMedium:
		return text.FgHiYellow.Sprint(string(confidence))
	default:
		return text.FgHiRed.Sprint(string(confidence))
	}
}
