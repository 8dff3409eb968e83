package utils

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// DrawMultiCloudCostTable displays cost comparison across multiple providers
func DrawMultiCloudCostTable(results []model.ProviderCostResult) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 💰 MULTI-CLOUD COST DIAGNOSIS"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	drawCostSummaryTable(results)

	for _, result := range results {
		if result.Error != nil {
			drawProviderError(result.Provider, result.Error)
			continue
		}

		if result.CurrentMonthData != nil && result.LastMonthData != nil {
			fmt.Printf("\n %s\n", text.FgHiCyan.Sprintf("📊 %s Details", strings.ToUpper(result.Provider)))
			DrawCostTable(result.AccountID, result.LastTotalCost, result.CurrentTotalCost, result.LastMonthData, result.CurrentMonthData)
		}
	}
}

func drawCostSummaryTable(results []model.ProviderCostResult) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle("Cost Summary by Provider")
	tw.AppendHeader(table.Row{"Provider", "Account/Project ID", "Last Month", "Current Month", "Difference"})
	tw.SetStyle(table.StyleRounded)

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	var totalLast, totalCurrent float64
	var currency string

	for _, result := range results {
		if result.Error != nil {
			tw.AppendRow(table.Row{
				text.FgHiYellow.Sprint(strings.ToUpper(result.Provider)),
				text.FgRed.Sprint("Error"),
				"-",
				"-",
				text.FgRed.Sprint("Failed to retrieve"),
			})
			continue
		}

		lastCost := parseCost(result.LastTotalCost)
		currentCost := parseCost(result.CurrentTotalCost)
		diff := currentCost - lastCost

		totalLast += lastCost
		totalCurrent += currentCost

		if currency == "" {
			parts := strings.Split(result.CurrentTotalCost, " ")
			if len(parts) > 1 {
				currency = parts[1]
			}
		}

		diffStr := fmt.Sprintf("%.2f %s", diff, currency)
		currentStr := result.CurrentTotalCost
		providerColor := text.FgGreen

		if diff > 0 {
			diffStr = text.FgHiRed.Sprintf("+%.2f %s", diff, currency)
			currentStr = text.FgHiRed.Sprint(result.CurrentTotalCost)
			providerColor = text.FgRed
		} else if diff < 0 {
			diffStr = text.FgHiGreen.Sprintf("%.2f %s", diff, currency)
			currentStr = text.FgHiGreen.Sprint(result.CurrentTotalCost)
		}

		tw.AppendRow(table.Row{
			providerColor.Sprint(strings.ToUpper(result.Provider)),
			result.AccountID,
			result.LastTotalCost,
			currentStr,
			diffStr,
		})
	}

	if len(results) > 1 {
		tw.AppendSeparator()
		totalDiff := totalCurrent - totalLast
		totalDiffStr := fmt.Sprintf("%.2f %s", totalDiff, currency)
		totalCurrentStr := fmt.Sprintf("%.2f %s", totalCurrent, currency)

		if totalDiff > 0 {
			totalDiffStr = text.FgHiRed.Sprintf("+%.2f %s", totalDiff, currency)
			totalCurrentStr = text.FgHiRed.Sprintf("%.2f %s", totalCurrent, currency)
		} else if totalDiff < 0 {
			totalDiffStr = text.FgHiGreen.Sprintf("%.2f %s", totalDiff, currency)
			totalCurrentStr = text.FgHiGreen.Sprintf("%.2f %s", totalCurrent, currency)
		}

		tw.AppendRow(table.Row{
			text.FgHiWhite.Sprint("TOTAL"),
			"",
			fmt.Sprintf("%.2f %s", totalLast, currency),
			totalCurrentStr,
			totalDiffStr,
		})
	}

	tw.Render()
}

// DrawMultiCloudTrendChart displays trend analysis across multiple providers
func DrawMultiCloudTrendChart(results []model.ProviderCostResult) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📈 MULTI-CLOUD COST TREND"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	for _, result := range results {
		if result.Error != nil {
			drawProviderError(result.Provider, result.Error)
			continue
		}

		if len(result.TrendData) > 0 {
			fmt.Printf("\n %s\n", text.FgHiCyan.Sprintf("📊 %s Trend (Account: %s)", strings.ToUpper(result.Provider), result.AccountID))
			DrawTrendChart(result.AccountID, result.TrendData)
		}
	}
}

// DrawMultiCloudCheckup displays savings recommendations across providers
func DrawMultiCloudCheckup(results []model.ProviderCheckupResult) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 🏥 MULTI-CLOUD CHECKUP"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	drawCheckupSummaryTable(results)

	for _, result := range results {
		if result.Error != nil {
			drawProviderError(result.Provider, result.Error)
			continue
		}

		if len(result.Recommendations) > 0 || len(result.Reservations) > 0 {
			fmt.Printf("\n %s\n", text.FgHiCyan.Sprintf("🔍 %s Details", strings.ToUpper(result.Provider)))
			DrawRecommendationTable(result.AccountID, result.Recommendations, result.TotalMonthly)
			DrawReservationTable(result.Reservations)
		}
	}
}

func drawCheckupSummaryTable(results []model.ProviderCheckupResult) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle("Savings Summary by Provider")
	tw.AppendHeader(table.Row{"Provider", "Account/Project ID", "Recommendations", "Est. Monthly Savings", "Status"})
	tw.SetStyle(table.StyleRounded)

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignCenter},
	})

	var totalSavings float64
	var totalRecs int

	for _, result := range results {
		if result.Error != nil {
			tw.AppendRow(table.Row{
				text.FgHiYellow.Sprint(strings.ToUpper(result.Provider)),
				text.FgRed.Sprint("Error"),
				"-",
				"-",
				text.FgRed.Sprint("⚠ Failed"),
			})
			continue
		}

		totalSavings += result.TotalMonthly
		totalRecs += len(result.Recommendations)

		status := text.FgHiGreen.Sprint("✅ Healthy")
		if len(result.Recommendations) > 0 {
			status = text.FgHiRed.Sprint("⚠ Savings Found")
		}

		tw.AppendRow(table.Row{
			text.FgHiCyan.Sprint(strings.ToUpper(result.Provider)),
			result.AccountID,
			len(result.Recommendations),
			text.FgHiGreen.Sprintf("%.2f USD", result.TotalMonthly),
			status,
		})
	}

	if len(results) > 1 {
		tw.AppendSeparator()
		totalStatus := text.FgHiGreen.Sprint("✅ All Healthy")
		if totalRecs > 0 {
			totalStatus = text.FgHiRed.Sprint("⚠ Action Needed")
		}

		tw.AppendRow(table.Row{
			text.FgHiWhite.Sprint("TOTAL"),
			"",
			totalRecs,
			text.FgHiGreen.Sprintf("%.2f USD", totalSavings),
			totalStatus,
		})
	}

	tw.Render()
}

func drawProviderError(provider string, err error) {
	fmt.Printf("\n %s %s: %s\n",
		text.FgHiRed.Sprint("⚠"),
		text.FgHiYellow.Sprint(strings.ToUpper(provider)),
		text.FgRed.Sprint(err.Error()))
}

// SortProviderCostResults sorts results by provider name for consistent display
func SortProviderCostResults(results []model.ProviderCostResult) {
	providerOrder := map[string]int{"aws": 1, "gcp": 2, "azure": 3}
	sort.Slice(results, func(i, j int) bool {
		return providerOrder[results[i].Provider] < providerOrder[results[j].Provider]
	})
}

func SortProviderCheckupResults(results []model.ProviderCheckupResult) {
	providerOrder := map[string]int{"aws": 1, "gcp": 2, "azure": 3}
	sort.Slice(results, func(i, j int) bool {
		return providerOrder[results[i].Provider] < providerOrder[results[j].Provider]
	})
}
