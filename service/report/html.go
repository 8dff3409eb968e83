package report

import (
	"html/template"
	"io"
)

const htmlTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Cloud Cost Doctor Checkup</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            background: #f5f7fa;
            color: #333;
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #1a9850 0%, #0d4d28 100%);
            color: white;
            padding: 40px;
        }
        .header h1 { font-size: 2.2em; margin-bottom: 8px; }
        .summary {
            display: flex;
            gap: 20px;
            padding: 30px 40px;
        }
        .summary-card {
            background: #f8f9fa;
            padding: 20px 30px;
            border-radius: 10px;
            flex: 1;
        }
        .summary-card .value { font-size: 1.8em; font-weight: 700; color: #1a9850; }
        table {
            width: 100%;
            border-collapse: collapse;
            margin: 0 0 30px;
        }
        th, td { padding: 10px 14px; text-align: left; border-bottom: 1px solid #e3e7ea; }
        th { background: #f0f2f5; font-weight: 600; }
        td.savings { text-align: right; color: #1a9850; font-weight: 600; }
        .section { padding: 0 40px 20px; }
        .section h2 { margin-bottom: 12px; }
        .error { color: #d73027; }
        .confidence-High { color: #1a9850; font-weight: 600; }
        .confidence-Medium { color: #f46d43; font-weight: 600; }
        .confidence-Low { color: #d73027; font-weight: 600; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🩺 Cloud Cost Doctor Checkup</h1>
            <div>Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</div>
        </div>
        <div class="summary">
            <div class="summary-card">
                <div>Estimated Monthly Savings</div>
                <div class="value">${{printf "%.2f" .TotalMonthly}}</div>
            </div>
            {{range $type, $savings := .ByType}}
            <div class="summary-card">
                <div>{{$type}}</div>
                <div class="value">${{printf "%.2f" $savings}}</div>
            </div>
            {{end}}
        </div>
        {{range .Results}}
        <div class="section">
            <h2>{{.Provider}} ({{.AccountID}})</h2>
            {{if .Error}}
            <p class="error">Failed: {{.Error}}</p>
            {{else if .Recommendations}}
            <table>
                <tr>
                    <th>Resource</th>
                    <th>Region</th>
                    <th>Type</th>
                    <th>Recommendation</th>
                    <th>Monthly Savings</th>
                    <th>Confidence</th>
                </tr>
                {{range .Recommendations}}
                <tr>
                    <td>{{.ResourceName}}</td>
                    <td>{{.Region}}</td>
                    <td>{{.Type}}</td>
                    <td>{{.Details}}</td>
                    <td class="savings">${{printf "%.2f" .EstimatedMonthlySavings}}</td>
                    <td class="confidence-{{.Confidence}}">{{.Confidence}}</td>
                </tr>
                {{end}}
            </table>
            {{else}}
            <p>No savings opportunities found.</p>
            {{end}}
        </div>
        {{end}}
    </div>
</body>
</html>
`

var compiledTemplate = template.Must(template.New("checkup").Parse(htmlTemplate))

func writeHTML(report Report, writer io.Writer) error {
	return compiledTemplate.Execute(writer, report)
}
