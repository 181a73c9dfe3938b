// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package dashboard

import "github.com/tomtom215/deskintel/internal/reports"

// Page text.
const (
	PageTitle   = "Deskbird Workplace Intelligence Dashboard"
	Title       = "🦅 Deskbird Hybrid Workplace Intelligence"
	Subheader   = "Data-Driven Strategies for Revenue Growth & Office Optimization"
	MetricsHead = "I. Executive Metrics Snapshot"

	// MessageDataLoadFailed replaces the page body when the funnel is empty.
	MessageDataLoadFailed = "Data loading failed. Please check database connection."

	takeawaysHead = "Actionable Takeaways"

	// utilizationRows caps the utilization table on the page.
	utilizationRows = 10
)

// MetricCard is one executive snapshot tile.
type MetricCard struct {
	Label   string
	Value   string
	Delta   string
	Caption string
}

// Callout styles, matching the CSS classes in the template.
const (
	StyleSuccess = "success"
	StyleWarning = "warning"
	StyleInfo    = "info"
)

// Tab is one analysis section. Takeaways may contain **bold** runs.
type Tab struct {
	ID        string
	Label     string
	Header    string
	Intro     string
	Style     string
	Takeaways []string
}

// The snapshot values come from the offline analysis, not from live data.
func metricCards() []MetricCard {
	return []MetricCard{
		{
			Label:   "Highest Conversion Rate 📈",
			Value:   "35.90%",
			Delta:   "Enterprise",
			Caption: "Indicates best product-market fit post-lead qualification.",
		},
		{
			Label:   "Highest Deal Value (ADV) 💰",
			Value:   reports.FormatWholeDollars(95725.42 / 9.0),
			Delta:   "Mid-Market",
			Caption: "Highest revenue per customer, but requires optimization.",
		},
		{
			Label:   "Highest Propensity to Close ⭐",
			Value:   "72% Higher Odds",
			Delta:   "Enterprise",
			Caption: "Based on Logistic Regression Model Odds Ratios.",
		},
	}
}

// tabs are keyed by report name and listed in page order.
var tabs = []Tab{
	{
		ID:     "propensity",
		Label:  "⭐ Sales Prioritization (Propensity)",
		Header: "Sales Prioritization: Propensity to Convert",
		Intro:  "The Logistic Regression Model identifies segments that are most likely to convert after becoming a qualified lead. **Enterprise** is the baseline for comparison.",
		Style:  StyleSuccess,
		Takeaways: []string{
			"**1. Model-Driven Focus:** Enterprise leads must receive immediate, high-touch sales attention, as they are the only segment with a high statistical probability of closing.",
			"**2. Mid-Market Diagnostic:** Launch an investigation into why Mid-Market, despite its high ADV, has a 72% lower conversion probability. There is a systemic bottleneck preventing high-value deals from closing.",
		},
	},
	{
		ID:     "funnel",
		Label:  "📈 Funnel Conversion Deep Dive",
		Header: "Segment-Level Funnel Performance",
		Intro:  "This table breaks down lead volume, revenue, and conversion rates, revealing the trade-offs between volume and efficiency across market segments.",
		Style:  StyleWarning,
		Takeaways: []string{
			"**1. Optimize Mid-Market Funnel:** The highest ADV means every conversion lift here yields maximum return. Focus on closing the 18% conversion gap with Enterprise.",
			"**2. Re-evaluate SMB Strategy:** The lowest conversion rate (13.27%) coupled with low propensity (81% less likely to close) necessitates moving SMB leads to a **self-service or automated nurture track** to reduce inefficient sales spend.",
		},
	},
	{
		ID:     "utilization",
		Label:  "🏢 Utilization & Workplace Insights",
		Header: "Client Workplace Utilization Patterns",
		Intro:  "This analysis identifies peak days and segment-specific usage habits, essential for advising clients on real estate and energy optimization.",
		Style:  StyleInfo,
		Takeaways: []string{
			"**1. Utilization Advisory Service:** Create a new consulting service based on non-traditional usage patterns (e.g., Enterprise weekend peaks, SMB high room-to-desk ratios).",
			"**2. Product Feature Focus:** Use the SMB data (high room demand on Mondays) to prioritize product features that make booking and managing collaboration spaces easier and more efficient.",
		},
	},
}
