package reports

// barChart builds a single-series bar chart descriptor.
func barChart(title, seriesName string, labels []string, values []float64) Chart {
	return Chart{
		Type:   ChartBar,
		Title:  title,
		Labels: labels,
		Series: []ChartSeries{{Name: seriesName, Values: values}},
	}
}

// pieChart builds a pie chart descriptor; labels and values pair one to one.
func pieChart(title string, labels []string, values []float64) Chart {
	return Chart{
		Type:   ChartPie,
		Title:  title,
		Labels: labels,
		Series: []ChartSeries{{Name: title, Values: values}},
	}
}
